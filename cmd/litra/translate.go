package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oukeidos/litra/internal/cleanup"
	"github.com/oukeidos/litra/internal/files"
	"github.com/oukeidos/litra/internal/logger"
	"github.com/oukeidos/litra/internal/metadata"
	"github.com/oukeidos/litra/internal/pipeline"
	"github.com/oukeidos/litra/internal/profile"
	"github.com/oukeidos/litra/internal/prompt"
)

type translateOptions struct {
	profilePath string
	modelName   string
	provider    string
	sourceLang  string
	targetLang  string
	blockSize   int
	skipReview  bool
	noContext   bool
	noCache     bool
	yes         bool
	logFilePath string
	allowEnv    bool
	envOnly     bool
	debug       bool
}

func newTranslateCmd() *cobra.Command {
	opts := translateOptions{}
	cmd := &cobra.Command{
		Use:   "translate <input.txt> <output.txt>",
		Short: "Translate a book with the three-pass flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				_ = cmd.Usage()
				return fmt.Errorf("input and output files are required")
			}
			return runTranslate(cmd, args, &opts)
		},
		SilenceUsage: true,
	}

	cmd.SetUsageTemplate(subcommandUsageTemplate)
	addTranslateFlags(cmd, &opts)
	return cmd
}

func addTranslateFlags(cmd *cobra.Command, opts *translateOptions) {
	cmd.Flags().StringVar(&opts.profilePath, "profile", "", "Path to a translation profile JSON file")
	cmd.Flags().StringVar(&opts.modelName, "model", metadata.DefaultModelID, "Model name")
	cmd.Flags().StringVar(&opts.provider, "provider", "claude", "API provider (claude or gemini)")
	cmd.Flags().StringVar(&opts.sourceLang, "source", "", "Source language (overrides the profile)")
	cmd.Flags().StringVar(&opts.targetLang, "target", "German", "Target language")
	cmd.Flags().IntVar(&opts.blockSize, "block-size", pipeline.DefaultBlockSize,
		fmt.Sprintf("Paragraphs per API call (%d-%d)", pipeline.MinBlockSize, pipeline.MaxBlockSize))
	cmd.Flags().BoolVar(&opts.skipReview, "skip-review", false, "Translate in a single pass without review")
	cmd.Flags().BoolVar(&opts.noContext, "no-context", false, "Disable the rolling story context summary")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Disable prompt caching")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Overwrite output file without asking")
	cmd.Flags().StringVar(&opts.logFilePath, "log-file", "", "Path to save machine-readable JSONL logs")
	cmd.Flags().BoolVar(&opts.allowEnv, "allow-env", false, "Allow reading API key from environment variables")
	cmd.Flags().BoolVar(&opts.envOnly, "env-only", false, "Use only environment variables for API keys")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
}

func runTranslate(cmd *cobra.Command, args []string, opts *translateOptions) error {
	if len(args) < 2 {
		return fmt.Errorf("input and output files are required")
	}
	if len(args) > 2 {
		fmt.Fprintf(os.Stderr, "Warning: expected 2 arguments but got %d. Did you forget quotes around file paths?\n", len(args))
		fmt.Fprintf(os.Stderr, "  Using input: %s\n", args[0])
		fmt.Fprintf(os.Stderr, "  Using output: %s\n", args[1])
	}
	if err := validateBookPathExtensions(args[0], args[1]); err != nil {
		return err
	}
	provider := strings.ToLower(opts.provider)
	if provider != "claude" && provider != "gemini" {
		return fmt.Errorf("invalid provider %q. Must be 'claude' or 'gemini'", opts.provider)
	}

	logLevel := logger.LevelInfo
	if opts.debug {
		logLevel = logger.LevelDebug
	}
	var logFileW io.Writer
	if opts.logFilePath != "" {
		if err := files.RejectSymlinkPath(opts.logFilePath); err != nil {
			return err
		}
		f, err := os.OpenFile(opts.logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cleanup.Register(f.Close)
		logFileW = f
	}
	logger.Init(logLevel, logFileW)

	startTime := time.Now()

	actualKey, source, err := resolveAPIKey(provider, opts.allowEnv, opts.envOnly)
	if err != nil {
		return err
	}
	logger.Info("Using API Key", "provider", provider, "source", source)

	prof := profile.Default()
	if opts.profilePath != "" {
		prof, err = profile.Load(opts.profilePath)
		if err != nil {
			return err
		}
		logger.Info("Loaded translation profile", "name", prof.Name, "path", opts.profilePath)
	}
	if opts.sourceLang != "" {
		prof.SourceLanguage = profile.ResolveSourceLanguage(opts.sourceLang)
	}

	cfg := pipeline.Config{
		InputPath:       args[0],
		OutputPath:      args[1],
		APIKey:          actualKey,
		Provider:        provider,
		Model:           opts.modelName,
		Profile:         prof,
		TargetLanguage:  opts.targetLang,
		BlockSize:       opts.blockSize,
		SkipReview:      opts.skipReview,
		ContextDisabled: opts.noContext,
		CacheDisabled:   opts.noCache,
		Overwrite:       opts.yes,
		OnProgress: func(done, total int) {
			logger.Info("Unit completed", "done", done, "total", total)
		},
		OnConfirmOverwrite: func(path string) bool {
			confirmed, err := prompt.DefaultConfirmer().ConfirmOverwrite(path, opts.yes)
			if err != nil {
				logger.Error("Overwrite confirmation failed", "error", err)
				return false
			}
			return confirmed
		},
	}

	ctx, stop := signalContext()
	defer stop()
	result, err := pipeline.RunTranslation(ctx, cfg)

	// Stats are worth printing even when the run stopped early.
	if result.Stats.Requests > 0 {
		printRunSummary(result, time.Since(startTime))
	}

	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("Translation canceled", "error", err)
			return nil
		}
		return err
	}
	return nil
}

var supportedBookExtensions = map[string]struct{}{
	".txt": {},
	".md":  {},
}

const supportedBookExtensionsLabel = ".txt, .md"

func validateBookPathExtensions(inputPath, outputPath string) error {
	if err := validateBookExtension("input", inputPath); err != nil {
		return err
	}
	return validateBookExtension("output", outputPath)
}

func validateBookExtension(kind, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := supportedBookExtensions[ext]; ok {
		return nil
	}
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Errorf("unsupported %s extension %q (supported: %s)", kind, ext, supportedBookExtensionsLabel)
}
