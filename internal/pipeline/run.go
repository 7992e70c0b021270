package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/oukeidos/litra/internal/claude"
	"github.com/oukeidos/litra/internal/cleanup"
	"github.com/oukeidos/litra/internal/engine"
	"github.com/oukeidos/litra/internal/files"
	"github.com/oukeidos/litra/internal/gemini"
	"github.com/oukeidos/litra/internal/llm"
	"github.com/oukeidos/litra/internal/logger"
)

// RunTranslation executes the full book translation pipeline: load and
// split the input, translate every unit sequentially through one engine,
// and write the reassembled book atomically.
func RunTranslation(ctx context.Context, cfg Config) (Result, error) {
	var notes []string
	cfg, notes = cfg.Normalize()
	for _, note := range notes {
		logger.Warn("Config normalized", "detail", note)
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid configuration: %w", err)
	}

	absIn, err := filepath.Abs(cfg.InputPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve input path: %w", err)
	}
	absOut, err := filepath.Abs(cfg.OutputPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve output path: %w", err)
	}
	if absIn == absOut {
		return Result{}, fmt.Errorf("input and output files are the same (%s)", absIn)
	}
	if inInfo, err := os.Stat(absIn); err == nil {
		if outInfo, err := os.Stat(absOut); err == nil && os.SameFile(inInfo, outInfo) {
			return Result{}, fmt.Errorf("input and output files are the same (%s)", absIn)
		}
	} else {
		return Result{}, fmt.Errorf("failed to stat input path: %w", err)
	}
	if err := files.RejectSymlinkPath(cfg.OutputPath); err != nil {
		return Result{}, err
	}

	shouldOverwrite := cfg.Overwrite
	outputExists := false
	if _, err := os.Stat(cfg.OutputPath); err == nil {
		outputExists = true
		if cfg.OnConfirmOverwrite != nil {
			shouldOverwrite = cfg.OnConfirmOverwrite(cfg.OutputPath)
		}
		if !shouldOverwrite {
			logger.Info("Output file exists. Aborted by user.", "path", cfg.OutputPath)
			return Result{Status: StatusSkipped}, nil
		}
		logger.Info("Overwriting output file", "path", cfg.OutputPath)
	}

	paragraphs, err := LoadBook(cfg.InputPath)
	if err != nil {
		return Result{}, err
	}
	units := Blocks(paragraphs, cfg.BlockSize)
	logger.Info("Loaded book",
		"path", cfg.InputPath, "paragraphs", len(paragraphs), "units", len(units), "block_size", cfg.BlockSize)

	client, closeClient, err := buildClient(ctx, cfg)
	if err != nil {
		return Result{}, err
	}
	defer closeClient()

	result := Result{
		SessionID:  uuid.NewString(),
		Paragraphs: len(paragraphs),
		UnitsTotal: len(units),
	}

	eng, err := engine.New(engine.Config{
		Client:         client,
		Profile:        cfg.Profile,
		TargetLanguage: cfg.TargetLanguage,
		SkipReview:     cfg.SkipReview,
		ContextEnabled: !cfg.ContextDisabled,
		CacheDisabled:  cfg.CacheDisabled,
		OnEvent:        func(ev engine.Event) { result.Warnings = append(result.Warnings, ev) },
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to initialize translation engine: %w", err)
	}
	// Flushed once at process exit; quiet when nothing was requested.
	cleanup.Register(func() error {
		eng.LogFinalStats()
		return nil
	})

	logger.Info("Starting translation",
		"session", result.SessionID, "model", client.ModelID(), "profile", cfg.Profile.Name, "target", cfg.TargetLanguage)

	translated := make([]string, 0, len(units))
	for i, unit := range units {
		res, err := eng.TranslateUnit(ctx, unit)
		if err != nil {
			result.Status = StatusFailure
			result.Stats = eng.Stats()
			return result, fmt.Errorf("translation failed at unit %d of %d: %w", i+1, len(units), err)
		}
		translated = append(translated, res.Text)
		result.UnitsDone++
		if cfg.OnProgress != nil {
			cfg.OnProgress(result.UnitsDone, result.UnitsTotal)
		}
	}
	result.Stats = eng.Stats()

	effectiveOutputPath := cfg.OutputPath
	if !(outputExists && shouldOverwrite) {
		safePath, changed, err := files.SafePath(cfg.OutputPath)
		if err != nil {
			return result, fmt.Errorf("failed to resolve output path: %w", err)
		}
		if changed {
			logger.Warn("Output path adjusted to avoid overwrite", "original", cfg.OutputPath, "effective", safePath)
			effectiveOutputPath = safePath
		}
	}

	// Each unit's paragraphs are newline-joined by the engine; units are
	// joined back with blank lines to restore the book layout.
	book := strings.Join(flattenParagraphs(translated), "\n\n") + "\n"
	if err := files.AtomicWrite(effectiveOutputPath, []byte(book), 0600); err != nil {
		return result, fmt.Errorf("failed to save output file: %w", err)
	}

	result.Status = StatusSuccess
	result.OutputPath = effectiveOutputPath
	logger.Info("Saved translated book", "path", effectiveOutputPath, "session", result.SessionID)
	return result, nil
}

// flattenParagraphs splits each translated unit back into its paragraphs
// so the output keeps one blank line between every pair of paragraphs,
// whatever the block grouping was.
func flattenParagraphs(unitTexts []string) []string {
	var out []string
	for _, text := range unitTexts {
		out = append(out, strings.Split(text, "\n")...)
	}
	return out
}

func buildClient(ctx context.Context, cfg Config) (llm.Completer, func(), error) {
	if cfg.Client != nil {
		return cfg.Client, func() {}, nil
	}

	switch cfg.Provider {
	case "gemini":
		gc, err := gemini.NewClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return gc, func() {
			if err := gc.Close(); err != nil {
				logger.Warn("Failed to close Gemini client", "error", err)
			}
		}, nil
	default:
		return claude.NewClient(cfg.APIKey, cfg.Model), func() {}, nil
	}
}
