package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/oukeidos/litra/internal/auth"
	"github.com/oukeidos/litra/internal/logger"
	"github.com/oukeidos/litra/internal/pipeline"
)

var (
	isTerminal   = term.IsTerminal
	getKey       = auth.GetKey
	getEnvKey    = auth.GetEnvKey
	getStatus    = auth.GetStatus
	promptForKey = auth.PromptForAPIKey
)

func providerLabel(provider string) string {
	if provider == "gemini" {
		return "Gemini"
	}
	return "Claude"
}

func providerEnvVar(provider string) string {
	if provider == "gemini" {
		return "GEMINI_API_KEY"
	}
	return "ANTHROPIC_API_KEY"
}

// resolveAPIKey handles the logic for finding the API key.
func resolveAPIKey(provider string, allowEnv, envOnly bool) (string, string, error) {
	if envOnly {
		if key, ok := getEnvKey(provider); ok {
			return key, "Environment Variable", nil
		}
		return "", "", fmt.Errorf("env-only set but %s is not set", providerEnvVar(provider))
	}

	if key, source := getKey(provider, false); key != "" {
		return key, source, nil
	}

	if allowEnv {
		if key, ok := getEnvKey(provider); ok {
			return key, "Environment Variable", nil
		}
	}

	if isTerminal(int(os.Stdin.Fd())) {
		key, err := promptForKey(fmt.Sprintf("%s API Key (press Enter to skip): ", providerLabel(provider)))
		if err != nil {
			return "", "", fmt.Errorf("error reading API key: %w", err)
		}
		if strings.TrimSpace(key) != "" {
			return strings.TrimSpace(key), "Terminal Prompt", nil
		}
		if allowEnv {
			return "", "", fmt.Errorf("API key is required; not found in keychain or environment")
		}
		return "", "", fmt.Errorf("API key is required; not found in keychain (environment disabled by default; use --allow-env)")
	}

	return "", "", fmt.Errorf("no API key available (non-interactive shell); set keychain or use --allow-env")
}

func printRunSummary(result pipeline.Result, duration time.Duration) {
	s := result.Stats
	fmt.Println("\n--- Translation Stats ---")
	fmt.Printf("Time: %s\n", duration.Round(time.Second))
	fmt.Printf("Model: %s\n", s.Model)
	fmt.Printf("Chunks: %d (single-pass: %d, reviewed: %d)\n", s.Chunks, s.Pass1Only, s.Full3Pass)
	if s.Full3Pass > 0 {
		fmt.Printf("Reviews: %d clean, %d refined\n", s.ReviewsOK, s.ReviewsFixed)
	}
	fmt.Printf("Glossary: %d terms\n", s.GlossaryTerms)
	fmt.Printf("Tokens: In=%d, Out=%d\n", s.Usage.InputTokens, s.Usage.OutputTokens)
	if s.Usage.CacheReadTokens > 0 {
		fmt.Printf("Cache: %d read, %d written (saved $%.4f)\n",
			s.Usage.CacheReadTokens, s.Usage.CacheCreationTokens, s.CostNoCache-s.Cost)
	}
	fmt.Printf("Estimated Cost: $%.4f\n", s.Cost)
	if len(result.Warnings) > 0 {
		fmt.Printf("Warnings: %d (see log for details)\n", len(result.Warnings))
	}
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("Cancellation requested")
		cancel()
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
