package pipeline

import (
	"fmt"

	"github.com/oukeidos/litra/internal/llm"
	"github.com/oukeidos/litra/internal/profile"
)

// Config holds everything required for one book translation session.
type Config struct {
	// IO paths
	InputPath  string
	OutputPath string

	// API configuration
	APIKey   string
	Provider string // "claude" or "gemini"
	Model    string

	// Client overrides the provider-constructed completion client.
	// Used by tests; leave nil in production.
	Client llm.Completer

	// Translation parameters
	Profile        profile.Profile
	TargetLanguage string
	BlockSize      int

	// Flags
	SkipReview      bool
	ContextDisabled bool
	CacheDisabled   bool
	Overwrite       bool

	// OnProgress is called after each completed unit.
	OnProgress func(done, total int)

	// OnConfirmOverwrite is called when the output file exists. It should
	// return true if the file should be overwritten. If nil, the Overwrite
	// flag decides.
	OnConfirmOverwrite func(path string) bool
}

const (
	MinBlockSize = 1
	MaxBlockSize = 50

	DefaultBlockSize = 1
)

func ClampBlockSize(value int) (int, bool) {
	if value < MinBlockSize {
		return MinBlockSize, true
	}
	if value > MaxBlockSize {
		return MaxBlockSize, true
	}
	return value, false
}

// Normalize applies safe bounds to config values and returns any adjustments.
func (c Config) Normalize() (Config, []string) {
	var notes []string
	if c.BlockSize == 0 {
		c.BlockSize = DefaultBlockSize
	}
	if clamped, changed := ClampBlockSize(c.BlockSize); changed {
		notes = append(notes, fmt.Sprintf("block-size clamped from %d to %d (range %d-%d)",
			c.BlockSize, clamped, MinBlockSize, MaxBlockSize))
		c.BlockSize = clamped
	}
	return c, notes
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if c.TargetLanguage == "" {
		return fmt.Errorf("target language is required")
	}
	if c.BlockSize < MinBlockSize {
		return fmt.Errorf("block size must be at least %d, got %d", MinBlockSize, c.BlockSize)
	}
	if c.Client == nil {
		if c.APIKey == "" {
			return fmt.Errorf("API key is required")
		}
		if c.Provider != "claude" && c.Provider != "gemini" {
			return fmt.Errorf("unsupported provider: %s", c.Provider)
		}
	}
	return nil
}
