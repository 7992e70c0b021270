// Package profile loads genre profiles: JSON bundles of style instructions,
// protected nouns, seed glossary, per-pass temperatures and refresh
// intervals. A profile overrides defaults field by field; absent fields
// keep their default.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultMinReviewChars   = 300
	DefaultContextInterval  = 15
	DefaultGlossaryInterval = 20

	DefaultTempTranslate = 0.3
	DefaultTempReview    = 0.4
	DefaultTempRefine    = 0.2
)

// Entries with these prefixes are template placeholders left in shipped
// profile files, not real nouns.
var junkNounPrefixes = []string{"Names,", "Add ", "DELETE", "Character ", "One entry", "Delete "}

const maxNounLen = 100

// Profile is the post-load configuration bundle. Immutable after Load.
type Profile struct {
	Name              string
	Description       string
	StyleInstructions string
	ProtectedNouns    []string
	SourceLanguage    string
	GlossarySeed      map[string]string

	TempTranslate float64
	TempReview    float64
	TempRefine    float64

	MinReviewChars         int
	ContextUpdateInterval  int
	GlossaryUpdateInterval int
}

// fileProfile mirrors the on-disk JSON shape. Pointer fields distinguish
// "absent" from zero so missing fields retain defaults.
type fileProfile struct {
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	StyleInstructions *string           `json:"style_instructions"`
	ProtectedNouns    []string          `json:"protected_nouns"`
	SourceLanguage    *string           `json:"source_language"`
	GlossarySeed      map[string]string `json:"glossary_seed"`
	Temperature       *temperatures     `json:"temperature"`
	MinReviewChars    *int              `json:"min_review_chars"`
	ContextInterval   *int              `json:"context_update_interval"`
	GlossaryInterval  *int              `json:"glossary_update_interval"`
}

type temperatures struct {
	Translate *float64 `json:"translate"`
	Review    *float64 `json:"review"`
	Refine    *float64 `json:"refine"`
}

// Default returns the built-in profile used when no file is given.
func Default() Profile {
	return Profile{
		Name: "Default",
		StyleInstructions: "- Produce natural, fluent literary prose in the target language\n" +
			"- Preserve the author's voice, tone, and style\n" +
			"- Translate idioms by meaning, not word-for-word\n" +
			"- Maintain sentence rhythm and pacing where possible\n" +
			"- Use natural target-language sentence structures",
		SourceLanguage:         "English",
		GlossarySeed:           map[string]string{},
		TempTranslate:          DefaultTempTranslate,
		TempReview:             DefaultTempReview,
		TempRefine:             DefaultTempRefine,
		MinReviewChars:         DefaultMinReviewChars,
		ContextUpdateInterval:  DefaultContextInterval,
		GlossaryUpdateInterval: DefaultGlossaryInterval,
	}
}

// Load reads a profile file and applies it over the defaults. A missing
// file is an immediate error: an explicitly requested profile must never
// silently fall back to defaults.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, fmt.Errorf("translation profile not found: %s", path)
		}
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	var raw fileProfile
	if err := json.Unmarshal(data, &raw); err != nil {
		return Profile{}, fmt.Errorf("invalid profile JSON in %s: %w", path, err)
	}

	p := Default()
	p.Name = raw.Name
	if p.Name == "" {
		p.Name = filepath.Base(path)
	}
	p.Description = raw.Description
	if raw.StyleInstructions != nil {
		p.StyleInstructions = *raw.StyleInstructions
	}
	p.ProtectedNouns = FilterProtectedNouns(raw.ProtectedNouns)
	if raw.SourceLanguage != nil {
		p.SourceLanguage = *raw.SourceLanguage
	}
	for k, v := range raw.GlossarySeed {
		if k == "_comment" {
			continue
		}
		p.GlossarySeed[k] = v
	}
	if raw.Temperature != nil {
		if raw.Temperature.Translate != nil {
			p.TempTranslate = *raw.Temperature.Translate
		}
		if raw.Temperature.Review != nil {
			p.TempReview = *raw.Temperature.Review
		}
		if raw.Temperature.Refine != nil {
			p.TempRefine = *raw.Temperature.Refine
		}
	}
	if raw.MinReviewChars != nil {
		p.MinReviewChars = *raw.MinReviewChars
	}
	if raw.ContextInterval != nil {
		p.ContextUpdateInterval = *raw.ContextInterval
	}
	if raw.GlossaryInterval != nil {
		p.GlossaryUpdateInterval = *raw.GlossaryInterval
	}

	return p, nil
}

// FilterProtectedNouns drops placeholder entries and oversized lines.
func FilterProtectedNouns(nouns []string) []string {
	var out []string
	for _, n := range nouns {
		if len(n) >= maxNounLen {
			continue
		}
		junk := false
		for _, prefix := range junkNounPrefixes {
			if strings.HasPrefix(n, prefix) {
				junk = true
				break
			}
		}
		if !junk {
			out = append(out, n)
		}
	}
	return out
}

// ResolveSourceLanguage maps language codes to full names for better
// prompts. Unknown codes pass through unchanged; empty or "auto" falls
// back to English.
func ResolveSourceLanguage(code string) string {
	mapping := map[string]string{
		"en": "English", "de": "German", "fr": "French", "es": "Spanish",
		"it": "Italian", "pt": "Portuguese", "nl": "Dutch", "ru": "Russian",
		"ja": "Japanese", "zh": "Chinese", "zh-hans": "Simplified Chinese",
		"zh-hant": "Traditional Chinese", "ko": "Korean", "pl": "Polish",
		"sv": "Swedish", "da": "Danish", "no": "Norwegian", "fi": "Finnish",
		"cs": "Czech", "hu": "Hungarian", "ro": "Romanian", "tr": "Turkish",
		"ar": "Arabic", "he": "Hebrew", "hi": "Hindi", "th": "Thai",
		"vi": "Vietnamese", "uk": "Ukrainian", "el": "Greek",
	}
	if code == "" || code == "auto" {
		return "English"
	}
	if name, ok := mapping[strings.ToLower(code)]; ok {
		return name
	}
	return code
}
