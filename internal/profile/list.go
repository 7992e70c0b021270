package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Summary is the one-line view of a profile file for listings.
type Summary struct {
	File           string
	Name           string
	Description    string
	SourceLanguage string
	ProtectedNouns int
	GlossarySeed   int
	MinReviewChars int
	Err            error
}

// List scans a directory for profile JSON files and summarizes each.
// Files starting with "_" are treated as templates and skipped.
// A broken profile produces a Summary with Err set rather than failing
// the whole listing.
func List(dir string) ([]Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("profiles directory not found: %s", dir)
	}

	var summaries []Summary
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		summaries = append(summaries, summarize(filepath.Join(dir, name)))
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].File < summaries[j].File })
	return summaries, nil
}

func summarize(path string) Summary {
	s := Summary{File: filepath.Base(path)}

	data, err := os.ReadFile(path)
	if err != nil {
		s.Err = err
		return s
	}
	var raw fileProfile
	if err := json.Unmarshal(data, &raw); err != nil {
		s.Err = err
		return s
	}

	s.Name = raw.Name
	if s.Name == "" {
		s.Name = s.File
	}
	s.Description = raw.Description
	s.SourceLanguage = "English"
	if raw.SourceLanguage != nil {
		s.SourceLanguage = *raw.SourceLanguage
	}
	s.ProtectedNouns = len(FilterProtectedNouns(raw.ProtectedNouns))
	for k := range raw.GlossarySeed {
		if k != "_comment" {
			s.GlossarySeed++
		}
	}
	s.MinReviewChars = DefaultMinReviewChars
	if raw.MinReviewChars != nil {
		s.MinReviewChars = *raw.MinReviewChars
	}
	return s
}
