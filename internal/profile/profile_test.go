package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write profile: %v", err)
	}
	return path
}

func TestLoadMissingFileIsFatal(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing profile")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "fantasy.json", `{
		"name": "Epic Fantasy",
		"style_instructions": "- Archaic register",
		"protected_nouns": ["Mordor", "Add a name here", "Gandalf"],
		"source_language": "English",
		"glossary_seed": {"_comment": "seed", "Shire": "Auenland"},
		"temperature": {"translate": 0.5},
		"min_review_chars": 150,
		"glossary_update_interval": 10
	}`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.Name != "Epic Fantasy" {
		t.Errorf("unexpected name: %q", p.Name)
	}
	if p.StyleInstructions != "- Archaic register" {
		t.Errorf("style not overridden: %q", p.StyleInstructions)
	}
	// "Add a name here" is a template placeholder and must be filtered.
	if len(p.ProtectedNouns) != 2 || p.ProtectedNouns[0] != "Mordor" || p.ProtectedNouns[1] != "Gandalf" {
		t.Errorf("unexpected protected nouns: %v", p.ProtectedNouns)
	}
	if _, ok := p.GlossarySeed["_comment"]; ok {
		t.Error("_comment must not enter the glossary seed")
	}
	if p.GlossarySeed["Shire"] != "Auenland" {
		t.Errorf("seed entry missing: %v", p.GlossarySeed)
	}
	if p.TempTranslate != 0.5 {
		t.Errorf("translate temperature not overridden: %v", p.TempTranslate)
	}
	// Absent temperature fields keep defaults.
	if p.TempReview != DefaultTempReview || p.TempRefine != DefaultTempRefine {
		t.Errorf("absent temperatures must keep defaults: %v / %v", p.TempReview, p.TempRefine)
	}
	if p.MinReviewChars != 150 {
		t.Errorf("min_review_chars not overridden: %d", p.MinReviewChars)
	}
	if p.ContextUpdateInterval != DefaultContextInterval {
		t.Errorf("absent context interval must keep default, got %d", p.ContextUpdateInterval)
	}
	if p.GlossaryUpdateInterval != 10 {
		t.Errorf("glossary interval not overridden: %d", p.GlossaryUpdateInterval)
	}
}

func TestLoadZeroMinReviewChars(t *testing.T) {
	// 0 disables the short-unit shortcut and must not fall back to defaults.
	path := writeProfile(t, t.TempDir(), "eager.json", `{"min_review_chars": 0}`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.MinReviewChars != 0 {
		t.Errorf("expected 0, got %d", p.MinReviewChars)
	}
}

func TestLoadNameDefaultsToFilename(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "unnamed.json", `{}`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Name != "unnamed.json" {
		t.Errorf("unexpected fallback name: %q", p.Name)
	}
}

func TestFilterProtectedNouns(t *testing.T) {
	nouns := []string{
		"Mordor",
		"Add a name here",
		"Names, comma separated",
		"DELETE THIS LINE",
		"Character names go here",
		"One entry per line",
		"Delete this",
		string(make([]byte, 120)),
	}
	got := FilterProtectedNouns(nouns)
	if len(got) != 1 || got[0] != "Mordor" {
		t.Errorf("expected only Mordor to survive, got %v", got)
	}
}

func TestResolveSourceLanguage(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"en", "English"},
		{"DE", "German"},
		{"zh-hant", "Traditional Chinese"},
		{"auto", "English"},
		{"", "English"},
		{"Klingon", "Klingon"},
	}
	for _, tt := range tests {
		if got := ResolveSourceLanguage(tt.code); got != tt.want {
			t.Errorf("ResolveSourceLanguage(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestListSkipsTemplatesAndTolerantOfBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "a.json", `{"name": "A", "glossary_seed": {"_comment": "x", "k": "v"}}`)
	writeProfile(t, dir, "_template.json", `{"name": "Template"}`)
	writeProfile(t, dir, "broken.json", `{not json`)
	writeProfile(t, dir, "notes.txt", `irrelevant`)

	summaries, err := List(dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Name != "A" || summaries[0].GlossarySeed != 1 {
		t.Errorf("unexpected summary: %+v", summaries[0])
	}
	if summaries[1].File != "broken.json" || summaries[1].Err == nil {
		t.Errorf("expected broken.json with error, got %+v", summaries[1])
	}
}

func TestListMissingDir(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
