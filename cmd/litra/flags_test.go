package main

import (
	"strings"
	"testing"
)

func TestOverwriteFlag_AcceptsYesAndShorthand(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{name: "root_shorthand", args: []string{"-y"}},
		{name: "root_long", args: []string{"--yes"}},
		{name: "translate_shorthand", args: []string{"translate", "-y"}},
		{name: "translate_long", args: []string{"translate", "--yes"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := executeCommand(t, tc.args...)
			if err == nil {
				t.Fatalf("expected command error from missing required args, got nil")
			}
			if strings.Contains(out, "unknown shorthand flag: 'y'") || strings.Contains(out, "unknown flag: --yes") {
				t.Fatalf("expected --yes/-y to be parsed, got output: %s", out)
			}
		})
	}
}

func TestTranslate_RejectsUnsupportedExtension(t *testing.T) {
	out, err := executeCommand(t, "translate", "book.pdf", "out.txt")
	if err == nil || !strings.Contains(err.Error(), "unsupported input extension") {
		t.Fatalf("expected extension error, got err=%v out=%s", err, out)
	}

	out, err = executeCommand(t, "translate", "book.txt", "out.epub")
	if err == nil || !strings.Contains(err.Error(), "unsupported output extension") {
		t.Fatalf("expected extension error, got err=%v out=%s", err, out)
	}
}

func TestRoot_BareArgsRequireTwoFiles(t *testing.T) {
	_, err := executeCommand(t, "book.txt")
	if err == nil || !strings.Contains(err.Error(), "input and output files are required") {
		t.Fatalf("expected missing-files error, got %v", err)
	}
}
