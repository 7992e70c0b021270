package engine

import "testing"

func TestUnitFromText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		batch      bool
		paragraphs int
	}{
		{"single paragraph", "One sentence.", false, 1},
		{"two paragraphs", "One.\nTwo.", true, 2},
		{"trailing newline only", "One.\n", false, 1},
		{"leading whitespace", "  \nOne.", false, 1},
		{"three paragraphs", "a\nb\nc", true, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := UnitFromText(tt.text)
			if u.IsBatch() != tt.batch {
				t.Errorf("IsBatch() = %v, want %v", u.IsBatch(), tt.batch)
			}
			if got := len(u.Paragraphs()); got != tt.paragraphs {
				t.Errorf("paragraphs = %d, want %d", got, tt.paragraphs)
			}
		})
	}
}

func TestUnitChars(t *testing.T) {
	if got := Single("héllo").Chars(); got != 5 {
		t.Errorf("Chars() = %d, want 5 graphemes", got)
	}
	// Joining newlines count toward the batch length.
	if got := Batch([]string{"ab", "cd"}).Chars(); got != 5 {
		t.Errorf("batch Chars() = %d, want 5", got)
	}
	if got := Single("👨‍👩‍👧").Chars(); got != 1 {
		t.Errorf("Chars() = %d, want 1 for a joined emoji", got)
	}
}

func TestReassembleExact(t *testing.T) {
	original := []string{"One.", "Two.", "Three."}
	out, mismatch := Reassemble(original, "Eins.\n|||PARA|||\nZwei.\n|||PARA|||\nDrei.")
	if mismatch != nil {
		t.Fatalf("mismatch = %+v, want nil", mismatch)
	}
	if out != "Eins.\nZwei.\nDrei." {
		t.Errorf("out = %q", out)
	}
}

func TestReassembleFlattensInnerNewlines(t *testing.T) {
	out, mismatch := Reassemble([]string{"One."}, "Eins\nund zwei.")
	if mismatch != nil {
		t.Fatalf("mismatch = %+v, want nil", mismatch)
	}
	if out != "Eins und zwei." {
		t.Errorf("out = %q, inner newlines must collapse to spaces", out)
	}
}
