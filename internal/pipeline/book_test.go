package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBook(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "blank line separation",
			text: "First.\n\nSecond.\n",
			want: []string{"First.", "Second."},
		},
		{
			name: "wrapped lines collapse",
			text: "A long sentence\nwrapped over lines.\n\nNext.",
			want: []string{"A long sentence wrapped over lines.", "Next."},
		},
		{
			name: "crlf normalized",
			text: "One.\r\n\r\nTwo.\r\n",
			want: []string{"One.", "Two."},
		},
		{
			name: "extra blank lines ignored",
			text: "\n\nOne.\n\n\n\nTwo.\n\n",
			want: []string{"One.", "Two."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "book.txt")
			if err := os.WriteFile(path, []byte(tt.text), 0600); err != nil {
				t.Fatal(err)
			}
			got, err := LoadBook(path)
			if err != nil {
				t.Fatalf("LoadBook: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("paragraphs = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("paragraph[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadBookErrors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, []byte("  \n\n \n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBook(empty); err == nil {
		t.Error("expected error for whitespace-only file")
	}

	binary := filepath.Join(dir, "binary.txt")
	if err := os.WriteFile(binary, []byte{0xff, 0xfe, 0x00, 0x41}, 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBook(binary); err == nil {
		t.Error("expected error for non-UTF-8 file")
	}

	if _, err := LoadBook(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBlocks(t *testing.T) {
	paragraphs := []string{"a", "b", "c", "d", "e"}

	units := Blocks(paragraphs, 2)
	if len(units) != 3 {
		t.Fatalf("units = %d, want 3", len(units))
	}
	if !units[0].IsBatch() || !units[1].IsBatch() {
		t.Error("full blocks should be batches")
	}
	if units[2].IsBatch() {
		t.Error("trailing single paragraph should not be a batch")
	}
	if units[2].Text() != "e" {
		t.Errorf("last unit = %q", units[2].Text())
	}

	singles := Blocks(paragraphs, 1)
	if len(singles) != 5 {
		t.Fatalf("units = %d, want 5", len(singles))
	}
	for i, u := range singles {
		if u.IsBatch() {
			t.Errorf("unit %d should be single", i)
		}
	}
}
