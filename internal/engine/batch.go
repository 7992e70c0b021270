package engine

import (
	"strings"

	"github.com/oukeidos/litra/internal/prompt"
)

// MismatchInfo reports a batch whose model output had the wrong segment
// count. Padded > 0 means that many paragraphs were filled with the
// untranslated original to keep the book structurally aligned.
type MismatchInfo struct {
	Requested int
	Returned  int
	Padded    int
}

func joinDelimited(paragraphs []string) string {
	return strings.Join(paragraphs, "\n"+prompt.Delimiter+"\n")
}

// Reassemble maps delimiter-separated model output back onto the original
// paragraph positions. The output always has exactly len(original)
// newline-joined segments:
//
//   - equal count: one-to-one join
//   - too many segments: everything past position n-1 is merged into the
//     last paragraph (the model split a paragraph)
//   - too few segments: the tail is padded with the corresponding original
//     paragraphs, so structure survives at the cost of untranslated text
//
// A non-nil MismatchInfo flags the merge and pad paths to the caller.
func Reassemble(original []string, output string) (string, *MismatchInfo) {
	n := len(original)

	var parts []string
	for _, part := range strings.Split(output, prompt.Delimiter) {
		// One segment must become one output line.
		part = strings.TrimSpace(strings.ReplaceAll(part, "\n", " "))
		if part != "" {
			parts = append(parts, part)
		}
	}

	switch {
	case len(parts) == n:
		return strings.Join(parts, "\n"), nil

	case len(parts) > n:
		merged := append(parts[:n-1:n-1], strings.Join(parts[n-1:], " "))
		return strings.Join(merged, "\n"),
			&MismatchInfo{Requested: n, Returned: len(parts)}

	default:
		padded := make([]string, 0, n)
		padded = append(padded, parts...)
		padded = append(padded, original[len(parts):n]...)
		return strings.Join(padded, "\n"),
			&MismatchInfo{Requested: n, Returned: len(parts), Padded: n - len(parts)}
	}
}
