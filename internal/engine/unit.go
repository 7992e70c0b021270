package engine

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Unit is one translation request: a single paragraph or a batch of
// paragraphs. The distinction is decided once, here, and never re-inferred
// from the text downstream.
type Unit struct {
	paragraphs []string
}

// Single wraps one paragraph.
func Single(text string) Unit {
	return Unit{paragraphs: []string{text}}
}

// Batch wraps multiple paragraphs translated in one call.
func Batch(paragraphs []string) Unit {
	return Unit{paragraphs: paragraphs}
}

// UnitFromText classifies raw caller input: text with internal newlines is
// a batch of newline-joined paragraphs, anything else a single paragraph.
func UnitFromText(text string) Unit {
	if strings.Contains(strings.TrimSpace(text), "\n") {
		return Batch(strings.Split(text, "\n"))
	}
	return Single(text)
}

// IsBatch reports whether the unit holds more than one paragraph.
func (u Unit) IsBatch() bool {
	return len(u.paragraphs) > 1
}

// Paragraphs returns the underlying paragraphs.
func (u Unit) Paragraphs() []string {
	return u.paragraphs
}

// Text returns the unit as submitted: paragraphs joined by newline.
func (u Unit) Text() string {
	return strings.Join(u.paragraphs, "\n")
}

// Chars counts grapheme clusters, so CJK text and combining marks are
// measured the way a reader would count them.
func (u Unit) Chars() int {
	total := 0
	for i, p := range u.paragraphs {
		if i > 0 {
			total++ // the joining newline
		}
		total += uniseg.GraphemeClusterCount(p)
	}
	return total
}
