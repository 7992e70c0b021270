package pipeline

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/oukeidos/litra/internal/engine"
)

// LoadBook reads a plain-text book and splits it into paragraphs at blank
// lines. Line wrapping inside a paragraph is collapsed to spaces so each
// paragraph travels as one unbroken string.
func LoadBook(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("input file is not valid UTF-8: %s", path)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	var paragraphs []string
	for _, block := range strings.Split(text, "\n\n") {
		var lines []string
		for _, line := range strings.Split(block, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, " "))
		}
	}
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("input file contains no text: %s", path)
	}
	return paragraphs, nil
}

// Blocks groups consecutive paragraphs into translation units of up to
// blockSize paragraphs each. Block size 1 yields single-paragraph units.
func Blocks(paragraphs []string, blockSize int) []engine.Unit {
	if blockSize < 1 {
		blockSize = 1
	}

	units := make([]engine.Unit, 0, (len(paragraphs)+blockSize-1)/blockSize)
	for start := 0; start < len(paragraphs); start += blockSize {
		end := min(start+blockSize, len(paragraphs))
		if end-start == 1 {
			units = append(units, engine.Single(paragraphs[start]))
		} else {
			units = append(units, engine.Batch(paragraphs[start:end]))
		}
	}
	return units
}
