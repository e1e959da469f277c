// Package format hard-wraps cleaned text into fixed-width lines and persists
// the result.
package format

import "strings"

// DefaultWidth is the line width used when none is configured.
const DefaultWidth = 50

// Lines splits text into consecutive chunks of width characters; the last
// chunk may be shorter. Widths are counted in runes, never splitting a
// multi-byte character. width <= 0 means DefaultWidth.
func Lines(text string, width int) []string {
	if width <= 0 {
		width = DefaultWidth
	}
	if text == "" {
		return nil
	}
	runes := []rune(text)
	lines := make([]string, 0, (len(runes)+width-1)/width)
	for i := 0; i < len(runes); i += width {
		end := i + width
		if end > len(runes) {
			end = len(runes)
		}
		lines = append(lines, string(runes[i:end]))
	}
	return lines
}

// Wrap joins Lines with newlines. There is no word-boundary awareness.
func Wrap(text string, width int) string {
	return strings.Join(Lines(text, width), "\n")
}
