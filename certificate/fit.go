package certificate

import (
	"math"
	"strings"
)

const (
	// minFontScale bounds how far a block is shrunk before it wraps.
	minFontScale = 0.5
	// maxBlockLines caps the lines of a wrapped block.
	maxBlockLines = 3
	ellipsis      = "..."
)

// measureFunc returns the drawn width of text at the given font size.
type measureFunc func(text string, size float64) float64

// fitText returns the font size and lines that keep text within width.
// Text is first shrunk, down to minFontScale of size. Text that still
// overflows is wrapped on word boundaries at the smallest size, and
// anything past maxBlockLines is cut with an ellipsis.
func fitText(measure measureFunc, text string, size, width float64) (float64, []string) {
	natural := measure(text, size)
	if natural <= width {
		return size, []string{text}
	}
	floor := size * minFontScale
	if fitted := math.Floor(size*width/natural*10) / 10; fitted >= floor {
		return fitted, []string{text}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		for _, part := range breakWord(measure, word, floor, width) {
			candidate := part
			if current != "" {
				candidate = current + " " + part
			}
			if current == "" || measure(candidate, floor) <= width {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = part
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) > maxBlockLines {
		lines = lines[:maxBlockLines]
		lines[maxBlockLines-1] = truncate(measure, lines[maxBlockLines-1], floor, width)
	}
	return floor, lines
}

// breakWord splits a single word that is wider than width into pieces
// that each fit.
func breakWord(measure measureFunc, word string, size, width float64) []string {
	if measure(word, size) <= width {
		return []string{word}
	}
	var parts []string
	runes := []rune(word)
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i-start > 1 && measure(string(runes[start:i]), size) > width {
			parts = append(parts, string(runes[start:i-1]))
			start = i - 1
		}
	}
	return append(parts, string(runes[start:]))
}

func truncate(measure measureFunc, text string, size, width float64) string {
	runes := []rune(text)
	for len(runes) > 0 && measure(string(runes)+ellipsis, size) > width {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimRight(string(runes), " ") + ellipsis
}

// fit expands layout lines so each one is drawn within width. Wrapped
// blocks keep their spacing after the last line only.
func fit(measure func(ln line) measureFunc, lines []line, width float64) []line {
	out := make([]line, 0, len(lines))
	for _, ln := range lines {
		size, parts := fitText(measure(ln), ln.Text, ln.Style.FontSize, width)
		for i, part := range parts {
			style := ln.Style
			style.FontSize = size
			if i < len(parts)-1 {
				style.SpaceAfter = 0
			}
			out = append(out, line{Text: part, Style: style})
		}
	}
	return out
}
