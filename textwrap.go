package panelexport

import "strings"

// Wrap greedily breaks text into lines no wider than maxWidth according to
// widthOf. Width measurement is supplied by the caller because it differs
// between a PDF drawing surface (font metrics) and a raster canvas
// (pixel-measured); the wrapping itself is surface-agnostic.
//
// Words are accumulated onto the current line while the candidate line still
// fits; the first overflowing word closes the line and opens the next one. A
// single word wider than maxWidth occupies a line of its own and is never
// split. Empty or whitespace-only input yields no lines.
func Wrap(text string, maxWidth float64, widthOf func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if widthOf(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
