package panelexport

import (
	"strings"
	"testing"
)

// runeWidth measures one unit per rune, making expected breaks easy to
// reason about in tests.
func runeWidth(s string) float64 {
	return float64(len([]rune(s)))
}

func TestWrapEmpty(t *testing.T) {
	if lines := Wrap("", 10, runeWidth); len(lines) != 0 {
		t.Errorf("Wrap(\"\") = %v, want empty", lines)
	}
	if lines := Wrap("   \t  ", 10, runeWidth); len(lines) != 0 {
		t.Errorf("Wrap(whitespace) = %v, want empty", lines)
	}
}

func TestWrapSingleLine(t *testing.T) {
	lines := Wrap("the quick fox", 20, runeWidth)
	if len(lines) != 1 || lines[0] != "the quick fox" {
		t.Errorf("lines = %v, want one unwrapped line", lines)
	}
}

func TestWrapBreaksOnOverflow(t *testing.T) {
	lines := Wrap("aaaa bbbb cccc dddd", 9, runeWidth)
	want := []string{"aaaa bbbb", "cccc dddd"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %v, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapOversizeWordStandsAlone(t *testing.T) {
	lines := Wrap("hi incomprehensibilities yo", 10, runeWidth)
	want := []string{"hi", "incomprehensibilities", "yo"}
	if len(lines) != 3 {
		t.Fatalf("got %d lines %v, want 3", len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapPreservesWordSequence(t *testing.T) {
	texts := []string{
		"a b c d e f g",
		"one tiny caption",
		"several words that will certainly wrap across many narrow lines",
	}
	for _, text := range texts {
		for _, width := range []float64{1, 5, 12, 100} {
			lines := Wrap(text, width, runeWidth)
			got := strings.Join(lines, " ")
			want := strings.Join(strings.Fields(text), " ")
			if got != want {
				t.Errorf("Wrap(%q, %g) rejoined = %q, want %q", text, width, got, want)
			}
		}
	}
}
