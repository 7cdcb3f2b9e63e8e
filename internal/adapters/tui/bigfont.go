package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const glyphRows = 5

// glyphs holds the block font for the countdown. Digits are four cells
// wide so the clock does not shift as it counts down.
var glyphs = map[rune][glyphRows]string{
	'0': {"████", "█  █", "█  █", "█  █", "████"},
	'1': {"  █ ", " ██ ", "  █ ", "  █ ", " ███"},
	'2': {"████", "   █", "████", "█   ", "████"},
	'3': {"████", "   █", " ███", "   █", "████"},
	'4': {"█  █", "█  █", "████", "   █", "   █"},
	'5': {"████", "█   ", "████", "   █", "████"},
	'6': {"████", "█   ", "████", "█  █", "████"},
	'7': {"████", "   █", "  █ ", " █  ", " █  "},
	'8': {"████", "█  █", "████", "█  █", "████"},
	'9': {"████", "█  █", "████", "   █", "████"},
	':': {" ", "█", " ", "█", " "},
}

// minBigWidth is the narrowest terminal that gets the block font.
const minBigWidth = 40

// renderBigTime draws a MM:SS clock in the block font. The colon uses its
// own style so a paused clock can dim it. Narrow terminals get one line.
func renderBigTime(clock string, digits, colon lipgloss.Style, width int) string {
	if width < minBigWidth {
		return digits.Render(clock)
	}

	var rows [glyphRows]strings.Builder
	first := true
	for _, ch := range clock {
		glyph, ok := glyphs[ch]
		if !ok {
			continue
		}
		style := digits
		if ch == ':' {
			style = colon
		}
		for i := range rows {
			if !first {
				rows[i].WriteString(" ")
			}
			rows[i].WriteString(style.Render(glyph[i]))
		}
		first = false
	}

	lines := make([]string, glyphRows)
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}
