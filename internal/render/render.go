// apps/solver/internal/render/render.go
//
// Terminal presentation of feedback.
//   - Emoji:   ⬜ / 🟨 / 🟩 row, the format players share.
//   - Colored: the guess letters, uppercased, colored per mark.
//   - Bar:     a fixed-width bar for histogram output.

package render

import (
	"strings"

	"github.com/TwiN/go-color"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

const (
	absentTile  = "\u2B1C"     // white square
	presentTile = "\U0001F7E8" // yellow square
	correctTile = "\U0001F7E9" // green square
)

// Emoji renders fb as a row of colored squares.
func Emoji(fb solver.Feedback) string {
	var b strings.Builder
	for _, m := range fb {
		switch m {
		case solver.Correct:
			b.WriteString(correctTile)
		case solver.Present:
			b.WriteString(presentTile)
		default:
			b.WriteString(absentTile)
		}
	}
	return b.String()
}

// Colored renders the letters of guess in ANSI colors matching fb.
func Colored(guess solver.Word, fb solver.Feedback) string {
	var b strings.Builder
	for i, m := range fb {
		letter := strings.ToUpper(string(guess[i]))
		switch m {
		case solver.Correct:
			b.WriteString(color.Ize(color.Green, letter))
		case solver.Present:
			b.WriteString(color.Ize(color.Yellow, letter))
		default:
			b.WriteString(color.Ize(color.Gray, letter))
		}
	}
	return b.String()
}

// Bar draws n scaled against max into at most width cells.
// Any non-zero n gets at least one cell.
func Bar(n, max, width int) string {
	if n <= 0 || max <= 0 || width <= 0 {
		return ""
	}
	cells := n * width / max
	if cells == 0 {
		cells = 1
	}
	if cells > width {
		cells = width
	}
	return strings.Repeat("█", cells)
}
