package render

import (
	"strings"
	"testing"

	"github.com/TwiN/go-color"
	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

func TestEmoji(t *testing.T) {
	fb := solver.Evaluate(solver.MustWord("speed"), solver.MustWord("erase"))
	assert.Equal(t, "🟨⬜🟨🟨⬜", Emoji(fb))
	assert.Equal(t, "🟩🟩🟩🟩🟩", Emoji(solver.AllCorrect))
}

func TestColored(t *testing.T) {
	fb := solver.Feedback{solver.Correct, solver.Present, solver.Absent, solver.Absent, solver.Absent}
	out := Colored(solver.MustWord("crane"), fb)
	assert.True(t, strings.HasPrefix(out, color.Ize(color.Green, "C")+color.Ize(color.Yellow, "R")))
	assert.Contains(t, out, color.Ize(color.Gray, "E"))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", Bar(0, 10, 20))
	assert.Equal(t, strings.Repeat("█", 20), Bar(10, 10, 20))
	assert.Equal(t, strings.Repeat("█", 10), Bar(5, 10, 20))
	assert.Equal(t, "█", Bar(1, 1000, 20))
}
