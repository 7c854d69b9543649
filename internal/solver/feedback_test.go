package solver

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corpus is a small word list with plenty of repeated letters.
var corpus = []string{
	"speed", "erase", "crane", "crate", "crone", "geese", "eerie", "levee",
	"abbey", "babes", "robot", "booby", "llama", "allay", "sissy", "assay",
	"error", "mamma", "tweet", "otter", "cigar", "rebut", "humph", "awake",
	"stool", "floss", "pride", "batty", "mimic", "spike", "added", "dodge",
}

func corpusPool(t *testing.T) Pool {
	t.Helper()
	words := make([]Word, 0, len(corpus))
	for _, s := range corpus {
		w, err := ParseWord(s)
		require.NoError(t, err)
		words = append(words, w)
	}
	return NewPool(words)
}

func fb(t *testing.T, code string) Feedback {
	t.Helper()
	f, err := ParseFeedback(code)
	require.NoError(t, err)
	return f
}

func TestParseWord(t *testing.T) {
	w, err := ParseWord("  SPEED ")
	require.NoError(t, err)
	assert.Equal(t, "speed", w.String())

	for _, in := range []string{"", "spee", "speedy", "sp3ed", "spéed", "sp ed"} {
		_, err := ParseWord(in)
		assert.ErrorIs(t, err, ErrInvalidWord, "input %q", in)
		var we *WordError
		assert.True(t, errors.As(err, &we))
	}
}

func TestEvaluateDuplicateLetters(t *testing.T) {
	got := Evaluate(MustWord("SPEED"), MustWord("ERASE"))
	assert.Equal(t, Feedback{Present, Absent, Present, Present, Absent}, got)
}

func TestEvaluateTable(t *testing.T) {
	cases := []struct {
		guess, target, want string
	}{
		{"crane", "crate", "gggxg"},
		{"geese", "eerie", "xgyxg"},
		{"eerie", "geese", "ygxxg"},
		{"llama", "allay", "ygyxy"},
		{"robot", "booby", "xgyyx"},
		{"mamma", "mimic", "gxgxx"},
		{"added", "dodge", "xygyx"},
		{"abbey", "babes", "yyggx"},
	}
	for _, c := range cases {
		t.Run(c.guess+"_"+c.target, func(t *testing.T) {
			got, err := EvaluateStrings(c.guess, c.target)
			require.NoError(t, err)
			assert.Equal(t, c.want, got.String())
		})
	}
}

func TestEvaluateSelfIsAllCorrect(t *testing.T) {
	for _, w := range corpusPool(t) {
		got := Evaluate(w, w)
		assert.True(t, got.Solved(), w.String())
	}
}

func TestEvaluateNeverOvercountsLetters(t *testing.T) {
	pool := corpusPool(t)
	for _, g := range pool {
		for _, target := range pool {
			f := Evaluate(g, target)
			var reported [256]int
			for i, m := range f {
				require.LessOrEqual(t, int(m), int(Correct))
				if m != Absent {
					reported[g[i]]++
				}
			}
			for i := 0; i < Size; i++ {
				c := g[i]
				limit := min(g.count(c), target.count(c))
				assert.LessOrEqual(t, reported[c], limit, "%s vs %s letter %c", g, target, c)
			}
		}
	}
}

func TestEvaluateStringsRejectsBadInput(t *testing.T) {
	_, err := EvaluateStrings("crane", "cran")
	assert.ErrorIs(t, err, ErrInvalidWord)
	_, err = EvaluateStrings("cr4ne", "crane")
	assert.ErrorIs(t, err, ErrInvalidWord)
}

func TestParseFeedback(t *testing.T) {
	assert.Equal(t, Feedback{Correct, Present, Absent, Absent, Absent}, fb(t, "GY-.x"))
	assert.Equal(t, Feedback{Correct, Present, Absent, Correct, Present}, fb(t, "2p0c1"))

	_, err := ParseFeedback("gyx")
	assert.Error(t, err)
	_, err = ParseFeedback("gyxzq")
	assert.Error(t, err)
}

func TestFeedbackIndex(t *testing.T) {
	assert.Equal(t, 0, Feedback{}.Index())
	assert.Equal(t, 242, AllCorrect.Index())
	assert.Equal(t, 1, Feedback{Absent, Absent, Absent, Absent, Present}.Index())
}

func TestRoundJSON(t *testing.T) {
	b, err := json.Marshal(Round{Guess: MustWord("crane"), Feedback: fb(t, "ggyxx")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"guess":"crane","marks":["correct","correct","present","absent","absent"]}`, string(b))

	var r Round
	require.NoError(t, json.Unmarshal(b, &r))
	assert.Equal(t, MustWord("crane"), r.Guess)
}
