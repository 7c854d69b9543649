// apps/solver/internal/solver/types.go
//
// Core value types for the solver.
// Defines:
//   - Word: a validated 5-letter word, stored as a comparable array.
//   - Mark / Feedback: per-letter result of a guess and the 5-mark signature.
//   - Pool: ordered, duplicate-free set of candidate answers.
//   - Entry / Table: entropy scores, ranked best first.
//   - Round / History: what was guessed and what came back, per round.

package solver

import (
	"fmt"
	"strings"
)

// Size is the fixed word length.
const Size = 5

// FailAfter is the number of guesses a human player gets. The solve loop
// never stops on its own; callers use this to label a result "X/6".
const FailAfter = 6

// Word is a lowercase a–z word of exactly Size letters.
// Build one with ParseWord or MustWord; the zero value is not a valid word.
type Word [Size]byte

// ParseWord trims and lowercases s and checks it is exactly Size letters a–z.
func ParseWord(s string) (Word, error) {
	var w Word
	in := s
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != Size {
		return w, &WordError{Input: in, Reason: fmt.Sprintf("must be %d letters", Size)}
	}
	for i := 0; i < Size; i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return w, &WordError{Input: in, Reason: "letters a-z only"}
		}
		w[i] = c
	}
	return w, nil
}

// MustWord is ParseWord for literals; it panics on invalid input.
func MustWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

// Valid reports whether every letter is in a–z.
func (w Word) Valid() bool {
	for _, c := range w {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

func (w Word) String() string { return string(w[:]) }

// MarshalText encodes the word as its lowercase letters.
func (w Word) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText parses and validates a word.
func (w *Word) UnmarshalText(b []byte) error {
	v, err := ParseWord(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// count returns how many times c occurs in w.
func (w Word) count(c byte) int {
	n := 0
	for _, x := range w {
		if x == c {
			n++
		}
	}
	return n
}

// Mark is the evaluation result for a single letter in a guess.
type Mark uint8

const (
	Absent  Mark = iota // letter not in the target (beyond what was already matched)
	Present             // letter in the target, different position
	Correct             // letter in the target at this position
)

var markNames = [...]string{Absent: "absent", Present: "present", Correct: "correct"}

func (m Mark) String() string {
	if int(m) < len(markNames) {
		return markNames[m]
	}
	return fmt.Sprintf("mark(%d)", uint8(m))
}

// MarshalText encodes the mark as "absent", "present" or "correct".
func (m Mark) MarshalText() ([]byte, error) {
	if int(m) >= len(markNames) {
		return nil, fmt.Errorf("invalid mark %d", uint8(m))
	}
	return []byte(markNames[m]), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (m *Mark) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "absent", "miss":
		*m = Absent
	case "present":
		*m = Present
	case "correct", "hit":
		*m = Correct
	default:
		return fmt.Errorf("invalid mark %q", string(b))
	}
	return nil
}

// Feedback is the per-position signature of a guess against a target.
// It is a value type and can be used directly as a map key.
type Feedback [Size]Mark

// AllCorrect is the signature of a solved round.
var AllCorrect = Feedback{Correct, Correct, Correct, Correct, Correct}

// Solved reports whether every position is Correct.
func (f Feedback) Solved() bool { return f == AllCorrect }

// Index packs the signature into a base-3 number in [0, 243).
func (f Feedback) Index() int {
	n := 0
	for _, m := range f {
		n = n*3 + int(m)
	}
	return n
}

// String renders the signature as a compact code: g (correct), y (present), x (absent).
func (f Feedback) String() string {
	var b [Size]byte
	for i, m := range f {
		switch m {
		case Correct:
			b[i] = 'g'
		case Present:
			b[i] = 'y'
		default:
			b[i] = 'x'
		}
	}
	return string(b[:])
}

// ParseFeedback reads a 5-character code, one character per position:
//
//	g, c, 2  correct
//	y, p, 1  present
//	x, b, 0, -, .  absent
//
// Case is ignored.
func ParseFeedback(s string) (Feedback, error) {
	var f Feedback
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != Size {
		return f, fmt.Errorf("feedback %q: must be %d marks", s, Size)
	}
	for i := 0; i < Size; i++ {
		switch s[i] {
		case 'g', 'c', '2':
			f[i] = Correct
		case 'y', 'p', '1':
			f[i] = Present
		case 'x', 'b', '0', '-', '.':
			f[i] = Absent
		default:
			return f, fmt.Errorf("feedback %q: unknown mark %q at position %d", s, s[i], i+1)
		}
	}
	return f, nil
}

// Pool is an ordered collection of unique candidate words.
// Order only matters for tie-breaking between equal scores.
type Pool []Word

// NewPool copies words into a pool, dropping repeats but keeping first-seen order.
func NewPool(words []Word) Pool {
	seen := make(map[Word]struct{}, len(words))
	p := make(Pool, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		p = append(p, w)
	}
	return p
}

// Clone returns an independent copy of the pool.
func (p Pool) Clone() Pool {
	if p == nil {
		return nil
	}
	out := make(Pool, len(p))
	copy(out, p)
	return out
}

// Contains reports whether w is a member of the pool.
func (p Pool) Contains(w Word) bool {
	for _, x := range p {
		if x == w {
			return true
		}
	}
	return false
}

// Strings returns the pool as plain strings.
func (p Pool) Strings() []string {
	out := make([]string, len(p))
	for i, w := range p {
		out[i] = w.String()
	}
	return out
}

// Entry is a word and its entropy in bits against some pool.
type Entry struct {
	Word  Word    `json:"word"`
	Score float64 `json:"score"`
}

// Table holds entropy entries ranked by descending score.
type Table []Entry

// Best returns the top entry. ok is false for an empty table.
func (t Table) Best() (Entry, bool) {
	if len(t) == 0 {
		return Entry{}, false
	}
	return t[0], true
}

// Scores returns the table as a word → score lookup.
func (t Table) Scores() map[Word]float64 {
	m := make(map[Word]float64, len(t))
	for _, e := range t {
		m[e.Word] = e.Score
	}
	return m
}

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// Round is one guess and the feedback it received.
type Round struct {
	Guess    Word     `json:"guess"`
	Feedback Feedback `json:"marks"`
}

// History lists the rounds of a session in order.
type History []Round
