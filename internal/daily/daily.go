// apps/solver/internal/daily/daily.go
//
// Daily puzzle numbering.
// Puzzle N is the N-th corpus word and falls N days after 2021-06-19, by the
// local calendar date of the caller's time.

package daily

import (
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// Epoch is the calendar date of puzzle number 0.
var Epoch = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

// ErrNoPuzzle means a puzzle number falls outside the corpus.
var ErrNoPuzzle = errors.New("no puzzle for that number")

// DateKey returns YYYY-MM-DD for t's calendar date in t's own location.
// New puzzles drop at local midnight.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Number returns the puzzle number for t's calendar date: days since Epoch.
func Number(t time.Time) int {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(day.Sub(Epoch) / (24 * time.Hour))
}

// Date is the inverse of Number.
func Date(n int) time.Time {
	return Epoch.AddDate(0, 0, n)
}

// ParseDate reads a YYYY-MM-DD key and returns its puzzle number.
func ParseDate(key string) (int, error) {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return 0, fmt.Errorf("daily: bad date %q: %w", key, err)
	}
	return Number(t), nil
}

// Target picks the answer for puzzle n: the n-th word of the corpus.
func Target(pool solver.Pool, n int) (solver.Word, error) {
	if n < 0 || n >= len(pool) {
		return solver.Word{}, fmt.Errorf("%w: %d (corpus has %d words)", ErrNoPuzzle, n, len(pool))
	}
	return pool[n], nil
}
