// apps/solver/internal/solver/errors.go
//
// Error taxonomy for the solver core.
//   - ErrInvalidWord:   bad input word (via *WordError).
//   - ErrEmptyPool:     no candidate left; also how an unknown target surfaces.
//   - ErrSessionSolved: feedback applied after the session finished.

package solver

import "errors"

var (
	// ErrInvalidWord is matched by every *WordError.
	ErrInvalidWord = errors.New("invalid word")

	// ErrEmptyPool means there is nothing left to guess. It follows from
	// contradictory feedback, or from a target that is not in the corpus.
	ErrEmptyPool = errors.New("candidate pool is empty")

	// ErrSessionSolved is returned when feedback is applied to a finished session.
	ErrSessionSolved = errors.New("session already solved")
)

// WordError describes why an input was rejected as a word.
type WordError struct {
	Input  string
	Reason string
}

func (e *WordError) Error() string {
	return "invalid word " + quote(e.Input) + ": " + e.Reason
}

// Is lets errors.Is(err, ErrInvalidWord) match any WordError.
func (e *WordError) Is(target error) bool { return target == ErrInvalidWord }

func quote(s string) string { return `"` + s + `"` }
