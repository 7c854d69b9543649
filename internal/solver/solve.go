// apps/solver/internal/solver/solve.go
//
// Full solve against a known target: a Session driven by Evaluate until the
// feedback is all Correct.

package solver

// Solve plays a full session against a known target and returns the
// number of guesses and the rounds played. pool is not modified.
//
// The loop has no guess limit. As long as target is in pool it is never
// filtered out, so the loop ends within len(pool) rounds. If target is
// not in pool the candidates eventually run out and ErrEmptyPool is returned.
func Solve(pool Pool, target Word, initial Table) (int, History, error) {
	if !target.Valid() {
		return 0, nil, &WordError{Input: target.String(), Reason: "letters a-z only"}
	}
	s := NewSession(pool, initial)
	for s.State() == StateSearching {
		e, err := s.Suggest()
		if err != nil {
			return s.Guesses(), s.History(), err
		}
		if _, err := s.Apply(e.Word, Evaluate(e.Word, target)); err != nil {
			return s.Guesses(), s.History(), err
		}
	}
	return s.Guesses(), s.History(), nil
}
