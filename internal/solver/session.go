// apps/solver/internal/solver/session.go
//
// Step-wise solving session.
// Responsibilities:
//   - Suggest the next guess (highest-entropy pool word).
//   - Apply a (guess, feedback) pair: record it, then either finish or prune.
//   - Track state transitions: searching → solved.
//
// The order inside Apply matters: record → check solved → (only if not
// solved) filter. Filtering with an all-correct signature would empty the pool.
//
// A Session owns its pool. It is not safe for concurrent use.

package solver

// State is the coarse state of a session.
type State string

const (
	StateSearching State = "searching"
	StateSolved    State = "solved"
)

// Session holds one solve in progress.
type Session struct {
	pool    Pool
	initial Table
	table   Table // ranking for the current pool, nil until computed
	history History
	state   State
}

// NewSession starts a session over its own copy of pool.
// initial, when non-empty, is used instead of ranking for the first guess;
// it must have been computed against this same pool.
func NewSession(pool Pool, initial Table) *Session {
	return &Session{
		pool:    pool.Clone(),
		initial: initial.Clone(),
		state:   StateSearching,
	}
}

// Suggest returns the best next guess for the current pool.
// It fails with ErrEmptyPool when no candidate is left.
func (s *Session) Suggest() (Entry, error) {
	if s.state == StateSolved {
		last := s.history[len(s.history)-1]
		return Entry{Word: last.Guess}, nil
	}
	if s.table == nil {
		if len(s.history) == 0 && len(s.initial) > 0 {
			s.table = s.initial
		} else {
			t, err := Rank(s.pool)
			if err != nil {
				return Entry{}, err
			}
			s.table = t
		}
	}
	best, ok := s.table.Best()
	if !ok {
		return Entry{}, ErrEmptyPool
	}
	return best, nil
}

// Apply records that guess received fb and advances the session.
// guess does not have to be the suggested word.
func (s *Session) Apply(guess Word, fb Feedback) (State, error) {
	if s.state == StateSolved {
		return s.state, ErrSessionSolved
	}
	if !guess.Valid() {
		return s.state, &WordError{Input: guess.String(), Reason: "letters a-z only"}
	}

	s.history = append(s.history, Round{Guess: guess, Feedback: fb})
	if fb.Solved() {
		s.state = StateSolved
		return s.state, nil
	}
	s.pool = Filter(s.pool, guess, fb)
	s.table = nil
	return s.state, nil
}

// State reports whether the session is still searching.
func (s *Session) State() State { return s.state }

// Guesses is the number of rounds played so far.
func (s *Session) Guesses() int { return len(s.history) }

// Remaining is the number of candidates still consistent with the history.
func (s *Session) Remaining() int { return len(s.pool) }

// Candidates returns a copy of the current pool.
func (s *Session) Candidates() Pool { return s.pool.Clone() }

// History returns a copy of the rounds played so far.
func (s *Session) History() History {
	out := make(History, len(s.history))
	copy(out, s.history)
	return out
}
