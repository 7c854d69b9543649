// apps/solver/internal/solver/filter.go
//
// Constraint filtering.
// A candidate survives when it satisfies all five per-position predicates at
// once (a conjunction, not a chain of removals):
//
//   - Correct at i: candidate[i] == guess[i].
//   - Present at i: candidate contains guess[i], and candidate[i] != guess[i].
//   - Absent at i:  candidate holds guess[i] exactly as many times as the
//                   guess had it marked Correct or Present. For a letter with
//                   no such marks that means "not at all".
//
// The guess itself is dropped from the result afterwards.

package solver

// Filter returns the words in pool consistent with guess having received fb.
// The input pool is not modified. The result may be empty.
func Filter(pool Pool, guess Word, fb Feedback) Pool {
	// Letters the target is known to hold, counted from non-Absent marks.
	var confirmed [256]int
	for i := 0; i < Size; i++ {
		if fb[i] != Absent {
			confirmed[guess[i]]++
		}
	}

	out := make(Pool, 0, len(pool))
	for _, cand := range pool {
		if cand == guess {
			continue
		}
		if consistent(cand, guess, fb, &confirmed) {
			out = append(out, cand)
		}
	}
	return out
}

// consistent evaluates the per-position predicates for one candidate.
func consistent(cand, guess Word, fb Feedback, confirmed *[256]int) bool {
	for i := 0; i < Size; i++ {
		c := guess[i]
		switch fb[i] {
		case Correct:
			if cand[i] != c {
				return false
			}
		case Present:
			if cand[i] == c || cand.count(c) == 0 {
				return false
			}
		default:
			if cand.count(c) != confirmed[c] {
				return false
			}
		}
	}
	return true
}
