// apps/solver/internal/solver/feedback.go
//
// Two-pass feedback evaluation.
//
// Pass 1:
//   - Mark exact matches as Correct; those target letters are used up.
//
// Pass 2:
//   - For each remaining guess letter, take the leftmost unused target
//     letter that matches and mark Present; otherwise Absent.
//
// This keeps repeated letters honest in both guess and target: a letter is
// never reported (Correct or Present) more times than the target holds it.

package solver

// Evaluate scores guess against target. It is pure and needs no pool membership.
func Evaluate(guess, target Word) Feedback {
	var fb Feedback
	var used [Size]bool

	// First pass: exact hits consume their target letter.
	for i := 0; i < Size; i++ {
		if guess[i] == target[i] {
			fb[i] = Correct
			used[i] = true
		}
	}

	// Second pass: leftmost unused occurrence wins.
	for i := 0; i < Size; i++ {
		if fb[i] == Correct {
			continue
		}
		fb[i] = Absent
		for j := 0; j < Size; j++ {
			if !used[j] && target[j] == guess[i] {
				fb[i] = Present
				used[j] = true
				break
			}
		}
	}
	return fb
}

// EvaluateStrings parses both words and evaluates them.
func EvaluateStrings(guess, target string) (Feedback, error) {
	g, err := ParseWord(guess)
	if err != nil {
		return Feedback{}, err
	}
	t, err := ParseWord(target)
	if err != nil {
		return Feedback{}, err
	}
	return Evaluate(g, t), nil
}
