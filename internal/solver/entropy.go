// apps/solver/internal/solver/entropy.go
//
// Entropy ranking.
// Every pool member is tried as a hypothetical guess against every pool
// member as a hypothetical target. The feedback signatures it would produce
// are tallied, and the Shannon entropy of that tally (in bits) is the score.
// Higher entropy = the guess splits the pool more evenly.
//
// The guess space is the pool itself. Cost is O(n²) evaluations per rank.

package solver

import (
	"math"
	"sort"
)

// Bucket is one feedback signature and how many pool words produce it.
type Bucket struct {
	Feedback Feedback `json:"marks"`
	Count    int      `json:"count"`
}

// Distribution tallies the signatures guess produces against each word in pool.
func Distribution(guess Word, pool Pool) map[Feedback]int {
	freq := make(map[Feedback]int)
	for _, t := range pool {
		freq[Evaluate(guess, t)]++
	}
	return freq
}

// Buckets is Distribution as a slice, largest bucket first.
// Equal counts are ordered by Feedback.Index.
func Buckets(guess Word, pool Pool) []Bucket {
	freq := Distribution(guess, pool)
	out := make([]Bucket, 0, len(freq))
	for fb, n := range freq {
		out = append(out, Bucket{Feedback: fb, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Feedback.Index() < out[j].Feedback.Index()
	})
	return out
}

// Entropy returns the entropy in bits of guess's signature distribution over pool.
// An empty pool scores 0.
func Entropy(guess Word, pool Pool) float64 {
	if len(pool) == 0 {
		return 0
	}
	return entropyOf(Distribution(guess, pool), len(pool))
}

// entropyOf computes −Σ p·log2(p). Counts are summed in sorted order so
// the result does not depend on map iteration order.
func entropyOf(freq map[Feedback]int, total int) float64 {
	counts := make([]int, 0, len(freq))
	for _, n := range freq {
		counts = append(counts, n)
	}
	sort.Ints(counts)

	n := float64(total)
	h := 0.0
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

// Rank scores every pool word against the pool and returns them best first.
// Ties keep pool order.
func Rank(pool Pool) (Table, error) { return RankProgress(pool, nil) }

// RankProgress is Rank with step called after each word is scored.
func RankProgress(pool Pool, step func()) (Table, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	t := make(Table, len(pool))
	for i, w := range pool {
		t[i] = Entry{Word: w, Score: entropyOf(Distribution(w, pool), len(pool))}
		if step != nil {
			step()
		}
	}
	sort.SliceStable(t, func(i, j int) bool { return t[i].Score > t[j].Score })
	return t, nil
}
