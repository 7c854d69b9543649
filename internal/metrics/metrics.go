// apps/solver/internal/metrics/metrics.go
//
// Prometheus collectors for the solver service, served on /metrics.
//   - solver_solves_total{source,result}
//   - solver_solve_guesses{source}
//   - solver_rank_duration_seconds
//   - solver_corpus_words

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// solvesTotal counts finished solves by source (api, daily, assist, batch) and result.
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_solves_total",
		Help: "Total solves by source and result",
	}, []string{"source", "result"})

	// solveGuesses tracks guesses needed per successful solve
	solveGuesses = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solver_solve_guesses",
		Help:    "Guesses needed per successful solve",
		Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10, 15},
	}, []string{"source"})

	// rankDuration tracks entropy ranking latency
	rankDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_rank_duration_seconds",
		Help:    "Entropy ranking duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	})

	// corpusWords is the current corpus size
	corpusWords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "solver_corpus_words",
		Help: "Number of words in the answer corpus",
	})
)

// ObserveSolve records one solve outcome.
func ObserveSolve(source string, guesses int, err error) {
	if err != nil {
		solvesTotal.WithLabelValues(source, "error").Inc()
		return
	}
	solvesTotal.WithLabelValues(source, "solved").Inc()
	solveGuesses.WithLabelValues(source).Observe(float64(guesses))
}

// ObserveRank records how long a ranking took.
func ObserveRank(d time.Duration) { rankDuration.Observe(d.Seconds()) }

// SetCorpusWords updates the corpus size gauge.
func SetCorpusWords(n int) { corpusWords.Set(float64(n)) }
