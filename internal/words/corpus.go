// apps/solver/internal/words/corpus.go
//
// Shared corpus holder for the server.
// Responsibilities:
//   - Hand out copies of the pool and of its round-0 entropy ranking.
//   - Build that ranking lazily (from the CSV cache when it matches).
//   - Grow the corpus with newly revealed answers, persisting them.

package words

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// Corpus is the shared, long-lived word list behind the server.
// Callers get copies; the corpus itself only grows through Add.
type Corpus struct {
	mu        sync.RWMutex
	pool      solver.Pool
	path      string       // backing file for Add; empty = embedded, not persisted
	tablePath string       // optional entropy cache
	table     solver.Table // round-0 ranking, nil until first needed
	gen       int          // bumped by Add; a ranking of an older pool is not kept

	rank func(solver.Pool) (solver.Table, error)
}

// Open loads the corpus from path (embedded default if empty).
// tablePath, when set, names a CSV entropy cache to read before ranking.
func Open(path, tablePath string) (*Corpus, error) {
	pool, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Corpus{pool: pool, path: path, tablePath: tablePath, rank: solver.Rank}, nil
}

// New wraps an in-memory pool; nothing is persisted.
func New(pool solver.Pool) *Corpus {
	return &Corpus{pool: solver.NewPool(pool), rank: solver.Rank}
}

// Pool returns a private copy of the current word list.
func (c *Corpus) Pool() solver.Pool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pool.Clone()
}

// Len is the number of words in the corpus.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pool)
}

// Contains reports whether w is in the corpus.
func (c *Corpus) Contains(w solver.Word) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pool.Contains(w)
}

// Snapshot returns a consistent copy of the pool and its round-0 ranking.
// Ranking runs without holding the lock, so readers are not blocked while
// the first table is built. If Add lands meanwhile, the caller still gets a
// matching pair but the table is not kept.
func (c *Corpus) Snapshot() (solver.Pool, solver.Table, error) {
	c.mu.RLock()
	pool, table, gen := c.pool.Clone(), c.table.Clone(), c.gen
	c.mu.RUnlock()
	if table != nil {
		return pool, table, nil
	}

	table, err := c.buildTable(pool)
	if err != nil {
		return nil, nil, err
	}
	c.mu.Lock()
	if c.gen == gen && c.table == nil {
		c.table = table
	}
	c.mu.Unlock()
	return pool, table.Clone(), nil
}

// InitialTable returns a copy of the ranking of the full corpus.
func (c *Corpus) InitialTable() (solver.Table, error) {
	_, t, err := c.Snapshot()
	return t, err
}

// buildTable reads the cache file when it matches pool, otherwise ranks
// pool and refreshes the cache.
func (c *Corpus) buildTable(pool solver.Pool) (solver.Table, error) {
	if c.tablePath != "" {
		t, err := LoadTable(c.tablePath)
		switch {
		case err == nil:
			if err = CheckTable(t, pool); err == nil {
				log.Debug().Str("file", c.tablePath).Int("entries", len(t)).Msg("entropy cache loaded")
				return t, nil
			}
			log.Warn().Err(err).Str("file", c.tablePath).Msg("entropy cache ignored")
		case errors.Is(err, os.ErrNotExist):
			log.Debug().Str("file", c.tablePath).Msg("no entropy cache")
		default:
			log.Warn().Err(err).Str("file", c.tablePath).Msg("entropy cache unreadable")
		}
	}
	t, err := c.rank(pool)
	if err != nil {
		return nil, err
	}
	log.Info().Int("words", len(pool)).Msg("initial entropy computed")
	if c.tablePath != "" {
		if err := SaveTable(c.tablePath, t); err != nil {
			log.Warn().Err(err).Str("file", c.tablePath).Msg("write entropy cache")
		}
	}
	return t, nil
}

// Add appends a newly revealed answer. It reports false if w was already
// present. The file-backed list is rewritten and the cached ranking dropped.
func (c *Corpus) Add(w solver.Word) (bool, error) {
	if !w.Valid() {
		return false, &solver.WordError{Input: w.String(), Reason: "letters a-z only"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pool.Contains(w) {
		return false, nil
	}
	next := append(c.pool.Clone(), w)
	if c.path != "" {
		if err := Save(c.path, next); err != nil {
			return false, fmt.Errorf("words: persist %s: %w", c.path, err)
		}
	}
	c.pool = next
	c.table = nil
	c.gen++
	if c.tablePath != "" {
		// The cache on disk is now stale; CheckTable will reject it.
		log.Info().Str("file", c.tablePath).Msg("entropy cache invalidated")
	}
	return true, nil
}
