// apps/solver/internal/words/entropy.go
//
// Round-0 entropy cache on disk.
// Format: CSV rows "word,score" in ranked order. A cache is only used when it
// ranks exactly the current corpus words (CheckTable).

package words

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// ErrStaleTable means a cached entropy table was not computed for the
// current corpus (different words or a different size).
var ErrStaleTable = errors.New("entropy table does not match corpus")

// LoadTable reads a "word,score" CSV written by SaveTable. Row order is kept.
func LoadTable(path string) (solver.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = 2
	r.Comment = '#'
	var t solver.Table
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("words: %s: %w", path, err)
		}
		w, err := solver.ParseWord(rec[0])
		if err != nil {
			return nil, fmt.Errorf("words: %s: %w", path, err)
		}
		score, err := strconv.ParseFloat(rec[1], 64)
		if err != nil || score < 0 {
			return nil, fmt.Errorf("words: %s: bad score %q for %s", path, rec[1], w)
		}
		t = append(t, solver.Entry{Word: w, Score: score})
	}
	return t, nil
}

// SaveTable writes t as "word,score" rows in ranked order.
// Scores use the shortest representation that round-trips exactly.
func SaveTable(path string, t solver.Table) error {
	return writeAtomic(path, func(bw *bufio.Writer) error {
		w := csv.NewWriter(bw)
		for _, e := range t {
			if err := w.Write([]string{e.Word.String(), strconv.FormatFloat(e.Score, 'g', -1, 64)}); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
}

// CheckTable reports ErrStaleTable unless t ranks exactly the words of pool.
func CheckTable(t solver.Table, pool solver.Pool) error {
	if len(t) != len(pool) {
		return fmt.Errorf("%w: %d entries for %d words", ErrStaleTable, len(t), len(pool))
	}
	scores := t.Scores()
	if len(scores) != len(t) {
		return fmt.Errorf("%w: repeated words", ErrStaleTable)
	}
	for _, w := range pool {
		if _, ok := scores[w]; !ok {
			return fmt.Errorf("%w: %s missing", ErrStaleTable, w)
		}
	}
	return nil
}
