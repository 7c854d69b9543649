// apps/solver/internal/words/words.go
//
// Corpus loading and saving.
//
// Responsibilities:
//   - Load the answer corpus from a file, or fall back to the embedded default.
//   - Validate every entry as a solver.Word; a bad line is an error naming it.
//   - Drop repeated words, keeping the first occurrence (pool order matters
//     for tie-breaking, so file order is preserved).
//   - Save a corpus back to disk, one word per line.
//
// File format:
//   - One word per line, case-insensitive, surrounding spaces ignored.
//   - Blank lines and lines starting with "#" are skipped.

package words

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robalobadob/wordle/apps/solver/assets"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// Load reads the corpus at path, or the embedded default when path is empty.
func Load(path string) (solver.Pool, error) {
	var (
		lines []assets.Line
		err   error
	)
	if path == "" {
		lines, err = assets.AnswersList()
		path = "embedded answers.txt"
	} else {
		lines, err = readLines(path)
	}
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}

	list := make([]solver.Word, 0, len(lines))
	for _, ln := range lines {
		w, err := solver.ParseWord(ln.Text)
		if err != nil {
			return nil, fmt.Errorf("words: %s line %d: %w", path, ln.No, err)
		}
		list = append(list, w)
	}
	pool := solver.NewPool(list)
	if len(pool) == 0 {
		return nil, fmt.Errorf("words: %s: %w", path, solver.ErrEmptyPool)
	}
	return pool, nil
}

// readLines opens path and scans it like the embedded lists.
func readLines(path string) ([]assets.Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// Save writes pool to path, one word per line, creating parent directories.
// The file is replaced atomically via a temp file + rename.
func Save(path string, pool solver.Pool) error {
	return writeAtomic(path, func(bw *bufio.Writer) error {
		for _, w := range pool {
			if _, err := bw.WriteString(w.String() + "\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeAtomic writes through fill into a temp file next to path, then renames it.
func writeAtomic(path string, fill func(*bufio.Writer) error) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := fill(bw); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
