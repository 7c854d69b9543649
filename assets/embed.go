// apps/solver/assets/embed.go
//
// Embedded word lists.
//   - answers.txt: default answer corpus, in puzzle order.
//   - ReadLines:   shared line scanner (skips blanks and "#" comments,
//                  keeps 1-based line numbers for error messages).

package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed answers.txt
var FS embed.FS

// Line is one non-empty, non-comment line of an embedded list.
type Line struct {
	No   int    // 1-based line number in the file
	Text string // trimmed, lowercased
}

// ReadLines scans r, skipping blanks and "#" comments.
func ReadLines(r io.Reader) ([]Line, error) {
	var out []Line
	sc := bufio.NewScanner(r)
	no := 0
	for sc.Scan() {
		no++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, Line{No: no, Text: strings.ToLower(s)})
	}
	return out, sc.Err()
}

// AnswersList returns the embedded default corpus.
func AnswersList() ([]Line, error) {
	f, err := FS.Open("answers.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}
