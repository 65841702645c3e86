// internal/words/words.go
//
// Word bank management for puzzle generation.
//
// Responsibilities:
//   - Load the bank from a file or fall back to the embedded default.
//   - Normalise entries (trim, drop comments/blanks, ASCII letters only,
//     de-duplicate case-insensitively keeping the first occurrence).
//   - Expose the loaded bank read-only to the selector and the puzzle builder.
//
// Init runs once (sync.Once). Pick never mutates the bank.
package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordsearch/assets"
)

// ErrBankTooSmall is returned by callers that need a fixed number of words
// when the filtered bank cannot supply them.
var ErrBankTooSmall = errors.New("words: bank too small for requested puzzle size")

var (
	initOnce   sync.Once
	bank       []string
	initialErr error
)

// Init loads the process-wide word bank exactly once.
//
//   - path set → read that file.
//   - otherwise → embedded assets/bank.txt.
//
// Later calls return the first outcome whatever path they pass.
func Init(path string) error {
	initOnce.Do(func() {
		bank, initialErr = Load(path)
	})
	return initialErr
}

// Load reads a bank from path, or the embedded bank when path is empty.
func Load(path string) ([]string, error) {
	if path != "" {
		return ReadFile(path)
	}
	lines, err := assets.BankList()
	if err != nil {
		return nil, fmt.Errorf("words: embedded bank: %w", err)
	}
	out := Normalize(lines)
	if len(out) == 0 {
		return nil, errors.New("words: bank is empty")
	}
	return out, nil
}

// Bank returns the loaded bank. Callers must not modify it.
func Bank() []string { return bank }

// Stats returns the number of loaded words.
func Stats() int { return len(bank) }

// ReadFile loads a bank from path, one word per line.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	out, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("words: %s has no usable words", path)
	}
	return out, nil
}

// Read parses a bank from r.
func Read(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return Normalize(lines), nil
}

// Normalize trims each line and keeps ASCII-letter words, skipping blanks,
// # comments and case-insensitive duplicates. Original spelling and order of
// the surviving entries are preserved.
func Normalize(lines []string) []string {
	out := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		w := strings.TrimSpace(line)
		if w == "" || strings.HasPrefix(w, "#") || !isAlpha(w) {
			continue
		}
		key := strings.ToUpper(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is all ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
