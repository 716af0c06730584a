package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/valyala/fastrand"

	"github.com/motus-games/motus/internal/logging"
)

// Tusmo rules: playable words are 6 to 10 letters long.
const (
	MinWordLength = 6
	MaxWordLength = 10
)

var ErrNoWords = fmt.Errorf("no words for requested length")

// Dictionary is the word supply: an immutable, length-indexed set of
// uppercase words.
type Dictionary struct {
	words    []string
	byLength map[int][]string
	set      map[string]struct{}
}

// Load reads a words file (one word per line), uppercases entries and keeps
// only those within the playable length range.
func Load(ctx context.Context, path string) (*Dictionary, error) {
	logger := logging.FromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open words file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read words file: %w", err)
	}

	words := lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		w := strings.ToUpper(strings.TrimSpace(line))
		n := utf8.RuneCountInString(w)
		return w, n >= MinWordLength && n <= MaxWordLength
	})

	if len(words) == 0 {
		return nil, fmt.Errorf("words file %s: no playable words", path)
	}

	logger.Infof("loaded %d words from %s", len(words), path)
	return New(words), nil
}

// New builds a dictionary from already-normalized uppercase words.
func New(words []string) *Dictionary {
	d := &Dictionary{
		words:    words,
		byLength: make(map[int][]string),
		set:      make(map[string]struct{}, len(words)),
	}

	for _, w := range words {
		n := utf8.RuneCountInString(w)
		d.byLength[n] = append(d.byLength[n], w)
		d.set[w] = struct{}{}
	}

	return d
}

// RandomWord draws a uniformly random word of the given length, or of any
// length when length is 0.
func (d *Dictionary) RandomWord(length int) (string, error) {
	pool := d.words
	if length > 0 {
		pool = d.byLength[length]
	}

	if len(pool) == 0 {
		return "", fmt.Errorf("length %d: %w", length, ErrNoWords)
	}

	return pool[fastrand.Uint32n(uint32(len(pool)))], nil
}

// Contains reports whether word is a valid dictionary entry. Guesses are
// validated against the same set the targets are drawn from.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.set[word]
	return ok
}

func (d *Dictionary) Len() int {
	return len(d.words)
}

// Word returns the i-th word in load order. Used by the daily rotation to
// map a deterministic index to a word.
func (d *Dictionary) Word(i int) string {
	return d.words[i]
}
