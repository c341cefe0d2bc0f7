// Package words owns the pool of five-letter secrets a match draws from.
//
// The default list is embedded so the server runs with no external files;
// WORDS_FILE can point at a newline-separated replacement list. Words are
// normalized to lowercase and anything that is not exactly five a-z letters
// is skipped.
package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"
)

//go:embed answers.txt
var embedded string

var (
	initOnce sync.Once
	answers  []string
	initErr  error
)

var ErrEmptyList = errors.New("word list contains no usable words")

// Init loads the word list once. Safe to call from multiple goroutines;
// later calls return the first result.
func Init() error {
	initOnce.Do(func() {
		source := embedded
		if path := os.Getenv("WORDS_FILE"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				initErr = err
				return
			}
			source = string(data)
		}
		answers = parseList(source)
		if len(answers) == 0 {
			initErr = ErrEmptyList
		}
	})
	return initErr
}

// RandomSecret draws a uniformly random answer. Init must have succeeded.
func RandomSecret() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(answers))))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken.
		return answers[0]
	}
	return answers[n.Int64()]
}

// Count reports how many answers are loaded.
func Count() int { return len(answers) }

func parseList(src string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(src))
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if usable(w) {
			out = append(out, w)
		}
	}
	return out
}

func usable(w string) bool {
	if len(w) != 5 {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}
