// Package wordlist loads the input word list and derives output file names.
package wordlist

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/user/fightwords/pkg/ports"
)

// Parse extracts words from word-list file contents: one word per line,
// UTF-8, surrounding whitespace trimmed, blank lines skipped.
func Parse(data []byte) []string {
	var words []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	return words
}

// Load reads and parses a word-list file through the filesystem port.
func Load(fs ports.FileSystem, path string) ([]string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data), nil
}

// SafeName converts a word into a file name stem: "!" is dropped,
// "-" and spaces become "_".
func SafeName(word string) string {
	r := strings.NewReplacer("!", "", "-", "_", " ", "_")
	return r.Replace(word)
}
