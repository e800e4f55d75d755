// Package wordlist loads drill word lists.
package wordlist

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/verte-zerg/sprech/internal/transcript"
)

//go:embed words_de.txt
var defaultWords string

// ErrEmptyList is returned when a word list has no usable words.
var ErrEmptyList = errors.New("word list is empty")

// Default returns the built-in German practice words.
func Default() []string {
	words, err := readWords(strings.NewReader(defaultWords), FilterGerman)
	if err != nil {
		panic(fmt.Sprintf("embedded word list: %v", err))
	}
	return words
}

// LoadWords reads one word per line from path and keeps German words only.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	words, err := readWords(file, FilterGerman)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	return words, nil
}

// LoadOrDefault loads path, falling back to the built-in list when the file
// does not exist.
func LoadOrDefault(path string) ([]string, error) {
	if path == "" {
		return Default(), nil
	}
	words, err := LoadWords(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return words, err
}

func readWords(r io.Reader, keep FilterFunc) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := transcript.Normalize(strings.TrimSpace(scanner.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if keep(line) {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmptyList
	}
	return words, nil
}
