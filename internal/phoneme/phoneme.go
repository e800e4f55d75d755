// Package phoneme holds the static phoneme difficulty table and the word
// decomposition into phoneme units.
package phoneme

import (
	_ "embed" // table.yaml
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/sprech/internal/model"
)

//go:embed table.yaml
var tableYAML []byte

type tableFile struct {
	Phonemes []model.Phoneme `yaml:"phonemes"`
	Fallback struct {
		Tier        model.Difficulty `yaml:"tier"`
		Description string           `yaml:"description"`
	} `yaml:"fallback"`
}

// Table is an immutable lookup of phoneme difficulty data.
// All methods are safe for concurrent use.
type Table struct {
	entries  map[string]model.Phoneme
	order    []string
	fallback model.Phoneme
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := Parse(tableYAML)
	if err != nil {
		panic(fmt.Sprintf("phoneme: embedded table: %v", err))
	}
	return t
})

// Default returns the built-in German phoneme table, parsed once.
func Default() *Table {
	return defaultTable()
}

// Parse builds a Table from YAML.
func Parse(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode phoneme table: %w", err)
	}
	if len(file.Phonemes) == 0 {
		return nil, fmt.Errorf("phoneme table is empty")
	}
	t := &Table{
		entries: make(map[string]model.Phoneme, len(file.Phonemes)),
		order:   make([]string, 0, len(file.Phonemes)),
		fallback: model.Phoneme{
			Tier:        file.Fallback.Tier,
			Description: file.Fallback.Description,
		},
	}
	if t.fallback.Tier == "" {
		t.fallback.Tier = model.DifficultyEasy
	}
	for _, p := range file.Phonemes {
		if p.Symbol == "" || p.ExpectedIPA == "" {
			return nil, fmt.Errorf("phoneme entry %q is incomplete", p.Symbol)
		}
		if _, ok := t.entries[p.Symbol]; ok {
			return nil, fmt.Errorf("duplicate phoneme %q", p.Symbol)
		}
		switch p.Tier {
		case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		default:
			return nil, fmt.Errorf("phoneme %q has unknown tier %q", p.Symbol, p.Tier)
		}
		t.entries[p.Symbol] = p
		t.order = append(t.order, p.Symbol)
	}
	return t, nil
}

// Lookup returns the entry for symbol. Unknown symbols get the generic
// fallback with the symbol as its own IPA; ok reports whether it was known.
func (t *Table) Lookup(symbol string) (p model.Phoneme, ok bool) {
	entry, ok := t.entries[symbol]
	if !ok {
		entry = t.fallback
		entry.Symbol = symbol
		entry.ExpectedIPA = symbol
	}
	entry.CommonMistakeIPAs = append([]string(nil), entry.CommonMistakeIPAs...)
	return entry, ok
}

// Known reports whether symbol is a recognized phoneme.
func (t *Table) Known(symbol string) bool {
	_, ok := t.entries[symbol]
	return ok
}

// All returns the recognized phonemes in table order.
func (t *Table) All() []model.Phoneme {
	out := make([]model.Phoneme, 0, len(t.order))
	for _, symbol := range t.order {
		p, _ := t.Lookup(symbol)
		out = append(out, p)
	}
	return out
}

// Symbols returns the recognized symbols sorted alphabetically.
func (t *Table) Symbols() []string {
	out := append([]string(nil), t.order...)
	sort.Strings(out)
	return out
}

// ParseSymbols splits a comma or space separated symbol list, keeping the
// first occurrence of each. Every symbol must be recognized.
func (t *Table) ParseSymbols(input string) ([]string, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		symbol := strings.ToLower(field)
		if !t.Known(symbol) {
			return nil, fmt.Errorf("unknown phoneme %q", field)
		}
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		out = append(out, symbol)
	}
	return out, nil
}
