// internal/vocab/vocab.go
// Package vocab maps token ids to surface strings, loaded from a
// line-oriented vocabulary file (one token per line, id = line number).
package vocab

import (
	"bufio"
	"fmt"
	"os"
)

// Unknown is returned for ids outside the vocabulary, so a stale dump
// renders a placeholder instead of aborting the report run.
const Unknown = "<unk>"

// Vocab is an immutable id-to-string mapping.
type Vocab struct {
	words []string
}

// New builds a vocabulary from an ordered word list.
func New(words []string) *Vocab {
	return &Vocab{words: words}
}

// Load reads a vocabulary file. Blank lines are kept: they are legitimate
// tokens in some vocabularies and line numbering must stay aligned.
func Load(path string) (*Vocab, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocab %q: %w", path, err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vocab %q: %w", path, err)
	}
	return &Vocab{words: words}, nil
}

// Len reports the vocabulary size.
func (v *Vocab) Len() int { return len(v.words) }

// Word returns the surface string for id, or Unknown when out of range.
func (v *Vocab) Word(id int) string {
	if id < 0 || id >= len(v.words) {
		return Unknown
	}
	return v.words[id]
}
