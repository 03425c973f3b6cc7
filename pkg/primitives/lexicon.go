package primitives

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Wildcard marks the blanked position of a wildcard pattern.
const Wildcard = '&'

// ErrMalformedLexicon is returned when a lexicon breaks one of its structural rules.
var ErrMalformedLexicon = errors.New("malformed lexicon")

// Lexicon is the compiled, read-only adjacency of a word graph: for every word and every letter
// position, the substitution mask of the wildcard pattern formed by blanking that position.
//
// All words share one length. A Lexicon is never mutated after construction and is safe for
// concurrent reads.
type Lexicon struct {
	wordLength int
	// entries[word][pos] is the mask for Pattern(word, pos).
	entries map[string][]Mask
}

// Pattern blanks position pos of word.
func Pattern(word string, pos int) string {
	return word[:pos] + string(Wildcard) + word[pos+1:]
}

// PatternPosition returns the blanked position of a wildcard pattern.
func PatternPosition(pattern string) (int, error) {
	pos := strings.IndexByte(pattern, Wildcard)
	if pos < 0 {
		return 0, fmt.Errorf("pattern %q has no wildcard", pattern)
	}
	if strings.IndexByte(pattern[pos+1:], Wildcard) >= 0 {
		return 0, fmt.Errorf("pattern %q has more than one wildcard", pattern)
	}
	return pos, nil
}

// MakeLexicon validates entries and wraps them in a Lexicon. entries is owned by the Lexicon
// afterwards and must not be modified by the caller.
//
// Every key must be wordLength lowercase letters with exactly wordLength masks, and every mask
// must fit in 26 bits.
func MakeLexicon(wordLength int, entries map[string][]Mask) (*Lexicon, error) {
	if wordLength < 0 {
		return nil, fmt.Errorf("%w: negative word length %d", ErrMalformedLexicon, wordLength)
	}
	if wordLength == 0 && len(entries) > 0 {
		return nil, fmt.Errorf("%w: zero word length with %d words", ErrMalformedLexicon, len(entries))
	}
	if entries == nil {
		entries = make(map[string][]Mask)
	}
	for word, masks := range entries {
		if len(word) != wordLength {
			return nil, fmt.Errorf("%w: word %q has length %d, want %d", ErrMalformedLexicon, word, len(word), wordLength)
		}
		for _, r := range word {
			if !IsLetter(r) {
				return nil, fmt.Errorf("%w: word %q contains non-lowercase letter %q", ErrMalformedLexicon, word, r)
			}
		}
		if len(masks) != wordLength {
			return nil, fmt.Errorf("%w: word %q has %d patterns, want %d", ErrMalformedLexicon, word, len(masks), wordLength)
		}
		for pos, m := range masks {
			if !m.Valid() {
				return nil, fmt.Errorf("%w: mask %d for %q exceeds 26 bits", ErrMalformedLexicon, uint32(m), Pattern(word, pos))
			}
		}
	}
	return &Lexicon{wordLength: wordLength, entries: entries}, nil
}

// WordLength returns the length shared by every word, or 0 for an empty lexicon.
func (l *Lexicon) WordLength() int {
	return l.wordLength
}

// Len returns the number of words.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Has reports whether word is a key of the lexicon.
func (l *Lexicon) Has(word string) bool {
	_, ok := l.entries[word]
	return ok
}

// Mask returns the substitution mask of Pattern(word, pos).
func (l *Lexicon) Mask(word string, pos int) (Mask, bool) {
	masks, ok := l.entries[word]
	if !ok || pos < 0 || pos >= len(masks) {
		return 0, false
	}
	return masks[pos], true
}

// Words returns every word in alphabetical order.
func (l *Lexicon) Words() []string {
	words := make([]string, 0, len(l.entries))
	for w := range l.entries {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}

// Neighbors decodes the masks of word, position by position, and yields each word obtained by
// substituting a decoded letter into the blanked slot.
//
// A word that is not a key yields nothing. Masks may include the word's own letter, in which
// case the word itself is yielded.
func (l *Lexicon) Neighbors(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		masks, ok := l.entries[word]
		if !ok {
			return
		}
		buf := []byte(word)
		for pos, m := range masks {
			orig := buf[pos]
			for r := range m.Letters() {
				buf[pos] = byte(r)
				if !yield(string(buf)) {
					return
				}
			}
			buf[pos] = orig
		}
	}
}

func (l *Lexicon) String() string {
	return fmt.Sprintf("Lexicon(%d words of length %d)", l.Len(), l.wordLength)
}
