package primitives

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// rawLexicon is the on-disk shape: word -> wildcard pattern -> mask.
type rawLexicon map[string]map[string]uint32

func (l *Lexicon) raw() rawLexicon {
	raw := make(rawLexicon, len(l.entries))
	for word, masks := range l.entries {
		patterns := make(map[string]uint32, len(masks))
		for pos, m := range masks {
			patterns[Pattern(word, pos)] = uint32(m)
		}
		raw[word] = patterns
	}
	return raw
}

// MarshalJSON encodes the lexicon as word -> pattern -> integer mask, with the wildcard written
// as a literal '&'.
func (l *Lexicon) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeLexicon(&buf, l); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// EncodeLexicon writes l to w as JSON followed by a newline.
func EncodeLexicon(w io.Writer, l *Lexicon) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(l.raw())
}

// DecodeLexicon parses a compiled lexicon.
//
// Decoding is strict: masks must be unsigned integers of at most 26 bits, every key must share
// one length, and every word must list exactly one pattern per position, each equal to the word
// with that position blanked.
func DecodeLexicon(r io.Reader) (*Lexicon, error) {
	dec := json.NewDecoder(r)
	var raw rawLexicon
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLexicon, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after lexicon", ErrMalformedLexicon)
	}

	wordLength := -1
	entries := make(map[string][]Mask, len(raw))
	for word, patterns := range raw {
		if wordLength < 0 {
			wordLength = len(word)
		}
		if len(word) != wordLength {
			return nil, fmt.Errorf("%w: word %q has length %d, want %d", ErrMalformedLexicon, word, len(word), wordLength)
		}
		if len(patterns) != len(word) {
			return nil, fmt.Errorf("%w: word %q has %d patterns, want %d", ErrMalformedLexicon, word, len(patterns), len(word))
		}

		masks := make([]Mask, len(word))
		for pattern, value := range patterns {
			pos, err := PatternPosition(pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedLexicon, err)
			}
			if len(pattern) != len(word) || pattern != Pattern(word, pos) {
				return nil, fmt.Errorf("%w: pattern %q does not belong to %q", ErrMalformedLexicon, pattern, word)
			}
			masks[pos] = Mask(value)
		}
		entries[word] = masks
	}
	if wordLength < 0 {
		wordLength = 0
	}
	return MakeLexicon(wordLength, entries)
}
