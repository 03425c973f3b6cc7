package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"crosswarped.com/ladder/pkg/primitives"
)

// ErrInvalidLength is returned when the target word length is not a positive integer.
var ErrInvalidLength = errors.New("word length must be a positive integer")

type CompileParams struct {
	Words         []string
	ExcludedWords []string
	WordLength    int
	Logger        *slog.Logger
}

type params struct {
	words         []string
	excludedWords map[string]bool
	wordLength    int
	logger        *slog.Logger
}

func asParams(p CompileParams) params {
	pp := params{
		words:         p.Words,
		excludedWords: make(map[string]bool, len(p.ExcludedWords)),
		wordLength:    p.WordLength,
		logger:        p.Logger,
	}
	if pp.logger == nil {
		pp.logger = slog.Default()
	}
	for _, word := range p.ExcludedWords {
		pp.excludedWords[normalize(word)] = true
	}
	return pp
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// FileName is the conventional name of a compiled lexicon for the given word length.
func FileName(wordLength int) string {
	return fmt.Sprintf("%d-letter.json", wordLength)
}

// Compile builds the lexicon of every word of exactly p.WordLength letters.
//
// For each retained word and each position, every letter of the alphabet is tried in the blanked
// slot, including the word's own letter, and the mask records which candidates are words.
// An input with no word of the right length yields an empty lexicon.
func Compile(ctx context.Context, p CompileParams) (*primitives.Lexicon, error) {
	if p.WordLength <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, p.WordLength)
	}
	params := asParams(p)

	var members primitives.Trie
	var retained []string
	skipped := 0
	for _, raw := range params.words {
		word := normalize(raw)
		if len(word) != params.wordLength || params.excludedWords[word] {
			continue
		}
		added, err := members.Add(word)
		if err != nil {
			skipped++
			continue
		}
		if added {
			retained = append(retained, word)
		}
	}
	if skipped > 0 {
		params.logger.Warn("Skipped words with non-letter characters", slog.Int("count", skipped))
	}

	entries := make(map[string][]primitives.Mask, len(retained))
	candidate := make([]byte, params.wordLength)
	for i, word := range retained {
		if i%1024 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		masks := make([]primitives.Mask, params.wordLength)
		copy(candidate, word)
		for pos := range params.wordLength {
			var m primitives.Mask
			for li := range primitives.NumLetters {
				candidate[pos] = byte('a' + li)
				if members.Contains(string(candidate)) {
					m |= 1 << primitives.BitFor(li)
				}
			}
			candidate[pos] = word[pos]
			masks[pos] = m
		}
		entries[word] = masks
	}

	wordLength := params.wordLength
	if len(entries) == 0 {
		wordLength = 0
	}
	lex, err := primitives.MakeLexicon(wordLength, entries)
	if err != nil {
		return nil, err
	}
	params.logger.Info("Compiled lexicon",
		slog.Int("word_length", params.wordLength),
		slog.Int("input_words", len(params.words)),
		slog.Int("words", lex.Len()))
	return lex, nil
}
