// Package ladder solves word ladders: the shortest chain of dictionary words between two words
// of equal length where each step changes exactly one letter.
//
// A Solver works on a compiled lexicon (see internal.Compile and primitives.Lexicon). Once a
// lexicon is loaded it is only read, so Path may be called from many goroutines.
package ladder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"crosswarped.com/ladder/pkg/primitives"
	"crosswarped.com/ladder/pkg/source"
)

type Solver struct {
	// Published once per successful load and never modified afterwards.
	state atomic.Pointer[loaded]

	randMu sync.Mutex
	rand   *rand.Rand

	logger *slog.Logger
}

type loaded struct {
	lexicon *primitives.Lexicon
	common  []string
}

type SolverParams struct {
	Logger *slog.Logger
}

// Pair is a pair of common words together with a path between them.
type Pair struct {
	One  string
	Two  string
	Path Path
}

func CreateSolver(rand *rand.Rand, params SolverParams) *Solver {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Solver{
		rand:   rand,
		logger: logger,
	}
}

// Load retrieves and parses the compiled dictionary and the common word list, then binds the
// solver to them. commonWords may be nil.
//
// Retrieval and parse failures are reported as ErrInvalidSource; the solver keeps whatever it
// had loaded before, so a failed first load leaves it not ready.
func (s *Solver) Load(ctx context.Context, dictionary, commonWords source.Source) (err error) {
	if dictionary == nil {
		return newError(KindInvalidSource, "load", "no dictionary source", nil)
	}
	ctx, span := tracer.Start(ctx, "Solver.Load",
		trace.WithAttributes(attribute.String("ladder.dictionary", dictionary.String())))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	lex, err := loadLexicon(ctx, dictionary)
	if err != nil {
		return newError(KindInvalidSource, "load", dictionary.String(), err)
	}

	var common []string
	if commonWords != nil {
		if common, err = source.LoadWords(ctx, commonWords); err != nil {
			return newError(KindInvalidSource, "load", commonWords.String(), err)
		}
	}

	span.SetAttributes(attribute.Int("ladder.words", lex.Len()))
	return s.LoadLexicon(lex, common)
}

func loadLexicon(ctx context.Context, src source.Source) (*primitives.Lexicon, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return primitives.DecodeLexicon(rc)
}

// LoadLexicon binds the solver to an already built lexicon. The word length is taken from the
// lexicon; common words of any other length, or missing from the lexicon, are dropped.
func (s *Solver) LoadLexicon(lexicon *primitives.Lexicon, commonWords []string) error {
	if lexicon == nil || lexicon.Len() == 0 {
		return newError(KindNoElements, "load", ErrNoElements.Detail, nil)
	}

	common := make([]string, 0, len(commonWords))
	for _, w := range commonWords {
		if len(w) == lexicon.WordLength() && lexicon.Has(w) {
			common = append(common, w)
		}
	}

	s.state.Store(&loaded{lexicon: lexicon, common: common})
	lexiconWords.Set(float64(lexicon.Len()))
	s.logger.Info("Loaded lexicon",
		slog.Int("words", lexicon.Len()),
		slog.Int("word_length", lexicon.WordLength()),
		slog.Int("common_words", len(common)))
	return nil
}

// IsReady reports whether a lexicon has been loaded.
func (s *Solver) IsReady() bool {
	return s.state.Load() != nil
}

// Size returns the number of words in the loaded lexicon, or 0 before loading.
func (s *Solver) Size() int {
	st := s.state.Load()
	if st == nil {
		return 0
	}
	return st.lexicon.Len()
}

// WordLength returns the word length of the loaded lexicon, or 0 before loading.
func (s *Solver) WordLength() int {
	st := s.state.Load()
	if st == nil {
		return 0
	}
	return st.lexicon.WordLength()
}

// Lexicon returns the loaded lexicon, or nil before loading.
func (s *Solver) Lexicon() *primitives.Lexicon {
	st := s.state.Load()
	if st == nil {
		return nil
	}
	return st.lexicon
}

// CommonWords returns the common words retained for sampling.
func (s *Solver) CommonWords() []string {
	st := s.state.Load()
	if st == nil {
		return nil
	}
	return append([]string(nil), st.common...)
}

// Path finds a shortest ladder from start to end with a breadth-first search.
//
// An empty start or end yields the zero Path without searching. Words whose length differs from
// the lexicon's, or that hold anything but the letters a-z, fail with ErrInvalidParameter. Calls
// before loading fail with ErrNotReady.
// When the words are not connected the zero Path is returned with a nil error.
//
// Path runs to completion; it visits at most every word of the lexicon.
func (s *Solver) Path(start, end string) (Path, error) {
	st := s.state.Load()
	if st == nil {
		pathQueries.WithLabelValues("not_ready").Inc()
		return Path{}, newError(KindNotReady, "path", ErrNotReady.Detail, nil)
	}
	if start == "" || end == "" {
		pathQueries.WithLabelValues("not_found").Inc()
		return Path{}, nil
	}
	if n := st.lexicon.WordLength(); !validWord(start, n) || !validWord(end, n) {
		pathQueries.WithLabelValues("invalid").Inc()
		return Path{}, newError(KindInvalidParameter, "path", wordLengthDetail(n), nil)
	}

	began := time.Now()
	srch := newSearch(st.lexicon, end)
	h, found := srch.run(start)
	pathDuration.Observe(time.Since(began).Seconds())
	pathVisited.Observe(float64(len(srch.nodes)))

	if !found {
		pathQueries.WithLabelValues("not_found").Inc()
		s.logger.Debug("No ladder", slog.String("start", start), slog.String("end", end),
			slog.Int("visited", len(srch.nodes)))
		return Path{}, nil
	}
	pathQueries.WithLabelValues("found").Inc()
	return NewPath(srch.pathTo(h)), nil
}

// validWord reports whether word is n letters from a to z.
func validWord(word string, n int) bool {
	if len(word) != n {
		return false
	}
	for _, r := range word {
		if !primitives.IsLetter(r) {
			return false
		}
	}
	return true
}

func wordLengthDetail(n int) string {
	return fmt.Sprintf("words must be of length %d and use only the letters a-z", n)
}

// RandomCommonWordPair samples pairs of common words until one is connected, and returns it.
//
// With a common list holding no connected pair this never returns on its own; bound it with ctx,
// whose error is returned on cancellation. An empty common list fails with ErrNoElements.
func (s *Solver) RandomCommonWordPair(ctx context.Context) (Pair, error) {
	ctx, span := tracer.Start(ctx, "Solver.RandomCommonWordPair")
	defer span.End()

	st := s.state.Load()
	if st == nil {
		return Pair{}, newError(KindNotReady, "random pair", ErrNotReady.Detail, nil)
	}
	if len(st.common) == 0 {
		return Pair{}, newError(KindNoElements, "random pair", fmt.Sprintf("no common words of length %d", st.lexicon.WordLength()), nil)
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return Pair{}, err
		}

		one, two := s.sample(st.common), s.sample(st.common)
		p, err := s.Path(one, two)
		if err != nil && !errors.Is(err, ErrInvalidParameter) {
			return Pair{}, err
		}
		if p.Found() {
			randomPairAttempts.Observe(float64(attempt))
			span.SetAttributes(attribute.Int("ladder.attempts", attempt), attribute.Int("ladder.steps", p.Steps()))
			return Pair{One: one, Two: two, Path: p}, nil
		}
	}
}

func (s *Solver) sample(words []string) string {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return words[s.rand.IntN(len(words))]
}
