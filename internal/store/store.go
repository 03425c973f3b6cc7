// Package store keeps compiled lexicons in BadgerDB, one per word length, so a solver can load
// a lexicon without recompiling or fetching it again.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"crosswarped.com/ladder/pkg/primitives"
	"crosswarped.com/ladder/pkg/source"
)

// Scheme is the URI scheme resolved by Store.Resolver, as in "store://4".
const Scheme = "store"

const keyPrefix = "lexicon/"

var (
	// ErrNotFound is returned when no lexicon is stored for a word length.
	ErrNotFound = errors.New("lexicon not found")

	// ErrEmptyLexicon is returned when storing a lexicon with no words.
	ErrEmptyLexicon = errors.New("cannot store an empty lexicon")
)

// Config holds configuration for the lexicon store.
type Config struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in memory. Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger receives BadgerDB's internal logging. If nil, it is disabled.
	Logger *slog.Logger
}

func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		SyncWrites: true,
	}
}

func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Store is a BadgerDB-backed collection of compiled lexicons. It is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens the store described by cfg. The caller must Close it.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for a persistent store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func key(wordLength int) []byte {
	return []byte(keyPrefix + strconv.Itoa(wordLength))
}

// Put stores lex under its word length, replacing any previous lexicon of that length.
func (s *Store) Put(lex *primitives.Lexicon) error {
	if lex == nil || lex.Len() == 0 {
		return ErrEmptyLexicon
	}
	var buf bytes.Buffer
	if err := primitives.EncodeLexicon(&buf, lex); err != nil {
		return fmt.Errorf("encode lexicon: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(lex.WordLength()), buf.Bytes())
	})
}

// raw returns the stored JSON for a word length.
func (s *Store) raw(wordLength int) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(wordLength))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: length %d", ErrNotFound, wordLength)
		}
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	return data, err
}

// Get returns the lexicon stored for wordLength.
func (s *Store) Get(wordLength int) (*primitives.Lexicon, error) {
	data, err := s.raw(wordLength)
	if err != nil {
		return nil, err
	}
	return primitives.DecodeLexicon(bytes.NewReader(data))
}

// Lengths lists the stored word lengths in increasing order.
func (s *Store) Lengths() ([]int, error) {
	var lengths []int
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n, err := strconv.Atoi(strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
			if err != nil {
				continue
			}
			lengths = append(lengths, n)
		}
		return nil
	})
	slices.Sort(lengths)
	return lengths, err
}

// Source returns a source.Source reading the lexicon stored for wordLength.
func (s *Store) Source(wordLength int) source.Source {
	return lexiconSource{store: s, wordLength: wordLength}
}

// Resolver resolves "store://<length>" URIs for source.Parse.
func (s *Store) Resolver() source.Resolver {
	return func(u *url.URL) (source.Source, error) {
		n, err := strconv.Atoi(u.Host)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("store URI %q must name a positive word length", u.String())
		}
		return s.Source(n), nil
	}
}

type lexiconSource struct {
	store      *Store
	wordLength int
}

func (l lexiconSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := l.store.raw(l.wordLength)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (l lexiconSource) String() string {
	return fmt.Sprintf("%s://%d", Scheme, l.wordLength)
}
