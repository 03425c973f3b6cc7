package api

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/gin-gonic/gin"

	"crosswarped.com/ladder"
	"crosswarped.com/ladder/internal/config"
	"crosswarped.com/ladder/internal/store"
	"crosswarped.com/ladder/pkg/source"
)

// Service is a solver served over HTTP, built from a config.Config. Routes answer 503 until
// Load succeeds.
type Service struct {
	cfg    config.Config
	solver *ladder.Solver
	store  *store.Store
	router *gin.Engine
}

// NewService opens the configured lexicon store and builds an unloaded solver with its routes.
func NewService(cfg config.Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var st *store.Store
	if cfg.Store.Enabled() {
		storeCfg := store.DefaultConfig(cfg.Store.Path)
		if cfg.Store.InMemory {
			storeCfg = store.InMemoryConfig()
		}
		if cfg.Debug {
			storeCfg.Logger = slog.Default()
		}
		var err error
		if st, err = store.Open(storeCfg); err != nil {
			return nil, err
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	solver := ladder.CreateSolver(rand.New(rand.NewPCG(seed, seed>>1)), ladder.SolverParams{
		Logger: slog.Default().With(slog.String("component", "solver")),
	})

	handlers := NewHandlers(solver)
	if cfg.RandomTimeout > 0 {
		handlers.WithRandomTimeout(cfg.RandomTimeout)
	}
	return &Service{
		cfg:    cfg,
		solver: solver,
		store:  st,
		router: NewRouter(handlers),
	}, nil
}

func (s *Service) Solver() *ladder.Solver {
	return s.solver
}

func (s *Service) Router() *gin.Engine {
	return s.router
}

// Store is the configured lexicon store, or nil.
func (s *Service) Store() *store.Store {
	return s.store
}

// parse resolves uri, reporting unusable URIs as ladder.ErrInvalidSource.
func (s *Service) parse(uri string) (source.Source, error) {
	var opts []source.Option
	if s.store != nil {
		opts = append(opts, source.WithScheme(store.Scheme, s.store.Resolver()))
	}
	src, err := source.Parse(uri, opts...)
	if err != nil {
		return nil, &ladder.Error{Kind: ladder.KindInvalidSource, Op: "load", Detail: uri, Err: err}
	}
	return src, nil
}

// Load resolves the configured dictionary and common word list and loads them into the solver.
func (s *Service) Load(ctx context.Context) error {
	dict, err := s.parse(s.cfg.Dictionary)
	if err != nil {
		return err
	}
	var common source.Source
	if s.cfg.CommonWords != "" {
		if common, err = s.parse(s.cfg.CommonWords); err != nil {
			return err
		}
	}
	start := time.Now()
	if err := s.solver.Load(ctx, dict, common); err != nil {
		return err
	}
	slog.Info("Solver ready",
		slog.String("dictionary", dict.String()),
		slog.Int("words", s.solver.Size()),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// LoadAsync runs Load in the background. Failures are logged and leave the solver not ready.
func (s *Service) LoadAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		err := s.Load(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Failed to load the dictionary", slog.String("dictionary", s.cfg.Dictionary), slog.Any("error", err))
		}
		done <- err
		close(done)
	}()
	return done
}

func (s *Service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
