// Command ladder compiles word lists into lexicons and answers word ladder queries.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"crosswarped.com/ladder"
	"crosswarped.com/ladder/internal/store"
	"crosswarped.com/ladder/pkg/source"
)

var (
	debug     bool
	storePath string
)

// newRootCmd builds the command tree. Flag variables are reset to their defaults on every call.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ladder",
		Short:         "Compile dictionaries and solve word ladders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Path of the badger lexicon store")

	rootCmd.AddCommand(newCompileCmd(), newPathCmd(), newRandomCmd(), newServeCmd())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openStore opens the lexicon store when one is configured. The returned close function is
// always safe to call.
func openStore(cfg store.Config) (*store.Store, func(), error) {
	if cfg.Path == "" && !cfg.InMemory {
		return nil, func() {}, nil
	}
	st, err := store.Open(cfg)
	if err != nil {
		return nil, func() {}, err
	}
	return st, func() {
		if err := st.Close(); err != nil {
			slog.Warn("Failed to close the lexicon store", slog.Any("error", err))
		}
	}, nil
}

// parseSource resolves uri, accepting store:// URIs when st is set.
func parseSource(uri string, st *store.Store) (source.Source, error) {
	var opts []source.Option
	if st != nil {
		opts = append(opts, source.WithScheme(store.Scheme, st.Resolver()))
	}
	return source.Parse(uri, opts...)
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		now := time.Now()
		return rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Nanosecond())))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// loadSolver builds a solver over the dictionary and optional common word list.
func loadSolver(ctx context.Context, st *store.Store, dictionary, common string, seed uint64) (*ladder.Solver, error) {
	dict, err := parseSource(dictionary, st)
	if err != nil {
		return nil, err
	}
	var commonSrc source.Source
	if common != "" {
		if commonSrc, err = parseSource(common, st); err != nil {
			return nil, err
		}
	}

	solver := ladder.CreateSolver(newRand(seed), ladder.SolverParams{Logger: slog.Default()})
	if err := solver.Load(ctx, dict, commonSrc); err != nil {
		return nil, err
	}
	return solver, nil
}
