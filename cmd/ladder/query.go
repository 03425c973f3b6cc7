package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"crosswarped.com/ladder"
	"crosswarped.com/ladder/internal/store"
)

var (
	dictionaryURI string
	commonURI     string
	seed          uint64
	timeout       time.Duration
	verbose       bool
)

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&dictionaryURI, "dictionary", "", "Compiled lexicon path or URI (store://<length> reads from --store)")
	cmd.MarkFlagRequired("dictionary")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every step of the ladder on its own line")
}

func newPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path <start> <end>",
		Short: "Print the shortest word ladder between two words",
		Args:  cobra.ExactArgs(2),
		RunE:  runPath,
	}
	addQueryFlags(cmd)
	return cmd
}

func newRandomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print a random pair of common words and the ladder between them",
		Args:  cobra.NoArgs,
		RunE:  runRandom,
	}
	addQueryFlags(cmd)
	cmd.Flags().StringVar(&commonURI, "common", "", "Common word list path or URI")
	cmd.MarkFlagRequired("common")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (0 seeds from the clock)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Give up looking for a connected pair after this long")
	return cmd
}

func runPath(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore(store.DefaultConfig(storePath))
	if err != nil {
		return err
	}
	defer closeStore()

	solver, err := loadSolver(cmd.Context(), st, dictionaryURI, "", 0)
	if err != nil {
		return err
	}
	p, err := solver.Path(args[0], args[1])
	if err != nil {
		return err
	}
	slog.Debug("Path query", slog.String("path", p.DebugString()))

	out := cmd.OutOrStdout()
	if !p.Found() {
		fmt.Fprintf(out, "No ladder from %s to %s\n", args[0], args[1])
		return nil
	}
	printPath(out, p)
	return nil
}

func runRandom(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore(store.DefaultConfig(storePath))
	if err != nil {
		return err
	}
	defer closeStore()

	solver, err := loadSolver(cmd.Context(), st, dictionaryURI, commonURI, seed)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	pair, err := solver.RandomCommonWordPair(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s, %s\n", pair.One, pair.Two)
	printPath(out, pair.Path)
	return nil
}

func printPath(w io.Writer, p ladder.Path) {
	if !verbose {
		fmt.Fprintf(w, "%s (%d steps)\n", p.Repr(), p.Steps())
		return
	}
	for i, word := range p.Words() {
		fmt.Fprintf(w, "%2d  %s\n", i, word)
	}
}
