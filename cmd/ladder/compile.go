package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strconv"

	"github.com/spf13/cobra"

	"crosswarped.com/ladder/internal"
	"crosswarped.com/ladder/internal/store"
	"crosswarped.com/ladder/pkg/primitives"
	"crosswarped.com/ladder/pkg/source"
)

var (
	excludedURI string
	outDir      string
	profileFile string
)

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <word-list> <length>",
		Short: "Compile a word list into a <length>-letter.json lexicon",
		Long: `Compile keeps the words of the given length, computes the substitution mask of
every wildcard pattern and writes the lexicon to <out-dir>/<length>-letter.json.

The word list is a path or URI: file://, http(s)://, gs://bucket/object or
bigquery://project/dataset.table?scope=<scope>.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompile,
	}
	cmd.Flags().StringVar(&excludedURI, "excluded", "", "Word list to leave out of the lexicon")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory the lexicon file is written to")
	cmd.Flags().StringVar(&profileFile, "cpu-profile", "", "Write a CPU profile of the compilation to this file")
	return cmd
}

func parseLength(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("length must be a positive integer, got %q", arg)
	}
	return n, nil
}

func runCompile(cmd *cobra.Command, args []string) error {
	wordLength, err := parseLength(args[1])
	if err != nil {
		cmd.SilenceUsage = false
		return err
	}
	ctx := cmd.Context()

	words, err := loadWordList(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load words from %s: %w", args[0], err)
	}
	var excluded []string
	if excludedURI != "" {
		if excluded, err = loadWordList(ctx, excludedURI); err != nil {
			return fmt.Errorf("failed to load excluded words from %s: %w", excludedURI, err)
		}
	}
	slog.Info("Loaded word lists", slog.Int("words", len(words)), slog.Int("excluded", len(excluded)))

	if profileFile != "" {
		f, err := os.Create(profileFile)
		if err != nil {
			return fmt.Errorf("failed to create the profile file: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("failed to start the CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	lex, err := internal.Compile(ctx, internal.CompileParams{
		Words:         words,
		ExcludedWords: excluded,
		WordLength:    wordLength,
	})
	if err != nil {
		return err
	}
	if lex.Len() == 0 {
		slog.Warn("No words of the requested length", slog.Int("length", wordLength))
	}

	out := filepath.Join(outDir, internal.FileName(wordLength))
	if err := writeLexicon(out, lex); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d words to %s\n", lex.Len(), out)

	if storePath == "" || lex.Len() == 0 {
		return nil
	}
	st, closeStore, err := openStore(store.DefaultConfig(storePath))
	if err != nil {
		return err
	}
	defer closeStore()
	if err := st.Put(lex); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stored lexicon as %s://%d\n", store.Scheme, wordLength)
	return nil
}

func loadWordList(ctx context.Context, uri string) ([]string, error) {
	src, err := source.Parse(uri)
	if err != nil {
		return nil, err
	}
	return source.LoadWords(ctx, src)
}

// writeLexicon replaces path with the encoded lexicon via a rename.
func writeLexicon(path string, lex *primitives.Lexicon) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".lexicon-*")
	if err != nil {
		return fmt.Errorf("failed to create the lexicon file: %w", err)
	}
	defer os.Remove(f.Name())

	if err := primitives.EncodeLexicon(f, lex); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode the lexicon: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
