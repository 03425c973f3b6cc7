package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"crosswarped.com/ladder/internal/api"
	"crosswarped.com/ladder/internal/config"
)

var configPath string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve ladder queries over HTTP",
		Long: `Serve loads the configured dictionary in the background and answers
/v1/ladder/* queries. Queries answer 503 until the dictionary is loaded.

Without --config the settings come from LADDER_DICTIONARY, LADDER_COMMON_WORDS,
LADDER_STORE_PATH, LADDER_SEED and PORT.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}
	if !cfg.Debug && !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	svc, err := api.NewService(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := cmd.Context()
	svc.LoadAsync(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           svc.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		slog.Info("Listening", slog.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
