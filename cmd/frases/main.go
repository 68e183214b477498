package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/frases/internal/config"
	"github.com/deppfellow/frases/internal/handler"
	"github.com/deppfellow/frases/internal/logger"
	"github.com/deppfellow/frases/internal/repository"
	"github.com/deppfellow/frases/internal/router"
	"github.com/deppfellow/frases/internal/server"
	"github.com/deppfellow/frases/internal/service"
)

// DefaultContextTimeout bounds graceful shutdown.
const DefaultContextTimeout = 30 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:           "frases",
		Short:         "HTTP API over the frases, personajes and capitulos tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load() > %w", err)
	}

	log := logger.New(cfg)

	srv, err := server.New(cfg, &log)
	if err != nil {
		return fmt.Errorf("server.New() > %w", err)
	}

	repos := repository.NewRepositories(srv.DB.DB.DriverName())
	services := service.NewServices(srv.DB, repos)
	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = srv.DB.Close()
			return fmt.Errorf("server.Start() > %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server.Shutdown() > %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}
