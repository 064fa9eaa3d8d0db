// Command server runs the five-dimensional chess engine behind a JSON API.
// Settings come from -config / CHESS5D_CONFIG, CHESS5D_* variables and flags.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"chess5d/internal/config"
	"chess5d/internal/game"
	"chess5d/internal/httpx"
	"chess5d/internal/position"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	log, err := cfg.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}

	eng, err := newEngine(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("engine init")
	}

	srv := httpx.NewServer(eng, httpx.Options{
		Logger:            log,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(cfg.Addr) }()

	select {
	case err := <-errc:
		if err != nil {
			log.Fatal().Err(err).Msg("http server")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Close(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
		<-errc
	}
}

func newEngine(cfg config.Config, log zerolog.Logger) (*game.Engine, error) {
	opts := []game.Option{game.WithLogger(log.With().Str("component", "game").Logger())}
	if cfg.Position != "" {
		setup, err := position.Load(cfg.Position)
		if err != nil {
			return nil, err
		}
		opts = append(opts, game.WithSetup(setup))
		log.Info().Str("position", cfg.Position).Msg("starting from fixture")
	}
	return game.NewEngine(opts...)
}
