// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/courtline/courtline/internal/config"
	"github.com/courtline/courtline/internal/db"
	"github.com/courtline/courtline/internal/dispatch"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg("No .env file found")
		}
		return config.Default(), nil
	}
	return config.Load(path)
}

func main() {
	var configPath, reserverPlugin string
	flag.StringVar(&configPath, "config", "", "path to the yaml configuration file")
	flag.StringVar(&reserverPlugin, "reserver-plugin", "", "booking authority plugin; without it reservations are stored but never served")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	store, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer store.Close()

	var dispatcher *dispatch.Dispatcher
	if cfg.Dispatch.Enabled && reserverPlugin != "" {
		reserver, err := dispatch.LoadReserver(reserverPlugin)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load reserver plugin")
		}
		dispatcher, err = dispatch.New(store, reserver)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create dispatcher")
		}
		if err := dispatcher.Register(cfg.Dispatch.Cron); err != nil {
			log.Fatal().Err(err).Msg("Failed to register dispatch job")
		}
		dispatcher.Start()
	} else {
		log.Info().Msg("Running without a reserver: reservations can be placed, but none will be served")
	}

	server := newServer(cfg, store)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if dispatcher != nil {
			if err := dispatcher.Stop(); err != nil {
				log.Error().Err(err).Msg("Dispatcher shutdown error")
			}
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
