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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/Pitchside/internal/config"
	"github.com/codr1/Pitchside/internal/db"
	"github.com/codr1/Pitchside/internal/ratelimit"
	"github.com/codr1/Pitchside/internal/scheduler"
)

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func configPath() string {
	path := flag.String("config", "", "Path to config.yaml")
	flag.Parse()
	if *path != "" {
		return *path
	}
	if env := os.Getenv("PITCHSIDE_CONFIG"); env != "" {
		return env
	}
	return "config.yaml"
}

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	sched, err := scheduler.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	if _, err := scheduler.RegisterFormRefreshJob(sched, database, cfg.Stats.FormRefreshCron, cfg.Stats.FormWindow); err != nil {
		log.Fatal().Err(err).Msg("Failed to register player form refresh job")
	}
	sched.Start()

	limiter := ratelimit.New(&ratelimit.Config{
		Cooldown:   cfg.RegenerateCooldown(),
		MaxPerHour: ratelimit.DefaultConfig().MaxPerHour,
	})
	defer limiter.Close()

	server := newServer(cfg, database, limiter)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("driver", database.Driver).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := sched.Stop(); err != nil {
			log.Error().Err(err).Msg("Scheduler shutdown error")
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
