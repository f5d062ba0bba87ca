package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"ngo-directory-service/internal/adapters/repositories"
	"ngo-directory-service/internal/api"
	"ngo-directory-service/internal/config"
	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/platform/db"
	"ngo-directory-service/internal/platform/logger"
	"ngo-directory-service/internal/ports"
)

type Options struct {
	Logger   logger.Options  `group:"Logger options"`
	Listen   config.Listen   `group:"Listen options"`
	Database config.Database `group:"Database options"`

	SeedPath string `long:"seed" env:"SEED_PATH" description:"JSON seed applied on startup (empty skips seeding)"`
}

// main is the registry composition root.
// It wires the NGO repository (Postgres, or memory without DATABASE_URL) behind the HTTP API.
func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load .env")
	}

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, conn, err := openRepository(ctx, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open NGO repository")
	}
	if conn != nil {
		defer conn.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Timeouts are generous enough for a slow Postgres but keep idle clients bounded.
	srv := &http.Server{
		Addr:              opts.Listen.Address(),
		Handler:           api.NewRouter(repo, reg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}()

	log.Info().
		Str("addr", srv.Addr).
		Bool("postgres", conn != nil).
		Msg("Registry server started")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
	log.Info().Msg("Registry server stopped")
}

func openRepository(ctx context.Context, opts Options) (ports.NgoRepository, *sql.DB, error) {
	if opts.Database.URL == "" {
		var seed []domain.NgoRecord
		if opts.SeedPath != "" {
			rows, err := repositories.LoadSeed(opts.SeedPath)
			if err != nil {
				return nil, nil, err
			}
			seed = rows
		}
		log.Warn().Int("seeded", len(seed)).Msg("DATABASE_URL not set, NGOs are kept in memory")
		return repositories.NewMemoryNgoRepository(seed...), nil, nil
	}

	conn, err := db.Open(ctx, opts.Database.URL)
	if err != nil {
		return nil, nil, err
	}

	if err := repositories.InitSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	if opts.SeedPath != "" {
		if err := repositories.SeedFromJSON(ctx, conn, opts.SeedPath); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
	}

	return repositories.NewPostgresNgoRepository(conn), conn, nil
}
