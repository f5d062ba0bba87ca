package main

import (
	"context"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"ngo-directory-service/internal/adapters/repositories"
	"ngo-directory-service/internal/config"
	"ngo-directory-service/internal/platform/db"
	"ngo-directory-service/internal/platform/logger"
)

type Options struct {
	Logger   logger.Options  `group:"Logger options"`
	Database config.Database `group:"Database options"`

	SeedPath string `long:"seed"    env:"SEED_PATH" description:"JSON seed file"        default:"data/seeds/ngos.json"`
	NoSeed   bool   `long:"no-seed"                 description:"Only create the schema"`
}

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

	if strings.TrimSpace(opts.Database.URL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, opts.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer conn.Close()

	log.Info().Msg("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatal().Err(err).Msg("Schema initialization failed")
	}
	log.Info().Msg("Schema ready.")

	if opts.NoSeed {
		return
	}

	log.Info().Str("path", opts.SeedPath).Msg("Seeding database...")
	if err := repositories.SeedFromJSON(ctx, conn, opts.SeedPath); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
	log.Info().Msg("Seeding complete.")
}
