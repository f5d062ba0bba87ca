// Command ngoctl is the volunteer and organizer client of the NGO registry.
//
//	ngoctl nearby   [--lat --lng]          NGOs ordered by distance
//	ngoctl show     ID                     one NGO in full
//	ngoctl resolve  --lat --lng            reverse geocode a point
//	ngoctl register --name ... --lat --lng register a new NGO
//
// Negative coordinates must be attached to their flag: --lat=-23.55.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"ngo-directory-service/internal/config"
	"ngo-directory-service/internal/platform/logger"
)

type Options struct {
	Logger   logger.Options  `group:"Logger options"`
	Registry config.Registry `group:"Registry options"`
	Geocoder config.Geocoder `group:"Geocoder options"`
	Database config.Database `group:"Database options (postgres geocode cache)"`
	Region   config.Region   `group:"Default region options"`
}

// app is shared by every subcommand; options are filled in by the parser
// before a command executes.
type app struct {
	ctx  context.Context
	out  io.Writer
	opts Options
}

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	a := &app{ctx: ctx, out: out}

	parser := flags.NewParser(&a.opts, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		a.opts.Logger.Setup()
		return cmd.Execute(args)
	}

	commands := []struct {
		name, short, long string
		cmd               any
	}{
		{"nearby", "List NGOs by distance", "Ranks every registered NGO by distance from your position or the default region.", &nearbyCommand{app: a}},
		{"show", "Show one NGO", "Prints every field of the NGO with the given id.", &showCommand{app: a}},
		{"resolve", "Reverse geocode a point", "Prints the street address the geocoder reports for a coordinate.", &resolveCommand{app: a}},
		{"register", "Register a new NGO", "Builds a registration draft from the flags and submits it to the registry.", &registerCommand{app: a}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.cmd); err != nil {
			return err
		}
	}

	_, err := parser.ParseArgs(args)
	return err
}
