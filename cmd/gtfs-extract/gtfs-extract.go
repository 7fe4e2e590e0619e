package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/gtfs-extract/pkg/api"
	"github.com/travigo/gtfs-extract/pkg/commands"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("GTFS_EXTRACT_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("GTFS_EXTRACT_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "gtfs-extract",
		Description: "Restricts a static GTFS feed to a date window and writes what still runs as columnar JSON",

		Commands: []*cli.Command{
			commands.RegisterExtractCLI(),
			commands.RegisterInfoCLI(),
			commands.RegisterTablesCLI(),
			api.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
