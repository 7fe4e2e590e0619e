package api

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/gtfs-extract/pkg/api/routes"
	"github.com/travigo/gtfs-extract/pkg/commands"
	"github.com/travigo/gtfs-extract/pkg/extractor"
	"github.com/travigo/gtfs-extract/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve extractions of a feed over HTTP",
		Flags: append(commands.FeedFlags(),
			&cli.StringFlag{
				Name:    "listen",
				Value:   ":8080",
				Usage:   "listen target for the web server",
				EnvVars: []string{"GTFS_EXTRACT_LISTEN"},
			},
			&cli.BoolFlag{
				Name:    "cache",
				Usage:   "cache extraction results in redis",
				EnvVars: []string{"GTFS_EXTRACT_CACHE"},
			},
			&cli.DurationFlag{
				Name:  "cache-expiration",
				Value: 90 * time.Minute,
				Usage: "how long cached extraction results are kept",
			},
		),
		Action: func(c *cli.Context) error {
			gtfsFeed, registered, err := commands.OpenFeed(c)
			if err != nil {
				return err
			}

			options := extractor.Options{RouteFilter: c.String("route-filter")}
			if options.RouteFilter == "" && registered != nil {
				options.RouteFilter = registered.RouteFilter
			}

			feedExtractor, err := extractor.New(gtfsFeed, options)
			if err != nil {
				return err
			}

			var resultCache routes.ResultCache
			if c.Bool("cache") {
				if err := redis_client.Connect(); err != nil {
					return err
				}
				resultCache = NewResultCache(c.Duration("cache-expiration"))
			}

			log.Info().Str("listen", c.String("listen")).Str("feed", gtfsFeed.Source).Msg("Starting web server")

			return SetupServer(c.String("listen"), feedExtractor, resultCache)
		},
	}
}
