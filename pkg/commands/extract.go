package commands

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/gtfs-extract/pkg/columnar"
	"github.com/travigo/gtfs-extract/pkg/extractor"
	"github.com/travigo/gtfs-extract/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterExtractCLI() *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "Extract the services running within a date window into a columnar JSON document",
		Flags: append(FeedFlags(),
			&cli.StringFlag{
				Name:  "start",
				Usage: "first day of the window (YYYY-MM-DD), defaults to today",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "last day of the window (YYYY-MM-DD), inclusive",
			},
			&cli.StringFlag{
				Name:  "length",
				Usage: "ISO-8601 length of the window instead of --end, e.g. P10D",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "gtfs.json",
				Usage:   "file to write the document to, - for stdout",
			},
			&cli.BoolFlag{
				Name:  "indent",
				Usage: "indent the JSON output",
			},
		),
		Action: func(c *cli.Context) error {
			gtfsFeed, registered, err := OpenFeed(c)
			if err != nil {
				return err
			}

			var startDate, endDate time.Time
			if registered != nil {
				startDate, endDate, err = registered.ResolveWindow(c.String("start"), c.String("end"), c.String("length"), time.Now())
			} else {
				start := c.String("start")
				if start == "" {
					start = time.Now().Format(util.DayLayout)
				}
				startDate, endDate, err = util.ParseWindow(start, c.String("end"), c.String("length"))
			}
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

			document, err := feedExtractor.Extract(startDate, endDate)
			if err != nil {
				return err
			}

			return writeDocument(c.String("output"), document, c.Bool("indent"))
		},
	}
}

var createOutput = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func writeDocument(output string, document *columnar.Document, indent bool) error {
	if output == "-" {
		return encodeDocument(os.Stdout, document, indent)
	}

	file, err := createOutput(output)
	if err != nil {
		return err
	}

	if err := encodeDocument(file, document, indent); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return err
	}

	log.Info().Str("output", output).Msg("Wrote document")

	return nil
}

func encodeDocument(destination io.Writer, document *columnar.Document, indent bool) error {
	encoder := json.NewEncoder(destination)
	if indent {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(document)
}
