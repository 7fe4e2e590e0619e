package commands

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/gtfs-extract/pkg/schema"
	"github.com/urfave/cli/v2"
)

func RegisterInfoCLI() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "Validate a feed and describe its contents",
		Flags: append(FeedFlags(),
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "print the full feed summary",
			},
		),
		Action: func(c *cli.Context) error {
			gtfsFeed, _, err := OpenFeed(c)
			if err != nil {
				return err
			}

			summary := gtfsFeed.Summary()

			for _, agency := range summary.Agencies {
				log.Info().Str("id", agency.ID).Str("name", agency.Name).Str("timezone", agency.Timezone).Msg("Agency")
			}
			for _, format := range schema.Formats() {
				if count, exists := summary.Tables[format.ID]; exists {
					log.Info().Str("table", format.ID).Int("rows", count).Msg("Table")
				}
			}

			if c.Bool("verbose") {
				pretty.Println(summary)
			}

			return nil
		},
	}
}

func RegisterTablesCLI() *cli.Command {
	return &cli.Command{
		Name:  "tables",
		Usage: "List the tables and columns a feed may contain",
		Action: func(c *cli.Context) error {
			for _, format := range schema.Formats() {
				required := "optional"
				if format.Required {
					required = "required"
				}

				fmt.Printf("%s (%s)\n  %s\n", format.FileName(), required, format.Description)
				for _, field := range format.Fields {
					marker := " "
					if field.Required {
						marker = "*"
					}
					fmt.Printf("  %s %s %s\n", marker, field.ID, field.Type)
				}
			}

			return nil
		},
	}
}
