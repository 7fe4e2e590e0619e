// Package commands holds the command line commands working on a single feed.
package commands

import (
	"errors"
	"fmt"

	"github.com/travigo/gtfs-extract/pkg/feed"
	"github.com/travigo/gtfs-extract/pkg/feed/source"
	"github.com/travigo/gtfs-extract/pkg/registry"
	"github.com/urfave/cli/v2"
)

// FeedFlags selects a feed either by location or by registered identifier.
func FeedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "source",
			Usage:   "feed directory, zip archive or http(s) URL of a zip archive",
			EnvVars: []string{"GTFS_EXTRACT_SOURCE"},
		},
		&cli.StringFlag{
			Name:    "feed",
			Usage:   "identifier of a registered feed",
			EnvVars: []string{"GTFS_EXTRACT_FEED"},
		},
		&cli.StringFlag{
			Name:    "feeds-directory",
			Value:   registry.DefaultDirectory,
			Usage:   "directory of registered feed definitions",
			EnvVars: []string{"GTFS_EXTRACT_FEEDS_DIRECTORY"},
		},
		&cli.StringFlag{
			Name:    "route-filter",
			Usage:   "only extract routes matching this expression, e.g. 'route_type == 3'",
			EnvVars: []string{"GTFS_EXTRACT_ROUTE_FILTER"},
		},
	}
}

// OpenFeed loads the feed chosen by FeedFlags. The registered feed is nil when the feed
// was given by --source.
func OpenFeed(c *cli.Context) (*feed.Feed, *registry.Feed, error) {
	var feedSource source.Source
	var registered *registry.Feed

	switch {
	case c.String("feed") != "" && c.String("source") != "":
		return nil, nil, errors.New("only one of --feed and --source may be given")
	case c.String("feed") != "":
		feeds, err := registry.Load(c.String("feeds-directory"))
		if err != nil {
			return nil, nil, err
		}

		var exists bool
		registered, exists = registry.Find(feeds, c.String("feed"))
		if !exists {
			return nil, nil, fmt.Errorf("unknown feed %s", c.String("feed"))
		}

		feedSource, err = registered.OpenSource()
		if err != nil {
			return nil, nil, err
		}
	case c.String("source") != "":
		var err error
		feedSource, err = source.New(c.String("source"))
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, errors.New("one of --feed or --source is required")
	}

	gtfsFeed, err := feed.Load(feedSource)
	if err != nil {
		return nil, nil, err
	}

	return gtfsFeed, registered, nil
}
