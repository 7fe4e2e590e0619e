// Package registry loads the feeds registered in YAML files.
package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"gopkg.in/yaml.v3"
)

const DefaultDirectory = "data/feeds/"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("iso8601duration", func(fl validator.FieldLevel) bool {
		_, err := iso8601.ParseISO8601(fl.Field().String())
		return err == nil
	})

	return v
}

// Load reads every .yaml file below directory. A file may hold several feed documents.
func Load(directory string) ([]Feed, error) {
	var feeds []Feed
	seen := map[string]string{}

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading feeds file")

			feedsYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoded, err := decode(feedsYaml)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			for _, registeredFeed := range decoded {
				if previous, exists := seen[registeredFeed.Identifier]; exists {
					return fmt.Errorf("%s: feed %s is already registered in %s", path, registeredFeed.Identifier, previous)
				}
				seen[registeredFeed.Identifier] = path

				feeds = append(feeds, registeredFeed)
			}

			return nil
		})
	if err != nil {
		return nil, err
	}

	return feeds, nil
}

func decode(feedsYaml []byte) ([]Feed, error) {
	var feeds []Feed

	decoder := yaml.NewDecoder(bytes.NewReader(feedsYaml))
	for {
		var registeredFeed Feed
		err := decoder.Decode(&registeredFeed)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if err := validate.Struct(registeredFeed); err != nil {
			return nil, fmt.Errorf("feed %q: %w", registeredFeed.Identifier, err)
		}

		feeds = append(feeds, registeredFeed)
	}

	return feeds, nil
}

// Find returns the feed with the identifier.
func Find(feeds []Feed, identifier string) (*Feed, bool) {
	for i := range feeds {
		if feeds[i].Identifier == identifier {
			return &feeds[i], true
		}
	}

	return nil, false
}
