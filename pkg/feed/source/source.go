// Package source reads the raw text of GTFS table files from wherever a feed lives.
package source

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Source returns the text of the named files. Files the feed does not contain are simply
// absent from the returned map.
type Source interface {
	fmt.Stringer
	ReadFiles(names []string) (map[string]string, error)
}

// New picks the source type for a location: an http(s) URL to a zip, a .zip file or a
// directory of .txt files.
func New(location string) (Source, error) {
	if isValidUrl(location) {
		return &URL{Address: location}, nil
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return &Directory{Path: location}, nil
	}

	if strings.EqualFold(filepath.Ext(location), ".zip") {
		return &Zip{Path: location}, nil
	}

	return nil, errors.New(fmt.Sprintf("Unsupported feed location %s", location))
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Host == "" {
		return false
	}

	return u.Scheme == "http" || u.Scheme == "https"
}
