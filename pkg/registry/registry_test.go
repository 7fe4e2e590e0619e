package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/gtfs-extract/pkg/feed/source"
)

func writeFile(t *testing.T, directory string, name string, contents string) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(directory, name), []byte(contents), 0o644))
}

func TestLoad(t *testing.T) {
	directory := t.TempDir()
	writeFile(t, directory, "a.yaml", `
identifier: first
provider:
  name: First Transit
  website: https://example.com
source: https://example.com/gtfs.zip
window:
  length: P3D
routefilter: route_type == 3
---
identifier: second
source: /srv/gtfs
`)
	writeFile(t, directory, "ignored.txt", "identifier: nope")

	feeds, err := Load(directory)
	require.NoError(t, err)
	require.Len(t, feeds, 2)

	assert.Equal(t, "first", feeds[0].Identifier)
	assert.Equal(t, "First Transit", feeds[0].Provider.Name)
	assert.Equal(t, "P3D", feeds[0].Window.Length)
	assert.Equal(t, "route_type == 3", feeds[0].RouteFilter)

	registeredFeed, exists := Find(feeds, "second")
	require.True(t, exists)
	assert.Equal(t, "/srv/gtfs", registeredFeed.Source)

	_, exists = Find(feeds, "third")
	assert.False(t, exists)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{name: "missing source", contents: "identifier: a"},
		{name: "missing identifier", contents: "source: /srv/gtfs"},
		{name: "bad length", contents: "identifier: a\nsource: /srv\nwindow:\n  length: 3 days"},
		{name: "bad start", contents: "identifier: a\nsource: /srv\nwindow:\n  start: 20170512"},
		{name: "end and length", contents: "identifier: a\nsource: /srv\nwindow:\n  end: \"2017-05-12\"\n  length: P1D"},
		{name: "duplicate", contents: "identifier: a\nsource: /srv\n---\nidentifier: a\nsource: /srv"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			directory := t.TempDir()
			writeFile(t, directory, "feeds.yaml", test.contents)

			_, err := Load(directory)
			assert.Error(t, err)
		})
	}
}

func TestLoadRepositoryFeeds(t *testing.T) {
	feeds, err := Load(filepath.Join("..", "..", DefaultDirectory))
	require.NoError(t, err)
	assert.NotEmpty(t, feeds)
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2024, time.March, 1, 15, 30, 0, 0, time.UTC)
	registeredFeed := Feed{Window: Window{Length: "P7D"}}

	start, end, err := registeredFeed.ResolveWindow("", "", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC), end)

	start, end, err = registeredFeed.ResolveWindow("2017-05-12", "2017-05-12", "", now)
	require.NoError(t, err)
	assert.Equal(t, start, end)
}

func TestOpenSource(t *testing.T) {
	t.Setenv("FEED_KEY", "secret")

	registeredFeed := Feed{
		Source: "https://example.com/gtfs.zip",
		SourceAuthentication: SourceAuthentication{
			Query:  map[string]string{"key": "$FEED_KEY"},
			Header: map[string]string{"x-api-key": "plain"},
		},
	}

	feedSource, err := registeredFeed.OpenSource()
	require.NoError(t, err)

	urlSource, ok := feedSource.(*source.URL)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/gtfs.zip?key=secret", urlSource.Address)
	assert.Equal(t, map[string]string{"x-api-key": "plain"}, urlSource.Headers)

	directorySource, err := (&Feed{Source: t.TempDir()}).OpenSource()
	require.NoError(t, err)
	assert.IsType(t, &source.Directory{}, directorySource)
}
