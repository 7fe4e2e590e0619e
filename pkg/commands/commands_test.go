package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/gtfs-extract/pkg/columnar"
	"github.com/urfave/cli/v2"
)

var sampleFeed = filepath.Join("..", "..", "testdata", "sample")

func runApp(t *testing.T, args ...string) error {
	t.Helper()

	app := &cli.App{
		Name: "gtfs-extract",
		Commands: []*cli.Command{
			RegisterExtractCLI(),
			RegisterInfoCLI(),
			RegisterTablesCLI(),
		},
	}

	return app.Run(append([]string{"gtfs-extract"}, args...))
}

func readDocument(t *testing.T, path string) columnar.Document {
	t.Helper()

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	var document columnar.Document
	require.NoError(t, json.Unmarshal(contents, &document))

	return document
}

func TestExtractCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "gtfs.json")

	err := runApp(t, "extract", "--source", sampleFeed, "--start", "2017-05-12", "--end", "2017-05-18", "--output", output)
	require.NoError(t, err)

	document := readDocument(t, output)

	assert.Equal(t, []string{"Hauptbahnhof, Gleis 1", "Alexanderplatz", "Zoologischer Garten", "Ostbahnhof"}, document.Stops.Name)
	assert.Equal(t, []string{"100", "S5"}, document.Routes.Name)
	assert.Equal(t, [][]int{{0, 3, 4, 5, 6}, {1, 2}}, document.Services.Dates)
	assert.Equal(t, [][]int{{2, 0, 1}, {1, 0, 2}, {0, 1, 3}}, document.Trips.Stops)
	assert.Equal(t, []int{0, 0, 1}, document.Trips.Route)
	assert.Equal(t, []int{0, 1, 0}, document.Trips.Service)
}

func TestExtractCommandLengthAndFilter(t *testing.T) {
	output := filepath.Join(t.TempDir(), "gtfs.json")

	err := runApp(t, "extract", "--source", sampleFeed, "--start", "2017-05-13", "--length", "P2D", "--route-filter", "route_type == 3", "--output", output, "--indent")
	require.NoError(t, err)

	document := readDocument(t, output)

	assert.Equal(t, []string{"100"}, document.Routes.Name)
	assert.Equal(t, [][]int{{0, 1}}, document.Services.Dates)
	assert.Equal(t, [][]int{{1, 0, 2}}, document.Trips.Stops)
	assert.Equal(t, []string{"Hauptbahnhof, Gleis 1", "Alexanderplatz", "Zoologischer Garten"}, document.Stops.Name)
}

func TestExtractCommandRegisteredFeed(t *testing.T) {
	feedsDirectory := t.TempDir()
	absoluteFeed, err := filepath.Abs(sampleFeed)
	require.NoError(t, err)

	registered := "identifier: sample\nsource: " + absoluteFeed + "\nwindow:\n  start: \"2017-05-13\"\n  end: \"2017-05-14\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(feedsDirectory, "sample.yaml"), []byte(registered), 0o644))

	output := filepath.Join(t.TempDir(), "gtfs.json")
	err = runApp(t, "extract", "--feed", "sample", "--feeds-directory", feedsDirectory, "--output", output)
	require.NoError(t, err)

	document := readDocument(t, output)
	assert.Equal(t, [][]int{{0, 1}}, document.Services.Dates)

	err = runApp(t, "extract", "--feed", "missing", "--feeds-directory", feedsDirectory, "--output", output)
	assert.Error(t, err)
}

func TestExtractCommandErrors(t *testing.T) {
	output := filepath.Join(t.TempDir(), "gtfs.json")

	assert.Error(t, runApp(t, "extract", "--output", output))
	assert.Error(t, runApp(t, "extract", "--source", sampleFeed, "--feed", "sample", "--output", output))
	assert.Error(t, runApp(t, "extract", "--source", sampleFeed, "--start", "12.05.2017", "--output", output))
	assert.Error(t, runApp(t, "extract", "--source", sampleFeed, "--start", "2017-05-12", "--end", "2017-05-13", "--length", "P1D", "--output", output))
	assert.Error(t, runApp(t, "extract", "--source", filepath.Join(t.TempDir(), "missing"), "--output", output))

	// Nothing is written when loading or extracting fails
	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestInfoCommand(t *testing.T) {
	assert.NoError(t, runApp(t, "info", "--source", sampleFeed, "--verbose"))
	assert.NoError(t, runApp(t, "tables"))
}

func TestEncodeDocument(t *testing.T) {
	var compact, indented bytes.Buffer

	require.NoError(t, encodeDocument(&compact, &columnar.Document{}, false))
	require.NoError(t, encodeDocument(&indented, &columnar.Document{}, true))

	assert.NotContains(t, compact.String(), "\n  ")
	assert.Contains(t, indented.String(), "\n  \"stops\": null")
	assert.JSONEq(t, compact.String(), indented.String())
}

type failingCloser struct {
	bytes.Buffer
}

func (f *failingCloser) Close() error {
	return errors.New("no space left on device")
}

func TestWriteDocumentCloseError(t *testing.T) {
	output := &failingCloser{}

	originalCreate := createOutput
	createOutput = func(string) (io.WriteCloser, error) {
		return output, nil
	}
	defer func() { createOutput = originalCreate }()

	err := writeDocument("gtfs.json", &columnar.Document{}, false)
	assert.EqualError(t, err, "no space left on device")
	assert.NotZero(t, output.Len())
}

func TestWriteDocumentFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "gtfs.json")

	require.NoError(t, writeDocument(output, &columnar.Document{}, false))

	document := readDocument(t, output)
	assert.Nil(t, document.Trips)
}
