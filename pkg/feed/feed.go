package feed

import (
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/gtfs-extract/pkg/delimited"
	"github.com/travigo/gtfs-extract/pkg/extracterrors"
	"github.com/travigo/gtfs-extract/pkg/feed/source"
	"github.com/travigo/gtfs-extract/pkg/schema"
)

// Feed holds every table of a GTFS schedule that was present and valid. Optional tables
// that were not in the feed are absent rather than empty.
type Feed struct {
	Source string

	Agencies []Agency
	Info     []FeedInfo

	tables map[string]*Table
}

// Load reads every known table from the source and validates it.
func Load(src source.Source) (*Feed, error) {
	var names []string
	for _, format := range schema.Formats() {
		names = append(names, format.FileName())
	}

	files, err := src.ReadFiles(names)
	if err != nil {
		return nil, fmt.Errorf("reading feed %s: %w", src, err)
	}

	texts := map[string]string{}
	for _, format := range schema.Formats() {
		if text, exists := files[format.FileName()]; exists {
			texts[format.ID] = text
		}
	}

	gtfsFeed, err := FromFiles(texts)
	if err != nil {
		return nil, err
	}
	gtfsFeed.Source = src.String()

	return gtfsFeed, nil
}

// FromFiles builds a feed from table texts keyed by table id.
func FromFiles(texts map[string]string) (*Feed, error) {
	gtfsFeed := &Feed{
		tables: map[string]*Table{},
	}

	for _, format := range schema.Formats() {
		text, exists := texts[format.ID]
		if !exists {
			if format.Required {
				log.Error().Str("file", format.FileName()).Msg("Missing required table")
				return nil, extracterrors.New(extracterrors.KindMissingRequiredTable, format.ID, "file not found")
			}

			log.Debug().Str("file", format.FileName()).Msg("Optional table missing")
			continue
		}

		log.Debug().Str("file", format.FileName()).Msg("Loading file")

		table, err := LoadTable(format, text)
		if err != nil {
			log.Error().Str("file", format.FileName()).Err(err).Msg("Failed to parse table")
			return nil, err
		}
		gtfsFeed.tables[format.ID] = table

		log.Info().Str("file", format.FileName()).Int("length", len(table.Records)).Msg("Imported entries")
	}

	if err := decodeTable(texts[schema.TableAgency], &gtfsFeed.Agencies); err != nil {
		return nil, fmt.Errorf("decoding agencies: %w", err)
	}
	if text, exists := texts[schema.TableFeedInfo]; exists {
		if err := decodeTable(text, &gtfsFeed.Info); err != nil {
			return nil, fmt.Errorf("decoding feed info: %w", err)
		}
	}

	return gtfsFeed, nil
}

func decodeTable(text string, out interface{}) error {
	return gocsv.UnmarshalCSV(delimited.NewReader(strings.TrimPrefix(text, byteOrderMark)), out)
}

func (f *Feed) Table(id string) (*Table, bool) {
	table, exists := f.tables[id]
	return table, exists
}

// Records returns the records of a table, nil when the table is absent.
func (f *Feed) Records(id string) []Record {
	table, exists := f.tables[id]
	if !exists {
		return nil
	}

	return table.Records
}

// Counts returns the number of records per loaded table.
func (f *Feed) Counts() map[string]int {
	counts := map[string]int{}
	for id, table := range f.tables {
		counts[id] = len(table.Records)
	}

	return counts
}
