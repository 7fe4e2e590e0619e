package feed

import (
	"fmt"
	"strings"

	"github.com/travigo/gtfs-extract/pkg/delimited"
	"github.com/travigo/gtfs-extract/pkg/extracterrors"
	"github.com/travigo/gtfs-extract/pkg/schema"
)

const byteOrderMark = "\ufeff"

// Table is one validated GTFS table. Values are stored in header order.
type Table struct {
	Format  *schema.TableFormat
	Header  []string
	Records []Record

	columns map[string]int
}

// Record is a single typed row. Values are string, int, float64 or nil depending on the
// declared field type.
type Record struct {
	Line int

	table  *Table
	values []any
}

func (r Record) Get(field string) any {
	if r.table == nil {
		return nil
	}

	i, ok := r.table.columns[field]
	if !ok {
		return nil
	}

	return r.values[i]
}

// Has reports whether the table the record came from carries the column.
func (r Record) Has(field string) bool {
	if r.table == nil {
		return false
	}

	_, ok := r.table.columns[field]
	return ok
}

func (r Record) String(field string) string {
	s, _ := r.Get(field).(string)
	return s
}

func (r Record) Int(field string) (int, bool) {
	i, ok := r.Get(field).(int)
	return i, ok
}

func (r Record) Float(field string) (float64, bool) {
	f, ok := r.Get(field).(float64)
	return f, ok
}

// Map returns the record keyed by column, absent columns are not included.
func (r Record) Map() map[string]any {
	values := make(map[string]any, len(r.values))
	if r.table == nil {
		return values
	}

	for i, column := range r.table.Header {
		values[column] = r.values[i]
	}

	return values
}

// LoadTable parses the text of a table, checks its header against the format and coerces
// every row to typed values.
func LoadTable(format *schema.TableFormat, text string) (*Table, error) {
	lines := delimited.Parse(strings.TrimPrefix(text, byteOrderMark))

	table := &Table{
		Format:  format,
		columns: map[string]int{},
	}

	if len(lines) > 0 {
		for _, key := range lines[0].Fields {
			table.Header = append(table.Header, strings.TrimSpace(key))
		}
		lines = lines[1:]
	}

	if err := table.checkHeader(); err != nil {
		return nil, err
	}

	fields := make([]*schema.FieldDefinition, len(table.Header))
	for i, key := range table.Header {
		fields[i], _ = format.Field(key)
		table.columns[key] = i
	}

	table.Records = make([]Record, 0, len(lines))
	for _, line := range lines {
		if len(line.Fields) != len(fields) {
			return nil, &extracterrors.Error{
				Kind:   extracterrors.KindRowArityMismatch,
				Table:  format.ID,
				Line:   line.Number,
				Detail: fmt.Sprintf("expected %d fields, got %d", len(fields), len(line.Fields)),
			}
		}

		values := make([]any, len(fields))
		for i, raw := range line.Fields {
			value, err := fields[i].Coerce(raw)
			if err != nil {
				return nil, &extracterrors.Error{
					Kind:   extracterrors.KindInvalidValue,
					Table:  format.ID,
					Column: fields[i].ID,
					Line:   line.Number,
					Err:    err,
				}
			}
			values[i] = value
		}

		table.Records = append(table.Records, Record{
			Line:   line.Number,
			table:  table,
			values: values,
		})
	}

	return table, nil
}

func (t *Table) checkHeader() error {
	present := map[string]bool{}
	for _, key := range t.Header {
		present[key] = true
	}

	var missing []string
	for _, key := range t.Format.RequiredFieldIDs() {
		if !present[key] {
			missing = append(missing, key)
		}
	}

	var unknown []string
	for _, key := range t.Header {
		if _, ok := t.Format.Field(key); !ok {
			unknown = append(unknown, key)
		}
	}

	if len(missing) == 0 && len(unknown) == 0 {
		return nil
	}

	var details []string
	if len(missing) > 0 {
		details = append(details, "missing keys: "+strings.Join(missing, ", "))
	}
	if len(unknown) > 0 {
		details = append(details, "unknown keys: "+strings.Join(unknown, ", "))
	}

	err := &extracterrors.Error{
		Kind:   extracterrors.KindSchemaMismatch,
		Table:  t.Format.ID,
		Line:   1,
		Detail: strings.Join(details, "; "),
	}
	if len(missing) == 1 && len(unknown) == 0 {
		err.Column = missing[0]
	} else if len(unknown) == 1 && len(missing) == 0 {
		err.Column = unknown[0]
	}

	return err
}
