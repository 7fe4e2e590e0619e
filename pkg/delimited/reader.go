package delimited

import (
	"io"
	"strings"
)

// Line is a parsed, non-blank line together with its 1-based position in the source text.
type Line struct {
	Number int
	Fields []string
}

// Parse parses every non-blank line of text.
func Parse(text string) []Line {
	var lines []Line

	number := 0
	start := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '\n' {
			continue
		}

		number++
		raw := text[start:i]
		start = i + 1

		// \r\n and lone \r both end a line
		for _, part := range SplitLines(raw) {
			if fields, ok := ParseLine(part); ok {
				lines = append(lines, Line{Number: number, Fields: fields})
			}
		}
	}

	return lines
}

// Reader serves parsed lines one at a time. It satisfies gocsv.CSVReader so tables can be
// decoded straight into tagged structs.
type Reader struct {
	lines []Line
	next  int
}

// NewReader reads the lines of text. Names in the header line are trimmed of surrounding
// whitespace.
func NewReader(text string) *Reader {
	lines := Parse(text)
	if len(lines) > 0 {
		header := make([]string, len(lines[0].Fields))
		for i, key := range lines[0].Fields {
			header[i] = strings.TrimSpace(key)
		}
		lines[0].Fields = header
	}

	return &Reader{lines: lines}
}

func (r *Reader) Read() ([]string, error) {
	if r.next >= len(r.lines) {
		return nil, io.EOF
	}

	line := r.lines[r.next]
	r.next++

	return line.Fields, nil
}

func (r *Reader) ReadAll() ([][]string, error) {
	var records [][]string
	for r.next < len(r.lines) {
		records = append(records, r.lines[r.next].Fields)
		r.next++
	}

	return records, nil
}

// LineNumber is the source line of the most recently read line, 0 before the first Read.
func (r *Reader) LineNumber() int {
	if r.next == 0 {
		return 0
	}

	return r.lines[r.next-1].Number
}
