// Package delimited splits GTFS table text into fields.
//
// Fields are comma separated. A double quote toggles quoting and is never part of the
// field; commas inside quotes are literal. A backslash makes the following character
// literal regardless of quoting and is itself dropped. Malformed quoting never fails, it
// just ends up in the field content.
package delimited

import (
	"strings"
)

// SplitLines splits text on both \r and \n, so \r\n files produce blank lines that
// ParseLine then drops.
func SplitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\r' || r == '\n'
	})
}

// ParseLine returns the fields of a single line. The boolean is false for a blank line.
func ParseLine(line string) ([]string, bool) {
	if len(line) == 0 {
		return nil, false
	}

	if !strings.ContainsAny(line, "\"\\") {
		return strings.Split(line, ","), true
	}

	var fields []string
	var field strings.Builder
	inQuotes := false
	escape := false

	// Delimiters are ASCII, so bytes of multi-byte or invalid sequences pass through untouched
	for i := 0; i < len(line); i++ {
		c := line[i]

		if escape {
			field.WriteByte(c)
			escape = false
			continue
		}

		switch {
		case c == '\\':
			escape = true
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}

	fields = append(fields, field.String())

	return fields, true
}
