package schema

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeInt    FieldType = "int"
	FieldTypeFloat  FieldType = "float"
	FieldTypeDate   FieldType = "date"
	FieldTypeTime   FieldType = "time"
)

// dayZero is the epoch that date fields are counted from.
var dayZero = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

var errEmptyClock = errors.New("clock time must be H:MM:SS")

// DayNumber returns the number of whole days between the epoch and the calendar day of t.
// Only the year, month and day of t are taken into account.
func DayNumber(t time.Time) int {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	return int((day.Unix() - dayZero.Unix()) / 86400)
}

// DayDate is the inverse of DayNumber.
func DayDate(day int) time.Time {
	return dayZero.AddDate(0, 0, day)
}

// ParseDate converts a GTFS YYYYMMDD date to a day number.
func ParseDate(s string) (int, error) {
	if len(s) != 8 {
		return 0, fmt.Errorf("date %q must be YYYYMMDD", s)
	}

	date, err := time.Parse("20060102", s)
	if err != nil {
		return 0, err
	}

	return DayNumber(date), nil
}

// ParseClock converts a GTFS H:MM:SS time to seconds since midnight. Hours may exceed 23
// for trips running past midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, errEmptyClock
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	seconds, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, err
	}

	if hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}

	return hours*3600 + minutes*60 + seconds, nil
}

// Coerce converts a raw field into its typed value. Strings pass through verbatim; every
// other type yields nil for an empty (or whitespace only) field.
func (t FieldType) Coerce(raw string) (any, error) {
	if t == FieldTypeString {
		return raw, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	var (
		coerced any
		err     error
	)

	switch t {
	case FieldTypeInt:
		coerced, err = strconv.Atoi(value)
	case FieldTypeFloat:
		coerced, err = parseFinite(value)
	case FieldTypeDate:
		coerced, err = ParseDate(value)
	case FieldTypeTime:
		coerced, err = ParseClock(value)
	default:
		return nil, fmt.Errorf("unknown field type %q", t)
	}

	if err != nil {
		return nil, err
	}

	return coerced, nil
}

func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("number %q is not finite", s)
	}

	return f, nil
}
