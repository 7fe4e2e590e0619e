package util

import (
	"errors"
	"fmt"
	"time"

	iso8601 "github.com/senseyeio/duration"
)

const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD date as midnight UTC.
func ParseDay(value string) (time.Time, error) {
	return time.Parse(DayLayout, value)
}

// ParseWindow resolves an inclusive date window. The end is either given directly or as an
// ISO-8601 length counted from the start, so P1D is a window covering only the start day.
func ParseWindow(start string, end string, length string) (time.Time, time.Time, error) {
	startDate, err := ParseDay(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start date: %w", err)
	}

	switch {
	case end != "" && length != "":
		return time.Time{}, time.Time{}, errors.New("only one of end date and length may be given")
	case end != "":
		endDate, err := ParseDay(end)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end date: %w", err)
		}
		if endDate.Before(startDate) {
			return time.Time{}, time.Time{}, errors.New("end date is before start date")
		}

		return startDate, endDate, nil
	case length != "":
		windowLength, err := iso8601.ParseISO8601(length)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("length: %w", err)
		}

		endDate := windowLength.Shift(startDate).AddDate(0, 0, -1)
		if endDate.Before(startDate) {
			return time.Time{}, time.Time{}, errors.New("length must cover at least one day")
		}

		return startDate, endDate, nil
	default:
		return startDate, startDate, nil
	}
}
