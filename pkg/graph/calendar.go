package graph

import (
	"fmt"

	"github.com/travigo/gtfs-extract/pkg/extracterrors"
	"github.com/travigo/gtfs-extract/pkg/schema"
	"golang.org/x/exp/slices"
)

// Calendar holds the active day offsets of every service for one extraction window.
type Calendar struct {
	StartDay int
	EndDay   int

	// Dates is indexed by service handle. Offsets are relative to StartDay, unique and
	// ascending.
	Dates [][]int
}

func (c *Calendar) Active(serviceHandle int) bool {
	return len(c.Dates[serviceHandle]) > 0
}

// ResolveCalendar computes the days each service runs within [startDay, endDay], both
// inclusive. Only calendar_dates additions are understood: any weekly calendar row, and
// any exception inside the window that is not an addition, fails the extraction.
func (g *Graph) ResolveCalendar(startDay int, endDay int) (*Calendar, error) {
	if len(g.calendar) > 0 {
		return nil, &extracterrors.Error{
			Kind:   extracterrors.KindUnsupportedCalendarRow,
			Table:  schema.TableCalendar,
			Line:   g.calendar[0].Line,
			Detail: "weekly calendars are not supported, list service days in calendar_dates.txt",
		}
	}

	offsets := make([]map[int]bool, len(g.Services))

	for _, exception := range g.exceptions {
		date, ok := exception.Int("date")
		if !ok {
			return nil, &extracterrors.Error{
				Kind:   extracterrors.KindInvalidValue,
				Table:  schema.TableCalendarDates,
				Column: "date",
				Line:   exception.Line,
				Detail: "date is empty",
			}
		}

		if date < startDay || date > endDay {
			continue
		}

		if exceptionType, _ := exception.Int("exception_type"); exceptionType != schema.ExceptionTypeAdded {
			return nil, &extracterrors.Error{
				Kind:   extracterrors.KindUnsupportedExceptionType,
				Table:  schema.TableCalendarDates,
				Column: "exception_type",
				Line:   exception.Line,
				Detail: fmt.Sprintf("exception_type %v is not supported, only %d (service added)", exception.Get("exception_type"), schema.ExceptionTypeAdded),
			}
		}

		serviceHandle, exists := g.serviceIndex[exception.String("service_id")]
		if !exists {
			return nil, unresolved(schema.TableCalendarDates, "service_id", exception)
		}

		if offsets[serviceHandle] == nil {
			offsets[serviceHandle] = map[int]bool{}
		}
		offsets[serviceHandle][date-startDay] = true
	}

	calendar := &Calendar{
		StartDay: startDay,
		EndDay:   endDay,
		Dates:    make([][]int, len(g.Services)),
	}

	for serviceHandle, days := range offsets {
		dates := make([]int, 0, len(days))
		for day := range days {
			dates = append(dates, day)
		}
		slices.Sort(dates)

		calendar.Dates[serviceHandle] = dates
	}

	return calendar, nil
}
