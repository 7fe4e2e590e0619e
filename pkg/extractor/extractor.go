// Package extractor restricts a loaded feed to a date window and returns the columnar
// document of everything still running within it.
package extractor

import (
	"errors"
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"github.com/travigo/gtfs-extract/pkg/columnar"
	"github.com/travigo/gtfs-extract/pkg/feed"
	"github.com/travigo/gtfs-extract/pkg/graph"
	"github.com/travigo/gtfs-extract/pkg/schema"
)

var (
	ErrInvalidWindow = errors.New("invalid extraction window")
	ErrRouteFilter   = errors.New("invalid route filter")
)

type Options struct {
	// RouteFilter is an expression over the columns of routes.txt, for example
	// `route_type == 3`. Trips of routes it rejects are never extracted.
	RouteFilter string
}

// Extractor holds a feed and its graph. The graph is never modified by Extract so one
// Extractor can serve any number of windows, concurrently too.
type Extractor struct {
	Feed *feed.Feed

	graph         *graph.Graph
	allowedRoutes []bool
}

func New(gtfsFeed *feed.Feed, options Options) (*Extractor, error) {
	g, err := graph.Build(gtfsFeed)
	if err != nil {
		return nil, err
	}

	extractor := &Extractor{
		Feed:  gtfsFeed,
		graph: g,
	}

	return extractor.WithRouteFilter(options.RouteFilter)
}

// WithRouteFilter returns an Extractor sharing e's graph that only extracts routes
// accepted by filter. An empty filter accepts every route.
func (e *Extractor) WithRouteFilter(filter string) (*Extractor, error) {
	filtered := &Extractor{
		Feed:  e.Feed,
		graph: e.graph,
	}

	if filter == "" {
		return filtered, nil
	}

	program, err := compileRouteFilter(filter)
	if err != nil {
		return nil, err
	}

	filtered.allowedRoutes, err = evaluateRouteFilter(e.graph, program)
	if err != nil {
		return nil, err
	}

	return filtered, nil
}

func compileRouteFilter(source string) (*vm.Program, error) {
	program, err := expr.Compile(source, expr.Env(map[string]any{}), expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrRouteFilter, source, err)
	}

	return program, nil
}

func evaluateRouteFilter(g *graph.Graph, program *vm.Program) ([]bool, error) {
	allowed := make([]bool, len(g.Routes))

	for handle, route := range g.Routes {
		output, err := expr.Run(program, route.Record.Map())
		if err != nil {
			return nil, fmt.Errorf("%w: route %s: %w", ErrRouteFilter, route.ID, err)
		}

		result, ok := output.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: returned %T for route %s, expected bool", ErrRouteFilter, output, route.ID)
		}
		allowed[handle] = result
	}

	return allowed, nil
}

func (e *Extractor) allowRoute(routeHandle int) bool {
	return e.allowedRoutes[routeHandle]
}

// Extract resolves service days within [startDate, endDate], both inclusive, and compacts
// every trip running on one of them together with its route, service and stops.
func (e *Extractor) Extract(startDate time.Time, endDate time.Time) (*columnar.Document, error) {
	startDay := schema.DayNumber(startDate)
	endDay := schema.DayNumber(endDate)
	if endDay < startDay {
		return nil, fmt.Errorf("%w: end %s is before start %s", ErrInvalidWindow, endDate.Format(time.DateOnly), startDate.Format(time.DateOnly))
	}

	calendar, err := e.graph.ResolveCalendar(startDay, endDay)
	if err != nil {
		return nil, err
	}

	var allowRoute func(int) bool
	if e.allowedRoutes != nil {
		allowRoute = e.allowRoute
	}

	usage := e.graph.Reach(calendar, allowRoute)
	document := columnar.Compact(e.graph, calendar, usage, startDate, endDate)

	log.Info().
		Str("start", startDate.Format(time.DateOnly)).
		Str("end", endDate.Format(time.DateOnly)).
		Int("stops", document.Stops.Len()).
		Int("routes", document.Routes.Len()).
		Int("services", document.Services.Len()).
		Int("trips", document.Trips.Len()).
		Msg("Extracted window")

	return document, nil
}
