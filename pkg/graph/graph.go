// Package graph links the records of a feed into routes, services, trips and stops.
//
// Entities are stored in arenas and referenced by their position (a handle). They are
// never modified once Build returns; everything that depends on an extraction window
// lives in the Calendar and Usage side tables so a graph can serve many extractions.
package graph

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/gtfs-extract/pkg/extracterrors"
	"github.com/travigo/gtfs-extract/pkg/feed"
	"github.com/travigo/gtfs-extract/pkg/schema"
	"golang.org/x/exp/slices"
)

type Route struct {
	ID   string
	Name string
	Type *int

	Record feed.Record
	Trips  []int
}

type Service struct {
	ID    string
	Trips []int
}

type Trip struct {
	ID      string
	Route   int
	Service int

	// Parallel, ordered by stop_sequence
	Stops      []int
	Arrivals   []*int
	Departures []*int
}

type Stop struct {
	ID   string
	Name string
	Lat  *float64
	Lon  *float64
}

type Graph struct {
	Routes   []Route
	Services []Service
	Trips    []Trip
	Stops    []Stop

	routeIndex   map[string]int
	serviceIndex map[string]int
	tripIndex    map[string]int
	stopIndex    map[string]int

	calendar   []feed.Record
	exceptions []feed.Record
}

type stopTime struct {
	arrival   *int
	departure *int
	stop      int
}

// Build links the feed's records. Routes come first, then one service per distinct
// service_id referenced by a trip, then trips, stops and finally the stop times of each
// trip.
func Build(gtfsFeed *feed.Feed) (*Graph, error) {
	g := &Graph{
		routeIndex:   map[string]int{},
		serviceIndex: map[string]int{},
		tripIndex:    map[string]int{},
		stopIndex:    map[string]int{},

		calendar:   gtfsFeed.Records(schema.TableCalendar),
		exceptions: gtfsFeed.Records(schema.TableCalendarDates),
	}

	g.buildRoutes(gtfsFeed.Records(schema.TableRoutes))
	g.buildServices(gtfsFeed.Records(schema.TableTrips))

	if err := g.buildTrips(gtfsFeed.Records(schema.TableTrips)); err != nil {
		return nil, err
	}

	g.buildStops(gtfsFeed.Records(schema.TableStops))

	if err := g.attachStopTimes(gtfsFeed.Records(schema.TableStopTimes)); err != nil {
		return nil, err
	}

	log.Debug().
		Int("routes", len(g.Routes)).
		Int("services", len(g.Services)).
		Int("trips", len(g.Trips)).
		Int("stops", len(g.Stops)).
		Msg("Built graph")

	return g, nil
}

func (g *Graph) buildRoutes(records []feed.Record) {
	for _, record := range records {
		name := record.String("route_short_name")
		if name == "" {
			name = record.String("route_long_name")
		}

		route := Route{
			ID:     record.String("route_id"),
			Name:   name,
			Record: record,
		}
		if routeType, ok := record.Int("route_type"); ok {
			route.Type = &routeType
		}

		if handle, exists := g.routeIndex[route.ID]; exists {
			log.Warn().Str("route", route.ID).Int("line", record.Line).Msg("Duplicate route_id, last definition wins")
			g.Routes[handle] = route
			continue
		}

		g.routeIndex[route.ID] = len(g.Routes)
		g.Routes = append(g.Routes, route)
	}
}

func (g *Graph) buildServices(records []feed.Record) {
	for _, record := range records {
		serviceID := record.String("service_id")
		if _, exists := g.serviceIndex[serviceID]; exists {
			continue
		}

		g.serviceIndex[serviceID] = len(g.Services)
		g.Services = append(g.Services, Service{ID: serviceID})
	}
}

func (g *Graph) buildTrips(records []feed.Record) error {
	for _, record := range records {
		routeHandle, exists := g.routeIndex[record.String("route_id")]
		if !exists {
			return unresolved(schema.TableTrips, "route_id", record)
		}
		serviceHandle := g.serviceIndex[record.String("service_id")]

		trip := Trip{
			ID:      record.String("trip_id"),
			Route:   routeHandle,
			Service: serviceHandle,
		}

		if handle, exists := g.tripIndex[trip.ID]; exists {
			log.Warn().Str("trip", trip.ID).Int("line", record.Line).Msg("Duplicate trip_id, last definition wins")

			previous := g.Trips[handle]
			g.Routes[previous.Route].Trips = removeHandle(g.Routes[previous.Route].Trips, handle)
			g.Services[previous.Service].Trips = removeHandle(g.Services[previous.Service].Trips, handle)

			g.Trips[handle] = trip
			g.register(handle)
			continue
		}

		handle := len(g.Trips)
		g.tripIndex[trip.ID] = handle
		g.Trips = append(g.Trips, trip)
		g.register(handle)
	}

	return nil
}

func (g *Graph) register(tripHandle int) {
	trip := g.Trips[tripHandle]
	g.Routes[trip.Route].Trips = append(g.Routes[trip.Route].Trips, tripHandle)
	g.Services[trip.Service].Trips = append(g.Services[trip.Service].Trips, tripHandle)
}

func removeHandle(handles []int, handle int) []int {
	index := slices.Index(handles, handle)
	if index < 0 {
		return handles
	}

	return slices.Delete(handles, index, index+1)
}

func (g *Graph) buildStops(records []feed.Record) {
	for _, record := range records {
		stop := Stop{
			ID:   record.String("stop_id"),
			Name: record.String("stop_name"),
		}
		if lat, ok := record.Float("stop_lat"); ok {
			stop.Lat = &lat
		}
		if lon, ok := record.Float("stop_lon"); ok {
			stop.Lon = &lon
		}

		if handle, exists := g.stopIndex[stop.ID]; exists {
			log.Warn().Str("stop", stop.ID).Int("line", record.Line).Msg("Duplicate stop_id, last definition wins")
			g.Stops[handle] = stop
			continue
		}

		g.stopIndex[stop.ID] = len(g.Stops)
		g.Stops = append(g.Stops, stop)
	}
}

func (g *Graph) attachStopTimes(records []feed.Record) error {
	sequences := make([]map[int]stopTime, len(g.Trips))

	for _, record := range records {
		tripHandle, exists := g.tripIndex[record.String("trip_id")]
		if !exists {
			return unresolved(schema.TableStopTimes, "trip_id", record)
		}
		stopHandle, exists := g.stopIndex[record.String("stop_id")]
		if !exists {
			return unresolved(schema.TableStopTimes, "stop_id", record)
		}

		sequence, ok := record.Int("stop_sequence")
		if !ok || sequence < 0 {
			return &extracterrors.Error{
				Kind:   extracterrors.KindInvalidValue,
				Table:  schema.TableStopTimes,
				Column: "stop_sequence",
				Line:   record.Line,
				Detail: "stop_sequence must be a non-negative integer",
			}
		}

		entry := stopTime{stop: stopHandle}
		if arrival, ok := record.Int("arrival_time"); ok {
			entry.arrival = &arrival
		}
		if departure, ok := record.Int("departure_time"); ok {
			entry.departure = &departure
		}

		if sequences[tripHandle] == nil {
			sequences[tripHandle] = map[int]stopTime{}
		}
		if _, exists := sequences[tripHandle][sequence]; exists {
			log.Debug().Str("trip", g.Trips[tripHandle].ID).Int("stop_sequence", sequence).Msg("Duplicate stop_sequence, last entry wins")
		}
		sequences[tripHandle][sequence] = entry
	}

	for tripHandle, byPosition := range sequences {
		trip := &g.Trips[tripHandle]
		trip.Stops = make([]int, 0, len(byPosition))
		trip.Arrivals = make([]*int, 0, len(byPosition))
		trip.Departures = make([]*int, 0, len(byPosition))

		positions := make([]int, 0, len(byPosition))
		for position := range byPosition {
			positions = append(positions, position)
		}
		slices.Sort(positions)

		for _, position := range positions {
			entry := byPosition[position]
			trip.Stops = append(trip.Stops, entry.stop)
			trip.Arrivals = append(trip.Arrivals, entry.arrival)
			trip.Departures = append(trip.Departures, entry.departure)
		}
	}

	return nil
}

func unresolved(table string, column string, record feed.Record) error {
	return &extracterrors.Error{
		Kind:   extracterrors.KindUnresolvedReference,
		Table:  table,
		Column: column,
		Line:   record.Line,
		Detail: fmt.Sprintf("%q not found", record.String(column)),
	}
}

func (g *Graph) RouteHandle(id string) (int, bool) {
	handle, exists := g.routeIndex[id]
	return handle, exists
}

func (g *Graph) ServiceHandle(id string) (int, bool) {
	handle, exists := g.serviceIndex[id]
	return handle, exists
}

func (g *Graph) TripHandle(id string) (int, bool) {
	handle, exists := g.tripIndex[id]
	return handle, exists
}

func (g *Graph) StopHandle(id string) (int, bool) {
	handle, exists := g.stopIndex[id]
	return handle, exists
}
