package columnar

import (
	"time"

	"github.com/travigo/gtfs-extract/pkg/graph"
	"github.com/travigo/gtfs-extract/pkg/util"
)

// assignment maps entity handles to their dense output index, -1 for dropped entities.
type assignment struct {
	survivors []int
	index     []int
}

func assign(used []bool) assignment {
	survivors := make([]int, len(used))
	for handle := range survivors {
		survivors[handle] = handle
	}
	util.InPlaceFilter(&survivors, func(handle int) bool {
		return used[handle]
	})

	index := make([]int, len(used))
	for handle := range index {
		index[handle] = -1
	}
	for position, handle := range survivors {
		index[handle] = position
	}

	return assignment{survivors: survivors, index: index}
}

// Compact keeps only the used entities of g, numbers them densely in their original order
// and rewrites trip references to those numbers. Stops, routes and services are numbered
// before trips so the trip columns can point at them.
func Compact(g *graph.Graph, calendar *graph.Calendar, usage *graph.Usage, startDate time.Time, endDate time.Time) *Document {
	stops := assign(usage.Stops)
	routes := assign(usage.Routes)
	services := assign(usage.Services)
	trips := assign(usage.Trips)

	return &Document{
		StartDate: startDate,
		EndDate:   endDate,
		Stops:     compactStops(g, stops),
		Routes:    compactRoutes(g, routes),
		Services:  compactServices(calendar, services),
		Trips:     compactTrips(g, trips, stops, routes, services),
	}
}

func compactStops(g *graph.Graph, stops assignment) *Stops {
	if len(stops.survivors) == 0 {
		return nil
	}

	columns := &Stops{
		Name: make([]string, 0, len(stops.survivors)),
		Lat:  make([]*float64, 0, len(stops.survivors)),
		Lon:  make([]*float64, 0, len(stops.survivors)),
	}
	for _, handle := range stops.survivors {
		stop := g.Stops[handle]
		columns.Name = append(columns.Name, stop.Name)
		columns.Lat = append(columns.Lat, stop.Lat)
		columns.Lon = append(columns.Lon, stop.Lon)
	}

	return columns
}

func compactRoutes(g *graph.Graph, routes assignment) *Routes {
	if len(routes.survivors) == 0 {
		return nil
	}

	columns := &Routes{
		Name: make([]string, 0, len(routes.survivors)),
		Type: make([]*int, 0, len(routes.survivors)),
	}
	for _, handle := range routes.survivors {
		route := g.Routes[handle]
		columns.Name = append(columns.Name, route.Name)
		columns.Type = append(columns.Type, route.Type)
	}

	return columns
}

func compactServices(calendar *graph.Calendar, services assignment) *Services {
	if len(services.survivors) == 0 {
		return nil
	}

	columns := &Services{
		Dates: make([][]int, 0, len(services.survivors)),
	}
	for _, handle := range services.survivors {
		dates := append([]int{}, calendar.Dates[handle]...)
		columns.Dates = append(columns.Dates, dates)
	}

	return columns
}

func compactTrips(g *graph.Graph, trips assignment, stops assignment, routes assignment, services assignment) *Trips {
	if len(trips.survivors) == 0 {
		return nil
	}

	count := len(trips.survivors)
	columns := &Trips{
		Route:   make([]int, 0, count),
		Service: make([]int, 0, count),
		Stops:   make([][]int, 0, count),
		StopArr: make([][]*int, 0, count),
		StopDep: make([][]*int, 0, count),
	}

	for _, handle := range trips.survivors {
		trip := g.Trips[handle]

		tripStops := make([]int, len(trip.Stops))
		for i, stopHandle := range trip.Stops {
			tripStops[i] = stops.index[stopHandle]
		}

		columns.Route = append(columns.Route, routes.index[trip.Route])
		columns.Service = append(columns.Service, services.index[trip.Service])
		columns.Stops = append(columns.Stops, tripStops)
		columns.StopArr = append(columns.StopArr, append([]*int{}, trip.Arrivals...))
		columns.StopDep = append(columns.StopDep, append([]*int{}, trip.Departures...))
	}

	return columns
}
