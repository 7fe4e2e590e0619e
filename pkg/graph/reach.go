package graph

// Usage marks the entities reachable from an active service. Each slice is indexed by the
// handle of its entity kind.
type Usage struct {
	Routes   []bool
	Services []bool
	Trips    []bool
	Stops    []bool
}

// Reach marks every trip of an active service as used, and through it the trip's route,
// service and stops. Trips of routes rejected by allowRoute are never marked; a nil
// allowRoute accepts every route.
func (g *Graph) Reach(calendar *Calendar, allowRoute func(routeHandle int) bool) *Usage {
	usage := &Usage{
		Routes:   make([]bool, len(g.Routes)),
		Services: make([]bool, len(g.Services)),
		Trips:    make([]bool, len(g.Trips)),
		Stops:    make([]bool, len(g.Stops)),
	}

	blocked := make([]bool, len(g.Trips))
	if allowRoute != nil {
		for routeHandle, route := range g.Routes {
			if allowRoute(routeHandle) {
				continue
			}
			for _, tripHandle := range route.Trips {
				blocked[tripHandle] = true
			}
		}
	}

	for serviceHandle, service := range g.Services {
		if !calendar.Active(serviceHandle) {
			continue
		}

		for _, tripHandle := range service.Trips {
			if blocked[tripHandle] {
				continue
			}

			trip := g.Trips[tripHandle]

			usage.Trips[tripHandle] = true
			usage.Services[serviceHandle] = true
			usage.Routes[trip.Route] = true
			for _, stopHandle := range trip.Stops {
				usage.Stops[stopHandle] = true
			}
		}
	}

	return usage
}
