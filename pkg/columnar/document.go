// Package columnar turns the used part of a graph into the struct-of-arrays document
// consumed by journey planners and map renderers.
package columnar

import (
	"time"
)

// Document is the extraction result. A section is nil when no entity of its kind survived.
type Document struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Stops    *Stops    `json:"stops"`
	Routes   *Routes   `json:"routes"`
	Services *Services `json:"services"`
	Trips    *Trips    `json:"trips"`
}

// Every column of a section has one entry per surviving entity.

type Stops struct {
	Name []string   `json:"name"`
	Lat  []*float64 `json:"lat"`
	Lon  []*float64 `json:"lon"`
}

type Routes struct {
	Name []string `json:"name"`
	Type []*int   `json:"type"`
}

type Services struct {
	// Day offsets from the window start, ascending
	Dates [][]int `json:"dates"`
}

type Trips struct {
	Route   []int    `json:"route"`
	Service []int    `json:"service"`
	Stops   [][]int  `json:"stops"`
	StopArr [][]*int `json:"stopArr"`
	StopDep [][]*int `json:"stopDep"`
}

func (s *Stops) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Name)
}

func (r *Routes) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Name)
}

func (s *Services) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Dates)
}

func (t *Trips) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Route)
}
