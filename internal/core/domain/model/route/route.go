// Package route holds the value objects exchanged with the routing
// collaborator: stops, requests and the ordered plan that comes back.
package route

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
)

// MaxStops mirrors the limit of the routing service.
const MaxStops = 25

// Stop is one delivery address on a route. Sequence is zero-based and only
// meaningful on a Plan.
type Stop struct {
	OrderID       kernel.UUID
	Coordinates   kernel.Coordinates
	Sequence      int
	Address       string
	CustomerName  string
	CustomerPhone string
}

// Request asks for an ordering of Stops starting at Start.
type Request struct {
	Start         kernel.Coordinates
	Stops         []Stop
	ReturnToStart bool
}

// Plan is an ordered route. Optimized is false when the stops are in the
// order they were given, for example because the routing service was down.
type Plan struct {
	Stops           []Stop
	TotalDistanceKm float64
	TotalDuration   time.Duration
	ReturnToStart   bool
	Optimized       bool
}

// ManualPlan keeps stops in input order and numbers them.
func ManualPlan(req Request) Plan {
	stops := make([]Stop, len(req.Stops))
	for i, s := range req.Stops {
		s.Sequence = i
		stops[i] = s
	}
	return Plan{Stops: stops, ReturnToStart: req.ReturnToStart}
}

// Validate checks the request locally: the stop count against MaxStops and
// every point, including the start, for usable coordinates. A point at exactly
// 0,0 is treated as missing.
func (r Request) Validate() error {
	if len(r.Stops) > MaxStops {
		return &TooManyStopsError{Count: len(r.Stops), Max: MaxStops}
	}
	if !usable(r.Start) {
		return &InvalidStopError{Index: -1, Reason: "start has no valid coordinates"}
	}
	for i, s := range r.Stops {
		if err := s.OrderID.Validate(); err != nil {
			return &InvalidStopError{Index: i, Reason: "missing order id"}
		}
		if !usable(s.Coordinates) {
			return &InvalidStopError{Index: i, OrderID: s.OrderID.String(), Reason: "no valid coordinates"}
		}
	}
	return nil
}

func usable(c kernel.Coordinates) bool {
	if c.Validate() != nil {
		return false
	}
	return c.Lat() != 0 || c.Lng() != 0
}
