package services

import (
	"context"
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/route"
	"laundry/internal/core/ports"
)

// RoutePlanner owns the policy around route optimization: local validation,
// the stop cap, and checking what the routing collaborator returns. Stop
// sequencing itself is delegated.
type RoutePlanner struct {
	optimizer ports.RouteOptimizer
}

// NewRoutePlanner returns a planner. A nil optimizer is allowed and makes every
// optimization fail with route.ErrRoutingUnavailable.
func NewRoutePlanner(optimizer ports.RouteOptimizer) RoutePlanner {
	return RoutePlanner{optimizer: optimizer}
}

// Optimize validates req and asks the optimizer for an ordering. Validation
// failures (route.ErrTooManyStops, route.ErrInvalidStop) never reach the
// network. Any optimizer failure, including cancellation, comes back as
// *route.RoutingUnavailableError wrapping the cause.
func (p RoutePlanner) Optimize(ctx context.Context, req route.Request) (route.Plan, error) {
	if err := req.Validate(); err != nil {
		return route.Plan{}, err
	}
	if len(req.Stops) == 0 {
		return route.Plan{ReturnToStart: req.ReturnToStart, Optimized: true}, nil
	}
	if p.optimizer == nil {
		return route.Plan{}, route.NewRoutingUnavailableError(errors.New("no route optimizer configured"))
	}

	plan, err := p.optimizer.Optimize(ctx, req)
	if err != nil {
		var unavailable *route.RoutingUnavailableError
		if errors.As(err, &unavailable) {
			return route.Plan{}, err
		}
		return route.Plan{}, route.NewRoutingUnavailableError(err)
	}
	if err = checkPermutation(req.Stops, plan.Stops); err != nil {
		return route.Plan{}, route.NewRoutingUnavailableError(err)
	}

	for i := range plan.Stops {
		plan.Stops[i].Sequence = i
	}
	plan.ReturnToStart = req.ReturnToStart
	plan.Optimized = true
	return plan, nil
}

// checkPermutation makes sure the collaborator returned each requested stop
// exactly once.
func checkPermutation(requested, returned []route.Stop) error {
	if len(requested) != len(returned) {
		return fmt.Errorf("optimizer returned %d stops for %d requested", len(returned), len(requested))
	}
	pending := make(map[string]int, len(requested))
	for _, s := range requested {
		pending[s.OrderID.String()]++
	}
	for _, s := range returned {
		key := s.OrderID.String()
		if pending[key] == 0 {
			return fmt.Errorf("optimizer returned unexpected stop %s", key)
		}
		pending[key]--
	}
	return nil
}
