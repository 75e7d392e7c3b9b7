package ports

import (
	"context"

	"laundry/internal/core/domain/model/route"
)

// RouteOptimizer is the external routing collaborator. It returns the
// requested stops in visiting order with total distance and duration.
// Implementations must honour ctx cancellation and must not retry.
type RouteOptimizer interface {
	Optimize(ctx context.Context, req route.Request) (route.Plan, error)
}
