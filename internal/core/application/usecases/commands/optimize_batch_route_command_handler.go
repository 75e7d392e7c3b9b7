package commands

import (
	"context"
	"errors"
	"log/slog"

	"laundry/internal/core/domain/model/batch"
	"laundry/internal/core/domain/model/branch"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/route"
	"laundry/internal/core/domain/services"
)

// OptimizeBatchRouteCommandHandler plans the delivery route of a batch.
//
// The batch, its orders and the origin branch are read in a short transaction
// that is closed before the routing service is called, so no database
// connection is held across the network call. When the routing service is
// unavailable the stops come back in batch order with Optimized set to false.
// Local validation errors and cancellation are returned as they are.
type OptimizeBatchRouteCommandHandler struct {
	uowFactory UoWFactory
	planner    services.RoutePlanner
	logger     *slog.Logger
}

// NewOptimizeBatchRouteCommandHandler creates the handler.
func NewOptimizeBatchRouteCommandHandler(
	uowFactory UoWFactory,
	planner services.RoutePlanner,
	logger *slog.Logger,
) OptimizeBatchRouteCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return OptimizeBatchRouteCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		logger:     logger.With("component", "optimize_batch_route"),
	}
}

// Handle returns the planned route.
//
// Returns:
//   - batch.ErrBatchNotFound when the batch does not exist
//   - *route.TooManyStopsError, *route.InvalidStopError on local validation
//   - ctx.Err() when the caller gave up
func (h OptimizeBatchRouteCommandHandler) Handle(ctx context.Context, cmd OptimizeBatchRouteCommand) (route.Plan, error) {
	if err := cmd.Validate(); err != nil {
		return route.Plan{}, err
	}

	req, err := h.buildRequest(ctx, cmd)
	if err != nil {
		return route.Plan{}, err
	}

	plan, err := h.planner.Optimize(ctx, req)
	if err == nil {
		return plan, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return route.Plan{}, ctxErr
	}
	if !errors.Is(err, route.ErrRoutingUnavailable) {
		return route.Plan{}, err
	}

	h.logger.WarnContext(ctx, "routing unavailable, falling back to batch order",
		"batch_id", cmd.BatchID().String(),
		"stops", len(req.Stops),
		"error", err)
	return route.ManualPlan(req), nil
}

func (h OptimizeBatchRouteCommandHandler) buildRequest(ctx context.Context, cmd OptimizeBatchRouteCommand) (route.Request, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return route.Request{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	b, err := getBatch(ctx, uow.BatchRepository(), cmd.BatchID())
	if err != nil {
		return route.Request{}, err
	}

	origin, err := uow.BranchRepository().Get(ctx, b.OriginBranchID())
	if err != nil {
		return route.Request{}, err
	}

	orders, err := uow.OrderRepository().GetMany(ctx, b.OrderIDs())
	if err != nil {
		return route.Request{}, err
	}

	return routeRequest(b, origin, orders, cmd.ReturnToStart()), nil
}

// routeRequest lists stops in batch order. Missing orders and addresses
// without coordinates become stops with zero coordinates, which fail
// validation with route.ErrInvalidStop.
func routeRequest(b *batch.Batch, origin *branch.Branch, orders []*order.Order, returnToStart bool) route.Request {
	byID := make(map[string]*order.Order, len(orders))
	for _, o := range orders {
		byID[o.ID().String()] = o
	}

	req := route.Request{ReturnToStart: returnToStart}
	if loc := origin.Location(); loc != nil {
		req.Start = *loc
	}

	for _, id := range b.OrderIDs() {
		stop := route.Stop{OrderID: id}
		if o, ok := byID[id.String()]; ok {
			stop.CustomerName = o.Customer().Name
			stop.CustomerPhone = o.Customer().Phone
			if addr := o.DeliveryAddress(); addr != nil {
				stop.Address = addr.Street
				if addr.Coordinates != nil {
					stop.Coordinates = *addr.Coordinates
				}
			}
		}
		req.Stops = append(req.Stops, stop)
	}

	return req
}
