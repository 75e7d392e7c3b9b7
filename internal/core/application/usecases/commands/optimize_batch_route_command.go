package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrOptimizeBatchRouteCommandIsNotConstructed = errors.New(
	"OptimizeBatchRouteCommand must be created via NewOptimizeBatchRouteCommand constructor",
)

// OptimizeBatchRouteCommand asks for a visiting order of the delivery stops
// of a batch, starting at its origin branch.
type OptimizeBatchRouteCommand struct { //nolint:recvcheck //using for validation
	batchID       kernel.UUID
	returnToStart bool

	guard guard.ConstructorGuard
}

// NewOptimizeBatchRouteCommand creates the command.
func NewOptimizeBatchRouteCommand(batchID kernel.UUID, returnToStart bool) (OptimizeBatchRouteCommand, error) {
	if err := batchID.Validate(); err != nil {
		return OptimizeBatchRouteCommand{}, err
	}

	return OptimizeBatchRouteCommand{
		batchID:       batchID,
		returnToStart: returnToStart,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c OptimizeBatchRouteCommand) Validate() error {
	return c.guard.Validate(ErrOptimizeBatchRouteCommandIsNotConstructed)
}

// BatchID returns the batch to route.
func (c OptimizeBatchRouteCommand) BatchID() kernel.UUID {
	return c.batchID
}

// ReturnToStart reports whether the route ends back at the origin branch.
func (c OptimizeBatchRouteCommand) ReturnToStart() bool {
	return c.returnToStart
}
