package commands

import (
	"errors"
	"math"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrAssignPendingBatchesCommandIsNotConstructed = errors.New(
	"AssignPendingBatchesCommand must be created via NewAssignPendingBatchesCommand constructor",
)

// AssignPendingBatchesCommand triggers automatic driver assignment for
// batches still waiting for a driver. It is issued by the pending batch job.
//
// Example:
//
//	cmd, _ := NewAssignPendingBatchesCommand(50)
//	handler := NewAssignPendingBatchesCommandHandler(uowFactory)
//	assigned, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoPendingBatches) {
//	    log.Println("Nothing to do")
//	}
type AssignPendingBatchesCommand struct {
	limit int

	guard guard.ConstructorGuard
}

// NewAssignPendingBatchesCommand creates the command. limit caps how many
// batches one run looks at.
func NewAssignPendingBatchesCommand(limit int) (AssignPendingBatchesCommand, error) {
	if limit <= 0 {
		return AssignPendingBatchesCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, math.MaxInt)
	}

	return AssignPendingBatchesCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignPendingBatchesCommandIsNotConstructed if validation fails.
func (c AssignPendingBatchesCommand) Validate() error {
	return c.guard.Validate(ErrAssignPendingBatchesCommandIsNotConstructed)
}

// Limit returns the maximum number of batches handled in one run.
func (c AssignPendingBatchesCommand) Limit() int {
	return c.limit
}
