package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrAutoAssignDriverCommandIsNotConstructed = errors.New(
	"AutoAssignDriverCommand must be created via NewAutoAssignDriverCommand constructor",
)

// AutoAssignDriverCommand asks the system to pick the least loaded available
// driver at the batch's origin branch.
type AutoAssignDriverCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAutoAssignDriverCommand creates the command.
func NewAutoAssignDriverCommand(batchID kernel.UUID) (AutoAssignDriverCommand, error) {
	if err := batchID.Validate(); err != nil {
		return AutoAssignDriverCommand{}, err
	}

	return AutoAssignDriverCommand{
		batchID: batchID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoAssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignDriverCommandIsNotConstructed)
}

// BatchID returns the batch to staff.
func (c AutoAssignDriverCommand) BatchID() kernel.UUID {
	return c.batchID
}
