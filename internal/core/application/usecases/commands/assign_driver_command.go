package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand attaches a chosen driver to a batch.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	batchID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates the command.
func NewAssignDriverCommand(batchID, driverID kernel.UUID) (AssignDriverCommand, error) {
	command := AssignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(batchID.Validate(), driverID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}

	command.batchID = batchID
	command.driverID = driverID
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// BatchID returns the batch to staff.
func (c AssignDriverCommand) BatchID() kernel.UUID {
	return c.batchID
}

// DriverID returns the chosen driver.
func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}
