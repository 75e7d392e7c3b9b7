package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrSetDriverAvailabilityCommandIsNotConstructed = errors.New(
	"SetDriverAvailabilityCommand must be created via NewSetDriverAvailabilityCommand constructor",
)

// SetDriverAvailabilityCommand puts a driver on or off shift.
// Off-shift drivers are skipped by automatic assignment and refused by manual assignment.
//
// Example:
//
//	cmd, err := NewSetDriverAvailabilityCommand(driverID, false)
//	if err != nil {
//	    return fmt.Errorf("invalid command: %w", err)
//	}
//
//	handler := NewSetDriverAvailabilityCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to end shift: %w", err)
//	}
type SetDriverAvailabilityCommand struct { //nolint:recvcheck //using for validation
	driverID  kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewSetDriverAvailabilityCommand creates the command.
func NewSetDriverAvailabilityCommand(driverID kernel.UUID, available bool) (SetDriverAvailabilityCommand, error) {
	if err := driverID.Validate(); err != nil {
		return SetDriverAvailabilityCommand{}, err
	}

	return SetDriverAvailabilityCommand{
		driverID:  driverID,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDriverAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverAvailabilityCommandIsNotConstructed)
}

// DriverID returns the driver to update.
func (c SetDriverAvailabilityCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Available returns the requested shift state.
func (c SetDriverAvailabilityCommand) Available() bool {
	return c.available
}
