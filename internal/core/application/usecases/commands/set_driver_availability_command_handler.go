package commands

import (
	"context"
)

// SetDriverAvailabilityCommandHandler handles shift changes of a driver.
// Uses transactional operations to ensure data consistency when modifying driver entities.
type SetDriverAvailabilityCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewSetDriverAvailabilityCommandHandler creates a new handler for shift changes.
// Requires a DriverUoWFactory for transactional operations.
func NewSetDriverAvailabilityCommandHandler(uowFactory DriverUoWFactory) SetDriverAvailabilityCommandHandler {
	return SetDriverAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command within a transaction.
// Retrieves the driver, changes availability, and persists the change.
// Batches already assigned to the driver are left alone.
func (h *SetDriverAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetDriverAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	driverEntity, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	driverEntity.SetAvailability(cmd.Available())

	if err = driverRepo.Update(ctx, driverEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
