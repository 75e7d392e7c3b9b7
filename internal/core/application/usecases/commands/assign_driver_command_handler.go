package commands

import (
	"context"
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/batch"
	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// AssignDriverCommandHandler attaches a driver to a batch and counts the
// batch against the driver's load. Batch and driver are updated in one
// transaction.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, batch.ErrBatchNotFound):
//	    // 404
//	case errors.Is(err, driver.ErrDriverUnavailable):
//	    // pick someone else
//	}
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.BatchDispatcher
}

// NewAssignDriverCommandHandler creates the handler.
func NewAssignDriverCommandHandler(uowFactory UoWFactory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewBatchDispatcher(),
	}
}

// Handle assigns the driver. Assigning the driver a batch already has is a
// no-op and writes nothing.
//
// Returns:
//   - batch.ErrBatchNotFound when the batch does not exist
//   - driver.ErrDriverUnavailable when the driver does not exist, is off
//     shift or is based at another branch
//   - batch.ErrDriverAlreadyAssigned when the batch has another driver, also
//     when a concurrent request attached one first
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
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

	batchRepo := uow.BatchRepository()
	driverRepo := uow.DriverRepository()

	b, err := getBatch(ctx, batchRepo, cmd.BatchID())
	if err != nil {
		return err
	}

	if current := b.DriverID(); current != nil && current.IsEqual(cmd.DriverID()) {
		return nil
	}

	drv, err := driverRepo.Get(ctx, cmd.DriverID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %s not found", driver.ErrDriverUnavailable, cmd.DriverID())
	}
	if err != nil {
		return err
	}

	if err = h.dispatcher.AssignDriver(b, drv); err != nil {
		return err
	}

	if err = batchRepo.Update(ctx, b); err != nil {
		return err
	}

	if err = driverRepo.AddActiveBatches(ctx, drv.ID(), 1); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// getBatch translates a missing batch into batch.ErrBatchNotFound.
func getBatch(ctx context.Context, repo ports.BatchRepository, id kernel.UUID) (*batch.Batch, error) {
	b, err := repo.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", batch.ErrBatchNotFound, id)
	}
	return b, err
}
