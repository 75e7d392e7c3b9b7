package commands

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
)

// AutoAssignDriverCommandHandler staffs a batch with the available driver at
// its origin branch carrying the fewest active batches.
//
// Example:
//
//	driverID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if driverID == nil {
//	    // nobody on shift, the pending batch job will retry
//	}
type AutoAssignDriverCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.BatchDispatcher
}

// NewAutoAssignDriverCommandHandler creates the handler.
func NewAutoAssignDriverCommandHandler(uowFactory UoWFactory) AutoAssignDriverCommandHandler {
	return AutoAssignDriverCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewBatchDispatcher(),
	}
}

// Handle returns the id of the assigned driver, or nil when no driver is
// available. A batch that already has a driver keeps it.
func (h AutoAssignDriverCommandHandler) Handle(ctx context.Context, cmd AutoAssignDriverCommand) (*kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.BatchRepository()
	driverRepo := uow.DriverRepository()

	b, err := getBatch(ctx, batchRepo, cmd.BatchID())
	if err != nil {
		return nil, err
	}
	if b.HasDriver() {
		return b.DriverID(), nil
	}

	drivers, err := driverRepo.ListAvailable(ctx, b.OriginBranchID())
	if err != nil {
		return nil, err
	}

	selected := h.dispatcher.SelectDriver(drivers, b.OriginBranchID())
	if selected == nil {
		return nil, nil
	}

	if err = h.dispatcher.AssignDriver(b, selected); err != nil {
		return nil, err
	}

	if err = batchRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err = driverRepo.AddActiveBatches(ctx, selected.ID(), 1); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	id := selected.ID()
	return &id, nil
}
