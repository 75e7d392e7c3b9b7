package commands

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/batch"
	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
)

var ErrNoPendingBatches = errors.New("no pending batches found")

// AssignPendingBatchesCommandHandler walks driverless batches, oldest first,
// and gives each the least loaded available driver at its origin. Loads are
// tracked across the run, so one driver is not handed every batch.
// Batches with nobody available are left pending for the next run, and so
// are batches another request staffed while the run was in progress.
type AssignPendingBatchesCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.BatchDispatcher
}

// NewAssignPendingBatchesCommandHandler creates the handler.
func NewAssignPendingBatchesCommandHandler(uowFactory UoWFactory) AssignPendingBatchesCommandHandler {
	return AssignPendingBatchesCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewBatchDispatcher(),
	}
}

// Handle returns how many batches got a driver.
// Returns ErrNoPendingBatches when there was nothing to assign.
func (h AssignPendingBatchesCommandHandler) Handle(ctx context.Context, command AssignPendingBatchesCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.BatchRepository()
	driverRepo := uow.DriverRepository()

	pending, err := batchRepo.ListWithoutDriver(ctx, command.Limit())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, ErrNoPendingBatches
	}

	driversByBranch := make(map[string][]*driver.Driver)
	taken := make(map[kernel.UUID]int)
	assigned := 0

	for _, b := range pending {
		origin := b.OriginBranchID()
		drivers, ok := driversByBranch[origin.String()]
		if !ok {
			drivers, err = driverRepo.ListAvailable(ctx, origin)
			if err != nil {
				return 0, err
			}
			driversByBranch[origin.String()] = drivers
		}

		selected := h.dispatcher.SelectDriver(drivers, origin)
		if selected == nil {
			continue
		}

		if err = h.dispatcher.AssignDriver(b, selected); err != nil {
			return 0, err
		}
		err = batchRepo.Update(ctx, b)
		if errors.Is(err, batch.ErrDriverAlreadyAssigned) {
			selected.CompleteBatch()
			continue
		}
		if err != nil {
			return 0, err
		}

		taken[selected.ID()]++
		assigned++
	}

	for driverID, count := range taken {
		if err = driverRepo.AddActiveBatches(ctx, driverID, count); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return assigned, nil
}
