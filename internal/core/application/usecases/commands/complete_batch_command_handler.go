package commands

import (
	"context"

	"laundry/internal/core/domain/services"
)

// CompleteBatchCommandHandler closes a delivered batch and takes it off its
// driver's load. The batch status and the load change in one transaction.
type CompleteBatchCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.BatchDispatcher
}

// NewCompleteBatchCommandHandler creates the handler.
func NewCompleteBatchCommandHandler(uowFactory UoWFactory) CompleteBatchCommandHandler {
	return CompleteBatchCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewBatchDispatcher(),
	}
}

// Handle completes the batch. Completing a completed batch writes nothing.
//
// Returns:
//   - batch.ErrBatchNotFound when the batch does not exist
//   - batch.ErrBatchNotCompletable when it has no driver or an order is not delivered
//   - errs.ErrVersionIsInvalid when a concurrent request completed it first
func (h CompleteBatchCommandHandler) Handle(ctx context.Context, cmd CompleteBatchCommand) error {
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
	orderRepo := uow.OrderRepository()

	b, err := getBatch(ctx, batchRepo, cmd.BatchID())
	if err != nil {
		return err
	}
	if b.IsCompleted() {
		return nil
	}
	if !b.HasDriver() {
		return b.Complete()
	}

	drv, err := driverRepo.Get(ctx, *b.DriverID())
	if err != nil {
		return err
	}

	orders, err := orderRepo.GetMany(ctx, b.OrderIDs())
	if err != nil {
		return err
	}

	if err = h.dispatcher.CompleteBatch(b, drv, orders); err != nil {
		return err
	}

	if err = batchRepo.Update(ctx, b); err != nil {
		return err
	}

	if err = driverRepo.AddActiveBatches(ctx, drv.ID(), -1); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
