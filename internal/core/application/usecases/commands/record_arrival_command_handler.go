package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/services"
)

// RecordArrivalCommandHandler stamps arrival and the earliest return time,
// using the sorting window of the receiving branch.
type RecordArrivalCommandHandler struct {
	uowFactory OrderUoWFactory
	window     services.SortingWindow
}

// NewRecordArrivalCommandHandler creates the handler.
func NewRecordArrivalCommandHandler(
	uowFactory OrderUoWFactory,
	window services.SortingWindow,
) RecordArrivalCommandHandler {
	return RecordArrivalCommandHandler{
		uowFactory: uowFactory,
		window:     window,
	}
}

// Handle records the arrival and returns the earliest time the order may leave.
func (h *RecordArrivalCommandHandler) Handle(ctx context.Context, cmd RecordArrivalCommand) (time.Time, error) {
	if err := cmd.Validate(); err != nil {
		return time.Time{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return time.Time{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return time.Time{}, err
	}

	branch, err := uow.BranchRepository().Get(ctx, cmd.BranchID())
	if err != nil {
		return time.Time{}, err
	}

	if err = h.window.RecordArrival(aggregate, branch, cmd.At()); err != nil {
		return time.Time{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return time.Time{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return time.Time{}, err
	}

	return *aggregate.EarliestReturnTime(), nil
}
