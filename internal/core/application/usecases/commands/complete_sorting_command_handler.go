package commands

import (
	"context"

	"laundry/internal/core/domain/services"
)

// CompleteSortingCommandHandler marks sorting done. Completing twice keeps
// the first completion time.
type CompleteSortingCommandHandler struct {
	uowFactory OrderUoWFactory
	window     services.SortingWindow
}

// NewCompleteSortingCommandHandler creates the handler.
func NewCompleteSortingCommandHandler(
	uowFactory OrderUoWFactory,
	window services.SortingWindow,
) CompleteSortingCommandHandler {
	return CompleteSortingCommandHandler{
		uowFactory: uowFactory,
		window:     window,
	}
}

// Handle processes the command within a transaction.
func (h *CompleteSortingCommandHandler) Handle(ctx context.Context, cmd CompleteSortingCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.window.CompleteSorting(aggregate, cmd.At()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
