package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order intake.
// Creates the order in "received" status with its opening ledger entry.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(params)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order intake failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order intake.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// The owning branch must exist. Uses a transaction so the order and its first
// ledger entry are persisted together or not at all.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	if _, err := uow.BranchRepository().Get(ctx, cmd.BranchID()); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := order.NewOrder(cmd.Params())
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
