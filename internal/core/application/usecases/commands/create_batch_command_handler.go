package commands

import (
	"context"

	"laundry/internal/core/domain/model/batch"
	"laundry/internal/core/domain/services"
)

// CreateBatchCommandHandler loads the requested orders, checks them with the
// BatchDispatcher and stores the batch, all in one transaction. A single
// ineligible order rolls everything back.
type CreateBatchCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.BatchDispatcher
}

// NewCreateBatchCommandHandler creates the handler.
func NewCreateBatchCommandHandler(uowFactory UoWFactory) CreateBatchCommandHandler {
	return CreateBatchCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewBatchDispatcher(),
	}
}

// Handle creates the batch.
//
// Returns:
//   - *batch.IneligibleOrdersError naming every order that is missing, not
//     ready, not for delivery, without a resolvable address or already in an
//     open batch
//   - errs.ErrObjectNotFound when the origin or destination branch is unknown
func (h CreateBatchCommandHandler) Handle(ctx context.Context, cmd CreateBatchCommand) (*batch.Batch, error) {
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

	branchRepo := uow.BranchRepository()
	orderRepo := uow.OrderRepository()
	batchRepo := uow.BatchRepository()

	if _, err := branchRepo.Get(ctx, cmd.OriginBranchID()); err != nil {
		return nil, err
	}
	if _, err := branchRepo.Get(ctx, cmd.DestinationBranchID()); err != nil {
		return nil, err
	}

	orders, err := orderRepo.GetMany(ctx, cmd.OrderIDs())
	if err != nil {
		return nil, err
	}

	open, err := batchRepo.ListOpenContaining(ctx, cmd.OrderIDs())
	if err != nil {
		return nil, err
	}

	created, err := h.dispatcher.CreateBatch(
		cmd.BatchID(),
		cmd.OriginBranchID(),
		cmd.DestinationBranchID(),
		cmd.OrderIDs(),
		orders,
		open,
		cmd.CreatedBy(),
		cmd.CreatedAt(),
	)
	if err != nil {
		return nil, err
	}

	if err = batchRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
