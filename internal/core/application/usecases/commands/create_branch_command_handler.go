package commands

import (
	"context"
)

// CreateBranchCommandHandler persists a new branch.
type CreateBranchCommandHandler struct {
	uowFactory BranchUoWFactory
}

// NewCreateBranchCommandHandler creates the handler.
func NewCreateBranchCommandHandler(uowFactory BranchUoWFactory) CreateBranchCommandHandler {
	return CreateBranchCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the branch within a transaction.
func (h *CreateBranchCommandHandler) Handle(ctx context.Context, cmd CreateBranchCommand) error {
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

	if err := uow.BranchRepository().Add(ctx, cmd.Branch()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
