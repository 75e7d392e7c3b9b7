package commands

import (
	"errors"

	"laundry/internal/core/domain/model/branch"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrCreateBranchCommandIsNotConstructed = errors.New(
	"CreateBranchCommand must be created via NewCreateBranchCommand constructor",
)

// CreateBranchCommand registers a main store or a satellite branch.
type CreateBranchCommand struct { //nolint:recvcheck //using for validation
	entity *branch.Branch

	guard guard.ConstructorGuard
}

// NewCreateBranchCommand validates the branch data up front, so a malformed
// branch never reaches the handler. sortingWindowHours and location are optional.
func NewCreateBranchCommand(
	id kernel.UUID,
	name string,
	branchType branch.Type,
	mainStoreID *kernel.UUID,
	sortingWindowHours *int,
	location *kernel.Coordinates,
) (CreateBranchCommand, error) {
	entity, err := branch.NewBranch(id, name, branchType, mainStoreID, sortingWindowHours, location)
	if err != nil {
		return CreateBranchCommand{}, err
	}

	return CreateBranchCommand{
		entity: entity,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBranchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBranchCommandIsNotConstructed)
}

// Branch returns the branch to store.
func (c CreateBranchCommand) Branch() *branch.Branch {
	return c.entity
}
