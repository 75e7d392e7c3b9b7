package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrCompleteBatchCommandIsNotConstructed = errors.New(
	"CompleteBatchCommand must be created via NewCompleteBatchCommand constructor",
)

// CompleteBatchCommand closes a batch whose orders have all been delivered.
type CompleteBatchCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteBatchCommand creates the command.
func NewCompleteBatchCommand(batchID kernel.UUID) (CompleteBatchCommand, error) {
	if err := batchID.Validate(); err != nil {
		return CompleteBatchCommand{}, err
	}

	return CompleteBatchCommand{
		batchID: batchID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteBatchCommand) Validate() error {
	return c.guard.Validate(ErrCompleteBatchCommandIsNotConstructed)
}

// BatchID returns the batch to close.
func (c CompleteBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}
