package ports

import (
	"context"

	"laundry/internal/core/domain/model/batch"
	"laundry/internal/core/domain/model/kernel"
)

// BatchRepository defines the persistence contract for delivery batches.
type BatchRepository interface {
	Add(ctx context.Context, b *batch.Batch) error

	// Update persists the driver attachment and status of an existing batch.
	// The write only applies while the stored batch has no driver or the same
	// one, and has not moved past the status being written. Otherwise it
	// returns batch.ErrDriverAlreadyAssigned or errs.ErrVersionIsInvalid.
	Update(ctx context.Context, b *batch.Batch) error

	// Get returns errs.ErrObjectNotFound when no batch has the id.
	Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error)

	// ListWithoutDriver returns up to limit driverless batches, oldest first.
	ListWithoutDriver(ctx context.Context, limit int) ([]*batch.Batch, error)

	// ListOpenContaining returns the batches not yet completed that hold any
	// of orderIDs.
	ListOpenContaining(ctx context.Context, orderIDs []kernel.UUID) ([]*batch.Batch, error)
}
