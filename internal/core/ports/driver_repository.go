package ports

import (
	"context"

	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver.
	Add(ctx context.Context, d *driver.Driver) error

	// Update persists name, phone and availability of an existing driver.
	// The batch load is left alone; it only changes through AddActiveBatches.
	Update(ctx context.Context, d *driver.Driver) error

	// AddActiveBatches shifts the stored batch load by delta in one statement,
	// never below zero, so concurrent assignments do not lose counts.
	// Returns errs.ErrObjectNotFound when no driver has the id.
	AddActiveBatches(ctx context.Context, id kernel.UUID, delta int) error

	// Get retrieves a driver by id.
	// Returns errs.ErrObjectNotFound when no driver has the id.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// ListAvailable retrieves on-shift drivers based at branchID, each with its
	// current active batch count.
	ListAvailable(ctx context.Context, branchID kernel.UUID) ([]*driver.Driver, error)
}
