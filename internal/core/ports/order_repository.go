package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their status ledger.
type OrderRepository interface {
	// Add persists a new order together with its opening ledger entry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the sorting window fields of an existing order.
	// It never touches status or the ledger; use UpdateStatus for that.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its full ledger.
	// Returns errs.ErrObjectNotFound when no order has the id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetMany retrieves the orders that exist among ids. Missing ids are
	// silently skipped; callers compare the result against what they asked for.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// UpdateStatus is a compare-and-swap of the order status: it succeeds only
	// if the stored status still equals expected, and appends entry to the
	// ledger in the same write.
	//
	// Returns errs.ErrVersionIsInvalid when another writer moved the order first.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status, entry order.HistoryEntry) error

	// ListByBranchAndStatus retrieves orders processed at branchID. An empty
	// statuses slice returns orders in any status.
	ListByBranchAndStatus(ctx context.Context, branchID kernel.UUID, statuses []order.Status) ([]*order.Order, error)
}
