// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries never open a unit of work; they read through plain repositories
// or, for flat listings, straight from the database.
package queries

import (
	"context"

	"laundry/internal/core/domain/model/branch"
	"laundry/internal/core/domain/model/feerule"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// OrderReader is the read side of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	ListByBranchAndStatus(ctx context.Context, branchID kernel.UUID, statuses []order.Status) ([]*order.Order, error)
}

// BranchReader is the read side of ports.BranchRepository.
type BranchReader interface {
	Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error)
}

// FeeRuleReader supplies the rules a quote is priced against.
type FeeRuleReader interface {
	ListForBranch(ctx context.Context, branchID kernel.UUID) ([]*feerule.Rule, error)
}
