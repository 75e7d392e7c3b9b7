// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"laundry/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BranchRepoFactory provides access to branch repository within a transaction.
	BranchRepoFactory interface {
		BranchRepository() ports.BranchRepository
	}

	// DriverRepoFactory provides access to driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// BatchRepoFactory provides access to batch repository within a transaction.
	BatchRepoFactory interface {
		BatchRepository() ports.BatchRepository
	}

	// OrderUoW manages transactions for order operations.
	// Branches are readable because sorting windows depend on branch configuration.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		BranchRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BranchUoW manages transactions for branch-only operations.
	BranchUoW interface {
		TxManager
		BranchRepoFactory
	}

	// BranchUoWFactory creates new branch unit of work instances.
	BranchUoWFactory interface {
		Create() BranchUoW
	}

	// DriverUoW manages transactions for driver-only operations.
	// Used when commands only modify driver aggregates.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	// DriverUoWFactory creates new driver unit of work instances.
	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// UoW manages transactions across orders, branches, drivers and batches.
	// Used by the batch commands, which read orders and update drivers and
	// batches in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   batchRepo := uow.BatchRepository()
	//   driverRepo := uow.DriverRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		BranchRepoFactory
		DriverRepoFactory
		BatchRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
