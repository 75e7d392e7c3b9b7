package ports

import (
	"context"

	"laundry/internal/core/domain/model/branch"
	"laundry/internal/core/domain/model/kernel"
)

// BranchRepository reads branch configuration.
type BranchRepository interface {
	Add(ctx context.Context, b *branch.Branch) error
	Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error)

	// List returns every branch ordered by name.
	List(ctx context.Context) ([]*branch.Branch, error)
}
