package ports

import (
	"context"

	"laundry/internal/core/domain/model/feerule"
	"laundry/internal/core/domain/model/kernel"
)

// FeeRuleRepository supplies the delivery fee rules that may apply at a
// branch: rules scoped to it and rules scoped to all branches. Filtering on
// activity and validity is left to the fee engine.
type FeeRuleRepository interface {
	ListForBranch(ctx context.Context, branchID kernel.UUID) ([]*feerule.Rule, error)
}
