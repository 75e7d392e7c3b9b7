package feerulerepo

import (
	"context"

	"laundry/internal/core/domain/model/feerule"
	"laundry/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormFeeRuleRepository implements ports.FeeRuleRepository using GORM. Rules
// are reference data outside any unit of work, so it works on the plain pool.
type GormFeeRuleRepository struct {
	db *gorm.DB
}

// NewGormFeeRuleRepository creates a new GORM fee rule repository.
func NewGormFeeRuleRepository(db *gorm.DB) *GormFeeRuleRepository {
	return &GormFeeRuleRepository{db: db}
}

// Add saves a new fee rule.
func (r *GormFeeRuleRepository) Add(ctx context.Context, rule *feerule.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	dto := fromDomain(rule)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListForBranch retrieves the rules scoped to branchID and the rules scoped to
// all branches, highest priority first. Inactive and expired rules are
// included; the fee engine filters them at pricing time.
func (r *GormFeeRuleRepository) ListForBranch(ctx context.Context, branchID kernel.UUID) ([]*feerule.Rule, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	var dtos []FeeRuleDTO
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? OR branch_id IS NULL", branchID.Bytes()).
		Order("priority DESC, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	rules := make([]*feerule.Rule, 0, len(dtos))
	for _, dto := range dtos {
		rule, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}
