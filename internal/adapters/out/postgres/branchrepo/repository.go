package branchrepo

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/branch"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBranchRepository implements ports.BranchRepository using GORM.
type GormBranchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBranchRepository creates a new GORM branch repository.
func NewGormBranchRepository(db *gorm.DB, tracker aggregateTracker) *GormBranchRepository {
	return &GormBranchRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new branch.
func (r *GormBranchRepository) Add(ctx context.Context, b *branch.Branch) error {
	if err := b.Validate(); err != nil {
		return err
	}

	dto := fromDomain(b)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(b.ID(), b)
	return nil
}

// Get retrieves a branch by ID.
func (r *GormBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BranchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("branch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// List returns every branch ordered by name, then id.
func (r *GormBranchRepository) List(ctx context.Context) ([]*branch.Branch, error) {
	var dtos []BranchDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	branches := make([]*branch.Branch, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}

	return branches, nil
}
