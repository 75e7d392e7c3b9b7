package driverrepo

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDriverRepository creates a new GORM driver repository.
func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new driver to the database.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves name, phone and availability of an existing driver. The map
// form makes GORM write false and zero values, which Updates with a struct
// would skip. The batch load is not written here; see AddActiveBatches.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DriverDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":      dto.Name,
			"phone":     dto.Phone,
			"available": dto.Available,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// AddActiveBatches shifts the stored batch load by delta inside the database,
// clamped at zero. Concurrent assignments each add their own increment instead
// of writing back a value read earlier.
func (r *GormDriverRepository) AddActiveBatches(ctx context.Context, id kernel.UUID, delta int) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DriverDTO{}).
		Where("id = ?", id.Bytes()).
		Update("active_batches", gorm.Expr("GREATEST(active_batches + ?, 0)", delta))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", id.String())
	}
	return nil
}

// Get retrieves a driver by ID.
func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListAvailable retrieves on-shift drivers based at branchID, ordered by name
// so that ties in load resolve the same way on every run.
//
// Example:
//
//	drivers, err := repo.ListAvailable(ctx, branchID)
//	if err != nil {
//		return fmt.Errorf("failed to list drivers: %w", err)
//	}
//	for _, d := range drivers {
//		fmt.Printf("%s carries %d batches\n", d.Name(), d.ActiveBatches())
//	}
func (r *GormDriverRepository) ListAvailable(ctx context.Context, branchID kernel.UUID) ([]*driver.Driver, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DriverDTO
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND available = ?", branchID.Bytes(), true).
		Order("name, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}

	return drivers, nil
}
