package batchrepo

import (
	"context"
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/batch"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormBatchRepository implements ports.BatchRepository using GORM.
type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBatchRepository creates a new GORM batch repository.
func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new batch to the database.
func (r *GormBatchRepository) Add(ctx context.Context, aggregate *batch.Batch) error {
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

// Update writes the driver attachment and status of an existing batch as a
// compare-and-swap: the row must still have no driver or the same driver, and
// a status the written one may follow. Two requests racing to staff the same
// batch therefore attach exactly one driver.
//
// Returns batch.ErrDriverAlreadyAssigned when another driver got there first
// and errs.ErrVersionIsInvalid when the batch moved on, e.g. was completed.
func (r *GormBatchRepository) Update(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	query := r.db.WithContext(ctx).
		Model(&BatchDTO{}).
		Where("id = ?", dto.ID).
		Where("status IN ?", previousStatuses(aggregate.Status()))
	if dto.DriverID != nil {
		query = query.Where("(driver_id IS NULL OR driver_id = ?)", *dto.DriverID)
	} else {
		query = query.Where("driver_id IS NULL")
	}

	result := query.Updates(map[string]any{
		"driver_id": dto.DriverID,
		"status":    dto.Status,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.conflict(ctx, aggregate)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// conflict explains why a compare-and-swap matched no row.
func (r *GormBatchRepository) conflict(ctx context.Context, aggregate *batch.Batch) error {
	stored, err := r.Get(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	if current, wanted := stored.DriverID(), aggregate.DriverID(); current != nil &&
		(wanted == nil || !current.IsEqual(*wanted)) {
		return fmt.Errorf("%w: batch %s is assigned to %s", batch.ErrDriverAlreadyAssigned, stored.ID(), current)
	}
	return errs.NewVersionIsInvalidErrorWithCause("batch status",
		fmt.Errorf("batch %s is %s, cannot become %s", stored.ID(), stored.Status(), aggregate.Status()))
}

// previousStatuses lists the stored statuses a write of status may replace.
// Completion only follows an assignment, so a batch is completed once.
func previousStatuses(status batch.Status) []string {
	switch status {
	case batch.StatusAssigned:
		return []string{string(batch.StatusPending), string(batch.StatusAssigned)}
	case batch.StatusCompleted:
		return []string{string(batch.StatusAssigned)}
	default:
		return []string{string(batch.StatusPending)}
	}
}

// Get retrieves a batch by ID.
func (r *GormBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListWithoutDriver retrieves up to limit pending batches, oldest first.
// A limit of zero or less returns every pending batch.
func (r *GormBatchRepository) ListWithoutDriver(ctx context.Context, limit int) ([]*batch.Batch, error) {
	query := r.db.WithContext(ctx).
		Where("driver_id IS NULL").
		Order("created_at, id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []BatchDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ListOpenContaining retrieves the batches that are not completed and share at
// least one order id with orderIDs, oldest first.
func (r *GormBatchRepository) ListOpenContaining(ctx context.Context, orderIDs []kernel.UUID) ([]*batch.Batch, error) {
	if len(orderIDs) == 0 {
		return []*batch.Batch{}, nil
	}

	ids := make(pq.StringArray, 0, len(orderIDs))
	for _, id := range orderIDs {
		ids = append(ids, id.String())
	}

	var dtos []BatchDTO
	if err := r.db.WithContext(ctx).
		Where("status <> ?", string(batch.StatusCompleted)).
		Where("order_ids && ?::text[]", ids).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func toDomainList(dtos []BatchDTO) ([]*batch.Batch, error) {
	batches := make([]*batch.Batch, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}

	return batches, nil
}
