package orderrepo

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
// The order row and its ledger rows are always written together.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its ledger.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves the sorting window fields of an existing order. Status and
// ledger are left alone; they only move through UpdateStatus.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"processing_branch_id": dto.ProcessingBranchID,
			"arrived_at":           dto.ArrivedAt,
			"earliest_return_time": dto.EarliestReturnTime,
			"sorting_completed":    dto.SortingCompleted,
			"sorting_completed_at": dto.SortingCompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateStatus moves the stored status from expected to the aggregate's
// current status and appends entry to the ledger. Both writes share one
// transaction, or a savepoint when the repository is already inside one.
//
// Returns errs.ErrVersionIsInvalid when the stored status is no longer
// expected, meaning a concurrent transition won.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context,
	aggregate *order.Order,
	expected order.Status,
	entry order.HistoryEntry,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	orderID := aggregate.ID().Bytes()
	seq := len(aggregate.History()) - 1

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).
			Where("id = ? AND status = ?", orderID, expected.String()).
			Updates(map[string]any{
				"status":            aggregate.Status().String(),
				"actual_completion": aggregate.ActualCompletion(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewVersionIsInvalidError("order status")
		}

		history := historyFromDomain(orderID, seq, entry)
		return tx.Create(&history).Error
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its full ledger.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withHistory(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the orders that exist among ids, in the order asked for.
func (r *GormOrderRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	if len(ids) == 0 {
		return []*order.Order{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []OrderDTO
	if err := r.withHistory(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]OrderDTO, len(dtos))
	for _, dto := range dtos {
		byID[dto.ID] = dto
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, id := range raw {
		dto, ok := byID[id]
		if !ok {
			continue
		}
		delete(byID, id)

		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// ListByBranchAndStatus retrieves orders owned by or forwarded to branchID,
// oldest first. An empty statuses slice matches every status.
func (r *GormOrderRepository) ListByBranchAndStatus(
	ctx context.Context,
	branchID kernel.UUID,
	statuses []order.Status,
) ([]*order.Order, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	where, args, err := branchFilter(branchID, statuses).ToSql()
	if err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err = r.withHistory(ctx).Where(where, args...).Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// branchFilter builds the WHERE clause of ListByBranchAndStatus. Ids are bound
// in text form: squirrel would expand the uuid byte array into an IN list.
func branchFilter(branchID kernel.UUID, statuses []order.Status) sq.Sqlizer {
	id := branchID.String()
	filter := sq.And{
		sq.Or{
			sq.Eq{"branch_id": id},
			sq.Eq{"processing_branch_id": id},
		},
	}

	if len(statuses) > 0 {
		names := make([]string, 0, len(statuses))
		for _, s := range statuses {
			names = append(names, s.String())
		}
		filter = append(filter, sq.Eq{"status": names})
	}

	return filter
}

func (r *GormOrderRepository) withHistory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("History", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	})
}
