// Package batchrepo persists delivery batches. Order ids live in a text array
// column of the batch row; a batch is always read and written whole.
package batchrepo

import (
	"time"

	"laundry/internal/core/domain/model/batch"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BatchDTO represents the database structure for persisting batch aggregates.
type BatchDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OriginBranchID      uuid.UUID      `gorm:"type:uuid;not null"`
	DestinationBranchID uuid.UUID      `gorm:"type:uuid;not null"`
	OrderIDs            pq.StringArray `gorm:"type:text[];not null"`
	DriverID            *uuid.UUID     `gorm:"type:uuid;index"`
	Status              string         `gorm:"type:varchar(16);not null;index:idx_batches_status_created"`
	CreatedBy           string         `gorm:"type:varchar(255)"`
	CreatedAt           time.Time      `gorm:"not null;index:idx_batches_status_created"`
}

// TableName specifies the database table name for batch entities.
func (BatchDTO) TableName() string {
	return "batches"
}

func fromDomain(b *batch.Batch) BatchDTO {
	ids := b.OrderIDs()
	orderIDs := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		orderIDs = append(orderIDs, id.String())
	}

	var driverID *uuid.UUID
	if d := b.DriverID(); d != nil {
		raw := d.Bytes()
		driverID = &raw
	}

	return BatchDTO{
		ID:                  b.ID().Bytes(),
		OriginBranchID:      b.OriginBranchID().Bytes(),
		DestinationBranchID: b.DestinationBranchID().Bytes(),
		OrderIDs:            orderIDs,
		DriverID:            driverID,
		Status:              string(b.Status()),
		CreatedBy:           b.CreatedBy(),
		CreatedAt:           b.CreatedAt(),
	}
}

// toDomain rebuilds the batch with RestoreBatch. Pending and assigned follow
// from the driver column; only completion is read from the status column.
func toDomain(dto BatchDTO) (*batch.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	origin, err := kernel.UUIDFromBytes(dto.OriginBranchID[:])
	if err != nil {
		return nil, err
	}
	destination, err := kernel.UUIDFromBytes(dto.DestinationBranchID[:])
	if err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(dto.OrderIDs))
	for _, raw := range dto.OrderIDs {
		orderID, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return nil, parseErr
		}
		orderIDs = append(orderIDs, orderID)
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		d, dErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if dErr != nil {
			return nil, dErr
		}
		driverID = &d
	}

	completed := dto.Status == string(batch.StatusCompleted)
	return batch.RestoreBatch(id, origin, destination, orderIDs, driverID, completed, dto.CreatedBy, dto.CreatedAt)
}
