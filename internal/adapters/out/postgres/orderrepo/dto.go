// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between the aggregate, its status ledger, and their database tables.
package orderrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored by its wire name so the compare-and-swap on transitions
// and ad hoc SQL stay readable.
type OrderDTO struct {
	ID                  uuid.UUID          `gorm:"type:uuid;primaryKey"`
	BranchID            uuid.UUID          `gorm:"type:uuid;not null;index"`
	ProcessingBranchID  *uuid.UUID         `gorm:"type:uuid;index"`
	CustomerName        string             `gorm:"type:varchar(255);not null"`
	CustomerPhone       string             `gorm:"type:varchar(32)"`
	CollectionMethod    string             `gorm:"type:varchar(16);not null"`
	ReturnMethod        string             `gorm:"type:varchar(16);not null"`
	Delivery            AddressDTO         `gorm:"embedded;embeddedPrefix:delivery_"`
	TotalAmount         decimal.Decimal    `gorm:"type:numeric(14,2);not null"`
	Status              string             `gorm:"type:varchar(32);not null;index"`
	CreatedAt           time.Time          `gorm:"not null"`
	EstimatedCompletion time.Time          `gorm:"not null"`
	ActualCompletion    *time.Time         `gorm:"type:timestamptz"`
	ArrivedAt           *time.Time         `gorm:"type:timestamptz"`
	EarliestReturnTime  *time.Time         `gorm:"type:timestamptz"`
	SortingCompleted    bool               `gorm:"not null"`
	SortingCompletedAt  *time.Time         `gorm:"type:timestamptz"`
	History             []StatusHistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the embedded delivery address. All columns are NULL for
// orders returned by collection.
type AddressDTO struct {
	Street *string  `gorm:"type:varchar(512)"`
	Lat    *float64 `gorm:"type:double precision"`
	Lng    *float64 `gorm:"type:double precision"`
}

// StatusHistoryDTO is one ledger entry. Seq is the zero-based position in the
// ledger; the unique (order_id, seq) pair rejects a second writer appending
// the same position.
type StatusHistoryDTO struct {
	ID      uint      `gorm:"primaryKey;autoIncrement"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_status_history_seq"`
	Seq     int       `gorm:"not null;uniqueIndex:idx_order_status_history_seq"`
	Status  string    `gorm:"type:varchar(32);not null"`
	ActorID string    `gorm:"type:varchar(255)"`
	At      time.Time `gorm:"not null"`
}

// TableName specifies the database table name for ledger entries.
func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order aggregate, ledger included, to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	var processingBranchID *uuid.UUID
	if id := o.ProcessingBranchID(); !id.IsEqual(o.BranchID()) {
		raw := id.Bytes()
		processingBranchID = &raw
	}

	history := o.History()
	entries := make([]StatusHistoryDTO, 0, len(history))
	for i, e := range history {
		entries = append(entries, historyFromDomain(orderID, i, e))
	}

	return OrderDTO{
		ID:                  orderID,
		BranchID:            o.BranchID().Bytes(),
		ProcessingBranchID:  processingBranchID,
		CustomerName:        o.Customer().Name,
		CustomerPhone:       o.Customer().Phone,
		CollectionMethod:    string(o.CollectionMethod()),
		ReturnMethod:        string(o.ReturnMethod()),
		Delivery:            addressFromDomain(o.DeliveryAddress()),
		TotalAmount:         o.TotalAmount(),
		Status:              o.Status().String(),
		CreatedAt:           o.CreatedAt(),
		EstimatedCompletion: o.EstimatedCompletion(),
		ActualCompletion:    o.ActualCompletion(),
		ArrivedAt:           o.ArrivedAt(),
		EarliestReturnTime:  o.EarliestReturnTime(),
		SortingCompleted:    o.SortingCompleted(),
		SortingCompletedAt:  o.SortingCompletedAt(),
		History:             entries,
	}
}

func historyFromDomain(orderID uuid.UUID, seq int, e order.HistoryEntry) StatusHistoryDTO {
	return StatusHistoryDTO{
		OrderID: orderID,
		Seq:     seq,
		Status:  e.Status().String(),
		ActorID: e.ActorID(),
		At:      e.Timestamp(),
	}
}

func addressFromDomain(a *order.Address) AddressDTO {
	if a == nil {
		return AddressDTO{}
	}

	street := a.Street
	dto := AddressDTO{Street: &street}
	if a.Coordinates != nil {
		lat, lng := a.Coordinates.Lat(), a.Coordinates.Lng()
		dto.Lat, dto.Lng = &lat, &lng
	}
	return dto
}

// toDomain rebuilds the aggregate with RestoreOrder, which re-checks the ledger.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	var processingBranchID *kernel.UUID
	if dto.ProcessingBranchID != nil {
		pID, pErr := kernel.UUIDFromBytes((*dto.ProcessingBranchID)[:])
		if pErr != nil {
			return nil, pErr
		}
		processingBranchID = &pID
	}

	address, err := addressToDomain(dto.Delivery)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		s, parseErr := order.ParseStatus(h.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		entry, entryErr := order.NewHistoryEntry(s, h.At, h.ActorID)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                  id,
		BranchID:            branchID,
		ProcessingBranchID:  processingBranchID,
		Customer:            order.Customer{Name: dto.CustomerName, Phone: dto.CustomerPhone},
		CollectionMethod:    order.CollectionMethod(dto.CollectionMethod),
		ReturnMethod:        order.ReturnMethod(dto.ReturnMethod),
		DeliveryAddress:     address,
		TotalAmount:         dto.TotalAmount,
		Status:              status,
		History:             history,
		CreatedAt:           dto.CreatedAt,
		EstimatedCompletion: dto.EstimatedCompletion,
		ActualCompletion:    dto.ActualCompletion,
		ArrivedAt:           dto.ArrivedAt,
		EarliestReturnTime:  dto.EarliestReturnTime,
		SortingCompleted:    dto.SortingCompleted,
		SortingCompletedAt:  dto.SortingCompletedAt,
	})
}

func addressToDomain(dto AddressDTO) (*order.Address, error) {
	if dto.Street == nil {
		return nil, nil //nolint:nilnil // no address is a valid state
	}

	address := &order.Address{Street: *dto.Street}
	if dto.Lat != nil && dto.Lng != nil {
		c, err := kernel.NewCoordinates(*dto.Lat, *dto.Lng)
		if err != nil {
			return nil, err
		}
		address.Coordinates = &c
	}
	return address, nil
}
