// Package driverrepo provides data transfer objects and mapping functions for driver persistence.
// This package implements the repository pattern for the driver domain aggregate, handling
// the conversion between domain entities and database representations.
package driverrepo

import (
	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver aggregates.
// ActiveBatches is kept on the row so automatic assignment can compare loads
// without counting batches.
type DriverDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Phone         string    `gorm:"type:varchar(32)"`
	BranchID      uuid.UUID `gorm:"type:uuid;not null;index:idx_drivers_branch_available"`
	Available     bool      `gorm:"not null;index:idx_drivers_branch_available"`
	ActiveBatches int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for driver entities.
// Overrides GORM's default naming convention to use "drivers" instead of "driver_dtos".
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver aggregate to its database representation.
func fromDomain(d *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:            d.ID().Bytes(),
		Name:          d.Name(),
		Phone:         d.Phone(),
		BranchID:      d.BranchID().Bytes(),
		Available:     d.IsAvailable(),
		ActiveBatches: d.ActiveBatches(),
	}
}

// toDomain converts a database DTO to a driver aggregate using RestoreDriver.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(id, dto.Name, dto.Phone, branchID, dto.Available, dto.ActiveBatches)
}
