// Package branchrepo persists branch configuration: type, main store link,
// sorting window and location.
package branchrepo

import (
	"laundry/internal/core/domain/model/branch"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BranchDTO represents the database structure for persisting branches.
type BranchDTO struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name               string      `gorm:"type:varchar(255);not null"`
	Type               string      `gorm:"type:varchar(16);not null"`
	MainStoreID        *uuid.UUID  `gorm:"type:uuid;index"`
	SortingWindowHours *int        `gorm:"type:int"`
	Location           LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
}

// TableName specifies the database table name for branch entities.
func (BranchDTO) TableName() string {
	return "branches"
}

// LocationDTO represents the embedded branch coordinates. Both columns are
// NULL for branches without a known location.
type LocationDTO struct {
	Lat *float64 `gorm:"type:double precision"`
	Lng *float64 `gorm:"type:double precision"`
}

func fromDomain(b *branch.Branch) BranchDTO {
	var mainStoreID *uuid.UUID
	if id := b.MainStoreID(); id != nil {
		raw := id.Bytes()
		mainStoreID = &raw
	}

	var location LocationDTO
	if loc := b.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		location = LocationDTO{Lat: &lat, Lng: &lng}
	}

	return BranchDTO{
		ID:                 b.ID().Bytes(),
		Name:               b.Name(),
		Type:               string(b.Type()),
		MainStoreID:        mainStoreID,
		SortingWindowHours: b.SortingWindowHours(),
		Location:           location,
	}
}

func toDomain(dto BranchDTO) (*branch.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var mainStoreID *kernel.UUID
	if dto.MainStoreID != nil {
		mID, mErr := kernel.UUIDFromBytes((*dto.MainStoreID)[:])
		if mErr != nil {
			return nil, mErr
		}
		mainStoreID = &mID
	}

	var location *kernel.Coordinates
	if dto.Location.Lat != nil && dto.Location.Lng != nil {
		c, cErr := kernel.NewCoordinates(*dto.Location.Lat, *dto.Location.Lng)
		if cErr != nil {
			return nil, cErr
		}
		location = &c
	}

	return branch.NewBranch(id, dto.Name, branch.Type(dto.Type), mainStoreID, dto.SortingWindowHours, location)
}
