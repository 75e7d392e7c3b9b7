package queries

import (
	"context"

	"laundry/internal/core/domain/model/kernel"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllDriversQueryHandler reads drivers straight from the drivers table.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetAllDriversQueryHandler(db)
//	query, _ := NewGetAllDriversQuery(nil, false)
//
//	drivers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get drivers: %v", err)
//	    return err
//	}
type GetAllDriversQueryHandler struct {
	db *gorm.DB
}

// NewGetAllDriversQueryHandler creates a handler for driver listing queries.
func NewGetAllDriversQueryHandler(db *gorm.DB) GetAllDriversQueryHandler {
	return GetAllDriversQueryHandler{db: db}
}

// Handle returns the matching drivers sorted by name.
func (h GetAllDriversQueryHandler) Handle(
	ctx context.Context,
	query GetAllDriversQuery,
) ([]GetAllDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	builder := sq.Select("id", "name", "phone", "branch_id", "available", "active_batches").
		From("drivers").
		OrderBy("name", "id")
	if branchID := query.BranchID(); branchID != nil {
		builder = builder.Where(sq.Eq{"branch_id": branchID.String()})
	}
	if query.OnlyAvailable() {
		builder = builder.Where(sq.Eq{"available": true})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]GetAllDriversQueryResponse, 0)
	for rows.Next() {
		var d GetAllDriversQueryResponse
		var id, branchID uuid.UUID

		err = rows.Scan(
			&id,
			&d.Name,
			&d.Phone,
			&branchID,
			&d.Available,
			&d.ActiveBatches,
		)
		if err != nil {
			return nil, err
		}

		if d.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if d.BranchID, err = kernel.UUIDFromBytes(branchID[:]); err != nil {
			return nil, err
		}

		drivers = append(drivers, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
