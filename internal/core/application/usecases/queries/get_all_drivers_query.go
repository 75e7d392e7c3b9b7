package queries

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var (
	ErrGetAllDriversQueryIsNotConstructed = errors.New(
		"GetAllDriversQuery must be created via NewGetAllDriversQuery constructor",
	)
)

// GetAllDriversQuery retrieves drivers for the dispatch board, optionally
// narrowed to one branch or to drivers on shift.
//
// Example:
//
//	query, err := NewGetAllDriversQuery(&branchID, true)
//	handler := NewGetAllDriversQueryHandler(db)
//
//	drivers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve drivers: %w", err)
//	}
//
//	for _, d := range drivers {
//	    fmt.Printf("%s carries %d batches\n", d.Name, d.ActiveBatches)
//	}
type GetAllDriversQuery struct {
	branchID      *kernel.UUID
	onlyAvailable bool

	guard guard.ConstructorGuard
}

// NewGetAllDriversQuery creates the query. A nil branchID lists every branch.
func NewGetAllDriversQuery(branchID *kernel.UUID, onlyAvailable bool) (GetAllDriversQuery, error) {
	if branchID != nil {
		if err := branchID.Validate(); err != nil {
			return GetAllDriversQuery{}, err
		}
		id := *branchID
		branchID = &id
	}

	return GetAllDriversQuery{
		branchID:      branchID,
		onlyAvailable: onlyAvailable,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllDriversQueryIsNotConstructed if validation fails.
func (q GetAllDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetAllDriversQueryIsNotConstructed)
}

func (q GetAllDriversQuery) BranchID() *kernel.UUID { return q.branchID }

func (q GetAllDriversQuery) OnlyAvailable() bool { return q.onlyAvailable }

// GetAllDriversQueryResponse represents driver information in the read model.
type GetAllDriversQueryResponse struct {
	ID            kernel.UUID
	Name          string
	Phone         string
	BranchID      kernel.UUID
	Available     bool
	ActiveBatches int
}
