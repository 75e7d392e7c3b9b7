package queries

import (
	"errors"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var (
	ErrGetStatusesQueryIsNotConstructed = errors.New(
		"GetStatusesQuery must be created via NewGetStatusesQuery constructor",
	)
)

// GetStatusesQuery lists every lifecycle status with the moves allowed out of it.
//
// Example:
//
//	query := NewGetStatusesQuery()
//	handler := NewGetStatusesQueryHandler(order.NewGraph())
//
//	statuses, err := handler.Handle(ctx, query)
//	for _, s := range statuses {
//	    fmt.Printf("%s -> %v\n", s.Status, s.Successors)
//	}
type GetStatusesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStatusesQuery creates the query. It has no parameters.
func NewGetStatusesQuery() GetStatusesQuery {
	return GetStatusesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStatusesQueryIsNotConstructed if validation fails.
func (q GetStatusesQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusesQueryIsNotConstructed)
}

// GetStatusesQueryResponse describes one status. Position is the zero-based
// place in the forward order. NotificationTemplate is empty when entering the
// status does not notify the customer.
type GetStatusesQueryResponse struct {
	Status               order.Status
	Position             int
	Successors           []order.Status
	Terminal             bool
	NotificationTemplate string
}
