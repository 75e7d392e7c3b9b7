package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var (
	ErrGetSortingWindowQueryIsNotConstructed = errors.New(
		"GetSortingWindowQuery must be created via NewGetSortingWindowQuery constructor",
	)
)

// GetSortingWindowQuery reads the sorting window state of one order.
type GetSortingWindowQuery struct {
	orderID kernel.UUID
	at      time.Time

	guard guard.ConstructorGuard
}

// NewGetSortingWindowQuery creates the query evaluated at at.
func NewGetSortingWindowQuery(orderID kernel.UUID, at time.Time) (GetSortingWindowQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetSortingWindowQuery{}, err
	}
	if at.IsZero() {
		return GetSortingWindowQuery{}, errs.NewValueIsRequiredError("at")
	}

	return GetSortingWindowQuery{
		orderID: orderID,
		at:      at,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetSortingWindowQueryIsNotConstructed if validation fails.
func (q GetSortingWindowQuery) Validate() error {
	return q.guard.Validate(ErrGetSortingWindowQueryIsNotConstructed)
}

func (q GetSortingWindowQuery) OrderID() kernel.UUID { return q.orderID }

func (q GetSortingWindowQuery) At() time.Time { return q.at }

// GetSortingWindowQueryResponse is the window of an order at its processing
// branch. EarliestReturnTime is projected from the query time when the order
// has not arrived yet.
type GetSortingWindowQueryResponse struct {
	OrderID            kernel.UUID
	BranchID           kernel.UUID
	WindowHours        float64
	Arrived            bool
	ArrivedAt          *time.Time
	EarliestReturnTime time.Time
	SortingCompleted   bool
	SortingCompletedAt *time.Time
	RemainingMinutes   int
}
