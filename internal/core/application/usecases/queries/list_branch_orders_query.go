package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListBranchOrdersQueryIsNotConstructed = errors.New(
		"ListBranchOrdersQuery must be created via NewListBranchOrdersQuery constructor",
	)
)

// ListBranchOrdersQuery lists the orders of a branch, most urgent first.
//
// Example:
//
//	query, err := NewListBranchOrdersQuery(branchID, []order.Status{order.Washing, order.Drying}, time.Now())
//	orders, err := handler.Handle(ctx, query)
//	for _, o := range orders {
//	    fmt.Printf("%s urgency=%d overdue=%t\n", o.ID, o.UrgencyScore, o.Overdue)
//	}
type ListBranchOrdersQuery struct {
	branchID kernel.UUID
	statuses []order.Status
	at       time.Time

	guard guard.ConstructorGuard
}

// NewListBranchOrdersQuery creates the query. An empty statuses slice lists
// orders in any status.
func NewListBranchOrdersQuery(branchID kernel.UUID, statuses []order.Status, at time.Time) (ListBranchOrdersQuery, error) {
	errList := []error{branchID.Validate()}
	for _, s := range statuses {
		errList = append(errList, s.Validate())
	}
	if at.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("at"))
	}
	if err := errors.Join(errList...); err != nil {
		return ListBranchOrdersQuery{}, err
	}

	return ListBranchOrdersQuery{
		branchID: branchID,
		statuses: append([]order.Status(nil), statuses...),
		at:       at,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListBranchOrdersQueryIsNotConstructed if validation fails.
func (q ListBranchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListBranchOrdersQueryIsNotConstructed)
}

func (q ListBranchOrdersQuery) BranchID() kernel.UUID { return q.branchID }

func (q ListBranchOrdersQuery) Statuses() []order.Status {
	return append([]order.Status(nil), q.statuses...)
}

func (q ListBranchOrdersQuery) At() time.Time { return q.at }

// ListBranchOrdersQueryResponse is one row of the branch work list.
type ListBranchOrdersQueryResponse struct {
	ID                  kernel.UUID
	CustomerName        string
	Status              order.Status
	ReturnMethod        order.ReturnMethod
	TotalAmount         decimal.Decimal
	CreatedAt           time.Time
	EstimatedCompletion time.Time
	UrgencyScore        int
	DwellMinutes        float64
	Overdue             bool
}
