package batch

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"laundry/internal/core/domain/model/kernel"
)

var (
	// ErrIneligibleOrder is the sentinel behind IneligibleOrdersError.
	ErrIneligibleOrder = errors.New("ineligible order")
	// ErrBatchNotFound is returned when an assignment targets a missing batch.
	ErrBatchNotFound = errors.New("batch not found")
	// ErrDriverAlreadyAssigned is returned when a batch that already has a
	// driver is given a different one.
	ErrDriverAlreadyAssigned = errors.New("batch already has a driver")
	// ErrBatchNotCompletable is returned when a batch without a driver, or with
	// orders still open, is marked delivered.
	ErrBatchNotCompletable = errors.New("batch cannot be completed")
)

// Ineligibility names one order that cannot join a batch and why.
type Ineligibility struct {
	OrderID kernel.UUID
	Reason  string
}

// IneligibleOrdersError lists every order that failed the eligibility checks,
// sorted by order id.
type IneligibleOrdersError struct {
	Orders []Ineligibility
}

// NewIneligibleOrdersError sorts items and wraps them in an error.
func NewIneligibleOrdersError(items []Ineligibility) *IneligibleOrdersError {
	sorted := append([]Ineligibility(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderID.String() < sorted[j].OrderID.String()
	})
	return &IneligibleOrdersError{Orders: sorted}
}

// OrderIDs returns the offending ids in order.
func (e *IneligibleOrdersError) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(e.Orders))
	for _, o := range e.Orders {
		ids = append(ids, o.OrderID)
	}
	return ids
}

func (e *IneligibleOrdersError) Error() string {
	parts := make([]string, 0, len(e.Orders))
	for _, o := range e.Orders {
		parts = append(parts, fmt.Sprintf("%s (%s)", o.OrderID, o.Reason))
	}
	return fmt.Sprintf("%s: %s", ErrIneligibleOrder, strings.Join(parts, ", "))
}

func (e *IneligibleOrdersError) Unwrap() error {
	return ErrIneligibleOrder
}
