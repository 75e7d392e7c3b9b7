package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var (
	ErrValidateDeliveryTimeQueryIsNotConstructed = errors.New(
		"ValidateDeliveryTimeQuery must be created via NewValidateDeliveryTimeQuery constructor",
	)
)

// ValidateDeliveryTimeQuery asks whether an order may leave its processing
// branch at a proposed time.
//
// Example:
//
//	query, _ := NewValidateDeliveryTimeQuery(orderID, proposed, time.Now())
//	result, err := handler.Handle(ctx, query)
//	if err == nil && !result.Valid {
//	    fmt.Printf("earliest possible: %s\n", result.EarliestTime)
//	}
type ValidateDeliveryTimeQuery struct {
	orderID  kernel.UUID
	proposed time.Time
	at       time.Time

	guard guard.ConstructorGuard
}

// NewValidateDeliveryTimeQuery creates the query. at is the current time,
// used when the order has not arrived yet.
func NewValidateDeliveryTimeQuery(orderID kernel.UUID, proposed, at time.Time) (ValidateDeliveryTimeQuery, error) {
	var proposedErr, atErr error
	if proposed.IsZero() {
		proposedErr = errs.NewValueIsRequiredError("proposedTime")
	}
	if at.IsZero() {
		atErr = errs.NewValueIsRequiredError("at")
	}
	if err := errors.Join(orderID.Validate(), proposedErr, atErr); err != nil {
		return ValidateDeliveryTimeQuery{}, err
	}

	return ValidateDeliveryTimeQuery{
		orderID:  orderID,
		proposed: proposed,
		at:       at,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrValidateDeliveryTimeQueryIsNotConstructed if validation fails.
func (q ValidateDeliveryTimeQuery) Validate() error {
	return q.guard.Validate(ErrValidateDeliveryTimeQueryIsNotConstructed)
}

func (q ValidateDeliveryTimeQuery) OrderID() kernel.UUID { return q.orderID }

func (q ValidateDeliveryTimeQuery) Proposed() time.Time { return q.proposed }

func (q ValidateDeliveryTimeQuery) At() time.Time { return q.at }
