package queries

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"laundry/internal/core/domain/model/feerule"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrQuoteDeliveryFeeQueryIsNotConstructed = errors.New(
		"QuoteDeliveryFeeQuery must be created via NewQuoteDeliveryFeeQuery constructor",
	)
)

// QuoteDeliveryFeeQuery prices the delivery of one order at a branch.
//
// Example:
//
//	km := 3.2
//	query, err := NewQuoteDeliveryFeeQuery(branchID, decimal.NewFromInt(2500), "vip", &km, time.Now())
//	quote, err := handler.Handle(ctx, query)
//	fmt.Println(quote.Fee, quote.Reason)
type QuoteDeliveryFeeQuery struct { //nolint:recvcheck //using for validation
	feeContext feerule.Context
	at         time.Time

	guard guard.ConstructorGuard
}

// NewQuoteDeliveryFeeQuery creates the query. segment may be empty and
// distanceKm nil when unknown.
func NewQuoteDeliveryFeeQuery(
	branchID kernel.UUID,
	orderAmount decimal.Decimal,
	segment string,
	distanceKm *float64,
	at time.Time,
) (QuoteDeliveryFeeQuery, error) {
	q := QuoteDeliveryFeeQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		branchID.Validate(),
		q.setOrderAmount(orderAmount),
		q.setDistance(distanceKm),
		q.setAt(at),
	); err != nil {
		return QuoteDeliveryFeeQuery{}, err
	}

	q.feeContext.BranchID = branchID
	q.feeContext.CustomerSegment = strings.TrimSpace(segment)
	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrQuoteDeliveryFeeQueryIsNotConstructed if validation fails.
func (q QuoteDeliveryFeeQuery) Validate() error {
	return q.guard.Validate(ErrQuoteDeliveryFeeQueryIsNotConstructed)
}

// FeeContext returns the pricing input.
func (q QuoteDeliveryFeeQuery) FeeContext() feerule.Context {
	return q.feeContext
}

// At returns the moment the quote is evaluated for.
func (q QuoteDeliveryFeeQuery) At() time.Time {
	return q.at
}

func (q *QuoteDeliveryFeeQuery) setOrderAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("orderAmount", fmt.Errorf("%s is negative", amount))
	}
	q.feeContext.OrderAmount = amount
	return nil
}

func (q *QuoteDeliveryFeeQuery) setDistance(km *float64) error {
	if km == nil {
		return nil
	}
	if *km < 0 || math.IsNaN(*km) || math.IsInf(*km, 0) {
		return errs.NewValueIsOutOfRangeError("distanceKm", *km, 0, math.MaxFloat64)
	}
	v := *km
	q.feeContext.DistanceKm = &v
	return nil
}

func (q *QuoteDeliveryFeeQuery) setAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	q.at = at
	return nil
}
