package feerule

import (
	"laundry/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Context is the order data a fee is computed for. An empty CustomerSegment
// and a nil DistanceKm mean "unknown".
type Context struct {
	BranchID        kernel.UUID
	OrderAmount     decimal.Decimal
	CustomerSegment string
	DistanceKm      *float64
}
