package ports

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/kernel"
)

// ErrOrderLocked is returned by OrderLocker.Lock when another transition on
// the same order is in flight.
var ErrOrderLocked = errors.New("order is locked by another transition")

// OrderLocker grants at most one in-flight transition per order.
// The returned unlock func is safe to call once the work is done.
type OrderLocker interface {
	Lock(ctx context.Context, orderID kernel.UUID) (unlock func(), err error)
}
