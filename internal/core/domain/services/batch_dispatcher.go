package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/batch"
	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// BatchDispatcher is a domain service that groups ready orders into delivery
// batches and matches batches with drivers.
//
// Key responsibilities:
//   - Checking every requested order for batch eligibility
//   - Creating batches all-or-nothing
//   - Selecting the least loaded available driver at the origin branch
//   - Attaching a driver to a batch and counting the load
//   - Completing a delivered batch and releasing the driver's load
//
// Business rules:
//   - An order is eligible when it is Ready, goes back by delivery and has a
//     street address with coordinates
//   - An order sits in at most one open batch
//   - One ineligible order rejects the whole batch, and the error lists every
//     offending id
//   - A batch completes once every order in it is delivered
//   - Driver selection prefers the lowest active batch count; ties go to the
//     first driver given
//   - No available driver is a normal outcome, not an error
//
// Example usage:
//
//	dispatcher := services.NewBatchDispatcher()
//	b, err := dispatcher.CreateBatch(id, origin, dest, orderIDs, orders, openBatches, "staff-7", now)
//	if errors.Is(err, batch.ErrIneligibleOrder) {
//	    // show the offending ids
//	}
//	if d := dispatcher.SelectDriver(drivers, origin); d != nil {
//	    err = dispatcher.AssignDriver(b, d)
//	}
type BatchDispatcher struct{}

// NewBatchDispatcher creates a new BatchDispatcher instance.
func NewBatchDispatcher() BatchDispatcher {
	return BatchDispatcher{}
}

// CheckEligibility checks every requested id against the loaded orders.
//
// Parameters:
//   - requested: Order ids the caller wants in the batch
//   - found: Orders loaded for those ids; ids without an order are ineligible
//   - open: Batches not yet completed that contain any of the requested ids
//
// Returns:
//   - error: *batch.IneligibleOrdersError listing every failing id, or nil
func (d BatchDispatcher) CheckEligibility(requested []kernel.UUID, found []*order.Order, open []*batch.Batch) error {
	if len(requested) == 0 {
		return errs.NewValueIsRequiredError("order ids")
	}

	byID := make(map[string]*order.Order, len(found))
	for _, o := range found {
		if o != nil {
			byID[o.ID().String()] = o
		}
	}

	batchedIn := make(map[string]kernel.UUID)
	for _, b := range open {
		if b == nil || b.IsCompleted() {
			continue
		}
		for _, id := range b.OrderIDs() {
			batchedIn[id.String()] = b.ID()
		}
	}

	var failed []batch.Ineligibility
	for _, id := range requested {
		o, ok := byID[id.String()]
		if !ok {
			failed = append(failed, batch.Ineligibility{OrderID: id, Reason: "not found"})
			continue
		}
		if reason := ineligibility(o); reason != "" {
			failed = append(failed, batch.Ineligibility{OrderID: id, Reason: reason})
			continue
		}
		if batchID, taken := batchedIn[id.String()]; taken {
			failed = append(failed, batch.Ineligibility{OrderID: id, Reason: fmt.Sprintf("already in batch %s", batchID)})
		}
	}

	if len(failed) > 0 {
		return batch.NewIneligibleOrdersError(failed)
	}
	return nil
}

// CreateBatch checks eligibility and builds a driverless batch. Nothing is
// created when any order fails.
func (d BatchDispatcher) CreateBatch(
	id, originBranchID, destinationBranchID kernel.UUID,
	requested []kernel.UUID,
	found []*order.Order,
	open []*batch.Batch,
	createdBy string,
	now time.Time,
) (*batch.Batch, error) {
	if err := d.CheckEligibility(requested, found, open); err != nil {
		return nil, err
	}
	return batch.NewBatch(id, originBranchID, destinationBranchID, requested, createdBy, now)
}

// SelectDriver returns the available driver at originBranchID with the fewest
// active batches, or nil when there is none.
func (d BatchDispatcher) SelectDriver(drivers []*driver.Driver, originBranchID kernel.UUID) *driver.Driver {
	var best *driver.Driver
	for _, candidate := range drivers {
		if candidate.Validate() != nil || !candidate.CanServe(originBranchID) {
			continue
		}
		if best == nil || candidate.ActiveBatches() < best.ActiveBatches() {
			best = candidate
		}
	}
	return best
}

// AssignDriver attaches drv to b and counts the batch against the driver.
// Repeating an assignment to the same driver changes nothing.
//
// Returns:
//   - driver.ErrDriverUnavailable if drv is off shift or based elsewhere
//   - batch.ErrDriverAlreadyAssigned if b already has another driver
func (d BatchDispatcher) AssignDriver(b *batch.Batch, drv *driver.Driver) error {
	if err := errors.Join(b.Validate(), drv.Validate()); err != nil {
		return err
	}

	if current := b.DriverID(); current != nil && current.IsEqual(drv.ID()) {
		return nil
	}
	if !drv.CanServe(b.OriginBranchID()) {
		return fmt.Errorf("%w: %s cannot serve branch %s", driver.ErrDriverUnavailable, drv.ID(), b.OriginBranchID())
	}
	if err := b.AssignDriver(drv.ID()); err != nil {
		return err
	}
	return drv.TakeBatch()
}

// CompleteBatch marks b delivered and takes it off drv's load. Every order of
// the batch must be among orders and delivered. Completing a completed batch
// changes nothing.
//
// Returns:
//   - batch.ErrBatchNotCompletable if b has no driver or an order is still open
//   - errs.ErrValueIsInvalid if drv is not the batch's driver
func (d BatchDispatcher) CompleteBatch(b *batch.Batch, drv *driver.Driver, orders []*order.Order) error {
	if err := errors.Join(b.Validate(), drv.Validate()); err != nil {
		return err
	}
	if b.IsCompleted() {
		return nil
	}

	current := b.DriverID()
	if current == nil {
		return fmt.Errorf("%w: batch %s has no driver", batch.ErrBatchNotCompletable, b.ID())
	}
	if !current.IsEqual(drv.ID()) {
		return errs.NewValueIsInvalidErrorWithCause("driver",
			fmt.Errorf("batch %s is carried by %s, not %s", b.ID(), current, drv.ID()))
	}

	delivered := make(map[string]bool, len(orders))
	for _, o := range orders {
		if o != nil {
			delivered[o.ID().String()] = o.Status() == order.Delivered
		}
	}

	var open []string
	for _, id := range b.OrderIDs() {
		if !delivered[id.String()] {
			open = append(open, id.String())
		}
	}
	if len(open) > 0 {
		return fmt.Errorf("%w: orders not delivered: %s", batch.ErrBatchNotCompletable, strings.Join(open, ", "))
	}

	if err := b.Complete(); err != nil {
		return err
	}
	drv.CompleteBatch()
	return nil
}

func ineligibility(o *order.Order) string {
	switch {
	case o.Status() != order.Ready:
		return fmt.Sprintf("status is %s", o.Status())
	case !o.RequiresDelivery():
		return "return method is not delivery"
	case !o.DeliveryAddress().IsResolvable():
		return "no resolvable delivery address"
	}
	return ""
}
