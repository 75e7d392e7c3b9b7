// Package batch provides the Delivery Batch aggregate: a group of ready orders
// moved from one branch to a destination by a single driver.
package batch

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

// ErrBatchIsNotConstructed is returned when using a zero-value Batch.
var ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")

// Status of a batch. A batch is created Pending, becomes Assigned once a
// driver is attached and Completed when the driver has handed over every order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAssigned  Status = "assigned"
	StatusCompleted Status = "completed"
)

// Batch is created without a driver and mutated once to attach one. Origin and
// destination never change. A completed batch no longer counts against its
// driver.
type Batch struct {
	id                  kernel.UUID
	originBranchID      kernel.UUID
	destinationBranchID kernel.UUID
	orderIDs            []kernel.UUID
	driverID            *kernel.UUID
	status              Status
	createdBy           string
	createdAt           time.Time
	guard               guard.ConstructorGuard
}

// NewBatch builds a driverless batch. Order ids must be non-empty and unique;
// eligibility of the orders themselves is checked by the batch assigner.
func NewBatch(
	id, originBranchID, destinationBranchID kernel.UUID,
	orderIDs []kernel.UUID,
	createdBy string,
	createdAt time.Time,
) (*Batch, error) {
	b := &Batch{
		status:    StatusPending,
		createdBy: createdBy,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setIDs(id, originBranchID, destinationBranchID),
		b.setOrderIDs(orderIDs),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBatch rebuilds a batch from storage. Only a batch with a driver can
// be restored as completed.
func RestoreBatch(
	id, originBranchID, destinationBranchID kernel.UUID,
	orderIDs []kernel.UUID,
	driverID *kernel.UUID,
	completed bool,
	createdBy string,
	createdAt time.Time,
) (*Batch, error) {
	b, err := NewBatch(id, originBranchID, destinationBranchID, orderIDs, createdBy, createdAt)
	if err != nil {
		return nil, err
	}
	if driverID != nil {
		if err = b.AssignDriver(*driverID); err != nil {
			return nil, err
		}
	}
	if completed {
		if err = b.Complete(); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Validate ensures the batch was built by a constructor.
func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

func (b *Batch) ID() kernel.UUID { return b.id }
func (b *Batch) OriginBranchID() kernel.UUID { return b.originBranchID }
func (b *Batch) DestinationBranchID() kernel.UUID { return b.destinationBranchID }
func (b *Batch) DriverID() *kernel.UUID { return b.driverID }
func (b *Batch) Status() Status { return b.status }
func (b *Batch) CreatedBy() string { return b.createdBy }
func (b *Batch) CreatedAt() time.Time { return b.createdAt }

// OrderIDs returns a copy of the batch's order ids in creation order.
func (b *Batch) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), b.orderIDs...)
}

// HasDriver reports whether a driver is attached.
func (b *Batch) HasDriver() bool {
	return b.driverID != nil
}

// IsCompleted reports whether the batch was delivered.
func (b *Batch) IsCompleted() bool {
	return b.status == StatusCompleted
}

// Complete marks the batch delivered. Completing it again is a no-op.
//
// Returns ErrBatchNotCompletable when no driver is attached.
func (b *Batch) Complete() error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.status == StatusCompleted {
		return nil
	}
	if b.driverID == nil {
		return fmt.Errorf("%w: batch %s has no driver", ErrBatchNotCompletable, b.id)
	}
	b.status = StatusCompleted
	return nil
}

// AssignDriver attaches driverID. Attaching the same driver again is a no-op;
// attaching a different one fails with ErrDriverAlreadyAssigned.
func (b *Batch) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver id", err)
	}
	if b.driverID != nil {
		if b.driverID.IsEqual(driverID) {
			return nil
		}
		return fmt.Errorf("%w: batch %s is assigned to %s", ErrDriverAlreadyAssigned, b.id, b.driverID)
	}

	id := driverID
	b.driverID = &id
	b.status = StatusAssigned
	return nil
}

func (b *Batch) setIDs(id, origin, destination kernel.UUID) error {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := origin.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("origin branch id", err))
	}
	if err := destination.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("destination branch id", err))
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}
	b.id, b.originBranchID, b.destinationBranchID = id, origin, destination
	return nil
}

func (b *Batch) setOrderIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("order ids")
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("order ids", err)
		}
		if _, dup := seen[id.String()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("order ids", fmt.Errorf("%s is listed twice", id))
		}
		seen[id.String()] = struct{}{}
	}
	b.orderIDs = append([]kernel.UUID(nil), ids...)
	return nil
}
