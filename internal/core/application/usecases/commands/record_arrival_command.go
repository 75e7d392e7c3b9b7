package commands

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrRecordArrivalCommandIsNotConstructed = errors.New(
	"RecordArrivalCommand must be created via NewRecordArrivalCommand constructor",
)

// RecordArrivalCommand marks an order as physically received at a processing
// branch, which opens its sorting window.
type RecordArrivalCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	branchID kernel.UUID
	at       time.Time

	guard guard.ConstructorGuard
}

// NewRecordArrivalCommand creates an arrival command.
func NewRecordArrivalCommand(orderID, branchID kernel.UUID, at time.Time) (RecordArrivalCommand, error) {
	command := RecordArrivalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setIDs(orderID, branchID),
		command.setAt(at),
	); err != nil {
		return RecordArrivalCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordArrivalCommand) Validate() error {
	return c.guard.Validate(ErrRecordArrivalCommandIsNotConstructed)
}

// OrderID returns the arriving order.
func (c RecordArrivalCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BranchID returns the processing branch.
func (c RecordArrivalCommand) BranchID() kernel.UUID {
	return c.branchID
}

// At returns the arrival time.
func (c RecordArrivalCommand) At() time.Time {
	return c.at
}

func (c *RecordArrivalCommand) setIDs(orderID, branchID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), branchID.Validate()); err != nil {
		return err
	}

	c.orderID = orderID
	c.branchID = branchID
	return nil
}

func (c *RecordArrivalCommand) setAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("arrival time")
	}

	c.at = at
	return nil
}
