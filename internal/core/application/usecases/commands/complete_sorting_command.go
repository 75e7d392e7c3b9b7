package commands

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrCompleteSortingCommandIsNotConstructed = errors.New(
	"CompleteSortingCommand must be created via NewCompleteSortingCommand constructor",
)

// CompleteSortingCommand marks the sorting of an arrived order as done.
type CompleteSortingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	at      time.Time

	guard guard.ConstructorGuard
}

// NewCompleteSortingCommand creates the command.
func NewCompleteSortingCommand(orderID kernel.UUID, at time.Time) (CompleteSortingCommand, error) {
	command := CompleteSortingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setAt(at),
	); err != nil {
		return CompleteSortingCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteSortingCommand) Validate() error {
	return c.guard.Validate(ErrCompleteSortingCommandIsNotConstructed)
}

// OrderID returns the sorted order.
func (c CompleteSortingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// At returns when sorting finished.
func (c CompleteSortingCommand) At() time.Time {
	return c.at
}

func (c *CompleteSortingCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *CompleteSortingCommand) setAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("sorting time")
	}

	c.at = at
	return nil
}
