package commands

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// TransitionOrderStatusCommand asks to move one order to the next lifecycle status.
// It is the single entry point for status changes: the handler checks the
// transition, appends the ledger entry and persists both atomically.
//
// Example:
//
//	cmd, err := NewTransitionOrderStatusCommand(orderID, order.Washing, "staff-4", time.Now())
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // tell the operator which move was refused
//	}
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	next    order.Status
	actorID string
	at      time.Time

	guard guard.ConstructorGuard
}

// NewTransitionOrderStatusCommand creates a transition request.
// The status must be a known lifecycle status and the timestamp must be set.
func NewTransitionOrderStatusCommand(
	orderID kernel.UUID,
	next order.Status,
	actorID string,
	at time.Time,
) (TransitionOrderStatusCommand, error) {
	command := TransitionOrderStatusCommand{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setNext(next),
		command.setAt(at),
	); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to move.
func (c TransitionOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Next returns the requested status.
func (c TransitionOrderStatusCommand) Next() order.Status {
	return c.next
}

// ActorID returns who asked for the change.
func (c TransitionOrderStatusCommand) ActorID() string {
	return c.actorID
}

// At returns the time recorded on the ledger entry.
func (c TransitionOrderStatusCommand) At() time.Time {
	return c.at
}

func (c *TransitionOrderStatusCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *TransitionOrderStatusCommand) setNext(next order.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	c.next = next
	return nil
}

func (c *TransitionOrderStatusCommand) setAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("timestamp")
	}

	c.at = at
	return nil
}
