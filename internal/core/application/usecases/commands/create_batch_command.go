package commands

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrCreateBatchCommandIsNotConstructed = errors.New(
	"CreateBatchCommand must be created via NewCreateBatchCommand constructor",
)

// CreateBatchCommand groups ready delivery orders into a driverless batch
// travelling from an origin branch to a destination branch.
//
// Example:
//
//	cmd, err := NewCreateBatchCommand(kernel.NewUUID(), origin, dest, orderIDs, "staff-7", time.Now())
//	if err != nil {
//	    return err
//	}
//	b, err := handler.Handle(ctx, cmd)
//	var ineligible *batch.IneligibleOrdersError
//	if errors.As(err, &ineligible) {
//	    // ineligible.OrderIDs() lists every order that blocked the batch
//	}
type CreateBatchCommand struct { //nolint:recvcheck //using for validation
	batchID             kernel.UUID
	originBranchID      kernel.UUID
	destinationBranchID kernel.UUID
	orderIDs            []kernel.UUID
	createdBy           string
	createdAt           time.Time

	guard guard.ConstructorGuard
}

// NewCreateBatchCommand creates the command. At least one order id is required.
func NewCreateBatchCommand(
	batchID, originBranchID, destinationBranchID kernel.UUID,
	orderIDs []kernel.UUID,
	createdBy string,
	createdAt time.Time,
) (CreateBatchCommand, error) {
	command := CreateBatchCommand{
		createdBy: createdBy,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setIDs(batchID, originBranchID, destinationBranchID),
		command.setOrderIDs(orderIDs),
		command.setCreatedAt(createdAt),
	); err != nil {
		return CreateBatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBatchCommandIsNotConstructed)
}

// BatchID returns the id of the new batch.
func (c CreateBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

// OriginBranchID returns the branch the batch leaves from.
func (c CreateBatchCommand) OriginBranchID() kernel.UUID {
	return c.originBranchID
}

// DestinationBranchID returns the branch the batch is headed to.
func (c CreateBatchCommand) DestinationBranchID() kernel.UUID {
	return c.destinationBranchID
}

// OrderIDs returns a copy of the requested order ids.
func (c CreateBatchCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}

// CreatedBy returns who asked for the batch.
func (c CreateBatchCommand) CreatedBy() string {
	return c.createdBy
}

// CreatedAt returns the creation time.
func (c CreateBatchCommand) CreatedAt() time.Time {
	return c.createdAt
}

func (c *CreateBatchCommand) setIDs(batchID, origin, destination kernel.UUID) error {
	if err := errors.Join(batchID.Validate(), origin.Validate(), destination.Validate()); err != nil {
		return err
	}

	c.batchID = batchID
	c.originBranchID = origin
	c.destinationBranchID = destination
	return nil
}

func (c *CreateBatchCommand) setOrderIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("order ids")
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = append([]kernel.UUID(nil), ids...)
	return nil
}

func (c *CreateBatchCommand) setCreatedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}

	c.createdAt = at
	return nil
}
