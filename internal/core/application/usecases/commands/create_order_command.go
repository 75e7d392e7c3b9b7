package commands

import (
	"errors"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerNameIsRequired    = errors.New("customer name is required")
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required for delivery orders")
)

// CreateOrderCommand represents the intake of a garment-care order at a branch.
// The order enters the lifecycle in "received" status.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(order.NewOrderParams{
//	    ID:                  kernel.NewUUID(),
//	    BranchID:            branchID,
//	    Customer:            order.Customer{Name: "Amina", Phone: "+254700000001"},
//	    CollectionMethod:    order.CollectionDropOff,
//	    ReturnMethod:        order.ReturnCollect,
//	    TotalAmount:         decimal.NewFromInt(800),
//	    CreatedAt:           now,
//	    EstimatedCompletion: now.Add(48 * time.Hour),
//	    ActorID:             "staff-3",
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	params order.NewOrderParams

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates identifiers, the customer name, and that delivery orders carry an address.
// Returns every failing field joined into one error.
func NewCreateOrderCommand(params order.NewOrderParams) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setIDs(params.ID, params.BranchID),
		orderCommand.setCustomer(params.Customer),
		orderCommand.setDelivery(params.ReturnMethod, params.DeliveryAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	orderCommand.params.CollectionMethod = params.CollectionMethod
	orderCommand.params.ReturnMethod = params.ReturnMethod
	orderCommand.params.TotalAmount = params.TotalAmount
	orderCommand.params.CreatedAt = params.CreatedAt
	orderCommand.params.EstimatedCompletion = params.EstimatedCompletion
	orderCommand.params.ActorID = params.ActorID

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.params.ID
}

// BranchID returns the branch taking the order in.
func (c CreateOrderCommand) BranchID() kernel.UUID {
	return c.params.BranchID
}

// Customer returns the customer contact data.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.params.Customer
}

// ReturnMethod returns how the garments go back to the customer.
func (c CreateOrderCommand) ReturnMethod() order.ReturnMethod {
	return c.params.ReturnMethod
}

// TotalAmount returns the order total.
func (c CreateOrderCommand) TotalAmount() decimal.Decimal {
	return c.params.TotalAmount
}

// EstimatedCompletion returns the promised ready time.
func (c CreateOrderCommand) EstimatedCompletion() time.Time {
	return c.params.EstimatedCompletion
}

// Params returns the intake data for order.NewOrder.
func (c CreateOrderCommand) Params() order.NewOrderParams {
	return c.params
}

func (c *CreateOrderCommand) setIDs(orderID, branchID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), branchID.Validate()); err != nil {
		return err
	}

	c.params.ID = orderID
	c.params.BranchID = branchID
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	if strings.TrimSpace(customer.Name) == "" {
		return ErrCustomerNameIsRequired
	}

	c.params.Customer = customer
	return nil
}

func (c *CreateOrderCommand) setDelivery(ret order.ReturnMethod, address *order.Address) error {
	if ret == order.ReturnDelivery && (address == nil || strings.TrimSpace(address.Street) == "") {
		return ErrDeliveryAddressIsRequired
	}

	c.params.DeliveryAddress = address
	return nil
}
