package commands_test

import (
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intakeParams() order.NewOrderParams {
	return order.NewOrderParams{
		ID:                  kernel.NewUUID(),
		BranchID:            kernel.NewUUID(),
		Customer:            order.Customer{Name: "Amina", Phone: "+254700000001"},
		CollectionMethod:    order.CollectionDropOff,
		ReturnMethod:        order.ReturnDelivery,
		DeliveryAddress:     &order.Address{Street: "12 Ngong Rd"},
		TotalAmount:         decimal.NewFromInt(1500),
		CreatedAt:           now,
		EstimatedCompletion: now.Add(48 * time.Hour),
		ActorID:             "staff-1",
	}
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	p := intakeParams()
	cmd, err := commands.NewCreateOrderCommand(p)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, p.ID, cmd.OrderID())
	assert.Equal(t, p.BranchID, cmd.BranchID())
	assert.Equal(t, "Amina", cmd.Customer().Name)
	assert.Equal(t, order.ReturnDelivery, cmd.ReturnMethod())
	assert.True(t, decimal.NewFromInt(1500).Equal(cmd.TotalAmount()))
	assert.Equal(t, p, cmd.Params())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	p := intakeParams()
	p.ID = kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewCreateOrderCommand(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_EmptyCustomerName(t *testing.T) {
	p := intakeParams()
	p.Customer.Name = "  "
	_, err := commands.NewCreateOrderCommand(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCustomerNameIsRequired)
}

func TestNewCreateOrderCommand_DeliveryWithoutAddress(t *testing.T) {
	p := intakeParams()
	p.DeliveryAddress = nil
	_, err := commands.NewCreateOrderCommand(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrDeliveryAddressIsRequired)
}

func TestNewCreateOrderCommand_CollectWithoutAddress(t *testing.T) {
	p := intakeParams()
	p.ReturnMethod = order.ReturnCollect
	p.DeliveryAddress = nil
	_, err := commands.NewCreateOrderCommand(p)
	require.NoError(t, err)
}

func TestNewCreateOrderCommand_ReportsAllErrors(t *testing.T) {
	p := intakeParams()
	p.BranchID = kernel.UUID{}
	p.Customer.Name = ""
	p.DeliveryAddress = nil
	_, err := commands.NewCreateOrderCommand(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, commands.ErrCustomerNameIsRequired)
	assert.ErrorIs(t, err, commands.ErrDeliveryAddressIsRequired)
}
