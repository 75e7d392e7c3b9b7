package commands_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/batch"
	"laundry/internal/core/domain/model/branch"
	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/route"
	"laundry/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(
	ctx context.Context,
	o *order.Order,
	expected order.Status,
	entry order.HistoryEntry,
) error {
	args := m.Called(ctx, o, expected, entry)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByBranchAndStatus(
	ctx context.Context,
	branchID kernel.UUID,
	statuses []order.Status,
) ([]*order.Order, error) {
	args := m.Called(ctx, branchID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockBranchRepository struct{ mock.Mock }

func (m *MockBranchRepository) Add(ctx context.Context, b *branch.Branch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*branch.Branch), args.Error(1)
}

func (m *MockBranchRepository) List(ctx context.Context) ([]*branch.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*branch.Branch), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) AddActiveBatches(ctx context.Context, id kernel.UUID, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) ListAvailable(ctx context.Context, branchID kernel.UUID) ([]*driver.Driver, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockBatchRepository struct{ mock.Mock }

func (m *MockBatchRepository) Add(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Update(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*batch.Batch), args.Error(1)
}

func (m *MockBatchRepository) ListWithoutDriver(ctx context.Context, limit int) ([]*batch.Batch, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*batch.Batch), args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) BranchRepository() ports.BranchRepository {
	args := m.Called()
	return args.Get(0).(ports.BranchRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockBranchUoWFactory struct{ mock.Mock }

func (m *MockBranchUoWFactory) Create() commands.BranchUoW {
	args := m.Called()
	return args.Get(0).(commands.BranchUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderLocker struct{ mock.Mock }

func (m *MockOrderLocker) Lock(ctx context.Context, orderID kernel.UUID) (func(), error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockRouteOptimizer struct{ mock.Mock }

func (m *MockRouteOptimizer) Optimize(ctx context.Context, req route.Request) (route.Plan, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(route.Plan), args.Error(1)
}

func coords(t *testing.T, lat, lng float64) *kernel.Coordinates {
	t.Helper()

	c, err := kernel.NewCoordinates(lat, lng)
	require.NoError(t, err)
	return &c
}

func newBranch(t *testing.T) *branch.Branch {
	t.Helper()

	b, err := branch.NewBranch(kernel.NewUUID(), "Westlands", branch.TypeMain, nil, nil, coords(t, -1.2637, 36.8063))
	require.NoError(t, err)
	return b
}

// orderAt restores a delivery order whose ledger walks the forward path hourly
// up to status, ending one hour before now.
func orderAt(t *testing.T, branchID kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	path := order.AllStatuses()
	var history []order.HistoryEntry
	for _, s := range path {
		history = append(history, order.HistoryEntry{})
		if s == status {
			break
		}
	}
	start := now.Add(-time.Duration(len(history)) * time.Hour)
	for i := range history {
		entry, err := order.NewHistoryEntry(path[i], start.Add(time.Duration(i)*time.Hour), "staff-1")
		require.NoError(t, err)
		history[i] = entry
	}

	var completion *time.Time
	for _, entry := range history {
		if entry.Status() == order.Ready {
			at := entry.Timestamp()
			completion = &at
		}
	}

	o, err := order.RestoreOrder(order.Snapshot{
		ID:                  kernel.NewUUID(),
		BranchID:            branchID,
		Customer:            order.Customer{Name: "Amina", Phone: "+254700000001"},
		CollectionMethod:    order.CollectionDropOff,
		ReturnMethod:        order.ReturnDelivery,
		DeliveryAddress:     &order.Address{Street: "12 Ngong Rd", Coordinates: coords(t, -1.3001, 36.7833)},
		TotalAmount:         decimal.NewFromInt(1500),
		Status:              status,
		History:             history,
		CreatedAt:           start,
		EstimatedCompletion: start.Add(48 * time.Hour),
		ActualCompletion:    completion,
	})
	require.NoError(t, err)
	return o
}

func (m *MockBatchRepository) ListOpenContaining(ctx context.Context, orderIDs []kernel.UUID) ([]*batch.Batch, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*batch.Batch), args.Error(1)
}
