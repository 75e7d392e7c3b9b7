package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/batch"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/route"
	"laundry/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type routeFixture struct {
	batch   *batch.Batch
	orders  []*order.Order
	factory *MockUoWFactory
	uow     *MockUoW
}

func newRouteFixture(t *testing.T, ctx context.Context, n int) routeFixture {
	t.Helper()

	origin := newBranch(t)
	var orders []*order.Order
	var ids []kernel.UUID
	for range n {
		o := orderAt(t, origin.ID(), order.Ready)
		orders = append(orders, o)
		ids = append(ids, o.ID())
	}
	b, err := batch.NewBatch(kernel.NewUUID(), origin.ID(), kernel.NewUUID(), ids, "staff-7", now)
	require.NoError(t, err)

	batchRepo := new(MockBatchRepository)
	batchRepo.On("Get", ctx, b.ID()).Return(b, nil).Once()
	branchRepo := new(MockBranchRepository)
	branchRepo.On("Get", ctx, origin.ID()).Return(origin, nil).Once()
	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetMany", ctx, ids).Return(orders, nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BatchRepository").Return(batchRepo).Once()
	uow.On("BranchRepository").Return(branchRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	return routeFixture{batch: b, orders: orders, factory: factory, uow: uow}
}

func TestOptimizeBatchRouteCommandHandler_Handle(t *testing.T) {
	t.Run("should return the optimized order", func(t *testing.T) {
		ctx := t.Context()
		f := newRouteFixture(t, ctx, 2)
		optimizer := new(MockRouteOptimizer)
		optimizer.On("Optimize", ctx, mock.AnythingOfType("route.Request")).Return(route.Plan{
			Stops:           []route.Stop{{OrderID: f.orders[1].ID()}, {OrderID: f.orders[0].ID()}},
			TotalDistanceKm: 12.5,
			TotalDuration:   40 * time.Minute,
		}, nil).Once()
		cmd, _ := commands.NewOptimizeBatchRouteCommand(f.batch.ID(), true)

		h := commands.NewOptimizeBatchRouteCommandHandler(f.factory, services.NewRoutePlanner(optimizer), nil)
		plan, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, plan.Optimized)
		assert.True(t, plan.ReturnToStart)
		require.Len(t, plan.Stops, 2)
		assert.Equal(t, f.orders[1].ID(), plan.Stops[0].OrderID)
		assert.Equal(t, 0, plan.Stops[0].Sequence)
		assert.InDelta(t, 12.5, plan.TotalDistanceKm, 1e-9)
		f.uow.AssertExpectations(t)

		req := optimizer.Calls[0].Arguments.Get(1).(route.Request)
		assert.Equal(t, "Amina", req.Stops[0].CustomerName)
		assert.Equal(t, "12 Ngong Rd", req.Stops[0].Address)
		assert.InDelta(t, -1.2637, req.Start.Lat(), 1e-9)
	})

	t.Run("should fall back to batch order when routing is down", func(t *testing.T) {
		ctx := t.Context()
		f := newRouteFixture(t, ctx, 3)
		optimizer := new(MockRouteOptimizer)
		optimizer.On("Optimize", ctx, mock.Anything).Return(route.Plan{}, errors.New("503 from router")).Once()
		cmd, _ := commands.NewOptimizeBatchRouteCommand(f.batch.ID(), false)

		h := commands.NewOptimizeBatchRouteCommandHandler(f.factory, services.NewRoutePlanner(optimizer), nil)
		plan, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.False(t, plan.Optimized)
		require.Len(t, plan.Stops, 3)
		for i, o := range f.orders {
			assert.Equal(t, o.ID(), plan.Stops[i].OrderID)
			assert.Equal(t, i, plan.Stops[i].Sequence)
		}
	})

	t.Run("should return cancellation as is", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		f := newRouteFixture(t, ctx, 1)
		optimizer := new(MockRouteOptimizer)
		optimizer.On("Optimize", ctx, mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(route.Plan{}, context.Canceled).Once()
		cmd, _ := commands.NewOptimizeBatchRouteCommand(f.batch.ID(), false)

		h := commands.NewOptimizeBatchRouteCommandHandler(f.factory, services.NewRoutePlanner(optimizer), nil)
		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("should not call the router for too many stops", func(t *testing.T) {
		ctx := t.Context()
		f := newRouteFixture(t, ctx, route.MaxStops+1)
		optimizer := new(MockRouteOptimizer)
		cmd, _ := commands.NewOptimizeBatchRouteCommand(f.batch.ID(), false)

		h := commands.NewOptimizeBatchRouteCommandHandler(f.factory, services.NewRoutePlanner(optimizer), nil)
		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, route.ErrTooManyStops)
		optimizer.AssertNotCalled(t, "Optimize", mock.Anything, mock.Anything)
	})
}
