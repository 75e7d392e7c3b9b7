package commands_test

import (
	"errors"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransitionOrderStatusCommandHandler_Handle(t *testing.T) {
	t.Run("should append the entry, commit, then publish", func(t *testing.T) {
		ctx := t.Context()
		current := orderAt(t, kernel.NewUUID(), order.Packaging)
		cmd, _ := commands.NewTransitionOrderStatusCommand(current.ID(), order.Ready, "staff-4", now)

		unlocked := false
		locker := new(MockOrderLocker)
		publisher := new(MockEventPublisher)
		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			locker.On("Lock", ctx, current.ID()).Return(func() { unlocked = true }, nil).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, current.ID()).Return(current, nil).Once(),
			repo.On("UpdateStatus", ctx, current, order.Packaging, mock.AnythingOfType("order.HistoryEntry")).
				Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			publisher.On("PublishStatusChanged", ctx, mock.MatchedBy(func(e ports.StatusChangedEvent) bool {
				return e.From == order.Packaging && e.To == order.Ready &&
					e.NotificationTemplate == "order_ready" && e.ActorID == "staff-4"
			})).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewTransitionOrderStatusCommandHandler(factory, order.NewGraph(), locker, publisher, nil)
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Packaging, result.From)
		assert.Equal(t, order.Ready, result.To)
		assert.Equal(t, "order_ready", result.NotificationTemplate)
		require.NotEmpty(t, result.History)
		last := result.History[len(result.History)-1]
		assert.Equal(t, order.Ready, last.Status())
		assert.Equal(t, now, last.Timestamp())
		assert.True(t, unlocked)
		locker.AssertExpectations(t)
		publisher.AssertExpectations(t)
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should write nothing on an illegal move", func(t *testing.T) {
		ctx := t.Context()
		current := orderAt(t, kernel.NewUUID(), order.Washing)
		cmd, _ := commands.NewTransitionOrderStatusCommand(current.ID(), order.Ready, "staff-4", now)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, current.ID()).Return(current, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()
		publisher := new(MockEventPublisher)

		h := commands.NewTransitionOrderStatusCommandHandler(factory, order.NewGraph(), nil, publisher, nil)
		_, err := h.Handle(ctx, cmd)

		var invalid *order.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, order.Washing, invalid.From)
		assert.Equal(t, order.Ready, invalid.To)
		assert.Equal(t, order.Washing, current.Status())
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
	})

	t.Run("should surface a lost compare and swap", func(t *testing.T) {
		ctx := t.Context()
		current := orderAt(t, kernel.NewUUID(), order.Queued)
		cmd, _ := commands.NewTransitionOrderStatusCommand(current.ID(), order.Washing, "staff-4", now)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, current.ID()).Return(current, nil).Once(),
			repo.On("UpdateStatus", ctx, current, order.Queued, mock.Anything).
				Return(errs.NewVersionIsInvalidError("order status")).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewTransitionOrderStatusCommandHandler(factory, order.NewGraph(), nil, nil, nil)
		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should stop when the order is locked", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, _ := commands.NewTransitionOrderStatusCommand(id, order.Queued, "staff-4", now)

		locker := new(MockOrderLocker)
		locker.On("Lock", ctx, id).Return(nil, ports.ErrOrderLocked).Once()
		factory := new(MockOrderUoWFactory)

		h := commands.NewTransitionOrderStatusCommandHandler(factory, order.NewGraph(), locker, nil, nil)
		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, ports.ErrOrderLocked)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("should keep the transition when publishing fails", func(t *testing.T) {
		ctx := t.Context()
		current := orderAt(t, kernel.NewUUID(), order.Received)
		cmd, _ := commands.NewTransitionOrderStatusCommand(current.ID(), order.Queued, "staff-4", now)

		publisher := new(MockEventPublisher)
		publisher.On("PublishStatusChanged", ctx, mock.Anything).Return(errors.New("broker down")).Once()
		repo := new(MockOrderRepository)
		repo.On("Get", ctx, current.ID()).Return(current, nil).Once()
		repo.On("UpdateStatus", ctx, current, order.Received, mock.Anything).Return(nil).Once()
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewTransitionOrderStatusCommandHandler(factory, order.NewGraph(), nil, publisher, nil)
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Queued, result.To)
		assert.Empty(t, result.NotificationTemplate)
		publisher.AssertExpectations(t)
	})

	t.Run("should reject a change older than the last entry", func(t *testing.T) {
		ctx := t.Context()
		current := orderAt(t, kernel.NewUUID(), order.Queued)
		cmd, _ := commands.NewTransitionOrderStatusCommand(current.ID(), order.Washing, "staff-4", now.Add(-24*time.Hour))

		repo := new(MockOrderRepository)
		repo.On("Get", ctx, current.ID()).Return(current, nil).Once()
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewTransitionOrderStatusCommandHandler(factory, order.NewGraph(), nil, nil, nil)
		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		uow.AssertExpectations(t)
	})
}
