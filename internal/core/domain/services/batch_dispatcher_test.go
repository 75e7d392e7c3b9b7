package services_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/batch"
	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(orders ...*order.Order) []kernel.UUID {
	out := make([]kernel.UUID, len(orders))
	for i, o := range orders {
		out[i] = o.ID()
	}
	return out
}

func TestBatchDispatcher_CreateBatch(t *testing.T) {
	dispatcher := services.NewBatchDispatcher()
	origin, dest := kernel.NewUUID(), kernel.NewUUID()

	t.Run("should create a driverless batch from ready orders", func(t *testing.T) {
		a, b := readyOrder(t), readyOrder(t)

		created, err := dispatcher.CreateBatch(kernel.NewUUID(), origin, dest, ids(a, b), []*order.Order{a, b}, nil, "staff-7", now)

		require.NoError(t, err)
		assert.False(t, created.HasDriver())
		assert.Equal(t, ids(a, b), created.OrderIDs())
	})

	t.Run("should name exactly the order still in washing", func(t *testing.T) {
		a, c := readyOrder(t), readyOrder(t)
		washing := buildOrder(t, orderSpec{steps: []step{
			{order.Received, now.Add(-3 * time.Hour)},
			{order.Queued, now.Add(-2 * time.Hour)},
			{order.Washing, now.Add(-1 * time.Hour)},
		}, createdAt: now.Add(-3 * time.Hour)})

		created, err := dispatcher.CreateBatch(kernel.NewUUID(), origin, dest,
			ids(a, washing, c), []*order.Order{a, washing, c}, nil, "staff-7", now)

		assert.Nil(t, created)
		require.ErrorIs(t, err, batch.ErrIneligibleOrder)
		var ineligible *batch.IneligibleOrdersError
		require.ErrorAs(t, err, &ineligible)
		assert.Equal(t, []kernel.UUID{washing.ID()}, ineligible.OrderIDs())
		assert.Contains(t, err.Error(), "status is washing")
	})

	t.Run("should list every offending order", func(t *testing.T) {
		pickup := buildOrder(t, orderSpec{ret: order.ReturnCollect})
		ready := readyOrder(t)
		noCoords := buildOrder(t, orderSpec{address: &order.Address{Street: "Moi Ave"}})
		missing := kernel.NewUUID()

		err := dispatcher.CheckEligibility(
			[]kernel.UUID{pickup.ID(), ready.ID(), noCoords.ID(), missing},
			[]*order.Order{pickup, ready, noCoords},
			nil,
		)

		var ineligible *batch.IneligibleOrdersError
		require.ErrorAs(t, err, &ineligible)
		assert.ElementsMatch(t, []kernel.UUID{pickup.ID(), noCoords.ID(), missing}, ineligible.OrderIDs())
	})

	t.Run("should accept a ready delivery order", func(t *testing.T) {
		ready := readyOrder(t)
		err := dispatcher.CheckEligibility([]kernel.UUID{ready.ID()}, []*order.Order{ready}, nil)
		require.NoError(t, err)
	})

	t.Run("should reject an order already in an open batch", func(t *testing.T) {
		taken, free := readyOrder(t), readyOrder(t)
		open, err := batch.NewBatch(kernel.NewUUID(), origin, dest, ids(taken), "staff-7", now)
		require.NoError(t, err)

		created, err := dispatcher.CreateBatch(kernel.NewUUID(), origin, dest,
			ids(taken, free), []*order.Order{taken, free}, []*batch.Batch{open}, "staff-7", now)

		assert.Nil(t, created)
		var ineligible *batch.IneligibleOrdersError
		require.ErrorAs(t, err, &ineligible)
		assert.Equal(t, []kernel.UUID{taken.ID()}, ineligible.OrderIDs())
		assert.Contains(t, err.Error(), "already in batch "+open.ID().String())
	})

	t.Run("should ignore completed batches", func(t *testing.T) {
		ready := readyOrder(t)
		driverID := kernel.NewUUID()
		done, err := batch.RestoreBatch(kernel.NewUUID(), origin, dest, ids(ready), &driverID, true, "staff-7", now)
		require.NoError(t, err)

		err = dispatcher.CheckEligibility(ids(ready), []*order.Order{ready}, []*batch.Batch{done})

		require.NoError(t, err)
	})

	t.Run("should require at least one order", func(t *testing.T) {
		_, err := dispatcher.CreateBatch(kernel.NewUUID(), origin, dest, nil, nil, nil, "staff-7", now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestBatchDispatcher_SelectDriver(t *testing.T) {
	dispatcher := services.NewBatchDispatcher()
	origin := kernel.NewUUID()
	restore := func(t *testing.T, branchID kernel.UUID, available bool, load int) *driver.Driver {
		t.Helper()
		d, err := driver.RestoreDriver(kernel.NewUUID(), "Driver", "", branchID, available, load)
		require.NoError(t, err)
		return d
	}

	t.Run("should pick the lowest load at the origin", func(t *testing.T) {
		busy := restore(t, origin, true, 3)
		light := restore(t, origin, true, 1)
		offShift := restore(t, origin, false, 0)
		elsewhere := restore(t, kernel.NewUUID(), true, 0)

		got := dispatcher.SelectDriver([]*driver.Driver{busy, offShift, light, elsewhere}, origin)

		assert.True(t, got.IsEqual(light))
	})

	t.Run("should keep the first driver on a tie", func(t *testing.T) {
		first := restore(t, origin, true, 2)
		second := restore(t, origin, true, 2)

		got := dispatcher.SelectDriver([]*driver.Driver{first, second}, origin)

		assert.True(t, got.IsEqual(first))
	})

	t.Run("should return nil when nobody is available", func(t *testing.T) {
		assert.Nil(t, dispatcher.SelectDriver(nil, origin))
		assert.Nil(t, dispatcher.SelectDriver([]*driver.Driver{restore(t, origin, false, 0)}, origin))
	})
}

func TestBatchDispatcher_AssignDriver(t *testing.T) {
	dispatcher := services.NewBatchDispatcher()
	origin := kernel.NewUUID()
	newBatch := func(t *testing.T) *batch.Batch {
		t.Helper()
		b, err := batch.NewBatch(kernel.NewUUID(), origin, kernel.NewUUID(), []kernel.UUID{kernel.NewUUID()}, "staff-7", now)
		require.NoError(t, err)
		return b
	}

	t.Run("should attach and count the batch once", func(t *testing.T) {
		b := newBatch(t)
		d, _ := driver.NewDriver(kernel.NewUUID(), "Otieno", "", origin)

		require.NoError(t, dispatcher.AssignDriver(b, d))
		require.NoError(t, dispatcher.AssignDriver(b, d))

		assert.True(t, b.DriverID().IsEqual(d.ID()))
		assert.Equal(t, 1, d.ActiveBatches())
	})

	t.Run("should refuse an off shift driver without touching the batch", func(t *testing.T) {
		b := newBatch(t)
		d, _ := driver.NewDriver(kernel.NewUUID(), "Otieno", "", origin)
		d.SetAvailability(false)

		err := dispatcher.AssignDriver(b, d)

		require.ErrorIs(t, err, driver.ErrDriverUnavailable)
		assert.False(t, b.HasDriver())
	})

	t.Run("should refuse a driver from another branch", func(t *testing.T) {
		b := newBatch(t)
		d, _ := driver.NewDriver(kernel.NewUUID(), "Otieno", "", kernel.NewUUID())

		require.ErrorIs(t, dispatcher.AssignDriver(b, d), driver.ErrDriverUnavailable)
	})

	t.Run("should refuse a second driver", func(t *testing.T) {
		b := newBatch(t)
		first, _ := driver.NewDriver(kernel.NewUUID(), "Otieno", "", origin)
		second, _ := driver.NewDriver(kernel.NewUUID(), "Wanjiru", "", origin)
		require.NoError(t, dispatcher.AssignDriver(b, first))

		err := dispatcher.AssignDriver(b, second)

		require.ErrorIs(t, err, batch.ErrDriverAlreadyAssigned)
		assert.Zero(t, second.ActiveBatches())
	})
}

func TestBatchDispatcher_CompleteBatch(t *testing.T) {
	dispatcher := services.NewBatchDispatcher()
	origin := kernel.NewUUID()
	assigned := func(t *testing.T, orders ...*order.Order) (*batch.Batch, *driver.Driver) {
		t.Helper()
		d, err := driver.RestoreDriver(kernel.NewUUID(), "Otieno", "", origin, true, 2)
		require.NoError(t, err)
		id := d.ID()
		b, err := batch.RestoreBatch(kernel.NewUUID(), origin, kernel.NewUUID(), ids(orders...), &id, false, "staff-7", now)
		require.NoError(t, err)
		return b, d
	}

	t.Run("should complete a delivered batch and release the driver", func(t *testing.T) {
		first, second := deliveredOrder(t), deliveredOrder(t)
		b, d := assigned(t, first, second)

		require.NoError(t, dispatcher.CompleteBatch(b, d, []*order.Order{second, first}))

		assert.True(t, b.IsCompleted())
		assert.Equal(t, 1, d.ActiveBatches())
	})

	t.Run("should release the driver only once", func(t *testing.T) {
		delivered := deliveredOrder(t)
		b, d := assigned(t, delivered)

		require.NoError(t, dispatcher.CompleteBatch(b, d, []*order.Order{delivered}))
		require.NoError(t, dispatcher.CompleteBatch(b, d, []*order.Order{delivered}))

		assert.Equal(t, 1, d.ActiveBatches())
	})

	t.Run("should name the orders still on the road", func(t *testing.T) {
		delivered, onTheRoad := deliveredOrder(t), readyOrder(t)
		b, d := assigned(t, delivered, onTheRoad)

		err := dispatcher.CompleteBatch(b, d, []*order.Order{delivered, onTheRoad})

		require.ErrorIs(t, err, batch.ErrBatchNotCompletable)
		assert.Contains(t, err.Error(), onTheRoad.ID().String())
		assert.NotContains(t, err.Error(), delivered.ID().String())
		assert.False(t, b.IsCompleted())
		assert.Equal(t, 2, d.ActiveBatches())
	})

	t.Run("should treat a missing order as open", func(t *testing.T) {
		delivered := deliveredOrder(t)
		b, d := assigned(t, delivered)

		err := dispatcher.CompleteBatch(b, d, nil)

		require.ErrorIs(t, err, batch.ErrBatchNotCompletable)
	})

	t.Run("should refuse a driver that does not carry the batch", func(t *testing.T) {
		delivered := deliveredOrder(t)
		b, _ := assigned(t, delivered)
		other, _ := driver.NewDriver(kernel.NewUUID(), "Wanjiru", "", origin)

		err := dispatcher.CompleteBatch(b, other, []*order.Order{delivered})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, b.IsCompleted())
	})

	t.Run("should refuse a batch without driver", func(t *testing.T) {
		delivered := deliveredOrder(t)
		b, err := batch.NewBatch(kernel.NewUUID(), origin, kernel.NewUUID(), ids(delivered), "staff-7", now)
		require.NoError(t, err)
		d, _ := driver.NewDriver(kernel.NewUUID(), "Otieno", "", origin)

		err = dispatcher.CompleteBatch(b, d, []*order.Order{delivered})

		require.ErrorIs(t, err, batch.ErrBatchNotCompletable)
	})
}
