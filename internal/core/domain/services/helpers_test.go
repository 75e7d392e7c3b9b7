package services_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type step struct {
	status order.Status
	at     time.Time
}

type orderSpec struct {
	steps       []step
	createdAt   time.Time
	due         time.Time
	completed   *time.Time
	ret         order.ReturnMethod
	address     *order.Address
	total       int64
	arrivedAt   *time.Time
	earliest    *time.Time
	sortedAt    *time.Time
	processedAt *kernel.UUID
}

// buildOrder restores an order from s. Missing fields get sensible defaults:
// a single received entry at createdAt, delivery return to a routable address.
func buildOrder(t *testing.T, s orderSpec) *order.Order {
	t.Helper()

	if s.createdAt.IsZero() {
		s.createdAt = now.Add(-24 * time.Hour)
	}
	if s.due.IsZero() {
		s.due = now.Add(48 * time.Hour)
	}
	if s.ret == "" {
		s.ret = order.ReturnDelivery
	}
	if s.address == nil {
		c, err := kernel.NewCoordinates(-1.2921, 36.8219)
		require.NoError(t, err)
		s.address = &order.Address{Street: "12 Ngong Rd", Coordinates: &c}
	}
	if len(s.steps) == 0 {
		s.steps = []step{{order.Received, s.createdAt}}
	}

	history := make([]order.HistoryEntry, 0, len(s.steps))
	for _, st := range s.steps {
		e, err := order.NewHistoryEntry(st.status, st.at, "staff-1")
		require.NoError(t, err)
		history = append(history, e)
	}

	o, err := order.RestoreOrder(order.Snapshot{
		ID:                  kernel.NewUUID(),
		BranchID:            kernel.NewUUID(),
		ProcessingBranchID:  s.processedAt,
		Customer:            order.Customer{Name: "Amina", Phone: "+254700000001"},
		CollectionMethod:    order.CollectionDropOff,
		ReturnMethod:        s.ret,
		DeliveryAddress:     s.address,
		TotalAmount:         decimal.NewFromInt(s.total),
		Status:              s.steps[len(s.steps)-1].status,
		History:             history,
		CreatedAt:           s.createdAt,
		EstimatedCompletion: s.due,
		ActualCompletion:    s.completed,
		ArrivedAt:           s.arrivedAt,
		EarliestReturnTime:  s.earliest,
		SortingCompleted:    s.sortedAt != nil,
		SortingCompletedAt:  s.sortedAt,
	})
	require.NoError(t, err)
	return o
}

// readyOrder walks an order to Ready with an hour per stage, ending an hour before now.
func readyOrder(t *testing.T) *order.Order {
	t.Helper()
	return walkedOrder(t, order.Ready)
}

// deliveredOrder walks an order through delivery.
func deliveredOrder(t *testing.T) *order.Order {
	t.Helper()
	return walkedOrder(t, order.Delivered)
}

// walkedOrder follows the delivery path up to last, an hour per stage.
func walkedOrder(t *testing.T, last order.Status) *order.Order {
	t.Helper()

	var path []order.Status
	for _, s := range order.AllStatuses() {
		path = append(path, s)
		if s == last {
			break
		}
	}
	start := now.Add(-time.Duration(len(path)) * time.Hour)
	steps := make([]step, len(path))
	var done *time.Time
	for i, s := range path {
		steps[i] = step{s, start.Add(time.Duration(i) * time.Hour)}
		if s == order.Ready {
			done = &steps[i].at
		}
	}
	return buildOrder(t, orderSpec{steps: steps, createdAt: start, completed: done})
}

func ptr[T any](v T) *T { return &v }
