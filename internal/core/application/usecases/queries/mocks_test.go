package queries_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/core/domain/model/branch"
	"laundry/internal/core/domain/model/feerule"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) ListByBranchAndStatus(
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

type MockBranchReader struct{ mock.Mock }

func (m *MockBranchReader) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*branch.Branch), args.Error(1)
}

type MockFeeRuleReader struct{ mock.Mock }

func (m *MockFeeRuleReader) ListForBranch(ctx context.Context, branchID kernel.UUID) ([]*feerule.Rule, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*feerule.Rule), args.Error(1)
}

type orderOpts struct {
	branchID  kernel.UUID
	status    order.Status
	due       time.Time
	total     int64
	arrivedAt *time.Time
	earliest  *time.Time
	sortedAt  *time.Time
}

// restoreOrder builds an order whose ledger walks the forward path hourly up
// to opts.status, ending one hour before now.
func restoreOrder(t *testing.T, opts orderOpts) *order.Order {
	t.Helper()

	path := order.AllStatuses()[:8]
	n := 1
	for i, s := range path {
		if s == opts.status {
			n = i + 1
		}
	}
	start := now.Add(-time.Duration(n) * time.Hour)
	history := make([]order.HistoryEntry, n)
	for i := range history {
		entry, err := order.NewHistoryEntry(path[i], start.Add(time.Duration(i)*time.Hour), "staff-1")
		require.NoError(t, err)
		history[i] = entry
	}
	if opts.due.IsZero() {
		opts.due = now.Add(72 * time.Hour)
	}

	o, err := order.RestoreOrder(order.Snapshot{
		ID:                  kernel.NewUUID(),
		BranchID:            opts.branchID,
		Customer:            order.Customer{Name: "Wanjiru", Phone: "+254700000002"},
		CollectionMethod:    order.CollectionDropOff,
		ReturnMethod:        order.ReturnCollect,
		TotalAmount:         decimal.NewFromInt(opts.total),
		Status:              path[n-1],
		History:             history,
		CreatedAt:           start,
		EstimatedCompletion: opts.due,
		ArrivedAt:           opts.arrivedAt,
		EarliestReturnTime:  opts.earliest,
		SortingCompleted:    opts.sortedAt != nil,
		SortingCompletedAt:  opts.sortedAt,
	})
	require.NoError(t, err)
	return o
}

func mainBranch(t *testing.T, windowHours *int) *branch.Branch {
	t.Helper()

	b, err := branch.NewBranch(kernel.NewUUID(), "Kilimani", branch.TypeMain, nil, windowHours, nil)
	require.NoError(t, err)
	return b
}

func ptr[T any](v T) *T { return &v }
