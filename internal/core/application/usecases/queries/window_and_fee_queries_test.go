package queries_test

import (
	"errors"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/feerule"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSortingWindowQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	window := services.NewSortingWindow(6*time.Hour, 2*time.Hour)

	t.Run("should count down from arrival with the branch window", func(t *testing.T) {
		b := mainBranch(t, ptr(4))
		o := restoreOrder(t, orderOpts{
			branchID:  b.ID(),
			status:    order.Washing,
			arrivedAt: ptr(now.Add(-time.Hour)),
			earliest:  ptr(now.Add(3 * time.Hour)),
		})

		orders := &MockOrderReader{}
		orders.On("Get", ctx, o.ID()).Return(o, nil)
		branches := &MockBranchReader{}
		branches.On("Get", ctx, b.ID()).Return(b, nil)

		query, err := queries.NewGetSortingWindowQuery(o.ID(), now)
		require.NoError(t, err)

		result, err := queries.NewGetSortingWindowQueryHandler(orders, branches, window).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, b.ID(), result.BranchID)
		assert.InDelta(t, 4.0, result.WindowHours, 0.001)
		assert.True(t, result.Arrived)
		assert.Equal(t, now.Add(3*time.Hour), result.EarliestReturnTime)
		assert.Equal(t, 180, result.RemainingMinutes)
		assert.False(t, result.SortingCompleted)
	})

	t.Run("should project from now before arrival", func(t *testing.T) {
		b := mainBranch(t, nil)
		o := restoreOrder(t, orderOpts{branchID: b.ID(), status: order.Received})

		orders := &MockOrderReader{}
		orders.On("Get", ctx, o.ID()).Return(o, nil)
		branches := &MockBranchReader{}
		branches.On("Get", ctx, b.ID()).Return(b, nil)

		query, err := queries.NewGetSortingWindowQuery(o.ID(), now)
		require.NoError(t, err)

		result, err := queries.NewGetSortingWindowQueryHandler(orders, branches, window).Handle(ctx, query)

		require.NoError(t, err)
		assert.False(t, result.Arrived)
		assert.Nil(t, result.ArrivedAt)
		assert.Equal(t, now.Add(6*time.Hour), result.EarliestReturnTime)
		assert.Equal(t, 360, result.RemainingMinutes)
	})

	t.Run("should report a missing order without reading branches", func(t *testing.T) {
		id := kernel.NewUUID()
		orders := &MockOrderReader{}
		orders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String()))
		branches := &MockBranchReader{}

		query, err := queries.NewGetSortingWindowQuery(id, now)
		require.NoError(t, err)

		_, err = queries.NewGetSortingWindowQueryHandler(orders, branches, window).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		branches.AssertNotCalled(t, "Get")
	})
}

func TestValidateDeliveryTimeQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	window := services.NewSortingWindow(6*time.Hour, 2*time.Hour)
	b := mainBranch(t, ptr(4))
	o := restoreOrder(t, orderOpts{
		branchID:  b.ID(),
		status:    order.Washing,
		arrivedAt: ptr(now.Add(-time.Hour)),
		earliest:  ptr(now.Add(3 * time.Hour)),
	})

	orders := &MockOrderReader{}
	orders.On("Get", ctx, o.ID()).Return(o, nil)
	branches := &MockBranchReader{}
	branches.On("Get", ctx, b.ID()).Return(b, nil)
	handler := queries.NewValidateDeliveryTimeQueryHandler(orders, branches, window)

	tests := []struct {
		name     string
		proposed time.Time
		valid    bool
	}{
		{"before the window closes", now.Add(2 * time.Hour), false},
		{"exactly when the window closes", now.Add(3 * time.Hour), true},
		{"after the window", now.Add(5 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := queries.NewValidateDeliveryTimeQuery(o.ID(), tt.proposed, now)
			require.NoError(t, err)

			result, err := handler.Handle(ctx, query)

			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, now.Add(3*time.Hour), result.EarliestTime)
		})
	}

	t.Run("should require a proposed time", func(t *testing.T) {
		_, err := queries.NewValidateDeliveryTimeQuery(o.ID(), time.Time{}, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestQuoteDeliveryFeeQuery(t *testing.T) {
	branchID := kernel.NewUUID()

	t.Run("should reject negative amounts and distances", func(t *testing.T) {
		_, err := queries.NewQuoteDeliveryFeeQuery(branchID, decimal.NewFromInt(-1), "", ptr(-2.0), now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should keep an unknown distance unknown", func(t *testing.T) {
		query, err := queries.NewQuoteDeliveryFeeQuery(branchID, decimal.NewFromInt(100), " vip ", nil, now)

		require.NoError(t, err)
		assert.Nil(t, query.FeeContext().DistanceKm)
		assert.Equal(t, "vip", query.FeeContext().CustomerSegment)
	})
}

func TestQuoteDeliveryFeeQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	branchID := kernel.NewUUID()
	engine := services.NewDeliveryFeeEngine(services.FeeEngineConfig{DefaultFee: decimal.NewFromInt(250)})

	t.Run("should price with the matching rule", func(t *testing.T) {
		rule, err := feerule.NewRule(feerule.Params{
			ID:          kernel.NewUUID(),
			Name:        "flat city",
			BranchID:    &branchID,
			Priority:    1,
			Active:      true,
			ValidFrom:   now.Add(-24 * time.Hour),
			Calculation: feerule.Calculation{Type: feerule.FeeFixed, Value: decimal.NewFromInt(300)},
		})
		require.NoError(t, err)

		rules := &MockFeeRuleReader{}
		rules.On("ListForBranch", ctx, branchID).Return([]*feerule.Rule{rule}, nil)

		query, err := queries.NewQuoteDeliveryFeeQuery(branchID, decimal.NewFromInt(800), "", nil, now)
		require.NoError(t, err)

		quote, err := queries.NewQuoteDeliveryFeeQueryHandler(rules, engine).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, "300", quote.Fee.String())
		require.NotNil(t, quote.RuleApplied)
		assert.Equal(t, rule.ID(), quote.RuleApplied.ID)
		rules.AssertExpectations(t)
	})

	t.Run("should fall back to the default fee", func(t *testing.T) {
		rules := &MockFeeRuleReader{}
		rules.On("ListForBranch", ctx, branchID).Return([]*feerule.Rule{}, nil)

		query, err := queries.NewQuoteDeliveryFeeQuery(branchID, decimal.NewFromInt(800), "", nil, now)
		require.NoError(t, err)

		quote, err := queries.NewQuoteDeliveryFeeQueryHandler(rules, engine).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, "250", quote.Fee.String())
		assert.Nil(t, quote.RuleApplied)
		assert.Equal(t, feerule.FeeFixed, quote.FeeType)
	})

	t.Run("should propagate rule source errors", func(t *testing.T) {
		sourceErr := errors.New("rules file unreadable")
		rules := &MockFeeRuleReader{}
		rules.On("ListForBranch", ctx, branchID).Return(nil, sourceErr)

		query, err := queries.NewQuoteDeliveryFeeQuery(branchID, decimal.NewFromInt(800), "", nil, now)
		require.NoError(t, err)

		_, err = queries.NewQuoteDeliveryFeeQueryHandler(rules, engine).Handle(ctx, query)

		require.ErrorIs(t, err, sourceErr)
	})
}
