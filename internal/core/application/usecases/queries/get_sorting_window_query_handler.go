package queries

import (
	"context"

	"laundry/internal/core/domain/model/branch"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
)

// GetSortingWindowQueryHandler combines the stored window of an order with
// the configuration of the branch processing it.
type GetSortingWindowQueryHandler struct {
	orders   OrderReader
	branches BranchReader
	window   services.SortingWindow
}

// NewGetSortingWindowQueryHandler creates the handler.
func NewGetSortingWindowQueryHandler(
	orders OrderReader,
	branches BranchReader,
	window services.SortingWindow,
) GetSortingWindowQueryHandler {
	return GetSortingWindowQueryHandler{orders: orders, branches: branches, window: window}
}

// Handle returns the window, or errs.ErrObjectNotFound for an unknown order.
func (h GetSortingWindowQueryHandler) Handle(
	ctx context.Context,
	query GetSortingWindowQuery,
) (GetSortingWindowQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSortingWindowQueryResponse{}, err
	}

	o, b, err := loadOrderAndBranch(ctx, h.orders, h.branches, query.OrderID())
	if err != nil {
		return GetSortingWindowQueryResponse{}, err
	}

	now := query.At()
	return GetSortingWindowQueryResponse{
		OrderID:            o.ID(),
		BranchID:           b.ID(),
		WindowHours:        h.window.Window(b).Hours(),
		Arrived:            o.ArrivedAt() != nil,
		ArrivedAt:          o.ArrivedAt(),
		EarliestReturnTime: h.window.EarliestReturnTime(o, b, now),
		SortingCompleted:   o.SortingCompleted(),
		SortingCompletedAt: o.SortingCompletedAt(),
		RemainingMinutes:   h.window.RemainingWindowMinutes(o, b, now),
	}, nil
}

// loadOrderAndBranch reads an order and the branch currently processing it.
func loadOrderAndBranch(
	ctx context.Context,
	orders OrderReader,
	branches BranchReader,
	orderID kernel.UUID,
) (*order.Order, *branch.Branch, error) {
	o, err := orders.Get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	b, err := branches.Get(ctx, o.ProcessingBranchID())
	if err != nil {
		return nil, nil, err
	}

	return o, b, nil
}
