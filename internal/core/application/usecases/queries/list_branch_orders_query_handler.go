package queries

import (
	"context"

	"laundry/internal/core/domain/services"
)

// ListBranchOrdersQueryHandler ranks the orders of a branch by urgency.
// Orders with equal urgency keep the order storage returned them in.
type ListBranchOrdersQueryHandler struct {
	orders OrderReader
}

// NewListBranchOrdersQueryHandler creates the handler.
func NewListBranchOrdersQueryHandler(orders OrderReader) ListBranchOrdersQueryHandler {
	return ListBranchOrdersQueryHandler{orders: orders}
}

// Handle returns the ranked list, never nil.
func (h ListBranchOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListBranchOrdersQuery,
) ([]ListBranchOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.ListByBranchAndStatus(ctx, query.BranchID(), query.Statuses())
	if err != nil {
		return nil, err
	}

	analytics := services.NewLifecycleAnalytics(query.At())
	result := make([]ListBranchOrdersQueryResponse, 0, len(orders))
	for _, o := range analytics.SortByUrgency(orders) {
		result = append(result, ListBranchOrdersQueryResponse{
			ID:                  o.ID(),
			CustomerName:        o.Customer().Name,
			Status:              o.Status(),
			ReturnMethod:        o.ReturnMethod(),
			TotalAmount:         o.TotalAmount(),
			CreatedAt:           o.CreatedAt(),
			EstimatedCompletion: o.EstimatedCompletion(),
			UrgencyScore:        analytics.UrgencyScore(o),
			DwellMinutes:        analytics.DwellTime(o),
			Overdue:             analytics.IsOverdue(o),
		})
	}

	return result, nil
}
