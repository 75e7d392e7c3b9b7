package queries

import (
	"context"

	"laundry/internal/core/domain/services"
)

// ValidateDeliveryTimeQueryHandler checks a proposed departure against the
// sorting window. An unmet window is reported in the result, not as an error.
type ValidateDeliveryTimeQueryHandler struct {
	orders   OrderReader
	branches BranchReader
	window   services.SortingWindow
}

// NewValidateDeliveryTimeQueryHandler creates the handler.
func NewValidateDeliveryTimeQueryHandler(
	orders OrderReader,
	branches BranchReader,
	window services.SortingWindow,
) ValidateDeliveryTimeQueryHandler {
	return ValidateDeliveryTimeQueryHandler{orders: orders, branches: branches, window: window}
}

func (h ValidateDeliveryTimeQueryHandler) Handle(
	ctx context.Context,
	query ValidateDeliveryTimeQuery,
) (services.WindowValidation, error) {
	if err := query.Validate(); err != nil {
		return services.WindowValidation{}, err
	}

	o, b, err := loadOrderAndBranch(ctx, h.orders, h.branches, query.OrderID())
	if err != nil {
		return services.WindowValidation{}, err
	}

	return h.window.ValidateProposedTime(o, b, query.Proposed(), query.At()), nil
}
