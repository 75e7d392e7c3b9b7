package queries

import (
	"context"

	"laundry/internal/core/domain/services"
)

// QuoteDeliveryFeeQueryHandler loads the rules that may apply at the branch
// and lets the fee engine pick one.
type QuoteDeliveryFeeQueryHandler struct {
	rules  FeeRuleReader
	engine services.DeliveryFeeEngine
}

// NewQuoteDeliveryFeeQueryHandler creates the handler.
func NewQuoteDeliveryFeeQueryHandler(rules FeeRuleReader, engine services.DeliveryFeeEngine) QuoteDeliveryFeeQueryHandler {
	return QuoteDeliveryFeeQueryHandler{rules: rules, engine: engine}
}

// Handle returns the quote. A branch without rules gets the system default.
func (h QuoteDeliveryFeeQueryHandler) Handle(ctx context.Context, query QuoteDeliveryFeeQuery) (services.FeeQuote, error) {
	if err := query.Validate(); err != nil {
		return services.FeeQuote{}, err
	}

	feeContext := query.FeeContext()
	rules, err := h.rules.ListForBranch(ctx, feeContext.BranchID)
	if err != nil {
		return services.FeeQuote{}, err
	}

	return h.engine.ComputeFee(rules, feeContext, query.At()), nil
}
