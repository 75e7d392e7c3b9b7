package commands

import (
	"context"

	"laundry/internal/core/domain/model/feerule"
)

// FeeRuleStore is a rule source that accepts new rules. Rules are reference
// data written one at a time, so no unit of work is involved.
type FeeRuleStore interface {
	Add(ctx context.Context, rule *feerule.Rule) error
}

// CreateFeeRuleCommandHandler stores a new fee rule.
type CreateFeeRuleCommandHandler struct {
	store FeeRuleStore
}

// NewCreateFeeRuleCommandHandler creates the handler.
func NewCreateFeeRuleCommandHandler(store FeeRuleStore) CreateFeeRuleCommandHandler {
	return CreateFeeRuleCommandHandler{store: store}
}

// Handle stores the rule of cmd.
func (h CreateFeeRuleCommandHandler) Handle(ctx context.Context, cmd CreateFeeRuleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.store.Add(ctx, cmd.Rule())
}
