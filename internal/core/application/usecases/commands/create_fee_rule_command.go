package commands

import (
	"errors"

	"laundry/internal/core/domain/model/feerule"
	"laundry/internal/pkg/guard"
)

var ErrCreateFeeRuleCommandIsNotConstructed = errors.New(
	"CreateFeeRuleCommand must be created via NewCreateFeeRuleCommand constructor",
)

// CreateFeeRuleCommand adds a delivery fee rule to the database rule source.
type CreateFeeRuleCommand struct { //nolint:recvcheck //using for validation
	rule *feerule.Rule

	guard guard.ConstructorGuard
}

// NewCreateFeeRuleCommand validates p through feerule.NewRule.
func NewCreateFeeRuleCommand(p feerule.Params) (CreateFeeRuleCommand, error) {
	rule, err := feerule.NewRule(p)
	if err != nil {
		return CreateFeeRuleCommand{}, err
	}

	return CreateFeeRuleCommand{
		rule:  rule,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateFeeRuleCommand) Validate() error {
	return c.guard.Validate(ErrCreateFeeRuleCommandIsNotConstructed)
}

// Rule returns the validated rule.
func (c CreateFeeRuleCommand) Rule() *feerule.Rule {
	return c.rule
}
