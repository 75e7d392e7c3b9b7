package feerule

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// AllBranches is the wire value of a rule that applies everywhere.
const AllBranches = "ALL"

// ErrRuleIsNotConstructed is returned when using a zero-value Rule.
var ErrRuleIsNotConstructed = errors.New("Rule must be created via NewRule constructor")

// FeeType selects how a matched rule prices delivery.
type FeeType string

const (
	FeeFree       FeeType = "free"
	FeeFixed      FeeType = "fixed"
	FeePerKm      FeeType = "per_km"
	FeePercentage FeeType = "percentage"
)

// Conditions must all hold for a rule to match. Nil or empty fields are not
// checked.
type Conditions struct {
	MinOrderAmount   *decimal.Decimal
	CustomerSegments []string
	MaxDistanceKm    *float64
	DaysOfWeek       []time.Weekday
	StartTime        *Clock
	EndTime          *Clock
}

// Calculation prices delivery once a rule matched.
type Calculation struct {
	Type   FeeType
	Value  decimal.Decimal
	MinFee *decimal.Decimal
	MaxFee *decimal.Decimal
}

// Params is the raw data of a rule, as read from a rule source.
type Params struct {
	ID          kernel.UUID
	Name        string
	BranchID    *kernel.UUID // nil applies to all branches
	Priority    int
	Active      bool
	ValidFrom   time.Time
	ValidUntil  *time.Time
	Conditions  Conditions
	Calculation Calculation
}

// Rule is an immutable, validated delivery fee rule.
type Rule struct {
	p     Params
	guard guard.ConstructorGuard
}

// NewRule validates p and returns the rule.
func NewRule(p Params) (*Rule, error) {
	if err := errors.Join(
		p.ID.Validate(),
		validateName(p.Name),
		validateBranch(p.BranchID),
		validateValidity(p.ValidFrom, p.ValidUntil),
		validateConditions(p.Conditions),
		validateCalculation(p.Calculation),
	); err != nil {
		return nil, err
	}

	p.Conditions.CustomerSegments = slices.Clone(p.Conditions.CustomerSegments)
	p.Conditions.DaysOfWeek = slices.Clone(p.Conditions.DaysOfWeek)
	return &Rule{p: p, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the rule was built by NewRule.
func (r *Rule) Validate() error {
	if r == nil {
		return ErrRuleIsNotConstructed
	}
	return r.guard.Validate(ErrRuleIsNotConstructed)
}

func (r *Rule) ID() kernel.UUID { return r.p.ID }

func (r *Rule) Name() string { return r.p.Name }

func (r *Rule) Priority() int { return r.p.Priority }

func (r *Rule) Active() bool { return r.p.Active }

func (r *Rule) ValidFrom() time.Time { return r.p.ValidFrom }

func (r *Rule) ValidUntil() *time.Time { return r.p.ValidUntil }

func (r *Rule) Calculation() Calculation { return r.p.Calculation }

// BranchID returns the branch the rule is scoped to, or nil for all branches.
func (r *Rule) BranchID() *kernel.UUID { return r.p.BranchID }

// BranchScope returns the branch id as text, or AllBranches.
func (r *Rule) BranchScope() string {
	if r.p.BranchID == nil {
		return AllBranches
	}
	return r.p.BranchID.String()
}

// Conditions returns a copy of the rule's conditions.
func (r *Rule) Conditions() Conditions {
	c := r.p.Conditions
	c.CustomerSegments = slices.Clone(c.CustomerSegments)
	c.DaysOfWeek = slices.Clone(c.DaysOfWeek)
	return c
}

// IsCandidate reports whether the rule is active, scoped to branchID or all
// branches, and valid at now. An unset ValidUntil never expires.
func (r *Rule) IsCandidate(branchID kernel.UUID, now time.Time) bool {
	if !r.p.Active {
		return false
	}
	if r.p.BranchID != nil && !r.p.BranchID.IsEqual(branchID) {
		return false
	}
	if now.Before(r.p.ValidFrom) {
		return false
	}
	if r.p.ValidUntil != nil && now.After(*r.p.ValidUntil) {
		return false
	}
	return true
}

// Matches evaluates every condition against the context. localNow must be
// expressed in the business timezone; weekday and time of day are read from it.
func (r *Rule) Matches(ctx Context, localNow time.Time) bool {
	c := r.p.Conditions

	if c.MinOrderAmount != nil && ctx.OrderAmount.LessThan(*c.MinOrderAmount) {
		return false
	}
	if len(c.CustomerSegments) > 0 &&
		(ctx.CustomerSegment == "" || !slices.Contains(c.CustomerSegments, ctx.CustomerSegment)) {
		return false
	}
	if c.MaxDistanceKm != nil && ctx.DistanceKm != nil && *ctx.DistanceKm > *c.MaxDistanceKm {
		return false
	}
	if len(c.DaysOfWeek) > 0 && !slices.Contains(c.DaysOfWeek, localNow.Weekday()) {
		return false
	}
	return inTimeRange(ClockOf(localNow), c.StartTime, c.EndTime)
}

// Price computes the raw fee for a matched rule, clamps it to the rule's
// bounds and rounds it to a whole currency unit. defaultDistanceKm is used by
// per-km rules when the context has no distance.
func (r *Rule) Price(ctx Context, defaultDistanceKm float64) decimal.Decimal {
	calc := r.p.Calculation

	var fee decimal.Decimal
	switch calc.Type {
	case FeeFree:
		fee = decimal.Zero
	case FeeFixed:
		fee = calc.Value
	case FeePerKm:
		distance := defaultDistanceKm
		if ctx.DistanceKm != nil {
			distance = *ctx.DistanceKm
		}
		fee = calc.Value.Mul(decimal.NewFromFloat(distance))
	case FeePercentage:
		fee = calc.Value.Div(decimal.NewFromInt(100)).Mul(ctx.OrderAmount)
	}

	if calc.MinFee != nil && fee.LessThan(*calc.MinFee) {
		fee = *calc.MinFee
	}
	if calc.MaxFee != nil && fee.GreaterThan(*calc.MaxFee) {
		fee = *calc.MaxFee
	}
	return fee.Round(0)
}

// inTimeRange checks start <= now <= end. A range with end before start wraps
// past midnight. A missing bound leaves that side open.
func inTimeRange(now Clock, start, end *Clock) bool {
	switch {
	case start == nil && end == nil:
		return true
	case start == nil:
		return now <= *end
	case end == nil:
		return now >= *start
	case *end < *start:
		return now >= *start || now <= *end
	default:
		return now >= *start && now <= *end
	}
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("rule name")
	}
	return nil
}

func validateBranch(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("rule branch id", err)
	}
	return nil
}

func validateValidity(from time.Time, until *time.Time) error {
	if from.IsZero() {
		return errs.NewValueIsRequiredError("valid from")
	}
	if until != nil && until.Before(from) {
		return errs.NewValueIsInvalidErrorWithCause("valid until", fmt.Errorf("%s is before valid from", until.Format(time.RFC3339)))
	}
	return nil
}

func validateConditions(c Conditions) error {
	var errList []error
	if c.MinOrderAmount != nil && c.MinOrderAmount.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("min order amount", fmt.Errorf("%s is negative", c.MinOrderAmount)))
	}
	if c.MaxDistanceKm != nil && *c.MaxDistanceKm < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("max distance km", fmt.Errorf("%v is negative", *c.MaxDistanceKm)))
	}
	for _, d := range c.DaysOfWeek {
		if d < time.Sunday || d > time.Saturday {
			errList = append(errList, errs.NewValueIsOutOfRangeError("day of week", int(d), 0, 6))
		}
	}
	for _, clock := range []*Clock{c.StartTime, c.EndTime} {
		if clock != nil && (*clock < 0 || *clock >= 24*60) {
			errList = append(errList, errs.NewValueIsOutOfRangeError("time of day", int(*clock), 0, 24*60-1))
		}
	}
	return errors.Join(errList...)
}

func validateCalculation(c Calculation) error {
	var errList []error
	switch c.Type {
	case FeeFree, FeeFixed, FeePerKm, FeePercentage:
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("fee type", fmt.Errorf("%q is not supported", c.Type)))
	}
	if c.Value.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("fee value", fmt.Errorf("%s is negative", c.Value)))
	}
	if c.MinFee != nil && c.MaxFee != nil && c.MinFee.GreaterThan(*c.MaxFee) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("fee bounds", fmt.Errorf("min %s exceeds max %s", c.MinFee, c.MaxFee)))
	}
	return errors.Join(errList...)
}
