package services

import (
	"fmt"
	"sort"
	"time"

	"laundry/internal/core/domain/model/feerule"
	"laundry/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// DefaultDistanceKm is used by per-km rules when the distance is unknown.
const DefaultDistanceKm = 5.0

// AppliedRule identifies the rule that priced a quote.
type AppliedRule struct {
	ID       kernel.UUID
	Name     string
	Priority int
}

// FeeQuote is the outcome of pricing one delivery. RuleApplied is nil when the
// system default was used.
type FeeQuote struct {
	Fee         decimal.Decimal
	IsFree      bool
	RuleApplied *AppliedRule
	FeeType     feerule.FeeType
	Reason      string
}

// FeeEngineConfig holds the system defaults of the fee engine.
type FeeEngineConfig struct {
	DefaultFee        decimal.Decimal
	DefaultDistanceKm float64
	// Location is the business timezone for weekday and time-of-day checks.
	Location *time.Location
}

// DeliveryFeeEngine picks exactly one rule per request: candidates are sorted
// by descending priority and the first full match wins. It owns no rule
// storage; the caller passes the rule set in.
type DeliveryFeeEngine struct {
	cfg FeeEngineConfig
}

// NewDeliveryFeeEngine applies defaults to cfg and returns the engine.
func NewDeliveryFeeEngine(cfg FeeEngineConfig) DeliveryFeeEngine {
	if cfg.DefaultDistanceKm <= 0 {
		cfg.DefaultDistanceKm = DefaultDistanceKm
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return DeliveryFeeEngine{cfg: cfg}
}

// ComputeFee prices delivery for ctx at now.
func (e DeliveryFeeEngine) ComputeFee(rules []*feerule.Rule, ctx feerule.Context, now time.Time) FeeQuote {
	local := now.In(e.cfg.Location)

	for _, r := range e.candidates(rules, ctx.BranchID, now) {
		if !r.Matches(ctx, local) {
			continue
		}
		fee := r.Price(ctx, e.cfg.DefaultDistanceKm)
		return FeeQuote{
			Fee:         fee,
			IsFree:      fee.IsZero(),
			RuleApplied: &AppliedRule{ID: r.ID(), Name: r.Name(), Priority: r.Priority()},
			FeeType:     r.Calculation().Type,
			Reason:      fmt.Sprintf("rule %q applied", r.Name()),
		}
	}

	fee := e.cfg.DefaultFee.Round(0)
	return FeeQuote{
		Fee:     fee,
		IsFree:  fee.IsZero(),
		FeeType: feerule.FeeFixed,
		Reason:  "no matching rule, standard delivery fee",
	}
}

func (e DeliveryFeeEngine) candidates(rules []*feerule.Rule, branchID kernel.UUID, now time.Time) []*feerule.Rule {
	out := make([]*feerule.Rule, 0, len(rules))
	for _, r := range rules {
		if r.Validate() != nil || !r.IsCandidate(branchID, now) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority() > out[j].Priority()
	})
	return out
}
