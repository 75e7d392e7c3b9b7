// Package yamlrules serves delivery fee rules from a YAML file, for
// deployments that manage pricing in configuration rather than the database.
//
// File layout:
//
//	rules:
//	  - id: 5b7f9a4e-1f0c-4c55-9d7e-2d4a8a0f3c11
//	    name: Free delivery over 3000
//	    branch: ALL
//	    priority: 100
//	    validFrom: 2025-01-01T00:00:00Z
//	    conditions:
//	      minOrderAmount: "3000"
//	      daysOfWeek: [saturday, sunday]
//	      startTime: "08:00"
//	      endTime: "18:00"
//	    calculation:
//	      type: free
package yamlrules

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"laundry/internal/core/domain/model/feerule"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var _ ports.FeeRuleRepository = (*Repository)(nil)

type document struct {
	Rules []ruleDoc `yaml:"rules"`
}

type ruleDoc struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Branch      string         `yaml:"branch"`
	Priority    int            `yaml:"priority"`
	Active      *bool          `yaml:"active"`
	ValidFrom   time.Time      `yaml:"validFrom"`
	ValidUntil  *time.Time     `yaml:"validUntil"`
	Conditions  conditionsDoc  `yaml:"conditions"`
	Calculation calculationDoc `yaml:"calculation"`
}

type conditionsDoc struct {
	MinOrderAmount   string   `yaml:"minOrderAmount"`
	CustomerSegments []string `yaml:"customerSegments"`
	MaxDistanceKm    *float64 `yaml:"maxDistanceKm"`
	DaysOfWeek       []string `yaml:"daysOfWeek"`
	StartTime        string   `yaml:"startTime"`
	EndTime          string   `yaml:"endTime"`
}

type calculationDoc struct {
	Type   string `yaml:"type"`
	Value  string `yaml:"value"`
	MinFee string `yaml:"minFee"`
	MaxFee string `yaml:"maxFee"`
}

// Repository holds the rules of one file. It is immutable once loaded.
type Repository struct {
	rules []*feerule.Rule
}

// Load reads and parses the rule file at path.
func Load(path string) (*Repository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fee rules %s: %w", path, err)
	}

	repo, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse fee rules %s: %w", path, err)
	}
	return repo, nil
}

// Parse builds a repository from YAML. Every rule is validated; the errors of
// all invalid rules are returned together.
func Parse(raw []byte) (*Repository, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	rules := make([]*feerule.Rule, 0, len(doc.Rules))
	var errList []error
	for i, d := range doc.Rules {
		rule, err := d.toRule()
		if err != nil {
			errList = append(errList, fmt.Errorf("rule %d (%s): %w", i, d.Name, err))
			continue
		}
		rules = append(rules, rule)
	}
	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}

	return &Repository{rules: rules}, nil
}

// ListForBranch returns the rules scoped to branchID or to all branches, in
// file order.
func (r *Repository) ListForBranch(_ context.Context, branchID kernel.UUID) ([]*feerule.Rule, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	out := make([]*feerule.Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		if id := rule.BranchID(); id == nil || id.IsEqual(branchID) {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (d ruleDoc) toRule() (*feerule.Rule, error) {
	id, err := kernel.UUIDFromString(d.ID)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}

	var branchID *kernel.UUID
	if b := strings.TrimSpace(d.Branch); b != "" && !strings.EqualFold(b, feerule.AllBranches) {
		parsed, parseErr := kernel.UUIDFromString(b)
		if parseErr != nil {
			return nil, fmt.Errorf("branch: %w", parseErr)
		}
		branchID = &parsed
	}

	active := true
	if d.Active != nil {
		active = *d.Active
	}

	conditions, err := d.Conditions.toConditions()
	if err != nil {
		return nil, err
	}
	calculation, err := d.Calculation.toCalculation()
	if err != nil {
		return nil, err
	}

	return feerule.NewRule(feerule.Params{
		ID:          id,
		Name:        d.Name,
		BranchID:    branchID,
		Priority:    d.Priority,
		Active:      active,
		ValidFrom:   d.ValidFrom,
		ValidUntil:  d.ValidUntil,
		Conditions:  conditions,
		Calculation: calculation,
	})
}

func (c conditionsDoc) toConditions() (feerule.Conditions, error) {
	minAmount, err := optionalDecimal("minOrderAmount", c.MinOrderAmount)
	if err != nil {
		return feerule.Conditions{}, err
	}

	days := make([]time.Weekday, 0, len(c.DaysOfWeek))
	for _, name := range c.DaysOfWeek {
		day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return feerule.Conditions{}, fmt.Errorf("daysOfWeek: unknown day %q", name)
		}
		days = append(days, day)
	}

	start, err := optionalClock(c.StartTime)
	if err != nil {
		return feerule.Conditions{}, err
	}
	end, err := optionalClock(c.EndTime)
	if err != nil {
		return feerule.Conditions{}, err
	}

	return feerule.Conditions{
		MinOrderAmount:   minAmount,
		CustomerSegments: c.CustomerSegments,
		MaxDistanceKm:    c.MaxDistanceKm,
		DaysOfWeek:       days,
		StartTime:        start,
		EndTime:          end,
	}, nil
}

func (c calculationDoc) toCalculation() (feerule.Calculation, error) {
	value := decimal.Zero
	if strings.TrimSpace(c.Value) != "" {
		v, err := decimal.NewFromString(strings.TrimSpace(c.Value))
		if err != nil {
			return feerule.Calculation{}, fmt.Errorf("value: %w", err)
		}
		value = v
	}

	minFee, err := optionalDecimal("minFee", c.MinFee)
	if err != nil {
		return feerule.Calculation{}, err
	}
	maxFee, err := optionalDecimal("maxFee", c.MaxFee)
	if err != nil {
		return feerule.Calculation{}, err
	}

	return feerule.Calculation{
		Type:   feerule.FeeType(strings.ToLower(strings.TrimSpace(c.Type))),
		Value:  value,
		MinFee: minFee,
		MaxFee: maxFee,
	}, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func optionalDecimal(field, s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil //nolint:nilnil // absent
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &d, nil
}

func optionalClock(s string) (*feerule.Clock, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil //nolint:nilnil // open bound
	}
	c, err := feerule.ParseClock(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
