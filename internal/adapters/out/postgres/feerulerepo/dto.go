// Package feerulerepo stores delivery fee rules in the fee_rules table. A rule
// with a NULL branch_id applies to all branches.
package feerulerepo

import (
	"time"

	"laundry/internal/core/domain/model/feerule"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// FeeRuleDTO represents the database structure of a fee rule. Conditions and
// calculation are flattened into columns; times of day are kept as HH:MM text.
type FeeRuleDTO struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name             string              `gorm:"type:varchar(255);not null"`
	BranchID         *uuid.UUID          `gorm:"type:uuid;index"`
	Priority         int                 `gorm:"not null"`
	Active           bool                `gorm:"not null"`
	ValidFrom        time.Time           `gorm:"not null"`
	ValidUntil       *time.Time          `gorm:"type:timestamptz"`
	MinOrderAmount   decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	CustomerSegments pq.StringArray      `gorm:"type:text[]"`
	MaxDistanceKm    *float64            `gorm:"type:double precision"`
	DaysOfWeek       pq.Int64Array       `gorm:"type:bigint[]"`
	StartTime        *string             `gorm:"type:varchar(5)"`
	EndTime          *string             `gorm:"type:varchar(5)"`
	FeeType          string              `gorm:"type:varchar(16);not null"`
	FeeValue         decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	MinFee           decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	MaxFee           decimal.NullDecimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for fee rules.
func (FeeRuleDTO) TableName() string {
	return "fee_rules"
}

func fromDomain(r *feerule.Rule) FeeRuleDTO {
	c := r.Conditions()
	calc := r.Calculation()

	var branchID *uuid.UUID
	if id := r.BranchID(); id != nil {
		raw := id.Bytes()
		branchID = &raw
	}

	var days pq.Int64Array
	for _, d := range c.DaysOfWeek {
		days = append(days, int64(d))
	}

	return FeeRuleDTO{
		ID:               r.ID().Bytes(),
		Name:             r.Name(),
		BranchID:         branchID,
		Priority:         r.Priority(),
		Active:           r.Active(),
		ValidFrom:        r.ValidFrom(),
		ValidUntil:       r.ValidUntil(),
		MinOrderAmount:   nullDecimal(c.MinOrderAmount),
		CustomerSegments: pq.StringArray(c.CustomerSegments),
		MaxDistanceKm:    c.MaxDistanceKm,
		DaysOfWeek:       days,
		StartTime:        clockText(c.StartTime),
		EndTime:          clockText(c.EndTime),
		FeeType:          string(calc.Type),
		FeeValue:         calc.Value,
		MinFee:           nullDecimal(calc.MinFee),
		MaxFee:           nullDecimal(calc.MaxFee),
	}
}

// toDomain rebuilds the rule through feerule.NewRule, so a row edited by hand
// into an invalid state fails here instead of at pricing time.
func toDomain(dto FeeRuleDTO) (*feerule.Rule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var branchID *kernel.UUID
	if dto.BranchID != nil {
		b, bErr := kernel.UUIDFromBytes((*dto.BranchID)[:])
		if bErr != nil {
			return nil, bErr
		}
		branchID = &b
	}

	start, err := parseClock(dto.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(dto.EndTime)
	if err != nil {
		return nil, err
	}

	days := make([]time.Weekday, 0, len(dto.DaysOfWeek))
	for _, d := range dto.DaysOfWeek {
		days = append(days, time.Weekday(d))
	}

	return feerule.NewRule(feerule.Params{
		ID:         id,
		Name:       dto.Name,
		BranchID:   branchID,
		Priority:   dto.Priority,
		Active:     dto.Active,
		ValidFrom:  dto.ValidFrom,
		ValidUntil: dto.ValidUntil,
		Conditions: feerule.Conditions{
			MinOrderAmount:   decimalPtr(dto.MinOrderAmount),
			CustomerSegments: []string(dto.CustomerSegments),
			MaxDistanceKm:    dto.MaxDistanceKm,
			DaysOfWeek:       days,
			StartTime:        start,
			EndTime:          end,
		},
		Calculation: feerule.Calculation{
			Type:   feerule.FeeType(dto.FeeType),
			Value:  dto.FeeValue,
			MinFee: decimalPtr(dto.MinFee),
			MaxFee: decimalPtr(dto.MaxFee),
		},
	})
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func clockText(c *feerule.Clock) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

func parseClock(s *string) (*feerule.Clock, error) {
	if s == nil {
		return nil, nil //nolint:nilnil // open bound
	}
	c, err := feerule.ParseClock(*s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
