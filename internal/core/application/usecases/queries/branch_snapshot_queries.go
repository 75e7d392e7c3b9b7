package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var (
	ErrGetPipelineStatisticsQueryIsNotConstructed = errors.New(
		"GetPipelineStatisticsQuery must be created via NewGetPipelineStatisticsQuery constructor",
	)
	ErrGetSortingMetricsQueryIsNotConstructed = errors.New(
		"GetSortingMetricsQuery must be created via NewGetSortingMetricsQuery constructor",
	)
)

// GetPipelineStatisticsQuery asks for the dashboard snapshot of a branch.
type GetPipelineStatisticsQuery struct {
	branchID kernel.UUID
	at       time.Time

	guard guard.ConstructorGuard
}

// NewGetPipelineStatisticsQuery creates the query. "Today" in the result is
// the calendar day of at, in at's location.
func NewGetPipelineStatisticsQuery(branchID kernel.UUID, at time.Time) (GetPipelineStatisticsQuery, error) {
	if err := validateBranchAt(branchID, at); err != nil {
		return GetPipelineStatisticsQuery{}, err
	}
	return GetPipelineStatisticsQuery{branchID: branchID, at: at, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPipelineStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetPipelineStatisticsQueryIsNotConstructed)
}

func (q GetPipelineStatisticsQuery) BranchID() kernel.UUID { return q.branchID }

func (q GetPipelineStatisticsQuery) At() time.Time { return q.at }

// GetSortingMetricsQuery asks for the sorting window counters of a branch.
type GetSortingMetricsQuery struct {
	branchID kernel.UUID
	at       time.Time

	guard guard.ConstructorGuard
}

// NewGetSortingMetricsQuery creates the query.
func NewGetSortingMetricsQuery(branchID kernel.UUID, at time.Time) (GetSortingMetricsQuery, error) {
	if err := validateBranchAt(branchID, at); err != nil {
		return GetSortingMetricsQuery{}, err
	}
	return GetSortingMetricsQuery{branchID: branchID, at: at, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSortingMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetSortingMetricsQueryIsNotConstructed)
}

func (q GetSortingMetricsQuery) BranchID() kernel.UUID { return q.branchID }

func (q GetSortingMetricsQuery) At() time.Time { return q.at }

func validateBranchAt(branchID kernel.UUID, at time.Time) error {
	var atErr error
	if at.IsZero() {
		atErr = errs.NewValueIsRequiredError("at")
	}
	return errors.Join(branchID.Validate(), atErr)
}
