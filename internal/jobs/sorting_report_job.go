package jobs

import (
	"context"
	"log/slog"
	"time"

	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/branch"
	"laundry/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// BranchLister enumerates the branches the report covers.
type BranchLister interface {
	List(ctx context.Context) ([]*branch.Branch, error)
}

// SortingMetricsReader is the query handler producing one branch's metrics.
type SortingMetricsReader interface {
	Handle(ctx context.Context, query queries.GetSortingMetricsQuery) (services.SortingMetrics, error)
}

// SortingReportJob logs sorting window metrics for every branch and warns
// about orders whose window is about to run out unsorted.
type SortingReportJob struct {
	branches BranchLister
	metrics  SortingMetricsReader
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSortingReportJob creates the job; schedule is a six field cron expression.
func NewSortingReportJob(
	branches BranchLister,
	metrics SortingMetricsReader,
	schedule string,
	logger *slog.Logger,
) *SortingReportJob {
	return &SortingReportJob{
		branches: branches,
		metrics:  metrics,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "sorting_report_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *SortingReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Sorting report job started", "schedule", j.schedule)
	return nil
}

// Run reports every branch once. A failing branch is logged and skipped.
func (j *SortingReportJob) Run(ctx context.Context) {
	branches, err := j.branches.List(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Sorting report could not list branches", "error", err)
		return
	}

	at := j.now()
	for _, b := range branches {
		query, qErr := queries.NewGetSortingMetricsQuery(b.ID(), at)
		if qErr != nil {
			j.logger.ErrorContext(ctx, "Sorting report query rejected", "branch_id", b.ID().String(), "error", qErr)
			continue
		}

		m, mErr := j.metrics.Handle(ctx, query)
		if mErr != nil {
			j.logger.ErrorContext(ctx, "Sorting report failed", "branch_id", b.ID().String(), "error", mErr)
			continue
		}

		level := slog.LevelInfo
		if m.ExpiringSoon > 0 {
			level = slog.LevelWarn
		}
		j.logger.Log(ctx, level, "Sorting window report",
			"branch_id", b.ID().String(),
			"branch", b.Name(),
			"orders", m.Total,
			"pending_sort", m.PendingSort,
			"expiring_soon", m.ExpiringSoon,
			"ready_for_scheduling", m.ReadyForScheduling,
			"average_sorting_minutes", m.AverageSortingMinutes,
		)
	}
}

// Stop stops the scheduler.
func (j *SortingReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Sorting report job stopped")
}
