package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions of the background jobs.
type Schedules struct {
	BatchAssignment string
	SortingReport   string
}

// JobManager starts and stops all background jobs together.
type JobManager struct {
	batchAssignmentJob *PendingBatchAssignmentJob
	sortingReportJob   *SortingReportJob
}

// NewJobManager wires every job to its handler.
func NewJobManager(
	assigner PendingBatchAssigner,
	branches BranchLister,
	metrics SortingMetricsReader,
	schedules Schedules,
	batchLimit int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		batchAssignmentJob: NewPendingBatchAssignmentJob(assigner, schedules.BatchAssignment, batchLimit, logger),
		sortingReportJob:   NewSortingReportJob(branches, metrics, schedules.SortingReport, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.batchAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending batch assignment job: %w", err)
	}

	if err := jm.sortingReportJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.batchAssignmentJob.Stop()
		return fmt.Errorf("failed to start sorting report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.sortingReportJob.Stop()
	jm.batchAssignmentJob.Stop()
}
