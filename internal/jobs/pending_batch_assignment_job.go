package jobs

import (
	"context"
	"errors"
	"log/slog"

	"laundry/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PendingBatchAssigner is the command handler the assignment job drives.
type PendingBatchAssigner interface {
	Handle(ctx context.Context, command commands.AssignPendingBatchesCommand) (int, error)
}

// PendingBatchAssignmentJob retries automatic driver assignment for batches
// that were created while no driver was available at their origin.
type PendingBatchAssignmentJob struct {
	handler  PendingBatchAssigner
	schedule string
	limit    int
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPendingBatchAssignmentJob creates the job. schedule is a six field cron
// expression (seconds first); limit caps the batches handled per run.
func NewPendingBatchAssignmentJob(
	handler PendingBatchAssigner,
	schedule string,
	limit int,
	logger *slog.Logger,
) *PendingBatchAssignmentJob {
	return &PendingBatchAssignmentJob{
		handler:  handler,
		schedule: schedule,
		limit:    limit,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pending_batch_assignment_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *PendingBatchAssignmentJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Pending batch assignment job started", "schedule", j.schedule)
	return nil
}

// Run performs one assignment pass and reports how many batches got a driver.
func (j *PendingBatchAssignmentJob) Run(ctx context.Context) int {
	cmd, err := commands.NewAssignPendingBatchesCommand(j.limit)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending batch assignment misconfigured", "error", err)
		return 0
	}

	assigned, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		if !errors.Is(err, commands.ErrNoPendingBatches) {
			j.logger.ErrorContext(ctx, "Pending batch assignment failed", "error", err)
		}
		return 0
	}

	if assigned > 0 {
		j.logger.InfoContext(ctx, "Drivers assigned to pending batches", "assigned", assigned)
	}
	return assigned
}

// Stop stops the scheduler. A run in progress finishes on its own.
func (j *PendingBatchAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Pending batch assignment job stopped")
}
