// Package jobs provides scheduled background tasks for the laundry engine.
//
// Jobs are built on github.com/robfig/cron/v3 with six field expressions
// (seconds first) taken from configuration.
//
// # Available Jobs
//
//  1. PendingBatchAssignmentJob gives batches created without a driver the
//     least loaded available driver at their origin.
//  2. SortingReportJob logs sorting window metrics for every branch and warns
//     when orders are close to leaving their window unsorted.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(assignHandler, branchRepo, metricsHandler, schedules, 50, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The assignment job treats "no pending batches" as a normal outcome. Every
// other failure is logged and the job waits for its next tick.
package jobs
