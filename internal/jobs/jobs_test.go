package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/branch"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
	"laundry/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPendingBatchAssigner struct{ mock.Mock }

func (m *MockPendingBatchAssigner) Handle(ctx context.Context, cmd commands.AssignPendingBatchesCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockBranchLister struct{ mock.Mock }

func (m *MockBranchLister) List(ctx context.Context) ([]*branch.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*branch.Branch), args.Error(1)
}

type MockSortingMetricsReader struct{ mock.Mock }

func (m *MockSortingMetricsReader) Handle(ctx context.Context, q queries.GetSortingMetricsQuery) (services.SortingMetrics, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(services.SortingMetrics), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBranch(t *testing.T, name string) *branch.Branch {
	t.Helper()
	b, err := branch.NewBranch(kernel.NewUUID(), name, branch.TypeMain, nil, nil, nil)
	require.NoError(t, err)
	return b
}

func TestPendingBatchAssignmentJob_Run(t *testing.T) {
	t.Run("should hand the configured limit to the handler", func(t *testing.T) {
		assigner := new(MockPendingBatchAssigner)
		assigner.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AssignPendingBatchesCommand) bool {
			return cmd.Limit() == 25
		})).Return(3, nil).Once()

		job := jobs.NewPendingBatchAssignmentJob(assigner, "*/30 * * * * *", 25, discardLogger())

		assert.Equal(t, 3, job.Run(context.Background()))
		assigner.AssertExpectations(t)
	})

	t.Run("should treat an empty queue as nothing to do", func(t *testing.T) {
		var logs bytes.Buffer
		assigner := new(MockPendingBatchAssigner)
		assigner.On("Handle", mock.Anything, mock.Anything).Return(0, commands.ErrNoPendingBatches).Once()

		job := jobs.NewPendingBatchAssignmentJob(assigner, "*/30 * * * * *", 25, slog.New(slog.NewTextHandler(&logs, nil)))

		assert.Equal(t, 0, job.Run(context.Background()))
		assert.NotContains(t, logs.String(), "level=ERROR")
	})

	t.Run("should log handler failures", func(t *testing.T) {
		var logs bytes.Buffer
		assigner := new(MockPendingBatchAssigner)
		assigner.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("tx aborted")).Once()

		job := jobs.NewPendingBatchAssignmentJob(assigner, "*/30 * * * * *", 25, slog.New(slog.NewTextHandler(&logs, nil)))

		assert.Equal(t, 0, job.Run(context.Background()))
		assert.Contains(t, logs.String(), "tx aborted")
	})

	t.Run("should not call the handler with a non-positive limit", func(t *testing.T) {
		assigner := new(MockPendingBatchAssigner)

		job := jobs.NewPendingBatchAssignmentJob(assigner, "*/30 * * * * *", 0, discardLogger())

		assert.Equal(t, 0, job.Run(context.Background()))
		assigner.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestPendingBatchAssignmentJob_Start(t *testing.T) {
	t.Run("should reject a malformed schedule", func(t *testing.T) {
		job := jobs.NewPendingBatchAssignmentJob(new(MockPendingBatchAssigner), "every minute", 10, discardLogger())

		require.Error(t, job.Start())
	})

	t.Run("should start and stop", func(t *testing.T) {
		job := jobs.NewPendingBatchAssignmentJob(new(MockPendingBatchAssigner), "0 0 3 * * *", 10, discardLogger())

		require.NoError(t, job.Start())
		job.Stop()
	})
}

func TestSortingReportJob_Run(t *testing.T) {
	t.Run("should query every branch and warn about expiring windows", func(t *testing.T) {
		var logs bytes.Buffer
		westlands := newBranch(t, "Westlands")
		karen := newBranch(t, "Karen")

		lister := new(MockBranchLister)
		lister.On("List", mock.Anything).Return([]*branch.Branch{westlands, karen}, nil).Once()

		metrics := new(MockSortingMetricsReader)
		metrics.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetSortingMetricsQuery) bool {
			return q.BranchID() == westlands.ID() && !q.At().IsZero()
		})).Return(services.SortingMetrics{Total: 4, PendingSort: 2, ExpiringSoon: 1}, nil).Once()
		metrics.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetSortingMetricsQuery) bool {
			return q.BranchID() == karen.ID()
		})).Return(services.SortingMetrics{Total: 1, ReadyForScheduling: 1}, nil).Once()

		job := jobs.NewSortingReportJob(lister, metrics, "0 */15 * * * *", slog.New(slog.NewTextHandler(&logs, nil)))
		job.Run(context.Background())

		metrics.AssertExpectations(t)
		assert.Contains(t, logs.String(), "level=WARN")
		assert.Contains(t, logs.String(), "branch=Westlands")
		assert.Contains(t, logs.String(), "branch=Karen")
	})

	t.Run("should keep going after one branch fails", func(t *testing.T) {
		var logs bytes.Buffer
		broken := newBranch(t, "Broken")
		healthy := newBranch(t, "Healthy")

		lister := new(MockBranchLister)
		lister.On("List", mock.Anything).Return([]*branch.Branch{broken, healthy}, nil).Once()

		metrics := new(MockSortingMetricsReader)
		metrics.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetSortingMetricsQuery) bool {
			return q.BranchID() == broken.ID()
		})).Return(services.SortingMetrics{}, errors.New("statement timeout")).Once()
		metrics.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetSortingMetricsQuery) bool {
			return q.BranchID() == healthy.ID()
		})).Return(services.SortingMetrics{}, nil).Once()

		job := jobs.NewSortingReportJob(lister, metrics, "0 */15 * * * *", slog.New(slog.NewTextHandler(&logs, nil)))
		job.Run(context.Background())

		metrics.AssertExpectations(t)
		assert.Contains(t, logs.String(), "statement timeout")
		assert.Contains(t, logs.String(), "branch=Healthy")
	})

	t.Run("should stop when branches cannot be listed", func(t *testing.T) {
		lister := new(MockBranchLister)
		lister.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()
		metrics := new(MockSortingMetricsReader)

		job := jobs.NewSortingReportJob(lister, metrics, "0 */15 * * * *", discardLogger())
		job.Run(context.Background())

		metrics.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestJobManager_StartAll(t *testing.T) {
	t.Run("should fail when a schedule is malformed", func(t *testing.T) {
		manager := jobs.NewJobManager(
			new(MockPendingBatchAssigner),
			new(MockBranchLister),
			new(MockSortingMetricsReader),
			jobs.Schedules{BatchAssignment: "0 * * * * *", SortingReport: "sometimes"},
			50,
			discardLogger(),
		)

		err := manager.StartAll()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sorting report job")
	})

	t.Run("should start and stop every job", func(t *testing.T) {
		manager := jobs.NewJobManager(
			new(MockPendingBatchAssigner),
			new(MockBranchLister),
			new(MockSortingMetricsReader),
			jobs.Schedules{BatchAssignment: "0 0 3 * * *", SortingReport: "0 0 4 * * *"},
			50,
			discardLogger(),
		)

		require.NoError(t, manager.StartAll())
		manager.StopAll()
	})
}
