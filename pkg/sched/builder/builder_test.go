package builder

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khryptorgraphics/ensure-sched/pkg/sched/errs"
	"github.com/khryptorgraphics/ensure-sched/pkg/sched/types"
)

func discardLogger() zerolog.Logger {
	return zerolog.Nop()
}

// Single window, single task, no fault.
func TestBuildSingleWindowSingleTask(t *testing.T) {
	tasks := []*types.Task{types.NewTask(0, 10, 0.5)}

	b := New(Params{MPri: 1, K: 0, LPHPRatio: 0.8, TimeStep: 0.01}, discardLogger())
	sc, err := b.Build(tasks)
	require.NoError(t, err)

	require.Len(t, sc.Windows, 1)
	w := sc.Windows[0]

	require.Len(t, w.Primary, 1)
	assert.Equal(t, 0.0, w.Primary[0].StartOffset)
	assert.Equal(t, 0, w.Primary[0].CoreIndex)
	assert.Equal(t, 5.0, w.Primary[0].Task.WorkloadQuota(0))
	assert.Equal(t, 4.0, w.Primary[0].Task.BackupWorkloadQuota(0))
	assert.Equal(t, 10.0, w.BackupStart, "k=0 reserves nothing, so backup_start collapses to the window deadline")
}

// Two equally-weighted tasks on one LP core exceed capacity.
func TestBuildCapacityExceeded(t *testing.T) {
	tasks := []*types.Task{
		types.NewTask(0, 10, 0.6),
		types.NewTask(1, 10, 0.6),
	}

	b := New(Params{MPri: 1, K: 0, LPHPRatio: 0.8, TimeStep: 0.01}, discardLogger())
	_, err := b.Build(tasks)

	require.Error(t, err)
	var schedErr *errs.SchedError
	require.True(t, errors.As(err, &schedErr))
	assert.Equal(t, errs.CapacityExceeded, schedErr.Kind)
}

// Two windows, two tasks, k = 1.
func TestBuildTwoWindowsTwoTasks(t *testing.T) {
	tasks := []*types.Task{
		types.NewTask(0, 10, 0.4),
		types.NewTask(1, 20, 0.3),
	}

	b := New(Params{MPri: 1, K: 1, LPHPRatio: 0.8, TimeStep: 0.01}, discardLogger())
	sc, err := b.Build(tasks)
	require.NoError(t, err)
	require.Len(t, sc.Windows, 2)

	w0, w1 := sc.Windows[0], sc.Windows[1]

	require.Len(t, w0.BackupList, 2)
	assert.Equal(t, int64(0), w0.BackupList[0].ID, "backup list window 0 sorted by non-increasing wq: T0 (wq=4) before T1 (wq=3)")
	assert.Equal(t, int64(1), w0.BackupList[1].ID)
	assert.Equal(t, 6.8, w0.BackupStart, "k=1 reserves only T0's bwq=3.2, not the sum of both backups: 10-3.2=6.8")

	require.Len(t, w1.BackupList, 1)
	assert.Equal(t, int64(1), w1.BackupList[0].ID)
	assert.Equal(t, 17.6, w1.BackupStart)
}

func TestUniqueDeadlinesCollapsesDuplicates(t *testing.T) {
	tasks := []*types.Task{
		types.NewTask(0, 10, 0.1),
		types.NewTask(1, 10, 0.1),
		types.NewTask(2, 20, 0.1),
	}
	deadlines := uniqueDeadlines(tasks)
	assert.Equal(t, []float64{10, 20}, deadlines)
}
