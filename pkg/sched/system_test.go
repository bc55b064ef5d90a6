package sched

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khryptorgraphics/ensure-sched/pkg/sched/types"
)

func discardLogger() zerolog.Logger {
	return zerolog.Nop()
}

// Run end to end through System: single window, single task, no fault.
func TestSystemRunNoFault(t *testing.T) {
	sys := NewSystem(Params{K: 0, Frame: 10, TimeStep: 0.01, MPri: 1, LPHPRatio: 0.8}, discardLogger())

	tasks := []*types.Task{types.NewTask(0, 10, 0.5)}
	_, result, err := sys.Run(tasks, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Empty(t, result.InconsistentWindows)

	assert.InDelta(t, 5.0, sys.LPCores()[0].ActiveDuration, 1e-9)
	assert.Equal(t, 0.0, sys.HPCore().ActiveDuration)
}

// With k=1 and a single task, the fault generator must place its one fault
// into that task (there is nowhere else for it to land), so the outcome is
// deterministic regardless of the rng seed: the backup reservation covers
// the task's full bwq and the HP core ends up active for exactly that
// duration.
func TestSystemRunSingleTaskFaultForcesFullBackup(t *testing.T) {
	sys := NewSystem(Params{K: 1, Frame: 10, TimeStep: 0.01, MPri: 1, LPHPRatio: 0.8}, discardLogger())

	tasks := []*types.Task{types.NewTask(0, 10, 0.5)}
	_, result, err := sys.Run(tasks, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.InDelta(t, 5.0, sys.LPCores()[0].ActiveDuration, 1e-9, "the primary still runs to completion even though it faulted")
	assert.InDelta(t, 4.0, sys.HPCore().ActiveDuration, 1e-9, "the backup runs its full bwq since the lone task never leaves the backup list")
	assert.Empty(t, result.InconsistentWindows, "the backup completes exactly at the window boundary, which the final in-loop sweep still observes")
}

// k larger than the window's task count still injects faults into only as
// many tasks as actually exist.
func TestSystemRunKLargerThanTaskCount(t *testing.T) {
	sys := NewSystem(Params{K: 5, Frame: 10, TimeStep: 0.01, MPri: 1, LPHPRatio: 0.8}, discardLogger())

	tasks := []*types.Task{types.NewTask(0, 10, 0.5)}
	schedule, _, err := sys.Run(tasks, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.Len(t, schedule.Windows, 1)

	w := schedule.Windows[0]
	faulted := 0
	for _, e := range w.Primary {
		if e.Task.EncounteredFault {
			faulted++
		}
	}
	assert.Equal(t, 1, faulted, "the fault generator injects min(k, task count) faults, never more than there are tasks")
}
