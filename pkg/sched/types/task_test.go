package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskWorkloadQuotaOutOfOrderPanics(t *testing.T) {
	task := NewTask(1, 10, 0.5)

	assert.Panics(t, func() {
		task.SetWorkloadQuota(1, 5.0)
	}, "setting window 1 before window 0 must panic")
}

func TestTaskWorkloadQuotaUnrecordedWindowPanics(t *testing.T) {
	task := NewTask(1, 10, 0.5)
	task.SetWorkloadQuota(0, 5.0)

	assert.Panics(t, func() {
		task.WorkloadQuota(1)
	}, "querying a window never recorded for this task must panic, not return a stale value")
}

func TestTaskCloneIsIndependent(t *testing.T) {
	task := NewTask(1, 10, 0.5)
	task.SetWorkloadQuota(0, 5.0)

	clone := task.Clone()
	clone.SetWorkloadQuota(1, 3.0)

	assert.Equal(t, 1, len(task.workloadQuota), "mutating the clone must not affect the original")
	assert.Equal(t, 2, len(clone.workloadQuota))
}

func TestTaskResetWindowStateClearsFaultAndCompletion(t *testing.T) {
	task := NewTask(1, 10, 0.5)
	task.SetFault(2.5)
	task.Completed = true

	task.ResetWindowState()

	assert.False(t, task.EncounteredFault)
	assert.Equal(t, 0.0, task.FaultRelativeOffset)
	assert.False(t, task.Completed)
}

func TestCoreAccrueActive(t *testing.T) {
	core := NewCore("LP_Core0", CoreKindLP, 1.0, 0.3, 0.03, 0.02)
	core.AccrueActive(1.5)
	core.AccrueActive(2.5)

	assert.Equal(t, 4.0, core.ActiveDuration)
}
