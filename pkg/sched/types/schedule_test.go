package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundToStepCeilingsToStepGrid(t *testing.T) {
	assert.Equal(t, 0.02, RoundToStep(0.011, 0.01, 2))
	assert.Equal(t, 0.01, RoundToStep(0.0, 0.01, 2), "a zero-length quota still reserves one step")
	assert.Equal(t, 0.10, RoundToStep(0.091, 0.01, 2))
}

func TestPrecisionDP(t *testing.T) {
	assert.Equal(t, 2, PrecisionDP(0.01))
	assert.Equal(t, 1, PrecisionDP(0.1))
	assert.Equal(t, 3, PrecisionDP(0.001))
}

func TestWindowSortPrimaryOrdersByOffsetThenCore(t *testing.T) {
	w := &Window{
		Primary: []PrimaryEntry{
			{StartOffset: 5, CoreIndex: 1, Task: NewTask(2, 10, 0.2)},
			{StartOffset: 5, CoreIndex: 0, Task: NewTask(1, 10, 0.2)},
			{StartOffset: 1, CoreIndex: 0, Task: NewTask(3, 10, 0.2)},
		},
	}

	w.SortPrimary()

	assert.Equal(t, int64(3), w.Primary[0].Task.ID)
	assert.Equal(t, int64(1), w.Primary[1].Task.ID)
	assert.Equal(t, int64(2), w.Primary[2].Task.ID)
}

func TestWindowRemoveFromBackupList(t *testing.T) {
	t1, t2 := NewTask(1, 10, 0.2), NewTask(2, 10, 0.2)
	w := &Window{BackupList: []*Task{t1, t2}}

	assert.True(t, w.RemoveFromBackupList(1))
	assert.Equal(t, []*Task{t2}, w.BackupList)
	assert.False(t, w.RemoveFromBackupList(1), "removing an already-removed id reports false")
}
