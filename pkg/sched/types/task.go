// Package types holds the value records shared by the schedule builder,
// the BB-overloading reservation, and the simulator: tasks, cores, and the
// small numeric helpers used to round durations onto the time-step grid.
package types

import "fmt"

// Task is a periodic real-time task. ID and Deadline and Weight are set once
// at load time; the window-indexed quota slices and the fault/completion
// fields are written by the Schedule Builder and the Simulator and must be
// reset at window boundaries (see Task.ResetWindowState).
type Task struct {
	ID       int64
	Deadline float64 // ms, > 0
	Weight   float64 // utilization, (0,1]

	// workloadQuota[w] / backupWorkloadQuota[w] are set once by the builder
	// for every window w in which the task is still active.
	workloadQuota       []float64
	backupWorkloadQuota []float64

	StartTime       float64 // current primary execution start, this window
	BackupStartTime float64 // current backup execution start, this window

	EncounteredFault    bool
	FaultRelativeOffset float64 // offset of the fault within the task's execution, this window

	Completed bool
}

// NewTask constructs a Task with no window state recorded yet.
func NewTask(id int64, deadline, weight float64) *Task {
	return &Task{ID: id, Deadline: deadline, Weight: weight}
}

// Clone returns a deep, independent copy of t. The Schedule Builder clones
// the active task list before sorting it for LP packing so that the
// caller's list order survives for retirement.
func (t *Task) Clone() *Task {
	c := *t
	c.workloadQuota = append([]float64(nil), t.workloadQuota...)
	c.backupWorkloadQuota = append([]float64(nil), t.backupWorkloadQuota...)
	return &c
}

// SetWorkloadQuota records the primary LP workload quota for window w.
// Windows must be appended in order; w must equal len(workloadQuota).
func (t *Task) SetWorkloadQuota(w int, wq float64) {
	if w != len(t.workloadQuota) {
		panic(fmt.Sprintf("task %d: workload quota for window %d set out of order (have %d)", t.ID, w, len(t.workloadQuota)))
	}
	t.workloadQuota = append(t.workloadQuota, wq)
}

// SetBackupWorkloadQuota records the HP backup workload quota for window w.
func (t *Task) SetBackupWorkloadQuota(w int, bwq float64) {
	if w != len(t.backupWorkloadQuota) {
		panic(fmt.Sprintf("task %d: backup workload quota for window %d set out of order (have %d)", t.ID, w, len(t.backupWorkloadQuota)))
	}
	t.backupWorkloadQuota = append(t.backupWorkloadQuota, bwq)
}

// WorkloadQuota returns the primary workload quota recorded for window w.
// Querying a window that was never recorded for this task (e.g. because the
// task retired in an earlier window) panics rather than returning a stale
// value.
func (t *Task) WorkloadQuota(w int) float64 {
	if w < 0 || w >= len(t.workloadQuota) {
		panic(fmt.Sprintf("task %d: workload quota requested for window %d, have %d windows recorded", t.ID, w, len(t.workloadQuota)))
	}
	return t.workloadQuota[w]
}

// BackupWorkloadQuota returns the backup workload quota recorded for window w.
func (t *Task) BackupWorkloadQuota(w int) float64 {
	if w < 0 || w >= len(t.backupWorkloadQuota) {
		panic(fmt.Sprintf("task %d: backup workload quota requested for window %d, have %d windows recorded", t.ID, w, len(t.backupWorkloadQuota)))
	}
	return t.backupWorkloadQuota[w]
}

// SetFault marks the task as having encountered a fault at the given offset
// relative to its start time in the current window.
func (t *Task) SetFault(relativeOffset float64) {
	t.EncounteredFault = true
	t.FaultRelativeOffset = relativeOffset
}

// ResetWindowState clears the per-window simulator fields. Called by the
// Simulator at the start of every window.
func (t *Task) ResetWindowState() {
	t.EncounteredFault = false
	t.FaultRelativeOffset = 0
	t.Completed = false
}

// CoreKind distinguishes the low-power primary cores from the single
// reserved high-power backup core.
type CoreKind string

const (
	CoreKindLP CoreKind = "lp"
	CoreKindHP CoreKind = "hp"
)

// Core is a single processing element. Frequency, activity index and the
// active/idle coefficients are opaque to the scheduler: only
// pkg/sched/energy's Active/Idle functions interpret them.
type Core struct {
	Name string
	Kind CoreKind

	Freq         float64 // f
	ActivityIdx  float64 // ai
	ActiveCoeff  float64 // xi, energy_active(t) = xi * t
	IdlePower    float64 // p_idle, energy_idle(t) = p_idle * t

	ActiveDuration float64
	EnergyConsumed float64
}

// NewCore constructs a Core with zeroed accumulators.
func NewCore(name string, kind CoreKind, freq, ai, xi, pIdle float64) *Core {
	return &Core{Name: name, Kind: kind, Freq: freq, ActivityIdx: ai, ActiveCoeff: xi, IdlePower: pIdle}
}

// AccrueActive credits dt of active execution time to the core.
func (c *Core) AccrueActive(dt float64) {
	c.ActiveDuration += dt
}
