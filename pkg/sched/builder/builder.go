// Package builder implements the Schedule Builder: it partitions the frame
// into deadline-separated windows, computes per-task per-window workload
// quotas, checks system capacity, packs primary copies onto the LP cores
// with a longest-processing-time first-fit placement, and emits each
// window's backup list and BB-overloading reservation.
package builder

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/khryptorgraphics/ensure-sched/pkg/sched/errs"
	"github.com/khryptorgraphics/ensure-sched/pkg/sched/reservation"
	"github.com/khryptorgraphics/ensure-sched/pkg/sched/types"
)

// Params are the Schedule Builder's construction-time inputs.
type Params struct {
	MPri     int     // number of LP cores
	K        int     // faults tolerated per window
	LPHPRatio float64 // r, LP:HP speed ratio
	TimeStep float64 // Δ, ms
}

// Builder holds the configuration needed to generate a Schedule; it does
// not retain any per-run state between calls to Build.
type Builder struct {
	params Params
	logger zerolog.Logger
}

// New constructs a Builder. params is validated by internal/config before
// reaching here; Builder itself does not re-validate those invalid-value
// cases.
func New(params Params, logger zerolog.Logger) *Builder {
	return &Builder{params: params, logger: logger}
}

// Build runs the schedule-construction algorithm against tasks, returning a
// feasible Schedule or a *errs.SchedError describing why none exists. The
// order of tasks is left as it is, but each window's workload quotas are
// recorded on the tasks themselves, so a given task set can be built only
// once. The schedule's primary placements and backup lists hold clones.
func (b *Builder) Build(tasks []*types.Task) (*types.Schedule, error) {
	precisionDP := types.PrecisionDP(b.params.TimeStep)

	active := make([]*types.Task, len(tasks))
	copy(active, tasks)
	sort.SliceStable(active, func(i, j int) bool { return active[i].Deadline < active[j].Deadline })

	deadlines := uniqueDeadlines(active)

	sc := &types.Schedule{Deadlines: deadlines}

	prevDeadline := 0.0
	for wi, deadline := range deadlines {
		start := prevDeadline
		length := deadline - start

		win := &types.Window{Index: wi, Start: start, End: deadline}

		// step a: compute workload quotas for every still-active task.
		var totalWQ float64
		for _, t := range active {
			wq := types.RoundToStep(t.Weight*length, b.params.TimeStep, precisionDP)
			bwq := types.RoundToStep(b.params.LPHPRatio*t.Weight*length, b.params.TimeStep, precisionDP)
			t.SetWorkloadQuota(wi, wq)
			t.SetBackupWorkloadQuota(wi, bwq)
			totalWQ += wq
		}

		// step b: capacity test.
		if totalWQ > length*float64(b.params.MPri) {
			b.logger.Warn().Int("window", wi).Float64("total_wq", totalWQ).Float64("capacity", length*float64(b.params.MPri)).Msg("capacity exceeded")
			return nil, &errs.SchedError{Kind: errs.CapacityExceeded, Window: wi, Message: "workload exceeds capacity"}
		}

		// step c: LP packing, longest-processing-time first-fit round robin.
		packed := make([]*types.Task, len(active))
		for i, t := range active {
			packed[i] = t.Clone()
		}
		sort.SliceStable(packed, func(i, j int) bool { return packed[i].WorkloadQuota(wi) > packed[j].WorkloadQuota(wi) })

		cursors := make([]float64, b.params.MPri)
		for i := range cursors {
			cursors[i] = start
		}
		currCore := 0
		for _, t := range packed {
			wq := t.WorkloadQuota(wi)

			tried := 0
			for cursors[currCore]+wq > start+length {
				currCore = (currCore + 1) % b.params.MPri
				tried++
				if tried > b.params.MPri {
					b.logger.Warn().Int("window", wi).Int64("task", t.ID).Msg("LP packing failed")
					return nil, &errs.SchedError{Kind: errs.LPPackingFailed, Window: wi, TaskID: t.ID, Message: "unable to schedule on any LP core"}
				}
			}

			cursor := types.RoundExact(cursors[currCore], precisionDP)
			win.Primary = append(win.Primary, types.PrimaryEntry{StartOffset: cursor, CoreIndex: currCore, Task: t})
			t.StartTime = cursor
			cursors[currCore] += wq
			currCore = (currCore + 1) % b.params.MPri
		}
		win.SortPrimary()

		// step d: backup list inherits the LP-packed (non-increasing wq) order.
		win.BackupList = append(win.BackupList, packed...)

		// step e: backup reservation, constructed with sim_time = 0.
		reservation.Update(win, b.params.K, 0)

		sc.Windows = append(sc.Windows, win)

		// step f: retire tasks whose deadline is this window's deadline.
		active = retire(active, deadline)

		prevDeadline = deadline
	}

	return sc, nil
}

func uniqueDeadlines(sortedByDeadline []*types.Task) []float64 {
	var out []float64
	for _, t := range sortedByDeadline {
		if len(out) == 0 || out[len(out)-1] != t.Deadline {
			out = append(out, t.Deadline)
		}
	}
	return out
}

func retire(active []*types.Task, deadline float64) []*types.Task {
	out := active[:0:0]
	for _, t := range active {
		if t.Deadline != deadline {
			out = append(out, t)
		}
	}
	return out
}
