package types

import (
	"math"
	"sort"
)

// PrimaryEntry is one (start offset, LP core index) -> task placement
// within a window's primary schedule.
type PrimaryEntry struct {
	StartOffset float64
	CoreIndex   int
	Task        *Task
}

// Window holds everything the builder produces for one deadline-separated
// window: the ordered primary placements, the backup list (ordered by
// non-increasing primary workload quota), and the BB-overloading backup
// start time.
type Window struct {
	Index      int
	Start      float64
	End        float64
	Primary    []PrimaryEntry
	BackupList []*Task
	BackupStart float64
}

// Len returns the window's length (End - Start).
func (w *Window) Len() float64 { return w.End - w.Start }

// SortPrimary orders Primary by ascending (start offset, core index), the
// explicit sort, in place of insertion-order iteration.
func (w *Window) SortPrimary() {
	sort.SliceStable(w.Primary, func(i, j int) bool {
		a, b := w.Primary[i], w.Primary[j]
		if a.StartOffset != b.StartOffset {
			return a.StartOffset < b.StartOffset
		}
		return a.CoreIndex < b.CoreIndex
	})
}

// RemoveFromBackupList removes the task with the given id from the window's
// backup list, returning true if it was present. Callers are responsible
// for recomputing the BB-overloading reservation afterwards.
func (w *Window) RemoveFromBackupList(taskID int64) bool {
	for i, t := range w.BackupList {
		if t.ID == taskID {
			w.BackupList = append(w.BackupList[:i], w.BackupList[i+1:]...)
			return true
		}
	}
	return false
}

// Schedule is the complete output of the Schedule Builder: one Window per
// deadline-separated interval, in ascending deadline order.
type Schedule struct {
	Deadlines []float64
	Windows   []*Window
}

// RoundToStep rounds value up to the next multiple of step, at precisionDP
// decimal places, with a floor of one step — the "ceiling-to-step" duration
// rounding policy every workload quota follows. Start-time values use
// RoundExact instead, since start times are rounded exactly, not ceilinged.
// A quotient value/step within 1e-9 of a whole number counts as that whole
// number, so floating-point noise in value (0.8*0.4*10 evaluates to
// 3.2000000000000006) does not push the result up an extra step.
func RoundToStep(value, step float64, precisionDP int) float64 {
	q := value / step
	if r := math.Round(q); math.Abs(q-r) < 1e-9 {
		q = r
	}
	out := roundDP(math.Ceil(q)*step, precisionDP)
	if out < step {
		out = step
	}
	return out
}

// RoundExact rounds value to precisionDP decimal places without ceilinging,
// used for start times and other exact instants.
func RoundExact(value float64, precisionDP int) float64 {
	return roundDP(value, precisionDP)
}

// PrecisionDP returns the number of decimal places implied by a time step,
// i.e. -floor(log10(step)), matching EnSuRe_Scheduler.__init__'s
// precision_dp computation.
func PrecisionDP(step float64) int {
	return -int(math.Floor(math.Log10(step) + 1e-9))
}

func roundDP(value float64, dp int) float64 {
	mult := math.Pow(10, float64(dp))
	return math.Round(value*mult) / mult
}
