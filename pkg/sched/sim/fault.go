package sim

import (
	"math/rand"

	"github.com/khryptorgraphics/ensure-sched/pkg/sched/errs"
	"github.com/khryptorgraphics/ensure-sched/pkg/sched/types"
)

// maxFaultAttempts bounds the resampling loop so a pathological window
// (one whose scheduled workload does not actually fill it) cannot spin
// forever; probabilistic termination alone has no hard upper bound.
const maxFaultAttempts = 100000

// GenerateFaults injects exactly min(k, |w.Primary|) faults into distinct
// tasks of window w: repeatedly sample a uniform random instant within the
// window and accept it if it falls inside some not-yet-faulty task's
// execution interval.
func GenerateFaults(w *types.Window, k int, timeStep float64, rng *rand.Rand) error {
	l := k
	if l > len(w.Primary) {
		l = len(w.Primary)
	}

	steps := int(w.Len() / timeStep)
	placed := 0
	for placed < l {
		placed2, ok := placeOneFault(w, timeStep, steps, rng)
		if !ok {
			return &errs.SchedError{Kind: errs.FaultPlacementExhausted, Window: w.Index, Message: "fault placement attempt cap exceeded"}
		}
		if placed2 {
			placed++
		}
	}
	return nil
}

// placeOneFault samples a single candidate fault instant and, if it lands
// inside a not-yet-faulty task's interval, marks that task faulty. The bool
// return reports whether a fault was placed; ok is false only if the
// attempt cap was exceeded without success.
func placeOneFault(w *types.Window, timeStep float64, steps int, rng *rand.Rand) (placed bool, ok bool) {
	for attempt := 0; attempt < maxFaultAttempts; attempt++ {
		r := rng.Intn(steps + 1)
		faultTime := w.Start + float64(r)*timeStep

		for _, e := range w.Primary {
			wq := e.Task.WorkloadQuota(w.Index)
			if faultTime >= e.StartOffset && faultTime <= e.StartOffset+wq {
				if e.Task.EncounteredFault {
					continue
				}
				e.Task.SetFault(faultTime - e.StartOffset)
				return true, true
			}
		}
	}
	return false, false
}
