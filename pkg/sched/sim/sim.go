// Package sim implements the time-stepped Simulator: it advances a single
// monotonic clock across all windows in fixed Δ steps, applying the primary
// schedule, injecting faults, running HP backups, and tallying each core's
// active duration for the energy model.
package sim

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/khryptorgraphics/ensure-sched/pkg/sched/energy"
	"github.com/khryptorgraphics/ensure-sched/pkg/sched/reservation"
	"github.com/khryptorgraphics/ensure-sched/pkg/sched/types"
)

// Simulator replays a built Schedule against fault injection and accumulates
// active-duration/energy figures on the supplied cores.
type Simulator struct {
	K        int
	TimeStep float64
	Frame    float64
	Logger   zerolog.Logger
	RNG      *rand.Rand
}

// New constructs a Simulator. rng must be supplied by the caller (seeded
// explicitly so a fixed seed reproduces bit-identical results) rather than
// defaulting to the global math/rand source.
func New(k int, timeStep, frame float64, logger zerolog.Logger, rng *rand.Rand) *Simulator {
	return &Simulator{K: k, TimeStep: timeStep, Frame: frame, Logger: logger, RNG: rng}
}

// Result is what a simulation run reports back, beyond the mutated Core
// accumulators themselves.
type Result struct {
	RunID uuid.UUID
	// InconsistentWindows lists windows whose backup list was still
	// non-empty at the end of simulation — reported, but not fatal to
	// energy accounting.
	InconsistentWindows []int
}

// step converts a millisecond value to an integer multiple of s.TimeStep,
// rounding to the nearest step so values already on the Δ grid survive the
// float64 round-trip exactly.
func (s *Simulator) step(ms float64) int64 {
	return int64(math.Round(ms / s.TimeStep))
}

// Run simulates sc against lpCores (indexed by the builder's core index)
// and hpCore, in ascending window order, then settles every core's final
// energy consumption for a frame of s.Frame ms.
//
// The clock and every threshold it is compared against are tracked as
// integer step counts (time / Δ); milliseconds only appear where the result
// crosses back out to a Task or Window field. A clock that instead
// accumulated simTime += Δ in float64 would drift out of sync with those
// fields after enough steps, firing completion checks one step late.
func (s *Simulator) Run(sc *types.Schedule, lpCores []*types.Core, hpCore *types.Core) (*Result, error) {
	res := &Result{RunID: uuid.New()}
	var simStep int64

	lpAssigned := make([]*types.Task, len(lpCores))
	var hpAssigned *types.Task

	for _, w := range sc.Windows {
		for _, e := range w.Primary {
			e.Task.ResetWindowState()
		}

		if err := GenerateFaults(w, s.K, s.TimeStep, s.RNG); err != nil {
			s.Logger.Warn().Int("window", w.Index).Err(err).Msg("fault placement exhausted, continuing with faults placed so far")
		}

		for i := range lpAssigned {
			lpAssigned[i] = nil
		}
		hpAssigned = nil

		keyIdx := 0
		endStep := s.step(w.End)

		for simStep <= endStep {
			simTime := float64(simStep) * s.TimeStep

			// i. accrue active time on every occupied slot.
			for i, t := range lpAssigned {
				if t != nil {
					lpCores[i].AccrueActive(s.TimeStep)
				}
			}
			if hpAssigned != nil {
				hpCore.AccrueActive(s.TimeStep)
			}

			// ii. primary completion sweep.
			for i, t := range lpAssigned {
				if t == nil {
					continue
				}
				if simStep >= s.step(t.StartTime+t.WorkloadQuota(w.Index)) {
					if !t.EncounteredFault {
						w.RemoveFromBackupList(t.ID)
						reservation.Update(w, s.K, simTime)
						if hpAssigned != nil && hpAssigned.ID == t.ID {
							hpAssigned = nil
						}
					}
					t.Completed = true
					lpAssigned[i] = nil
				}
			}

			// iii. backup completion.
			if hpAssigned != nil && simStep >= s.step(hpAssigned.BackupStartTime+hpAssigned.BackupWorkloadQuota(w.Index)) {
				w.RemoveFromBackupList(hpAssigned.ID)
				reservation.Update(w, s.K, simTime)
				hpAssigned = nil
			}

			// iv. primary dispatch.
			for keyIdx < len(w.Primary) && simStep >= s.step(w.Primary[keyIdx].StartOffset) {
				entry := w.Primary[keyIdx]
				core := entry.CoreIndex

				if stale := lpAssigned[core]; stale != nil && stale.ID != entry.Task.ID {
					if !stale.EncounteredFault {
						w.RemoveFromBackupList(stale.ID)
						reservation.Update(w, s.K, simTime)
						if hpAssigned != nil && hpAssigned.ID == stale.ID {
							hpAssigned = nil
						}
					}
					stale.Completed = true
					lpAssigned[core] = nil
				}

				if lpAssigned[core] == nil || lpAssigned[core].ID != entry.Task.ID {
					lpAssigned[core] = entry.Task
					entry.Task.StartTime = simTime
				}

				keyIdx++
			}

			// v. backup dispatch.
			if simStep >= s.step(w.BackupStart) {
				if len(w.BackupList) > 0 {
					head := w.BackupList[0]
					if hpAssigned == nil || hpAssigned.ID != head.ID {
						hpAssigned = head
						hpAssigned.BackupStartTime = simTime
					}
				} else {
					hpAssigned = nil
				}
			}

			simStep++
		}

		if len(w.BackupList) > 0 {
			res.InconsistentWindows = append(res.InconsistentWindows, w.Index)
			s.Logger.Warn().Int("window", w.Index).Int("remaining", len(w.BackupList)).Msg("backup list non-empty at end of window")
		}
	}

	for _, c := range lpCores {
		energy.Settle(c, s.Frame)
	}
	energy.Settle(hpCore, s.Frame)

	return res, nil
}

// TotalEnergy sums the energy consumed across every LP core and the HP
// core, grounded on the original System.get_energy_consumption.
func TotalEnergy(lpCores []*types.Core, hpCore *types.Core) float64 {
	total := hpCore.EnergyConsumed
	for _, c := range lpCores {
		total += c.EnergyConsumed
	}
	return total
}

// HPActiveDuration returns the HP core's accumulated active duration,
// grounded on the original System.get_hpcore_active_duration.
func HPActiveDuration(hpCore *types.Core) float64 {
	return hpCore.ActiveDuration
}
