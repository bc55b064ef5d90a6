// Package report prints the completion report of a scheduling run:
// per-LP-core and HP-core active duration and energy consumed, plus total
// energy.
package report

import (
	"fmt"
	"io"

	"github.com/khryptorgraphics/ensure-sched/pkg/sched/sim"
	"github.com/khryptorgraphics/ensure-sched/pkg/sched/types"
)

// Print writes the final energy/active-duration report to w.
func Print(w io.Writer, lpCores []*types.Core, hpCore *types.Core) {
	fmt.Fprintln(w, "=== RESULTS ===")
	for _, c := range lpCores {
		fmt.Fprintf(w, "%s: active_duration=%.4fms energy_consumed=%.6f\n", c.Name, c.ActiveDuration, c.EnergyConsumed)
	}
	fmt.Fprintf(w, "%s: active_duration=%.4fms energy_consumed=%.6f\n", hpCore.Name, hpCore.ActiveDuration, hpCore.EnergyConsumed)
	fmt.Fprintf(w, "total_energy=%.6f\n", sim.TotalEnergy(lpCores, hpCore))
}

// PrintSchedule renders a schedule's per-window primary placements and
// backup start times, grounded on EnSuRe_Scheduler.print_schedule.
func PrintSchedule(w io.Writer, sc *types.Schedule) {
	fmt.Fprintln(w, "Schedule:")
	fmt.Fprintln(w, " Primary Tasks")
	for _, win := range sc.Windows {
		for _, e := range win.Primary {
			fmt.Fprintf(w, "  LP Core %d, %.4f ms, Task %d\n", e.CoreIndex, e.StartOffset, e.Task.ID)
		}
	}
	fmt.Fprintln(w, " Backup Tasks")
	for _, win := range sc.Windows {
		fmt.Fprintf(w, "  For time window %d: %.4f ms\n", win.Index, win.BackupStart)
	}
}
