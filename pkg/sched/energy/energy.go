// Package energy implements the opaque linear energy model: every core's
// energy consumption is the sum of an active-time term and an idle-time
// term, each a linear function of duration.
package energy

import "github.com/khryptorgraphics/ensure-sched/pkg/sched/types"

// Active returns the energy consumed by c while active for duration t,
// energy_active(t) = xi * t.
func Active(c *types.Core, t float64) float64 {
	return c.ActiveCoeff * t
}

// Idle returns the energy consumed by c while idle for duration t,
// energy_idle(t) = p_idle * t.
func Idle(c *types.Core, t float64) float64 {
	return c.IdlePower * t
}

// Settle accrues c's final active+idle energy for a frame of length frame,
// given the active duration already accumulated on c during simulation.
// Called once per core at the end of a simulation run.
func Settle(c *types.Core, frame float64) {
	c.EnergyConsumed += Active(c, c.ActiveDuration)
	c.EnergyConsumed += Idle(c, frame-c.ActiveDuration)
}
