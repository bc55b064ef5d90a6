package sched

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/khryptorgraphics/ensure-sched/pkg/sched/builder"
	"github.com/khryptorgraphics/ensure-sched/pkg/sched/sim"
	"github.com/khryptorgraphics/ensure-sched/pkg/sched/types"
)

// Params bundles a run's configuration: the faults tolerated per window,
// the frame length, the time-step fidelity, the LP core count, and the
// LP:HP speedup ratio.
type Params struct {
	K         int
	Frame     float64
	TimeStep  float64
	MPri      int
	LPHPRatio float64
}

// System ties the Schedule Builder and Simulator together against a bank of
// LP cores plus the single reserved HP core, mirroring the original
// System class's run/get_energy_consumption/get_hpcore_active_duration
// surface.
type System struct {
	params  Params
	logger  zerolog.Logger
	lpCores []*types.Core
	hpCore  *types.Core
}

// NewSystem constructs a System with a freshly initialized bank of LP cores
// plus one HP core, using the same per-core coefficients as the original
// EnSuRe System (ai/f/xi/p_idle), scaled so the HP core runs at
// f = 1/lp_hp_ratio relative to the LP cores.
func NewSystem(params Params, logger zerolog.Logger) *System {
	lpFreq := 1.0
	hpFreq := lpFreq / params.LPHPRatio

	lpCores := make([]*types.Core, params.MPri)
	for i := range lpCores {
		lpCores[i] = types.NewCore(coreName(i), types.CoreKindLP, lpFreq, 0.3, 0.03, 0.02)
	}
	hpCore := types.NewCore("HP_Core", types.CoreKindHP, hpFreq, 1.0, 0.1, 0.05)

	return &System{params: params, logger: logger, lpCores: lpCores, hpCore: hpCore}
}

func coreName(i int) string {
	return fmt.Sprintf("LP_Core%d", i)
}

// LPCores returns the system's LP core bank.
func (s *System) LPCores() []*types.Core { return s.lpCores }

// HPCore returns the system's single HP core.
func (s *System) HPCore() *types.Core { return s.hpCore }

// Run builds a schedule for tasks and, if feasible, simulates it with rng
// driving fault injection. It returns the built schedule and the simulation
// result so callers (the CLI, tests) can inspect both.
func (s *System) Run(tasks []*types.Task, rng *rand.Rand) (*types.Schedule, *sim.Result, error) {
	b := builder.New(builder.Params{
		MPri:      s.params.MPri,
		K:         s.params.K,
		LPHPRatio: s.params.LPHPRatio,
		TimeStep:  s.params.TimeStep,
	}, s.logger)

	schedule, err := b.Build(tasks)
	if err != nil {
		return nil, nil, err
	}

	simulator := sim.New(s.params.K, s.params.TimeStep, s.params.Frame, s.logger, rng)
	result, err := simulator.Run(schedule, s.lpCores, s.hpCore)
	if err != nil {
		return schedule, nil, err
	}

	return schedule, result, nil
}

// TotalEnergyConsumption sums every core's energy consumption, grounded on
// the original System.get_energy_consumption.
func (s *System) TotalEnergyConsumption() float64 {
	return sim.TotalEnergy(s.lpCores, s.hpCore)
}

// HPCoreActiveDuration returns the HP core's accumulated active duration,
// grounded on the original System.get_hpcore_active_duration.
func (s *System) HPCoreActiveDuration() float64 {
	return sim.HPActiveDuration(s.hpCore)
}
