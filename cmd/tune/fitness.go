package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/session"
)

// FitnessEvaluator runs headless waypoint courses and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int64
	seeds      []uint32
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []uint32, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single course run.
type runResult struct {
	courseTicks int64 // ticks to visit every waypoint (maxTicks if timed out)
	completed   bool
	hullEnd     float64
	fuelEnd     float64
	heatPeak    float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is course time scaled up by vitals damage: fast but destructive
// parameter sets lose to slightly slower ones that keep the craft healthy.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint32) {
			defer wg.Done()
			results[idx] = fe.runCourse(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += fe.computeFitness(r)
		totalQuality += fe.computeQuality(r)
	}

	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runCourse executes one headless run: autopilot around the inset corners
// of the world, boosting on the long legs, until the course is complete or
// time runs out.
func (fe *FitnessEvaluator) runCourse(x []float64, seed uint32) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	cfg.World.Seed = seed

	s, err := session.New(cfg)
	if err != nil {
		// Unreachable with a valid base config; score it as a timeout.
		return runResult{courseTicks: fe.maxTicks}
	}

	maxX := float64(cfg.World.Cols - 1)
	maxY := float64(cfg.World.Rows - 1)
	course := [][2]float64{
		{2, 2},
		{maxX - 2, maxY - 2},
		{maxX - 2, 2},
		{2, maxY - 2},
		{maxX / 2, maxY / 2},
	}

	res := runResult{courseTicks: fe.maxTicks}
	leg := 0
	s.SetThrottle(1)
	s.SetWaypoint(course[leg][0], course[leg][1])
	s.ToggleAutopilot()
	s.SetBoost(true)

	for tick := int64(0); tick < fe.maxTicks; tick++ {
		sig := s.Advance(cfg.Physics.DT)

		v := s.Vehicle()
		if v.Heat > res.heatPeak {
			res.heatPeak = v.Heat
		}

		if sig.Arrived {
			leg++
			if leg >= len(course) {
				res.courseTicks = s.Tick()
				res.completed = true
				break
			}
			s.SetThrottle(1)
			s.SetWaypoint(course[leg][0], course[leg][1])
			s.ToggleAutopilot()
			s.SetBoost(true)
		}

		// Back off boost when the craft is cooking.
		if v.Heat > 0.8 {
			s.SetBoost(false)
		} else if !v.Boost && v.Heat < 0.5 && v.Fuel > 0.3 {
			s.SetBoost(true)
		}
	}

	v := s.Vehicle()
	res.hullEnd = v.Hull
	res.fuelEnd = v.Fuel
	return res
}

// copyConfig creates a fresh config carrying the base values for every
// section the tuner can touch.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg, _ := config.Load("")

	cfg.World = fe.baseConfig.World
	cfg.Physics = fe.baseConfig.Physics
	cfg.Autopilot = fe.baseConfig.Autopilot
	cfg.Boost = fe.baseConfig.Boost
	cfg.Vitals = fe.baseConfig.Vitals
	cfg.Field = fe.baseConfig.Field
	cfg.Weights = fe.baseConfig.Weights
	cfg.Telemetry = fe.baseConfig.Telemetry

	return cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Course time dominates; hull loss inflates it by up to 2x so that
// parameter sets finishing at similar speed rank by craft health.
func (fe *FitnessEvaluator) computeFitness(r runResult) float64 {
	ticks := float64(r.courseTicks)
	if !r.completed {
		// Timeouts rank strictly behind every completion.
		ticks = float64(fe.maxTicks) * 2
	}
	return ticks * (1.0 + 2.0*(1.0-r.hullEnd))
}

// Quality component weights.
const (
	qualityWeightHull = 0.5
	qualityWeightHeat = 0.3
	qualityWeightFuel = 0.2
)

// computeQuality summarizes craft health over a run in [0, 1], for
// progress display only.
func (fe *FitnessEvaluator) computeQuality(r runResult) float64 {
	heatScore := 1.0 - r.heatPeak
	q := qualityWeightHull*r.hullEnd +
		qualityWeightHeat*heatScore +
		qualityWeightFuel*r.fuelEnd
	return math.Max(0, math.Min(1, q))
}
