// Package main provides CMA-ES tuning for drift control parameters.
package main

import (
	"github.com/pthm-cable/drift/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters. World
// geometry, dt and the field generation knobs stay locked: tuning targets
// the control loop and the vitals rates, not the world itself.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Motion
			{Name: "accel", Path: "physics.accel", Min: 0.5, Max: 5.0, Default: 2.0},
			{Name: "max_turn_rate", Path: "physics.max_turn_rate", Min: 30, Max: 240, Default: 120},
			// Autopilot
			{Name: "arrival_threshold", Path: "autopilot.arrival_threshold", Min: 0.1, Max: 1.0, Default: 0.35},
			{Name: "throttle_floor", Path: "autopilot.throttle_floor", Min: 0.1, Max: 0.8, Default: 0.35},
			{Name: "arrival_throttle", Path: "autopilot.arrival_throttle", Min: 0.0, Max: 0.5, Default: 0.15},
			// Boost
			{Name: "boost_multiplier", Path: "boost.multiplier", Min: 1.2, Max: 2.5, Default: 1.8},
			{Name: "boost_fuel_rate", Path: "boost.fuel_rate", Min: 0.01, Max: 0.10, Default: 0.04},
			{Name: "boost_heat_rate", Path: "boost.heat_rate", Min: 0.02, Max: 0.25, Default: 0.10},
			// Vitals
			{Name: "heat_cooling", Path: "vitals.heat_cooling", Min: 0.005, Max: 0.05, Default: 0.012},
			{Name: "shield_regen", Path: "vitals.shield_regen", Min: 0.002, Max: 0.05, Default: 0.010},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	i := 0
	cfg.Physics.Accel = clamped[i]; i++
	cfg.Physics.MaxTurnRate = clamped[i]; i++

	cfg.Autopilot.ArrivalThreshold = clamped[i]; i++
	cfg.Autopilot.ThrottleFloor = clamped[i]; i++
	cfg.Autopilot.ArrivalThrottle = clamped[i]; i++

	cfg.Boost.Multiplier = clamped[i]; i++
	cfg.Boost.FuelRate = clamped[i]; i++
	cfg.Boost.HeatRate = clamped[i]; i++

	cfg.Vitals.HeatCooling = clamped[i]; i++
	cfg.Vitals.ShieldRegen = clamped[i]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Physics.Accel,
		cfg.Physics.MaxTurnRate,
		cfg.Autopilot.ArrivalThreshold,
		cfg.Autopilot.ThrottleFloor,
		cfg.Autopilot.ArrivalThrottle,
		cfg.Boost.Multiplier,
		cfg.Boost.FuelRate,
		cfg.Boost.HeatRate,
		cfg.Vitals.HeatCooling,
		cfg.Vitals.ShieldRegen,
	}
}
