package vehicle

import (
	"math"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/field"
)

// Params holds the physics and vitals coefficients for one session. Built
// once from config at session start; Step itself never reads globals.
type Params struct {
	BaseMaxSpeed float64
	Accel        float64
	TurnRate     float64 // degrees per second
	SpeedCap     float64 // absolute ceiling on max speed
	HoursPerSec  float64

	EnergySpeedGain  float64
	NoveltySpeedGain float64

	ArrivalThreshold float64
	ThrottleFloor    float64
	ArrivalThrottle  float64

	BoostMultiplier float64
	BoostMinFuel    float64
	BoostFuelRate   float64
	BoostHeatRate   float64

	HeatFromEntropy float64
	HeatFromSpeed   float64
	HeatCooling     float64

	ShieldRegen      float64
	ShieldHeatDrain  float64
	ShieldBoostDrain float64

	HullHeatThreshold float64
	HullShieldFloor   float64
	HullDamageRate    float64
	HullRegenCohesion float64
	HullRegenHeatCeil float64
	HullRegenRate     float64

	FuelIdleRate     float64
	FuelThrottleRate float64

	MaxX, MaxY float64 // world extents, cols-1 and rows-1
}

// ParamsFromConfig assembles Params from the loaded configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		BaseMaxSpeed: cfg.Physics.BaseMaxSpeed,
		Accel:        cfg.Physics.Accel,
		TurnRate:     cfg.Physics.MaxTurnRate,
		SpeedCap:     cfg.Physics.BaseMaxSpeed * cfg.Physics.SpeedCapFactor,
		HoursPerSec:  cfg.Physics.HoursPerSecond,

		EnergySpeedGain:  cfg.Physics.EnergySpeedGain,
		NoveltySpeedGain: cfg.Physics.NoveltySpeedGain,

		ArrivalThreshold: cfg.Autopilot.ArrivalThreshold,
		ThrottleFloor:    cfg.Autopilot.ThrottleFloor,
		ArrivalThrottle:  cfg.Autopilot.ArrivalThrottle,

		BoostMultiplier: cfg.Boost.Multiplier,
		BoostMinFuel:    cfg.Boost.MinFuel,
		BoostFuelRate:   cfg.Boost.FuelRate,
		BoostHeatRate:   cfg.Boost.HeatRate,

		HeatFromEntropy: cfg.Vitals.HeatFromEntropy,
		HeatFromSpeed:   cfg.Vitals.HeatFromSpeed,
		HeatCooling:     cfg.Vitals.HeatCooling,

		ShieldRegen:      cfg.Vitals.ShieldRegen,
		ShieldHeatDrain:  cfg.Vitals.ShieldHeatDrain,
		ShieldBoostDrain: cfg.Vitals.ShieldBoostDrain,

		HullHeatThreshold: cfg.Vitals.HullHeatThreshold,
		HullShieldFloor:   cfg.Vitals.HullShieldFloor,
		HullDamageRate:    cfg.Vitals.HullDamageRate,
		HullRegenCohesion: cfg.Vitals.HullRegenCohesion,
		HullRegenHeatCeil: cfg.Vitals.HullRegenHeatCeil,
		HullRegenRate:     cfg.Vitals.HullRegenRate,

		FuelIdleRate:     cfg.Vitals.FuelIdleRate,
		FuelThrottleRate: cfg.Vitals.FuelThrottleRate,

		MaxX: cfg.Derived.MaxX,
		MaxY: cfg.Derived.MaxY,
	}
}

// Result reports the state transitions a step produced. Arrival and boost
// exhaustion are ordinary transitions for the host to surface, not errors.
type Result struct {
	Arrived     bool // autopilot reached its waypoint and disengaged
	BoostEnded  bool // boost was force-cancelled by fuel exhaustion
	BoostActive bool // boost was burning during this step
}

// wrapDeg wraps an angle to [0,360).
func wrapDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// headingDiff returns the signed shortest rotation from `from` to `to`,
// in [-180,180].
func headingDiff(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	}
	if d < -180 {
		d += 360
	}
	return d
}

// Step advances the vehicle by dt seconds against the local field values.
// The fixed update order (heading, speed, integration, heat, shield, hull,
// fuel, age) matches the closed-loop model: each vital reads the values the
// earlier stages just produced.
func (v *Vehicle) Step(dt float64, local field.Vector, p Params) Result {
	var res Result
	if dt <= 0 {
		return res
	}

	// Autopilot with no waypoint is invalid; correct it before anything
	// else reads the mode.
	if v.Autopilot && !v.HasWaypoint {
		v.Autopilot = false
	}

	// Boost state for the whole step is sampled here; fuel exhaustion
	// below cancels it within this same step.
	res.BoostActive = v.Boost && v.Fuel > 0

	// 1. Heading control
	if v.Autopilot && v.HasWaypoint {
		dx := v.WaypointX - v.X
		dy := v.WaypointY - v.Y
		dist := math.Hypot(dx, dy)

		if dist < p.ArrivalThreshold {
			v.Autopilot = false
			v.HasWaypoint = false
			if v.Throttle > p.ArrivalThrottle {
				v.Throttle = p.ArrivalThrottle
			}
			res.Arrived = true
		} else {
			bearing := wrapDeg(math.Atan2(dy, dx) * 180 / math.Pi)
			diff := headingDiff(v.Heading, bearing)
			maxTurn := p.TurnRate * dt
			if diff > maxTurn {
				diff = maxTurn
			} else if diff < -maxTurn {
				diff = -maxTurn
			}
			v.Heading = wrapDeg(v.Heading + diff)

			if v.Throttle < p.ThrottleFloor {
				v.Throttle = p.ThrottleFloor
			}
		}
	}

	// 2. Speed
	envMod := 1 +
		p.EnergySpeedGain*(local[field.Energy]-0.5) +
		p.NoveltySpeedGain*(local[field.Novelty]-0.5)
	boostMult := 1.0
	if res.BoostActive {
		boostMult = p.BoostMultiplier
	}
	maxSpeed := p.BaseMaxSpeed * envMod * boostMult
	if maxSpeed > p.SpeedCap {
		maxSpeed = p.SpeedCap
	}
	if maxSpeed < 0 {
		maxSpeed = 0
	}

	target := v.Throttle * maxSpeed
	maxDelta := p.Accel * dt
	dv := target - v.Speed
	if dv > maxDelta {
		dv = maxDelta
	} else if dv < -maxDelta {
		dv = -maxDelta
	}
	v.Speed += dv
	if v.Speed < 0 {
		v.Speed = 0
	}

	// 3. Integration
	rad := v.Heading * math.Pi / 180
	v.X = clampRange(v.X+math.Cos(rad)*v.Speed*dt, 0, p.MaxX)
	v.Y = clampRange(v.Y+math.Sin(rad)*v.Speed*dt, 0, p.MaxY)

	// 4. Heat
	heatIn := p.HeatFromEntropy * local[field.Entropy]
	if p.BaseMaxSpeed > 0 {
		heatIn += p.HeatFromSpeed * (v.Speed / p.BaseMaxSpeed)
	}
	if res.BoostActive {
		heatIn += p.BoostHeatRate
	}
	v.Heat = field.Clamp01(v.Heat + (heatIn-p.HeatCooling)*dt)

	// 5. Shield
	if local[field.Cohesion] > 0.5 {
		v.Shield += p.ShieldRegen * (local[field.Cohesion] - 0.5) * 2 * dt
	}
	v.Shield -= p.ShieldHeatDrain * v.Heat * dt
	if res.BoostActive {
		v.Shield -= p.ShieldBoostDrain * dt
	}
	v.Shield = field.Clamp01(v.Shield)

	// 6. Hull: damaged only by the compound failure of high heat and a
	// collapsed shield; regenerates only in calm, cohesive space.
	if v.Heat > p.HullHeatThreshold && v.Shield < p.HullShieldFloor {
		v.Hull -= p.HullDamageRate * dt
	} else if local[field.Cohesion] > p.HullRegenCohesion && v.Heat < p.HullRegenHeatCeil {
		v.Hull += p.HullRegenRate * dt
	}
	v.Hull = field.Clamp01(v.Hull)

	// 7. Fuel
	burn := p.FuelIdleRate + p.FuelThrottleRate*v.Throttle
	if res.BoostActive {
		burn += p.BoostFuelRate
	}
	v.Fuel -= burn * dt
	if v.Fuel <= 0 {
		v.Fuel = 0
		if v.Boost {
			v.Boost = false
			res.BoostEnded = true
		}
	}

	// 8. Age
	v.AgeHours += dt * p.HoursPerSec

	return res
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
