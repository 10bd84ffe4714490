// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Autopilot AutopilotConfig `yaml:"autopilot"`
	Boost     BoostConfig     `yaml:"boost"`
	Vitals    VitalsConfig    `yaml:"vitals"`
	Field     FieldConfig     `yaml:"field"`
	Weights   WeightsConfig   `yaml:"weights"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds grid dimensions and the generation seed.
type WorldConfig struct {
	Cols int    `yaml:"cols"`
	Rows int    `yaml:"rows"`
	Seed uint32 `yaml:"seed"`
}

// PhysicsConfig holds vehicle motion parameters.
type PhysicsConfig struct {
	DT               float64 `yaml:"dt"`               // Seconds per tick
	BaseMaxSpeed     float64 `yaml:"base_max_speed"`   // Cells per second
	Accel            float64 `yaml:"accel"`            // Cells per second^2
	MaxTurnRate      float64 `yaml:"max_turn_rate"`    // Degrees per second
	SpeedCapFactor   float64 `yaml:"speed_cap_factor"` // Hard cap = base_max_speed * this
	HoursPerSecond   float64 `yaml:"hours_per_second"` // Virtual hours aged per simulated second
	EnergySpeedGain  float64 `yaml:"energy_speed_gain"`
	NoveltySpeedGain float64 `yaml:"novelty_speed_gain"`
}

// AutopilotConfig holds waypoint-seeking parameters.
type AutopilotConfig struct {
	ArrivalThreshold float64 `yaml:"arrival_threshold"` // Cells
	ThrottleFloor    float64 `yaml:"throttle_floor"`    // Minimum throttle while seeking
	ArrivalThrottle  float64 `yaml:"arrival_throttle"`  // Throttle cap applied on arrival
}

// BoostConfig holds boost behavior parameters.
type BoostConfig struct {
	Multiplier float64 `yaml:"multiplier"`
	MinFuel    float64 `yaml:"min_fuel"`  // Boost will not engage below this
	FuelRate   float64 `yaml:"fuel_rate"` // Extra fuel drain per second while boosting
	HeatRate   float64 `yaml:"heat_rate"` // Extra heat per second while boosting
}

// VitalsConfig holds hull/shield/heat/fuel rate parameters.
// All rates are per simulated second.
type VitalsConfig struct {
	HeatFromEntropy   float64 `yaml:"heat_from_entropy"`
	HeatFromSpeed     float64 `yaml:"heat_from_speed"`
	HeatCooling       float64 `yaml:"heat_cooling"`
	ShieldRegen       float64 `yaml:"shield_regen"`
	ShieldHeatDrain   float64 `yaml:"shield_heat_drain"`
	ShieldBoostDrain  float64 `yaml:"shield_boost_drain"`
	HullHeatThreshold float64 `yaml:"hull_heat_threshold"`
	HullShieldFloor   float64 `yaml:"hull_shield_floor"`
	HullDamageRate    float64 `yaml:"hull_damage_rate"`
	HullRegenCohesion float64 `yaml:"hull_regen_cohesion"`
	HullRegenHeatCeil float64 `yaml:"hull_regen_heat_ceil"`
	HullRegenRate     float64 `yaml:"hull_regen_rate"`
	FuelIdleRate      float64 `yaml:"fuel_idle_rate"`
	FuelThrottleRate  float64 `yaml:"fuel_throttle_rate"`
}

// FieldConfig holds field relaxation and perturbation parameters.
type FieldConfig struct {
	RelaxRate  float64    `yaml:"relax_rate"` // Per-tick pull of current toward base
	CouplingK  float64    `yaml:"coupling_k"` // Cross-field coupling strength [0, 0.6]
	ScanRadius float64    `yaml:"scan_radius"`
	ScanDelta  [4]float64 `yaml:"scan_delta"`
	WakeRadius float64    `yaml:"wake_radius"`
	WakeDelta  [4]float64 `yaml:"wake_delta"`
}

// WeightsConfig holds the initial resonance blend weights.
type WeightsConfig struct {
	Solar  float64 `yaml:"solar"`
	Aqua   float64 `yaml:"aqua"`
	Aether float64 `yaml:"aether"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MaxX float64 // Cols - 1 as float64
	MaxY float64 // Rows - 1 as float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
// Grid dimension validation happens at session construction, not here;
// out-of-range tuning knobs are saturated rather than rejected.
func (c *Config) computeDerived() {
	if c.Field.CouplingK < 0 {
		c.Field.CouplingK = 0
	}
	if c.Field.CouplingK > 0.6 {
		c.Field.CouplingK = 0.6
	}
	c.Weights.Solar = saturate(c.Weights.Solar)
	c.Weights.Aqua = saturate(c.Weights.Aqua)
	c.Weights.Aether = saturate(c.Weights.Aether)

	c.Derived.MaxX = float64(c.World.Cols - 1)
	c.Derived.MaxY = float64(c.World.Rows - 1)
}

func saturate(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
