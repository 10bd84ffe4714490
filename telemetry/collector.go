package telemetry

// Collector accumulates events and per-tick samples within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	windowStartTick int64

	// Event counters for the current window
	arrivals   int
	scans      int
	boostTicks int
	boostStops int

	// Per-tick samples for the current window
	speedSamples  []float64
	heatSamples   []float64
	divergenceSum float64
	sampleCount   int
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: seconds per tick.
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		speedSamples:        make([]float64, 0, ticksPerWindow),
		heatSamples:         make([]float64, 0, ticksPerWindow),
	}
}

// RecordArrival records an autopilot arrival.
func (c *Collector) RecordArrival() {
	c.arrivals++
}

// RecordScan records a scan pulse.
func (c *Collector) RecordScan() {
	c.scans++
}

// RecordBoostStop records a boost force-cancelled by fuel exhaustion.
func (c *Collector) RecordBoostStop() {
	c.boostStops++
}

// Sample records the per-tick observations.
func (c *Collector) Sample(speed, heat, divergence float64, boosting bool) {
	c.speedSamples = append(c.speedSamples, speed)
	c.heatSamples = append(c.heatSamples, heat)
	c.divergenceSum += divergence
	c.sampleCount++
	if boosting {
		c.boostTicks++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// EndState holds the point-in-time values sampled at window end.
type EndState struct {
	Hull      float64
	Shield    float64
	Fuel      float64
	Resonance float64 // At the vehicle's position
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, end EndState) WindowStats {
	speedMean, speedP10, speedP50, speedP90 := SummarizeSamples(c.speedSamples)
	heatMean, heatP10, heatP50, heatP90 := SummarizeSamples(c.heatSamples)

	var divergenceMean float64
	if c.sampleCount > 0 {
		divergenceMean = c.divergenceSum / float64(c.sampleCount)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Arrivals:   c.arrivals,
		Scans:      c.scans,
		BoostTicks: c.boostTicks,
		BoostStops: c.boostStops,

		SpeedMean: speedMean,
		SpeedP10:  speedP10,
		SpeedP50:  speedP50,
		SpeedP90:  speedP90,

		HeatMean: heatMean,
		HeatP10:  heatP10,
		HeatP50:  heatP50,
		HeatP90:  heatP90,

		Hull:   end.Hull,
		Shield: end.Shield,
		Fuel:   end.Fuel,

		Resonance:      end.Resonance,
		DivergenceMean: divergenceMean,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.arrivals = 0
	c.scans = 0
	c.boostTicks = 0
	c.boostStops = 0
	c.speedSamples = c.speedSamples[:0]
	c.heatSamples = c.heatSamples[:0]
	c.divergenceSum = 0
	c.sampleCount = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
