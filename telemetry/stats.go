package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated statistics for one time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Events during window
	Arrivals   int `csv:"arrivals"`
	Scans      int `csv:"scans"`
	BoostTicks int `csv:"boost_ticks"`
	BoostStops int `csv:"boost_stops"` // boosts force-cancelled by fuel exhaustion

	// Speed distribution (sampled every tick)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Heat distribution (sampled every tick)
	HeatMean float64 `csv:"heat_mean"`
	HeatP10  float64 `csv:"heat_p10"`
	HeatP50  float64 `csv:"heat_p50"`
	HeatP90  float64 `csv:"heat_p90"`

	// Vitals at window end
	Hull   float64 `csv:"hull"`
	Shield float64 `csv:"shield"`
	Fuel   float64 `csv:"fuel"`

	// Field state
	Resonance      float64 `csv:"resonance"`       // At vehicle position, window end
	DivergenceMean float64 `csv:"divergence_mean"` // Mean over window
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SummarizeSamples calculates mean and percentiles from sampled values.
func SummarizeSamples(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("arrivals", s.Arrivals),
		slog.Int("scans", s.Scans),
		slog.Int("boost_ticks", s.BoostTicks),
		slog.Int("boost_stops", s.BoostStops),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("heat_mean", s.HeatMean),
		slog.Float64("heat_p10", s.HeatP10),
		slog.Float64("heat_p50", s.HeatP50),
		slog.Float64("heat_p90", s.HeatP90),
		slog.Float64("hull", s.Hull),
		slog.Float64("shield", s.Shield),
		slog.Float64("fuel", s.Fuel),
		slog.Float64("resonance", s.Resonance),
		slog.Float64("divergence_mean", s.DivergenceMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"arrivals", s.Arrivals,
		"scans", s.Scans,
		"boost_ticks", s.BoostTicks,
		"boost_stops", s.BoostStops,
		"speed_mean", s.SpeedMean,
		"speed_p90", s.SpeedP90,
		"heat_mean", s.HeatMean,
		"heat_p90", s.HeatP90,
		"hull", s.Hull,
		"shield", s.Shield,
		"fuel", s.Fuel,
		"resonance", s.Resonance,
		"divergence_mean", s.DivergenceMean,
	)
}
