package field

// Weights are the externally controlled resonance blend coefficients. Each
// is independently adjustable in [0,1]; they are not constrained to sum
// to 1. The entropy weight is always derived, never stored.
type Weights struct {
	Solar  float64 `json:"solar"`
	Aqua   float64 `json:"aqua"`
	Aether float64 `json:"aether"`
}

// Clamped returns a copy with every coefficient saturated to [0,1].
func (w Weights) Clamped() Weights {
	return Weights{
		Solar:  Clamp01(w.Solar),
		Aqua:   Clamp01(w.Aqua),
		Aether: Clamp01(w.Aether),
	}
}

// EntropyWeight derives the implicit fourth weight: whatever headroom the
// three explicit weights leave, floored at zero.
func (w Weights) EntropyWeight() float64 {
	ew := 1 - (w.Solar + w.Aqua + w.Aether)
	if ew < 0 {
		return 0
	}
	return ew
}

// Resonance blends a cell's four fields into a single scalar in [0,1].
// Pure; recomputed on demand so it can never be stale against the weights.
func Resonance(cell Vector, w Weights) float64 {
	v := w.Solar*cell[Energy] +
		w.EntropyWeight()*cell[Entropy] +
		w.Aqua*cell[Cohesion] +
		w.Aether*cell[Novelty]
	return Clamp01(v)
}
