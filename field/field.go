// Package field implements the deterministic world grid: seeded generation,
// perturbation with cross-field coupling, relaxation toward the generated
// base, and the resonance blend read by hosts.
package field

// Field indices into a Vector. The dimension is a permanent domain
// constant, so vectors are fixed-size arrays rather than slices.
const (
	Energy = iota
	Entropy
	Cohesion
	Novelty
	NumFields
)

// Vector is a value in field space, ordered energy, entropy, cohesion, novelty.
type Vector [NumFields]float64

// Clamp01 returns v saturated to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clamp01 saturates every component of v in place.
func (v *Vector) clamp01() {
	for i := range v {
		v[i] = Clamp01(v[i])
	}
}
