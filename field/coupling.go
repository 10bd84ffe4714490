package field

// couplingBias scales each off-diagonal entry of the coupling matrix.
// Row = affected field, column = source of the disturbance. Entropy and
// novelty are the most receptive, cohesion the most inert.
var couplingBias = [NumFields][NumFields]float64{
	Energy:   {0, 1.10, 0.85, 0.95},
	Entropy:  {1.05, 0, 0.90, 1.15},
	Cohesion: {0.80, 0.95, 0, 1.00},
	Novelty:  {1.20, 1.05, 0.90, 0},
}

// Coupling is the fixed 4x4 matrix that converts a perturbation in one
// field into effects across all four. Parameterized by a single coupling
// strength k: at k=0 the matrix is purely diagonal and a disturbance stays
// in its own field.
type Coupling struct {
	k float64
	m [NumFields][NumFields]float64
}

// MaxCouplingK is the upper bound for the coupling strength.
const MaxCouplingK = 0.6

// NewCoupling builds the matrix for strength k, clamped to [0, MaxCouplingK].
// Diagonal dominance 0.7 + 0.25*(1-k) keeps a unit disturbance from
// amplifying as it spreads.
func NewCoupling(k float64) *Coupling {
	if k < 0 {
		k = 0
	}
	if k > MaxCouplingK {
		k = MaxCouplingK
	}

	c := &Coupling{}
	diag := 0.7 + 0.25*(1-k)
	off := k / 3
	for i := 0; i < NumFields; i++ {
		for j := 0; j < NumFields; j++ {
			if i == j {
				c.m[i][j] = diag
			} else {
				c.m[i][j] = off * couplingBias[i][j]
			}
		}
	}
	c.k = k
	return c
}

// K returns the strength the matrix was built with.
func (c *Coupling) K() float64 {
	return c.k
}

// Apply returns m x delta: the cross-field effect of a unit disturbance.
func (c *Coupling) Apply(delta Vector) Vector {
	var out Vector
	for i := 0; i < NumFields; i++ {
		var sum float64
		for j := 0; j < NumFields; j++ {
			sum += c.m[i][j] * delta[j]
		}
		out[i] = sum
	}
	return out
}
