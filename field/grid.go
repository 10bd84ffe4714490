package field

import (
	"fmt"
	"math"
)

// Grid holds the immutable base grid and the mutable current grid, both
// flat row-major (index y*cols+x). The base is never written after
// generation; the current grid is what agents perceive and perturb, and it
// relaxes back toward base every tick.
type Grid struct {
	Cols, Rows int

	base []Vector
	cur  []Vector
}

// NewGrid generates a grid for the given dimensions and seed. Invalid
// dimensions are the one fatal construction error: no cell indexing is
// possible without them.
func NewGrid(cols, rows int, seed uint32) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", cols, rows)
	}
	base := Generate(cols, rows, seed)
	cur := make([]Vector, len(base))
	copy(cur, base)
	return &Grid{Cols: cols, Rows: rows, base: base, cur: cur}, nil
}

// clampIndex limits x to [0, n-1].
func clampIndex(x, n int) int {
	if x < 0 {
		return 0
	}
	if x >= n {
		return n - 1
	}
	return x
}

// Cell returns the current value at (x, y). Out-of-range coordinates are
// clamped to the nearest edge cell.
func (g *Grid) Cell(x, y int) Vector {
	x = clampIndex(x, g.Cols)
	y = clampIndex(y, g.Rows)
	return g.cur[y*g.Cols+x]
}

// Base returns the immutable generated value at (x, y).
func (g *Grid) Base(x, y int) Vector {
	x = clampIndex(x, g.Cols)
	y = clampIndex(y, g.Rows)
	return g.base[y*g.Cols+x]
}

// SetCell overwrites the current value at (x, y), saturating every field.
// Used by snapshot restore; the base grid is regenerated from the seed
// instead and stays untouched.
func (g *Grid) SetCell(x, y int, v Vector) {
	x = clampIndex(x, g.Cols)
	y = clampIndex(y, g.Rows)
	v.clamp01()
	g.cur[y*g.Cols+x] = v
}

// RelaxStep moves every current cell a fraction rate of the way back toward
// its base value, per field. Exponential decay of disturbance: without
// continued forcing the grid converges to its reproducible baseline.
func (g *Grid) RelaxStep(rate float64) {
	if rate <= 0 {
		return
	}
	if rate > 1 {
		rate = 1
	}
	for i := range g.cur {
		for f := 0; f < NumFields; f++ {
			g.cur[i][f] += (g.base[i][f] - g.cur[i][f]) * rate
		}
	}
}

// perturbEps avoids division by zero for zero-radius perturbations.
const perturbEps = 1e-6

// Perturb adds coupling(delta) to every cell within Euclidean distance
// radius of (cx, cy), scaled by a linear falloff that is 1 at the center
// and 0 at the boundary. Results saturate to [0,1].
func (g *Grid) Perturb(cx, cy, radius float64, delta Vector, c *Coupling) {
	if radius < 0 {
		return
	}
	effect := c.Apply(delta)

	x0 := clampIndex(int(math.Floor(cx-radius)), g.Cols)
	x1 := clampIndex(int(math.Ceil(cx+radius)), g.Cols)
	y0 := clampIndex(int(math.Floor(cy-radius)), g.Rows)
	y1 := clampIndex(int(math.Ceil(cy+radius)), g.Rows)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist > radius {
				continue
			}
			falloff := 1 - dist/(radius+perturbEps)
			if falloff <= 0 {
				continue
			}
			cell := &g.cur[y*g.Cols+x]
			for f := 0; f < NumFields; f++ {
				cell[f] = Clamp01(cell[f] + effect[f]*falloff)
			}
		}
	}
}

// Reset snaps the current grid back to the generated base.
func (g *Grid) Reset() {
	copy(g.cur, g.base)
}

// Divergence returns the mean absolute per-field difference between the
// current and base grids. Zero means fully relaxed.
func (g *Grid) Divergence() float64 {
	var sum float64
	for i := range g.cur {
		for f := 0; f < NumFields; f++ {
			sum += math.Abs(g.cur[i][f] - g.base[i][f])
		}
	}
	return sum / float64(len(g.cur)*NumFields)
}

// Current returns the current grid slice, row major. Callers must treat it
// as read-only; it is exposed for snapshot export and telemetry.
func (g *Grid) Current() []Vector {
	return g.cur
}
