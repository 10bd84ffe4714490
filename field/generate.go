package field

// drawSpec decorrelates the four raw draws for a cell: each draw hashes the
// coordinates with its own additive offset and seed mask, so the streams are
// independent even though they share one world seed.
type drawSpec struct {
	dx, dy int32
	mask   uint32
}

var drawSpecs = [NumFields]drawSpec{
	Energy:   {0, 0, 0x00000000},
	Entropy:  {131, 57, 0x5f356495},
	Cohesion: {-89, 211, 0x2c1b3c6d},
	Novelty:  {17, -173, 0x8e44ad21},
}

// blend maps the four raw draws to the four output fields. Each row sums to
// 1 and is dominated by its own draw, with secondary contributions so the
// fields are correlated but not degenerate.
var blend = [NumFields]Vector{
	Energy:   {0.70, 0.10, 0.10, 0.10},
	Entropy:  {0.10, 0.70, 0.10, 0.10},
	Cohesion: {0.15, 0.05, 0.70, 0.10},
	Novelty:  {0.05, 0.15, 0.10, 0.70},
}

// GenerateCell produces the base field vector for one cell. Pure function of
// (x, y, seed).
func GenerateCell(x, y int32, seed uint32) Vector {
	var raw Vector
	for i, spec := range drawSpecs {
		r := NewRand(Hash(x+spec.dx, y+spec.dy, seed^spec.mask))
		raw[i] = r.Float64()
	}

	var out Vector
	for i := range out {
		var sum float64
		for j := range raw {
			sum += blend[i][j] * raw[j]
		}
		out[i] = Clamp01(sum)
	}
	return out
}

// Generate produces the base grid for the given dimensions and seed, row
// major. Re-invoking with the same arguments reproduces the grid
// bit-for-bit; the rest of the system relies on this, since perturbed cells
// always relax back toward these values.
func Generate(cols, rows int, seed uint32) []Vector {
	cells := make([]Vector, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cells[y*cols+x] = GenerateCell(int32(x), int32(y), seed)
		}
	}
	return cells
}
