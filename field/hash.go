package field

const (
	fnvOffset   = 2166136261
	fnvPrime    = 16777619
	goldenGamma = 0x9e3779b9
)

// Hash mixes integer coordinates and a world seed into a well-distributed
// 32-bit value. Pure integer arithmetic; identical inputs produce identical
// output on every platform. This is the root of the grid reproducibility
// contract, so the mix must never change once worlds are in circulation.
func Hash(x, y int32, seed uint32) uint32 {
	h := uint32(fnvOffset) ^ seed
	h = (h ^ uint32(x)) * fnvPrime
	h = (h ^ (uint32(y) + goldenGamma)) * fnvPrime
	h ^= h >> 15
	h *= fnvPrime
	return h
}

// Rand is a deterministic 32-bit xorshift stream seeded from a hash value.
// Used only for build-time field generation, never for physics.
type Rand struct {
	state uint32
}

// NewRand creates a generator from the given state. A zero state would lock
// xorshift at zero forever, so it is remapped to a fixed constant.
func NewRand(state uint32) *Rand {
	if state == 0 {
		state = 0x6d2b79f5
	}
	return &Rand{state: state}
}

// Float64 returns the next value in [0,1).
func (r *Rand) Float64() float64 {
	s := r.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	r.state = s
	return float64(s) / (1 << 32)
}
