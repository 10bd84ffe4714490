package session

import (
	"math"

	"github.com/pthm-cable/drift/field"
)

// Signals are the side effects of one advance, surfaced for the host.
// These are ordinary state transitions, not errors.
type Signals struct {
	Arrived    bool // autopilot reached its waypoint and dropped to manual
	BoostEnded bool // boost was force-cancelled by fuel exhaustion
	Boosting   bool // boost burned during this tick (a wake was laid down)
}

// Advance moves the whole simulation forward by one step of dt seconds.
// The order is fixed: the vehicle must see the grid state from before this
// tick's relaxation, and the wake perturbation must use the vehicle's
// post-move position. While paused, Advance is a no-op (no catch-up on
// resume).
func (s *Session) Advance(dt float64) Signals {
	if s.paused || dt <= 0 {
		return Signals{}
	}

	// 1. Vehicle physics against the cell under the rounded position.
	cx := int(math.Round(s.craft.X))
	cy := int(math.Round(s.craft.Y))
	local := s.grid.Cell(cx, cy)
	res := s.craft.Step(dt, local, s.params)

	// 2. Passive relaxation toward base.
	s.grid.RelaxStep(s.cfg.Field.RelaxRate)

	// 3. Boost wake: sustained high-intensity travel disturbs the field
	// around wherever the vehicle ended up.
	if res.BoostActive {
		s.grid.Perturb(s.craft.X, s.craft.Y,
			s.cfg.Field.WakeRadius,
			field.Vector(s.cfg.Field.WakeDelta),
			s.coupling)
	}

	s.tick++
	return Signals{
		Arrived:    res.Arrived,
		BoostEnded: res.BoostEnded,
		Boosting:   res.BoostActive,
	}
}
