package session

import "github.com/pthm-cable/drift/field"

// Commands are synchronous, run-to-completion mutations. Out-of-range
// numeric inputs saturate to their documented ranges instead of being
// rejected.

// SetThrottle sets the throttle, clamped to [0,1].
func (s *Session) SetThrottle(v float64) {
	s.craft.Throttle = field.Clamp01(v)
}

// AdjustHeading rotates the heading by delta degrees.
func (s *Session) AdjustHeading(delta float64) {
	s.craft.AdjustHeading(delta)
}

// SetWaypoint installs a waypoint, clamped into the grid extents.
func (s *Session) SetWaypoint(x, y float64) {
	if x < 0 {
		x = 0
	} else if x > s.params.MaxX {
		x = s.params.MaxX
	}
	if y < 0 {
		y = 0
	} else if y > s.params.MaxY {
		y = s.params.MaxY
	}
	s.craft.SetWaypoint(x, y)
}

// ClearWaypoint removes the waypoint and disengages the autopilot.
func (s *Session) ClearWaypoint() {
	s.craft.ClearWaypoint()
}

// ToggleAutopilot flips the control mode. Engaging requires a waypoint.
// Returns the resulting autopilot state.
func (s *Session) ToggleAutopilot() bool {
	return s.craft.ToggleAutopilot()
}

// SetBoost requests boost. Activation requires fuel above the configured
// minimum; returns whether boost is now active.
func (s *Session) SetBoost(on bool) bool {
	return s.craft.SetBoost(on, s.params.BoostMinFuel)
}

// TriggerScan fires a one-shot scan pulse: an immediate perturbation at
// the vehicle's position with the scan delta vector, larger and more
// skewed than the passive travel wake.
func (s *Session) TriggerScan() {
	s.grid.Perturb(s.craft.X, s.craft.Y,
		s.cfg.Field.ScanRadius,
		field.Vector(s.cfg.Field.ScanDelta),
		s.coupling)
}

// SetWeights replaces the blend weights, each clamped to [0,1].
func (s *Session) SetWeights(w field.Weights) {
	s.weights = w.Clamped()
}

// SetCoupling rebuilds the coupling matrix for strength k, clamped to its
// valid range.
func (s *Session) SetCoupling(k float64) {
	s.coupling = field.NewCoupling(k)
}

// Pause stops Advance from mutating state until Resume. Missed ticks are
// not replayed.
func (s *Session) Pause() {
	s.paused = true
}

// Resume re-enables Advance.
func (s *Session) Resume() {
	s.paused = false
}
