// Package vehicle implements the single controllable agent: continuous
// position and heading over the grid, bounded vitals, and the closed-loop
// waypoint autopilot.
package vehicle

// Vehicle is the mutable agent state. It is created once per session,
// mutated only by Step and by session commands, and reset rather than
// destroyed.
type Vehicle struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Heading  float64 `json:"heading"` // degrees, [0,360)
	Throttle float64 `json:"throttle"`
	Speed    float64 `json:"speed"`

	Hull   float64 `json:"hull"`
	Shield float64 `json:"shield"`
	Heat   float64 `json:"heat"`
	Fuel   float64 `json:"fuel"`

	Autopilot   bool    `json:"autopilot"`
	HasWaypoint bool    `json:"has_waypoint"`
	WaypointX   float64 `json:"waypoint_x"`
	WaypointY   float64 `json:"waypoint_y"`

	Boost    bool    `json:"boost"`
	AgeHours float64 `json:"age_hours"`
}

// New creates a vehicle at the given position with default vitals.
func New(x, y float64) *Vehicle {
	return &Vehicle{
		X:      x,
		Y:      y,
		Hull:   1.0,
		Shield: 0.9,
		Heat:   0.1,
		Fuel:   1.0,
	}
}

// AdjustHeading rotates the heading by delta degrees, wrapping to [0,360).
func (v *Vehicle) AdjustHeading(delta float64) {
	v.Heading = wrapDeg(v.Heading + delta)
}

// SetWaypoint installs a waypoint target. Engaging the autopilot is a
// separate step; a waypoint alone changes nothing until then.
func (v *Vehicle) SetWaypoint(x, y float64) {
	v.HasWaypoint = true
	v.WaypointX = x
	v.WaypointY = y
}

// ClearWaypoint removes the waypoint and drops out of autopilot, since
// autopilot without a target is not a valid combination.
func (v *Vehicle) ClearWaypoint() {
	v.HasWaypoint = false
	v.WaypointX = 0
	v.WaypointY = 0
	v.Autopilot = false
}

// ToggleAutopilot flips between manual and autopilot. Engaging requires a
// waypoint; without one the vehicle stays manual. Returns the resulting
// autopilot state.
func (v *Vehicle) ToggleAutopilot() bool {
	if v.Autopilot {
		v.Autopilot = false
	} else if v.HasWaypoint {
		v.Autopilot = true
	}
	return v.Autopilot
}

// SetBoost requests boost on or off. Activation with fuel at or below
// minFuel never engages; deactivation is always honored.
func (v *Vehicle) SetBoost(on bool, minFuel float64) bool {
	if on && v.Fuel <= minFuel {
		v.Boost = false
		return false
	}
	v.Boost = on
	return v.Boost
}
