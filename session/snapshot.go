package session

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/pthm-cable/drift/field"
	"github.com/pthm-cable/drift/vehicle"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot is the interchange shape for a session: enough to resume
// bit-for-bit, minus anything explicitly non-deterministic. Optional
// sections are pointers so a partial import can fall back to defaults.
type Snapshot struct {
	Version int       `json:"version"`
	World   WorldMeta `json:"world"`
	Tick    int64     `json:"tick"`

	Vehicle   *vehicle.Vehicle `json:"vehicle,omitempty"`
	Weights   *field.Weights   `json:"weights,omitempty"`
	CouplingK *float64         `json:"coupling_k,omitempty"`

	// Grid holds the full current grid, row major. The base grid is not
	// stored; it regenerates from the seed.
	Grid []field.Vector `json:"grid,omitempty"`
}

// WorldMeta identifies the generated world.
type WorldMeta struct {
	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
	Seed uint32 `json:"seed"`
}

// Export captures the complete session state.
func (s *Session) Export() *Snapshot {
	craft := *s.craft
	weights := s.weights
	k := s.coupling.K()

	grid := make([]field.Vector, len(s.grid.Current()))
	copy(grid, s.grid.Current())

	return &Snapshot{
		Version: SnapshotVersion,
		World: WorldMeta{
			Cols: s.grid.Cols,
			Rows: s.grid.Rows,
			Seed: s.seed,
		},
		Tick:      s.tick,
		Vehicle:   &craft,
		Weights:   &weights,
		CouplingK: &k,
		Grid:      grid,
	}
}

// Restore replaces the session state from a snapshot. Malformed or partial
// input degrades rather than fails: missing sections fall back to defaults,
// numeric fields are clamped into their documented ranges, and every such
// repair is reported in issues. The only hard error is an invalid grid
// dimension, which makes cell indexing impossible.
func (s *Session) Restore(snap *Snapshot) (issues []string, err error) {
	grid, err := field.NewGrid(snap.World.Cols, snap.World.Rows, snap.World.Seed)
	if err != nil {
		return nil, fmt.Errorf("restoring world grid: %w", err)
	}

	// Current grid values, clamped cell by cell. A short or oversized cell
	// list degrades: missing cells keep their base values.
	if n := len(snap.Grid); n != grid.Cols*grid.Rows && n != 0 {
		issues = append(issues,
			fmt.Sprintf("grid has %d cells, expected %d; missing cells keep base values",
				n, grid.Cols*grid.Rows))
	}
	for i, v := range snap.Grid {
		if i >= grid.Cols*grid.Rows {
			break
		}
		grid.SetCell(i%grid.Cols, i/grid.Cols, v)
	}

	s.grid = grid
	s.seed = snap.World.Seed
	s.params.MaxX = float64(grid.Cols - 1)
	s.params.MaxY = float64(grid.Rows - 1)
	s.tick = snap.Tick
	if s.tick < 0 {
		s.tick = 0
		issues = append(issues, "negative tick reset to 0")
	}

	if snap.Weights != nil {
		s.weights = snap.Weights.Clamped()
	} else {
		issues = append(issues, "weights missing, using configured defaults")
		s.weights = field.Weights{
			Solar:  s.cfg.Weights.Solar,
			Aqua:   s.cfg.Weights.Aqua,
			Aether: s.cfg.Weights.Aether,
		}.Clamped()
	}

	if snap.CouplingK != nil {
		s.coupling = field.NewCoupling(*snap.CouplingK)
	} else {
		issues = append(issues, "coupling strength missing, using configured default")
		s.coupling = field.NewCoupling(s.cfg.Field.CouplingK)
	}

	if snap.Vehicle != nil {
		craft := *snap.Vehicle
		s.sanitizeVehicle(&craft, &issues)
		s.craft = &craft
	} else {
		issues = append(issues, "vehicle missing, reset to defaults")
		s.craft = vehicle.New(s.params.MaxX/2, s.params.MaxY/2)
	}

	return issues, nil
}

// sanitizeVehicle clamps every imported vehicle field into its documented
// range and corrects invalid mode combinations.
func (s *Session) sanitizeVehicle(v *vehicle.Vehicle, issues *[]string) {
	v.X = clampTo(v.X, 0, s.params.MaxX)
	v.Y = clampTo(v.Y, 0, s.params.MaxY)
	v.WaypointX = clampTo(v.WaypointX, 0, s.params.MaxX)
	v.WaypointY = clampTo(v.WaypointY, 0, s.params.MaxY)

	v.Heading = math.Mod(v.Heading, 360)
	if v.Heading < 0 {
		v.Heading += 360
	}
	if math.IsNaN(v.Heading) {
		v.Heading = 0
		*issues = append(*issues, "vehicle heading not a number, reset to 0")
	}

	v.Throttle = field.Clamp01(v.Throttle)
	v.Hull = field.Clamp01(v.Hull)
	v.Shield = field.Clamp01(v.Shield)
	v.Heat = field.Clamp01(v.Heat)
	v.Fuel = field.Clamp01(v.Fuel)

	if v.Speed < 0 {
		v.Speed = 0
	}
	if v.Speed > s.params.SpeedCap {
		v.Speed = s.params.SpeedCap
	}
	if v.AgeHours < 0 {
		v.AgeHours = 0
	}

	if v.Autopilot && !v.HasWaypoint {
		v.Autopilot = false
		*issues = append(*issues, "autopilot without waypoint corrected to manual")
	}
	if v.Boost && v.Fuel <= s.params.BoostMinFuel {
		v.Boost = false
		*issues = append(*issues, "boost cleared, insufficient fuel")
	}
}

func clampTo(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SaveSnapshot writes a snapshot as indented JSON.
func SaveSnapshot(snap *Snapshot, path string) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
