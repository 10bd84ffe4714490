package session

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/field"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func testSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewSession(t *testing.T) {
	s := testSession(t)

	cols, rows := s.Dims()
	if cols != 40 || rows != 24 {
		t.Fatalf("dims = %dx%d, want 40x24", cols, rows)
	}
	if s.Tick() != 0 {
		t.Errorf("fresh session tick = %d", s.Tick())
	}

	v := s.Vehicle()
	if v.X != 19.5 || v.Y != 11.5 {
		t.Errorf("vehicle starts at (%v, %v), want world center", v.X, v.Y)
	}
	if v.Hull != 1.0 || v.Fuel != 1.0 {
		t.Errorf("vehicle vitals not at defaults: hull=%v fuel=%v", v.Hull, v.Fuel)
	}
}

func TestNewSessionInvalidDims(t *testing.T) {
	cfg := testConfig(t)
	cfg.World.Cols = 0
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for zero columns")
	}
}

func TestCommandClamping(t *testing.T) {
	s := testSession(t)

	s.SetThrottle(1.7)
	if got := s.Vehicle().Throttle; got != 1.0 {
		t.Errorf("throttle = %v, want clamped to 1", got)
	}
	s.SetThrottle(-0.3)
	if got := s.Vehicle().Throttle; got != 0.0 {
		t.Errorf("throttle = %v, want clamped to 0", got)
	}

	s.SetWaypoint(-5, 999)
	v := s.Vehicle()
	if v.WaypointX != 0 || v.WaypointY != 23 {
		t.Errorf("waypoint = (%v, %v), want clamped to (0, 23)", v.WaypointX, v.WaypointY)
	}

	s.SetWeights(field.Weights{Solar: 2, Aqua: -1, Aether: 0.5})
	w := s.Weights()
	if w.Solar != 1 || w.Aqua != 0 || w.Aether != 0.5 {
		t.Errorf("weights = %+v, want saturated", w)
	}

	s.SetCoupling(5.0)
	if got := s.CouplingK(); got != field.MaxCouplingK {
		t.Errorf("coupling k = %v, want %v", got, field.MaxCouplingK)
	}
}

func TestHeadingWraps(t *testing.T) {
	s := testSession(t)
	s.AdjustHeading(-90)
	if got := s.Vehicle().Heading; got != 270 {
		t.Errorf("heading = %v, want 270", got)
	}
	s.AdjustHeading(180)
	if got := s.Vehicle().Heading; got != 90 {
		t.Errorf("heading = %v, want 90", got)
	}
}

func TestToggleAutopilotNeedsWaypoint(t *testing.T) {
	s := testSession(t)
	if s.ToggleAutopilot() {
		t.Fatal("autopilot engaged without a waypoint")
	}
	s.SetWaypoint(3, 3)
	if !s.ToggleAutopilot() {
		t.Fatal("autopilot failed to engage with a waypoint set")
	}
	s.ClearWaypoint()
	if s.Vehicle().Autopilot {
		t.Fatal("clearing the waypoint should disengage autopilot")
	}
}

func TestBoostNeedsFuel(t *testing.T) {
	s := testSession(t)
	if !s.SetBoost(true) {
		t.Fatal("boost should engage on a full tank")
	}
	s.SetBoost(false)

	s.craft.Fuel = 0.01
	if s.SetBoost(true) {
		t.Fatal("boost engaged below the fuel minimum")
	}
}

func TestPausedAdvanceIsNoOp(t *testing.T) {
	s := testSession(t)
	s.SetThrottle(1)
	s.Pause()

	before := s.Vehicle()
	sig := s.Advance(s.cfg.Physics.DT)
	if sig != (Signals{}) {
		t.Errorf("paused advance produced signals %+v", sig)
	}
	if s.Tick() != 0 {
		t.Errorf("paused advance incremented tick to %d", s.Tick())
	}
	if after := s.Vehicle(); after != before {
		t.Error("paused advance mutated the vehicle")
	}

	s.Resume()
	s.Advance(s.cfg.Physics.DT)
	if s.Tick() != 1 {
		t.Errorf("tick = %d after resume, want 1", s.Tick())
	}
}

func TestAdvanceOrdering(t *testing.T) {
	// The boost wake must land at the post-move position, so a fast
	// boosting vehicle disturbs cells it just moved into, not the ones it
	// left behind.
	s := testSession(t)
	s.SetThrottle(1)
	s.SetBoost(true)
	s.craft.Speed = s.params.SpeedCap
	s.craft.Heading = 0 // +x

	startX := s.craft.X
	div0 := s.Divergence()
	sig := s.Advance(0.5)
	if !sig.Boosting {
		t.Fatal("expected a boosting tick")
	}
	if s.craft.X <= startX {
		t.Fatalf("vehicle did not move: x %v -> %v", startX, s.craft.X)
	}
	if s.Divergence() <= div0 {
		t.Error("boost wake left no mark on the grid")
	}

	// The wake center should be where the vehicle is now.
	cx := int(math.Round(s.craft.X))
	cy := int(math.Round(s.craft.Y))
	cur := s.Cell(cx, cy)
	base := s.grid.Base(cx, cy)
	if cur == base {
		t.Errorf("cell under post-move position unchanged: %v", cur)
	}
}

func TestScanPerturbsImmediately(t *testing.T) {
	s := testSession(t)
	if d := s.Divergence(); d != 0 {
		t.Fatalf("fresh grid divergence = %v, want 0", d)
	}
	s.TriggerScan()
	if s.Divergence() <= 0 {
		t.Error("scan left the grid unchanged")
	}
}

func TestRestart(t *testing.T) {
	s := testSession(t)
	s.SetWeights(field.Weights{Solar: 0.9, Aqua: 0.1, Aether: 0})
	s.TriggerScan()
	s.SetThrottle(1)
	for i := 0; i < 50; i++ {
		s.Advance(s.cfg.Physics.DT)
	}

	s.Restart()
	if s.Tick() != 0 {
		t.Errorf("tick = %d after restart", s.Tick())
	}
	if d := s.Divergence(); d != 0 {
		t.Errorf("divergence = %v after restart, want 0", d)
	}
	v := s.Vehicle()
	if v.X != 19.5 || v.Y != 11.5 || v.Speed != 0 {
		t.Errorf("vehicle not reset: %+v", v)
	}
	// World tuning survives a restart.
	if w := s.Weights(); w.Solar != 0.9 {
		t.Errorf("restart discarded the blend weights: %+v", w)
	}
}

func TestSnapshotRoundtrip(t *testing.T) {
	s := testSession(t)
	s.SetThrottle(0.8)
	s.SetWaypoint(5, 5)
	s.ToggleAutopilot()
	s.TriggerScan()
	for i := 0; i < 20; i++ {
		s.Advance(s.cfg.Physics.DT)
	}

	snap := s.Export()
	if snap.Version != SnapshotVersion {
		t.Errorf("version = %d", snap.Version)
	}

	other := testSession(t)
	issues, err := other.Restore(snap)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("full snapshot restore reported issues: %v", issues)
	}

	if other.Tick() != s.Tick() {
		t.Errorf("tick = %d, want %d", other.Tick(), s.Tick())
	}
	if got, want := other.Vehicle(), s.Vehicle(); got != want {
		t.Errorf("vehicle = %+v, want %+v", got, want)
	}
	if got, want := other.Divergence(), s.Divergence(); got != want {
		t.Errorf("divergence = %v, want %v", got, want)
	}

	// The restored session must evolve identically.
	a := s.Advance(s.cfg.Physics.DT)
	b := other.Advance(s.cfg.Physics.DT)
	if a != b {
		t.Errorf("signals diverged after restore: %+v vs %+v", a, b)
	}
	if got, want := other.Vehicle(), s.Vehicle(); got != want {
		t.Errorf("vehicle diverged after restore: %+v vs %+v", got, want)
	}
}

func TestSnapshotDegradedImport(t *testing.T) {
	s := testSession(t)
	snap := &Snapshot{
		Version: SnapshotVersion,
		World:   WorldMeta{Cols: 16, Rows: 16, Seed: 7},
	}

	issues, err := s.Restore(snap)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(issues) == 0 {
		t.Fatal("partial snapshot should report issues")
	}

	cols, rows := s.Dims()
	if cols != 16 || rows != 16 {
		t.Errorf("dims = %dx%d, want 16x16", cols, rows)
	}
	if s.Seed() != 7 {
		t.Errorf("seed = %d, want 7", s.Seed())
	}
	v := s.Vehicle()
	if v.X != 7.5 || v.Y != 7.5 {
		t.Errorf("defaulted vehicle at (%v, %v), want new world center", v.X, v.Y)
	}
	// Must remain advanceable after a degraded import.
	s.SetThrottle(1)
	s.Advance(s.cfg.Physics.DT)
	if s.Tick() != 1 {
		t.Errorf("tick = %d after advance", s.Tick())
	}
}

func TestSnapshotSanitizesVehicle(t *testing.T) {
	s := testSession(t)
	snap := s.Export()
	snap.Vehicle.X = -40
	snap.Vehicle.Heading = -90
	snap.Vehicle.Hull = 3.5
	snap.Vehicle.Fuel = -1
	snap.Vehicle.Boost = true
	snap.Vehicle.Autopilot = true
	snap.Vehicle.HasWaypoint = false

	issues, err := s.Restore(snap)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(issues) == 0 {
		t.Fatal("expected sanitization issues")
	}

	v := s.Vehicle()
	if v.X != 0 {
		t.Errorf("x = %v, want clamped to 0", v.X)
	}
	if v.Heading != 270 {
		t.Errorf("heading = %v, want wrapped to 270", v.Heading)
	}
	if v.Hull != 1 || v.Fuel != 0 {
		t.Errorf("vitals not clamped: hull=%v fuel=%v", v.Hull, v.Fuel)
	}
	if v.Boost {
		t.Error("boost survived an empty tank")
	}
	if v.Autopilot {
		t.Error("autopilot survived without a waypoint")
	}
}

func TestSnapshotInvalidDimsFail(t *testing.T) {
	s := testSession(t)
	before := s.Vehicle()

	snap := &Snapshot{World: WorldMeta{Cols: 0, Rows: 24}}
	if _, err := s.Restore(snap); err == nil {
		t.Fatal("expected error for invalid grid dimensions")
	}
	// A failed restore must leave the session untouched.
	if after := s.Vehicle(); after != before {
		t.Error("failed restore mutated the session")
	}
}

func TestSnapshotShortGrid(t *testing.T) {
	s := testSession(t)
	snap := s.Export()
	snap.Grid = snap.Grid[:10]

	issues, err := s.Restore(snap)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	found := false
	for _, is := range issues {
		if is != "" {
			found = true
		}
	}
	if !found {
		t.Error("short grid should be reported")
	}
}

func TestSnapshotFileRoundtrip(t *testing.T) {
	s := testSession(t)
	s.TriggerScan()
	path := filepath.Join(t.TempDir(), "session.json")

	if err := SaveSnapshot(s.Export(), path); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	other := testSession(t)
	issues, err := other.Restore(snap)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("roundtrip reported issues: %v", issues)
	}
	if got, want := other.Divergence(), s.Divergence(); got != want {
		t.Errorf("divergence = %v, want %v", got, want)
	}
}
