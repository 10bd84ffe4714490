// Package session owns one running simulation: the field grid, the vehicle,
// the blend weights, and the tick scheduler that advances them. The grid
// and vehicle are never handed out mutable; hosts read copies and mutate
// only through commands, serialized on a single logical thread.
package session

import (
	"fmt"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/field"
	"github.com/pthm-cable/drift/vehicle"
)

// Session is a complete simulation instance.
type Session struct {
	cfg *config.Config

	grid     *field.Grid
	coupling *field.Coupling
	weights  field.Weights
	craft    *vehicle.Vehicle
	params   vehicle.Params

	seed   uint32
	tick   int64
	paused bool
}

// New creates a session from the loaded configuration. Invalid grid
// dimensions are the only fatal condition.
func New(cfg *config.Config) (*Session, error) {
	grid, err := field.NewGrid(cfg.World.Cols, cfg.World.Rows, cfg.World.Seed)
	if err != nil {
		return nil, fmt.Errorf("creating world grid: %w", err)
	}

	s := &Session{
		cfg:      cfg,
		grid:     grid,
		coupling: field.NewCoupling(cfg.Field.CouplingK),
		weights: field.Weights{
			Solar:  cfg.Weights.Solar,
			Aqua:   cfg.Weights.Aqua,
			Aether: cfg.Weights.Aether,
		}.Clamped(),
		params: vehicle.ParamsFromConfig(cfg),
		seed:   cfg.World.Seed,
	}
	s.craft = vehicle.New(s.params.MaxX/2, s.params.MaxY/2)
	return s, nil
}

// Restart resets the vehicle to defaults at the world center, snaps the
// grid back to base, and rewinds the tick counter. The world itself (seed,
// dimensions, weights, coupling) is preserved.
func (s *Session) Restart() {
	s.grid.Reset()
	s.craft = vehicle.New(s.params.MaxX/2, s.params.MaxY/2)
	s.tick = 0
	s.paused = false
}

// Cell returns the current field values under (x, y).
func (s *Session) Cell(x, y int) field.Vector {
	return s.grid.Cell(x, y)
}

// Vehicle returns a copy of the vehicle state.
func (s *Session) Vehicle() vehicle.Vehicle {
	return *s.craft
}

// Weights returns the current blend weights.
func (s *Session) Weights() field.Weights {
	return s.weights
}

// CouplingK returns the current coupling strength.
func (s *Session) CouplingK() float64 {
	return s.coupling.K()
}

// ResonanceAt blends the current cell at (x, y) under the session weights.
func (s *Session) ResonanceAt(x, y int) float64 {
	return field.Resonance(s.grid.Cell(x, y), s.weights)
}

// Divergence reports how far the current grid has drifted from base.
func (s *Session) Divergence() float64 {
	return s.grid.Divergence()
}

// Dims returns the grid dimensions.
func (s *Session) Dims() (cols, rows int) {
	return s.grid.Cols, s.grid.Rows
}

// Seed returns the world seed.
func (s *Session) Seed() uint32 {
	return s.seed
}

// Tick returns the number of advances performed.
func (s *Session) Tick() int64 {
	return s.tick
}

// Paused reports whether the scheduler is paused.
func (s *Session) Paused() bool {
	return s.paused
}
