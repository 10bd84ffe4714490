package main

import (
	"log/slog"

	"github.com/pthm-cable/drift/session"
	"github.com/pthm-cable/drift/telemetry"
)

// scanEveryTicks and the boost window below give the field something to
// recover from on a regular cadence without draining the tank.
const (
	scanEveryTicks  = 360
	boostEveryTicks = 900
	boostLenTicks   = 120
	cornerInset     = 2.0
)

// patrol drives the vehicle around the four inset corners of the world,
// firing scans and boost pulses on a fixed cadence. It stands in for an
// interactive pilot during headless runs.
type patrol struct {
	s       *session.Session
	corners [][2]float64
	next    int
}

func newPatrol(s *session.Session) *patrol {
	cols, rows := s.Dims()
	maxX := float64(cols - 1)
	maxY := float64(rows - 1)

	inset := cornerInset
	if inset*2 >= maxX || inset*2 >= maxY {
		inset = 0
	}

	return &patrol{
		s: s,
		corners: [][2]float64{
			{inset, inset},
			{maxX - inset, inset},
			{maxX - inset, maxY - inset},
			{inset, maxY - inset},
		},
	}
}

// start engages the autopilot toward the first corner.
func (p *patrol) start() {
	p.s.SetThrottle(0.8)
	p.seek()
}

func (p *patrol) seek() {
	c := p.corners[p.next]
	p.s.SetWaypoint(c[0], c[1])
	if !p.s.Vehicle().Autopilot {
		p.s.ToggleAutopilot()
	}
	p.next = (p.next + 1) % len(p.corners)
}

// observe reacts to the signals of the tick just advanced: re-targets after
// an arrival and runs the scan and boost cadences.
func (p *patrol) observe(sig session.Signals, c *telemetry.Collector) {
	if sig.Arrived {
		slog.Debug("waypoint reached", "tick", p.s.Tick())
		p.s.SetThrottle(0.8)
		p.seek()
	}

	tick := p.s.Tick()
	if tick%scanEveryTicks == 0 {
		p.s.TriggerScan()
		c.RecordScan()
	}

	switch tick % boostEveryTicks {
	case 0:
		if p.s.Vehicle().Fuel > 0.3 {
			p.s.SetBoost(true)
		}
	case boostLenTicks:
		p.s.SetBoost(false)
	}
}
