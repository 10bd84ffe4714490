package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/drift/config"
)

func TestNormalizeDenormalizeRoundtrip(t *testing.T) {
	pv := NewParamVector()
	defaults := pv.DefaultVector()

	norm := pv.Normalize(defaults)
	for i, n := range norm {
		if n < 0 || n > 1 {
			t.Errorf("%s normalized to %v, outside [0,1]", pv.Specs[i].Name, n)
		}
	}

	back := pv.Denormalize(norm)
	for i := range defaults {
		if math.Abs(back[i]-defaults[i]) > 1e-9 {
			t.Errorf("%s roundtrip %v -> %v", pv.Specs[i].Name, defaults[i], back[i])
		}
	}
}

func TestClampBounds(t *testing.T) {
	pv := NewParamVector()

	low := make([]float64, pv.Dim())
	high := make([]float64, pv.Dim())
	for i := range low {
		low[i] = -1e9
		high[i] = 1e9
	}

	for i, v := range pv.Clamp(low) {
		if v != pv.Specs[i].Min {
			t.Errorf("%s clamped low to %v, want %v", pv.Specs[i].Name, v, pv.Specs[i].Min)
		}
	}
	for i, v := range pv.Clamp(high) {
		if v != pv.Specs[i].Max {
			t.Errorf("%s clamped high to %v, want %v", pv.Specs[i].Name, v, pv.Specs[i].Max)
		}
	}
}

func TestApplyExtractRoundtrip(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	values := pv.DefaultVector()
	values[0] = 3.3 // accel
	values[1] = 90  // max_turn_rate

	pv.ApplyToConfig(cfg, values)
	if cfg.Physics.Accel != 3.3 {
		t.Errorf("accel = %v, want 3.3", cfg.Physics.Accel)
	}
	if cfg.Physics.MaxTurnRate != 90 {
		t.Errorf("turn rate = %v, want 90", cfg.Physics.MaxTurnRate)
	}

	got := pv.ExtractFromConfig(cfg)
	if len(got) != pv.Dim() {
		t.Fatalf("extracted %d values, want %d", len(got), pv.Dim())
	}
	for i := range values {
		if math.Abs(got[i]-values[i]) > 1e-9 {
			t.Errorf("%s: applied %v, extracted %v", pv.Specs[i].Name, values[i], got[i])
		}
	}
}
