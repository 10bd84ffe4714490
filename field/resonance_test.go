package field

import "testing"

func TestEntropyWeightDerivation(t *testing.T) {
	cases := []struct {
		w    Weights
		want float64
	}{
		{Weights{0, 0, 0}, 1.0},
		{Weights{0.5, 0.3, 0.2}, 0.0},
		{Weights{0.2, 0.2, 0.2}, 0.4},
		{Weights{1, 1, 1}, 0.0}, // never negative
	}
	for _, c := range cases {
		got := c.w.EntropyWeight()
		if diff := got - c.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("EntropyWeight(%+v) = %f, want %f", c.w, got, c.want)
		}
	}
}

func TestResonanceBlend(t *testing.T) {
	cell := Vector{0.8, 0.4, 0.6, 0.2}
	w := Weights{Solar: 0.5, Aqua: 0.25, Aether: 0.25}

	// entropyWeight = 0, so resonance = 0.5*0.8 + 0.25*0.6 + 0.25*0.2
	want := 0.5*0.8 + 0.25*0.6 + 0.25*0.2
	got := Resonance(cell, w)
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Resonance = %f, want %f", got, want)
	}
}

func TestResonanceUsesEntropyHeadroom(t *testing.T) {
	cell := Vector{0, 1, 0, 0}
	w := Weights{Solar: 0.2, Aqua: 0.1, Aether: 0.1}

	// Headroom 0.6 goes to entropy, the only nonzero field.
	got := Resonance(cell, w)
	if diff := got - 0.6; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Resonance = %f, want 0.6", got)
	}
}

func TestResonanceClamped(t *testing.T) {
	cell := Vector{1, 1, 1, 1}
	w := Weights{Solar: 1, Aqua: 1, Aether: 1}
	if got := Resonance(cell, w); got != 1 {
		t.Errorf("Resonance should saturate at 1, got %f", got)
	}

	if got := Resonance(Vector{}, Weights{}); got != 0 {
		t.Errorf("Resonance of zero cell should be 0, got %f", got)
	}
}

func TestWeightsClamped(t *testing.T) {
	w := Weights{Solar: -0.5, Aqua: 1.7, Aether: 0.3}.Clamped()
	if w.Solar != 0 || w.Aqua != 1 || w.Aether != 0.3 {
		t.Errorf("unexpected clamped weights: %+v", w)
	}
}
