package engine

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	const eps = 1e-9
	tests := []struct {
		name  string
		angle float64
		want  Stage
	}{
		{"zero", 0, IsothermalCompression},
		{"just past quarter", math.Pi/2 + eps, AdiabaticCompression},
		{"quarter boundary", math.Pi / 2, AdiabaticCompression},
		{"just past half", math.Pi + eps, IsothermalExpansion},
		{"half boundary", math.Pi, IsothermalExpansion},
		{"just past three quarters", 1.5*math.Pi + eps, AdiabaticExpansion},
		{"just before full turn", TwoPi - eps, AdiabaticExpansion},
		{"full turn wraps", TwoPi, IsothermalCompression},
		{"several turns", 3*TwoPi + math.Pi/4, IsothermalCompression},
		{"negative", -math.Pi / 4, AdiabaticExpansion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.angle); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.angle, got, tt.want)
			}
		})
	}
}

func TestClassifyNonFinite(t *testing.T) {
	for _, a := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Classify(a); got != Classify(NeutralAngle) {
			t.Errorf("Classify(%v) = %v, want neutral stage %v", a, got, Classify(NeutralAngle))
		}
	}
}

func TestNormalizeRange(t *testing.T) {
	for _, a := range []float64{-100, -TwoPi, -1e-18, 0, 1, TwoPi, 1e6} {
		n := Normalize(a)
		if n < 0 || n >= TwoPi {
			t.Errorf("Normalize(%v) = %v, outside [0, 2π)", a, n)
		}
	}
}

func TestStageProperties(t *testing.T) {
	tests := []struct {
		stage      Stage
		label      string
		isothermal bool
		theme      Theme
	}{
		{IsothermalExpansion, "1. Isothermal Expansion", true, ThemeHot},
		{AdiabaticExpansion, "2. Adiabatic Expansion", false, ThemeHot},
		{IsothermalCompression, "3. Isothermal Compression", true, ThemeCold},
		{AdiabaticCompression, "4. Adiabatic Compression", false, ThemeCold},
	}

	for _, tt := range tests {
		if got := tt.stage.Label(); got != tt.label {
			t.Errorf("Label() = %q, want %q", got, tt.label)
		}
		if got := tt.stage.Isothermal(); got != tt.isothermal {
			t.Errorf("%v Isothermal() = %v, want %v", tt.stage, got, tt.isothermal)
		}
		if got := tt.stage.Theme(); got != tt.theme {
			t.Errorf("%v Theme() = %v, want %v", tt.stage, got, tt.theme)
		}
	}
}
