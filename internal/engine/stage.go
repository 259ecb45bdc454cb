package engine

import (
	"fmt"
	"math"
)

const (
	TwoPi = 2 * math.Pi

	// NeutralAngle places the crank pin directly below the flywheel centre.
	NeutralAngle = math.Pi / 2
)

// Stage is one quarter of the crank revolution.
type Stage int

const (
	IsothermalExpansion Stage = iota
	AdiabaticExpansion
	IsothermalCompression
	AdiabaticCompression
)

// Theme selects the colour family a stage is drawn with.
type Theme int

const (
	ThemeHot Theme = iota
	ThemeCold
)

var stageNames = [...]string{
	IsothermalExpansion:   "Isothermal Expansion",
	AdiabaticExpansion:    "Adiabatic Expansion",
	IsothermalCompression: "Isothermal Compression",
	AdiabaticCompression:  "Adiabatic Compression",
}

func (s Stage) String() string {
	if s < IsothermalExpansion || s > AdiabaticCompression {
		return "Unknown"
	}
	return stageNames[s]
}

// Ordinal is the 1-based position of the stage in the Carnot cycle.
func (s Stage) Ordinal() int { return int(s) + 1 }

// Label is the numbered name shown to the user, e.g. "3. Isothermal Compression".
func (s Stage) Label() string {
	return fmt.Sprintf("%d. %s", s.Ordinal(), s)
}

func (s Stage) Isothermal() bool {
	return s == IsothermalExpansion || s == IsothermalCompression
}

func (s Stage) Compression() bool {
	return s == IsothermalCompression || s == AdiabaticCompression
}

func (s Stage) Theme() Theme {
	if s.Compression() {
		return ThemeCold
	}
	return ThemeHot
}

// Normalize wraps an angle into [0, 2π). Non-finite angles map to NeutralAngle.
func Normalize(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return NeutralAngle
	}
	a := math.Mod(angle, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		a = 0
	}
	return a
}

// Classify maps a crank angle onto its cycle stage. Quadrant boundaries are
// exactly 0, π/2, π and 3π/2.
func Classify(angle float64) Stage {
	a := Normalize(angle)
	switch {
	case a < math.Pi/2:
		return IsothermalCompression
	case a < math.Pi:
		return AdiabaticCompression
	case a < 3*math.Pi/2:
		return IsothermalExpansion
	default:
		return AdiabaticExpansion
	}
}
