package engine

import "math"

// Geometry holds the fixed dimensions of the drawing surface and the
// crank-rod-piston mechanism, in surface units with y growing downwards.
type Geometry struct {
	Width          float64
	Height         float64
	CenterY        float64
	CrankRadius    float64
	RodLength      float64
	PistonWidth    float64
	PistonHeight   float64
	CylinderTop    float64
	CylinderBottom float64
	ReservoirY     float64
}

// Reservoir box dimensions, centred under the cylinder.
const (
	ReservoirWidth  = 280.0
	ReservoirHeight = 120.0
	ReservoirCorner = 15.0
)

// pistonPinOffset is the distance from the piston top edge down to the wrist pin.
const pistonPinOffset = 10.0

func DefaultGeometry() Geometry {
	return Geometry{
		Width:          400,
		Height:         700,
		CenterY:        75,
		CrankRadius:    65,
		RodLength:      260,
		PistonWidth:    80,
		PistonHeight:   40,
		CylinderTop:    160,
		CylinderBottom: 565,
		ReservoirY:     560,
	}
}

func (g Geometry) CenterX() float64 { return g.Width / 2 }

// Validate reports the first constraint the geometry breaks. A valid geometry
// keeps the rod constraint solvable at every crank angle.
func (g Geometry) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"width", g.Width},
		{"height", g.Height},
		{"crank_radius", g.CrankRadius},
		{"rod_length", g.RodLength},
		{"piston_width", g.PistonWidth},
		{"piston_height", g.PistonHeight},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return &GeometryError{Field: p.name, Value: p.v, Wrapped: ErrNonPositive}
		}
	}
	if g.RodLength <= g.CrankRadius {
		return &GeometryError{Field: "rod_length", Value: g.RodLength, Wrapped: ErrRodTooShort}
	}
	if g.CylinderBottom <= g.CylinderTop {
		return &GeometryError{Field: "cylinder_bottom", Value: g.CylinderBottom, Wrapped: ErrCylinder}
	}
	lowest := g.Solve(NeutralAngle).PistonBottomY
	if lowest >= g.CylinderBottom {
		return &GeometryError{Field: "cylinder_bottom", Value: g.CylinderBottom, Wrapped: ErrCylinder}
	}
	if g.PistonWidth > g.Width {
		return &GeometryError{Field: "piston_width", Value: g.PistonWidth, Wrapped: ErrOutOfSurface}
	}
	if g.CylinderBottom > g.Height || g.ReservoirY > g.Height {
		return &GeometryError{Field: "height", Value: g.Height, Wrapped: ErrOutOfSurface}
	}
	return nil
}

// Bounds is the region particles bounce inside. The ceiling is the moving
// piston face and is passed separately on every step.
type Bounds struct {
	Left, Right float64
	Floor       float64
	CenterX     float64
	SpawnSpread float64
	SpawnDepth  float64
}

func (g Geometry) Bounds() Bounds {
	cx := g.CenterX()
	return Bounds{
		Left:        cx - g.PistonWidth/2,
		Right:       cx + g.PistonWidth/2,
		Floor:       g.CylinderBottom,
		CenterX:     cx,
		SpawnSpread: g.PistonWidth - 10,
		SpawnDepth:  100,
	}
}
