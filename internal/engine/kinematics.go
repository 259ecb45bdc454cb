package engine

import "math"

type Point struct {
	X, Y float64
}

// Linkage is the solved slider-crank position for one crank angle.
type Linkage struct {
	Angle         float64
	Center        Point
	CrankPin      Point
	PistonPinY    float64
	PistonTopY    float64
	PistonBottomY float64
	// Clamped is set when the rod constraint had to be forced.
	Clamped bool
	// Fallback is set when the requested angle was unusable and the neutral
	// angle was solved instead.
	Fallback bool
}

// Solve places the crank pin on its circle and the piston on the vertical axis
// through the crank centre, keeping the rod length fixed:
//
//	pistonPinY = crankPinY + sqrt(rod² - dx²)
//
// dx is clamped to [-rod, rod] so the square root never sees a negative
// argument.
func (g Geometry) Solve(angle float64) Linkage {
	l := Linkage{Angle: angle}
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		l.Angle = NeutralAngle
		l.Fallback = true
	}
	cx := g.CenterX()
	l.Center = Point{X: cx, Y: g.CenterY}
	l.CrankPin = Point{
		X: cx + math.Cos(l.Angle)*g.CrankRadius,
		Y: g.CenterY + math.Sin(l.Angle)*g.CrankRadius,
	}

	dx := l.CrankPin.X - cx
	if dx > g.RodLength {
		dx = g.RodLength
		l.Clamped = true
	} else if dx < -g.RodLength {
		dx = -g.RodLength
		l.Clamped = true
	}
	l.PistonPinY = l.CrankPin.Y + math.Sqrt(g.RodLength*g.RodLength-dx*dx)
	l.PistonTopY = l.PistonPinY - pistonPinOffset
	l.PistonBottomY = l.PistonTopY + g.PistonHeight
	return l
}

// PistonPin is the wrist pin joint on the piston axis.
func (l Linkage) PistonPin() Point {
	return Point{X: l.Center.X, Y: l.PistonPinY}
}
