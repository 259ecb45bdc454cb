package scene

import (
	"math"

	"github.com/san-kum/carnot/internal/engine"
)

// Build lays out one frame back to front: reservoir (isothermal stages only),
// gas and cylinder, particles, flywheel, connecting rod, piston, crank arm.
func Build(f engine.Frame) Scene {
	g := f.Geometry
	l := f.Linkage
	pal := PaletteFor(f)
	cx := g.CenterX()
	half := g.PistonWidth / 2

	s := Scene{
		Width:      g.Width,
		Height:     g.Height,
		Background: Background,
		Shapes:     make([]Shape, 0, len(f.Particles)+16),
	}
	add := func(sh Shape) { s.Shapes = append(s.Shapes, sh) }

	if engine.Classify(l.Angle).Isothermal() {
		add(Shape{
			Kind:   KindFillRect,
			Layer:  LayerReservoir,
			A:      engine.Point{X: cx - engine.ReservoirWidth/2, Y: g.ReservoirY},
			B:      engine.Point{X: cx + engine.ReservoirWidth/2, Y: g.ReservoirY + engine.ReservoirHeight},
			Corner: engine.ReservoirCorner,
			Paint:  Gradient(pal.Box, ReservoirShadow),
		})
	}

	add(Shape{
		Kind:  KindFillRect,
		Layer: LayerGas,
		A:     engine.Point{X: cx - half, Y: l.PistonBottomY},
		B:     engine.Point{X: cx + half, Y: g.CylinderBottom},
		Paint: Translucent(GasTint, GasAlpha),
	})
	add(Shape{
		Kind:  KindStrokeRect,
		Layer: LayerCylinder,
		A:     engine.Point{X: cx - half, Y: g.CylinderTop},
		B:     engine.Point{X: cx + half, Y: g.CylinderBottom},
		Width: 8,
		Paint: Solid(CylinderWall),
	})

	for _, p := range f.Particles {
		add(Shape{
			Kind:   KindFillCircle,
			Layer:  LayerParticles,
			A:      engine.Point{X: p.X, Y: p.Y},
			Radius: p.Size,
			Paint:  Solid(pal.Box),
		})
	}

	r := g.CrankRadius
	add(Shape{Kind: KindFillCircle, Layer: LayerFlywheel, A: l.Center, Radius: r, Paint: Solid(FlywheelDisk)})
	add(Shape{Kind: KindStrokeCircle, Layer: LayerFlywheel, A: l.Center, Radius: r, Width: 3, Paint: Solid(FlywheelRim)})
	cos, sin := math.Cos(l.Angle)*r, math.Sin(l.Angle)*r
	add(Shape{
		Kind:  KindLine,
		Layer: LayerFlywheel,
		A:     engine.Point{X: l.Center.X - cos, Y: l.Center.Y - sin},
		B:     engine.Point{X: l.Center.X + cos, Y: l.Center.Y + sin},
		Width: 3,
		Paint: Solid(FlywheelCross),
	})
	add(Shape{
		Kind:  KindLine,
		Layer: LayerFlywheel,
		A:     engine.Point{X: l.Center.X + sin, Y: l.Center.Y - cos},
		B:     engine.Point{X: l.Center.X - sin, Y: l.Center.Y + cos},
		Width: 3,
		Paint: Solid(FlywheelCross),
	})

	add(Shape{Kind: KindLine, Layer: LayerRod, A: l.CrankPin, B: l.PistonPin(), Width: 10, Paint: Solid(pal.Rod)})

	add(Shape{
		Kind:  KindFillRect,
		Layer: LayerPiston,
		A:     engine.Point{X: cx - half, Y: l.PistonTopY},
		B:     engine.Point{X: cx + half, Y: l.PistonTopY + g.PistonHeight},
		Paint: Solid(PistonBody),
	})

	add(Shape{Kind: KindLine, Layer: LayerCrank, A: l.Center, B: l.CrankPin, Width: 8, Paint: Solid(CrankArm)})

	return s
}
