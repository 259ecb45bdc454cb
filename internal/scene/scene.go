package scene

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/carnot/internal/engine"
)

// Layer identifies what a shape depicts; shapes are emitted back to front.
type Layer int

const (
	LayerReservoir Layer = iota
	LayerGas
	LayerCylinder
	LayerParticles
	LayerFlywheel
	LayerRod
	LayerPiston
	LayerCrank
)

type Kind int

const (
	KindFillRect Kind = iota
	KindStrokeRect
	KindFillCircle
	KindStrokeCircle
	KindLine
)

// Paint is a solid or vertically graded colour with opacity.
type Paint struct {
	Top    colorful.Color
	Bottom colorful.Color
	Alpha  float64
}

func Solid(c colorful.Color) Paint { return Paint{Top: c, Bottom: c, Alpha: 1} }

func Gradient(top, bottom colorful.Color) Paint { return Paint{Top: top, Bottom: bottom, Alpha: 1} }

func Translucent(c colorful.Color, alpha float64) Paint { return Paint{Top: c, Bottom: c, Alpha: alpha} }

func (p Paint) Graded() bool { return p.Top != p.Bottom }

// At returns the colour at fraction t of the way from top to bottom.
func (p Paint) At(t float64) colorful.Color {
	if !p.Graded() {
		return p.Top
	}
	t = math.Max(0, math.Min(1, t))
	return p.Top.BlendRgb(p.Bottom, t).Clamped()
}

// Shape is one drawing primitive. Rectangles use A as the top-left and B as
// the bottom-right corner, circles use A as the centre, lines run A to B.
type Shape struct {
	Kind   Kind
	Layer  Layer
	A, B   engine.Point
	Radius float64
	Corner float64
	Width  float64
	Paint  Paint
}

// Scene is the ordered display list for one frame.
type Scene struct {
	Width, Height float64
	Background    colorful.Color
	Shapes        []Shape
}

// Painter is a drawing surface a Scene can be replayed onto.
type Painter interface {
	Begin(width, height float64, bg colorful.Color)
	FillRect(min, max engine.Point, corner float64, p Paint)
	StrokeRect(min, max engine.Point, width float64, p Paint)
	FillCircle(c engine.Point, r float64, p Paint)
	StrokeCircle(c engine.Point, r, width float64, p Paint)
	Line(a, b engine.Point, width float64, p Paint)
	End()
}

// Draw replays the display list onto p in order.
func (s Scene) Draw(p Painter) {
	p.Begin(s.Width, s.Height, s.Background)
	for _, sh := range s.Shapes {
		switch sh.Kind {
		case KindFillRect:
			p.FillRect(sh.A, sh.B, sh.Corner, sh.Paint)
		case KindStrokeRect:
			p.StrokeRect(sh.A, sh.B, sh.Width, sh.Paint)
		case KindFillCircle:
			p.FillCircle(sh.A, sh.Radius, sh.Paint)
		case KindStrokeCircle:
			p.StrokeCircle(sh.A, sh.Radius, sh.Width, sh.Paint)
		case KindLine:
			p.Line(sh.A, sh.B, sh.Width, sh.Paint)
		}
	}
	p.End()
}

// Layer returns the shapes on one layer, in drawing order.
func (s Scene) Layer(l Layer) []Shape {
	var out []Shape
	for _, sh := range s.Shapes {
		if sh.Layer == l {
			out = append(out, sh)
		}
	}
	return out
}
