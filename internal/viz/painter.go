package viz

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/carnot/internal/engine"
	"github.com/san-kum/carnot/internal/scene"
)

// minOpacity is the weakest fill still drawn; fainter tints vanish on a dot grid.
const minOpacity = 0.5

// CanvasPainter replays a scene onto a braille canvas, scaling scene units to
// sub-pixels.
type CanvasPainter struct {
	Canvas *Canvas
	sx, sy float64
}

func NewCanvasPainter(c *Canvas) *CanvasPainter {
	return &CanvasPainter{Canvas: c, sx: 1, sy: 1}
}

func (p *CanvasPainter) Begin(width, height float64, bg colorful.Color) {
	w, h := p.Canvas.Pixels()
	p.sx = float64(w) / width
	p.sy = float64(h) / height
	p.Canvas.Clear()
}

func (p *CanvasPainter) pt(q engine.Point) (int, int) {
	return int(math.Round(q.X * p.sx)), int(math.Round(q.Y * p.sy))
}

// FillRect fills solid paints and outlines graded ones so the dots under a
// gradient stay readable. Faint tints are skipped.
func (p *CanvasPainter) FillRect(min, max engine.Point, corner float64, pt scene.Paint) {
	if pt.Alpha < minOpacity {
		return
	}
	x0, y0 := p.pt(min)
	x1, y1 := p.pt(max)
	p.Canvas.SetPen(pt.Top)
	if pt.Graded() {
		p.Canvas.DrawRect(x0, y0, x1, y1)
		return
	}
	p.Canvas.FillRect(x0, y0, x1, y1)
}

func (p *CanvasPainter) StrokeRect(min, max engine.Point, width float64, pt scene.Paint) {
	x0, y0 := p.pt(min)
	x1, y1 := p.pt(max)
	p.Canvas.SetPen(pt.Top)
	p.Canvas.DrawRect(x0, y0, x1, y1)
}

func (p *CanvasPainter) radius(r float64) int {
	return int(math.Round(r * (p.sx + p.sy) / 2))
}

// FillCircle fills small circles and draws large ones as rings, so lines
// drawn over a disk remain visible.
func (p *CanvasPainter) FillCircle(c engine.Point, r float64, pt scene.Paint) {
	x, y := p.pt(c)
	p.Canvas.SetPen(pt.Top)
	rr := p.radius(r)
	if rr <= 2 {
		if rr < 1 {
			p.Canvas.Set(x, y)
			return
		}
		p.Canvas.FillCircle(x, y, rr)
		return
	}
	p.Canvas.DrawCircle(x, y, rr)
}

func (p *CanvasPainter) StrokeCircle(c engine.Point, r, width float64, pt scene.Paint) {
	x, y := p.pt(c)
	p.Canvas.SetPen(pt.Top)
	p.Canvas.DrawCircle(x, y, p.radius(r))
}

// Line draws one dot wide, with a parallel second pass for strokes that
// would be at least two sub-pixels wide.
func (p *CanvasPainter) Line(a, b engine.Point, width float64, pt scene.Paint) {
	x0, y0 := p.pt(a)
	x1, y1 := p.pt(b)
	p.Canvas.SetPen(pt.Top)
	p.Canvas.DrawLine(x0, y0, x1, y1)
	if width*p.sx >= 2 {
		if absInt(x1-x0) > absInt(y1-y0) {
			p.Canvas.DrawLine(x0, y0+1, x1, y1+1)
		} else {
			p.Canvas.DrawLine(x0+1, y0, x1+1, y1)
		}
	}
}

func (p *CanvasPainter) End() {}
