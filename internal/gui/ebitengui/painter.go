package ebitengui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/carnot/internal/engine"
	"github.com/san-kum/carnot/internal/scene"
)

// gradientBands is how many strips approximate a vertical gradient.
const gradientBands = 24

func toColor(c colorful.Color, alpha float64) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	a := uint8(alpha*255 + 0.5)
	// ebiten expects premultiplied alpha
	return color.RGBA{
		R: uint8(uint16(r) * uint16(a) / 255),
		G: uint8(uint16(g) * uint16(a) / 255),
		B: uint8(uint16(b) * uint16(a) / 255),
		A: a,
	}
}

// VectorPainter draws scenes onto an ebiten image with the vector package.
type VectorPainter struct {
	Dst *ebiten.Image
}

func (p VectorPainter) Begin(width, height float64, bg colorful.Color) {
	p.Dst.Fill(toColor(bg, 1))
}

func (p VectorPainter) FillRect(min, max engine.Point, corner float64, pt scene.Paint) {
	x, y := float32(min.X), float32(min.Y)
	w, h := float32(max.X-min.X), float32(max.Y-min.Y)
	if !pt.Graded() {
		vector.DrawFilledRect(p.Dst, x, y, w, h, toColor(pt.Top, pt.Alpha), true)
		return
	}
	band := h / gradientBands
	for i := 0; i < gradientBands; i++ {
		t := (float64(i) + 0.5) / gradientBands
		vector.DrawFilledRect(p.Dst, x, y+float32(i)*band, w, band+0.5, toColor(pt.At(t), pt.Alpha), false)
	}
}

func (p VectorPainter) StrokeRect(min, max engine.Point, width float64, pt scene.Paint) {
	vector.StrokeRect(p.Dst, float32(min.X), float32(min.Y), float32(max.X-min.X), float32(max.Y-min.Y),
		float32(width), toColor(pt.Top, pt.Alpha), true)
}

func (p VectorPainter) FillCircle(c engine.Point, r float64, pt scene.Paint) {
	vector.DrawFilledCircle(p.Dst, float32(c.X), float32(c.Y), float32(r), toColor(pt.Top, pt.Alpha), true)
}

func (p VectorPainter) StrokeCircle(c engine.Point, r, width float64, pt scene.Paint) {
	vector.StrokeCircle(p.Dst, float32(c.X), float32(c.Y), float32(r), float32(width), toColor(pt.Top, pt.Alpha), true)
}

func (p VectorPainter) Line(a, b engine.Point, width float64, pt scene.Paint) {
	vector.StrokeLine(p.Dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), toColor(pt.Top, pt.Alpha), true)
}

func (p VectorPainter) End() {}
