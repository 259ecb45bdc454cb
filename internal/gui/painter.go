package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/carnot/internal/engine"
	"github.com/san-kum/carnot/internal/scene"
)

func toColor(c colorful.Color, alpha float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, uint8(math.Round(alpha*255)))
}

func vec(p engine.Point) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

func rect(min, max engine.Point) rl.Rectangle {
	return rl.NewRectangle(float32(min.X), float32(min.Y), float32(max.X-min.X), float32(max.Y-min.Y))
}

// Painter draws scenes with raylib between BeginDrawing and EndDrawing.
type Painter struct{}

func (Painter) Begin(width, height float64, bg colorful.Color) {
	rl.ClearBackground(toColor(bg, 1))
}

func (Painter) FillRect(min, max engine.Point, corner float64, p scene.Paint) {
	r := rect(min, max)
	if p.Graded() {
		rl.DrawRectangleGradientV(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height),
			toColor(p.Top, p.Alpha), toColor(p.Bottom, p.Alpha))
		return
	}
	if corner > 0 {
		roundness := float32(2 * corner / math.Min(max.X-min.X, max.Y-min.Y))
		rl.DrawRectangleRounded(r, roundness, 12, toColor(p.Top, p.Alpha))
		return
	}
	rl.DrawRectangleRec(r, toColor(p.Top, p.Alpha))
}

func (Painter) StrokeRect(min, max engine.Point, width float64, p scene.Paint) {
	rl.DrawRectangleLinesEx(rect(min, max), float32(width), toColor(p.Top, p.Alpha))
}

func (Painter) FillCircle(c engine.Point, r float64, p scene.Paint) {
	rl.DrawCircleV(vec(c), float32(r), toColor(p.Top, p.Alpha))
}

func (Painter) StrokeCircle(c engine.Point, r, width float64, p scene.Paint) {
	rl.DrawRing(vec(c), float32(r-width/2), float32(r+width/2), 0, 360, 64, toColor(p.Top, p.Alpha))
}

func (Painter) Line(a, b engine.Point, width float64, p scene.Paint) {
	rl.DrawLineEx(vec(a), vec(b), float32(width), toColor(p.Top, p.Alpha))
}

func (Painter) End() {}
