// Package tui renders frames as plain ANSI text for terminals without an
// interactive program, such as a headless record run with --live.
package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/carnot/internal/engine"
	"github.com/san-kum/carnot/internal/panel"
	"github.com/san-kum/carnot/internal/scene"
)

const (
	width       = 40
	height      = 35
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// glyphs per scene layer; later layers overwrite earlier ones
var glyphs = map[scene.Layer]rune{
	scene.LayerReservoir: '~',
	scene.LayerGas:       ' ',
	scene.LayerCylinder:  '#',
	scene.LayerParticles: '.',
	scene.LayerFlywheel:  'o',
	scene.LayerRod:       '=',
	scene.LayerPiston:    '@',
	scene.LayerCrank:     '*',
}

// LiveRenderer is a loop.Observer that redraws at most frameRate times per
// second.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	sx, sy    float64
}

func NewLiveRenderer(out io.Writer, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:       out,
		frameRate: max(1, frameRate),
		canvas:    canvas,
	}
}

func (r *LiveRenderer) OnFrame(f engine.Frame) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.clear()
	r.draw(scene.Build(f))
	r.render(f)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) pt(p engine.Point) (int, int) {
	return int(math.Round(p.X * r.sx)), int(math.Round(p.Y * r.sy))
}

func (r *LiveRenderer) line(x1, y1, x2, y2 int, c rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (r *LiveRenderer) rect(x1, y1, x2, y2 int, c rune, fill bool) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if fill || y == y1 || y == y2 || x == x1 || x == x2 {
				r.set(x, y, c)
			}
		}
	}
}

func (r *LiveRenderer) circle(cx, cy int, rx, ry float64, c rune, fill bool) {
	if rx < 1 && ry < 1 {
		r.set(cx, cy, c)
		return
	}
	for y := cy - int(ry) - 1; y <= cy+int(ry)+1; y++ {
		for x := cx - int(rx) - 1; x <= cx+int(rx)+1; x++ {
			d := math.Hypot(float64(x-cx)/rx, float64(y-cy)/ry)
			if d <= 1 && (fill || d > 0.7) {
				r.set(x, y, c)
			}
		}
	}
}

// draw rasterises the scene onto the character grid, one glyph per layer.
func (r *LiveRenderer) draw(s scene.Scene) {
	r.sx = width / s.Width
	r.sy = height / s.Height
	for _, sh := range s.Shapes {
		c := glyphs[sh.Layer]
		switch sh.Kind {
		case scene.KindFillRect, scene.KindStrokeRect:
			x1, y1 := r.pt(sh.A)
			x2, y2 := r.pt(sh.B)
			r.rect(x1, y1, x2, y2, c, sh.Kind == scene.KindFillRect)
		case scene.KindFillCircle, scene.KindStrokeCircle:
			x, y := r.pt(sh.A)
			r.circle(x, y, sh.Radius*r.sx, sh.Radius*r.sy, c, sh.Kind == scene.KindFillCircle && sh.Layer != scene.LayerFlywheel)
		case scene.KindLine:
			x1, y1 := r.pt(sh.A)
			x2, y2 := r.pt(sh.B)
			r.line(x1, y1, x2, y2, c)
		}
	}
}

func (r *LiveRenderer) render(f engine.Frame) {
	ro := panel.Read(f)
	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  carnot  frame=%d  %s\n", f.Frame, f.Validity)
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	if ro.BannerVisible {
		for _, line := range panel.Wrap(ro.Banner, width) {
			b.WriteString("  " + line + "\n")
		}
	}
	fmt.Fprintf(&b, "  %s  %s\n", ro.Stage, ro.Efficiency)
	fmt.Fprintf(&b, "  T_H=%s T_C=%s\n", kelvin(f.Hot), kelvin(f.Cold))

	io.WriteString(r.out, b.String())
}

func (r *LiveRenderer) Start() { io.WriteString(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.out, showCursor) }

func kelvin(t engine.Temperature) string {
	if !t.Set {
		return "-"
	}
	return fmt.Sprintf("%gK", t.Value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
