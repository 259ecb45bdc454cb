package export

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/carnot/internal/analysis"
	"github.com/san-kum/carnot/internal/engine"
	"github.com/san-kum/carnot/internal/panel"
	"github.com/san-kum/carnot/internal/scene"
)

// SVGPainter writes a scene as SVG elements.
type SVGPainter struct {
	sb        strings.Builder
	gradients int
}

func (p *SVGPainter) Begin(width, height float64, bg colorful.Color) {
	p.sb.Reset()
	p.gradients = 0
	p.sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg.Hex()))
}

// fill returns the fill attribute for paint, defining a gradient if needed.
func (p *SVGPainter) fill(pt scene.Paint) string {
	if !pt.Graded() {
		return fmt.Sprintf(`fill="%s" fill-opacity="%.2f"`, pt.Top.Hex(), pt.Alpha)
	}
	p.gradients++
	id := fmt.Sprintf("g%d", p.gradients)
	p.sb.WriteString(fmt.Sprintf(`<defs><linearGradient id="%s" x1="0" y1="0" x2="0" y2="1"><stop offset="0" stop-color="%s"/><stop offset="1" stop-color="%s"/></linearGradient></defs>
`, id, pt.Top.Hex(), pt.Bottom.Hex()))
	return fmt.Sprintf(`fill="url(#%s)" fill-opacity="%.2f"`, id, pt.Alpha)
}

func stroke(pt scene.Paint, width float64) string {
	return fmt.Sprintf(`fill="none" stroke="%s" stroke-opacity="%.2f" stroke-width="%.1f"`, pt.Top.Hex(), pt.Alpha, width)
}

func (p *SVGPainter) FillRect(min, max engine.Point, corner float64, pt scene.Paint) {
	attr := p.fill(pt)
	p.sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" %s/>
`, min.X, min.Y, max.X-min.X, max.Y-min.Y, corner, attr))
}

func (p *SVGPainter) StrokeRect(min, max engine.Point, width float64, pt scene.Paint) {
	p.sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" %s/>
`, min.X, min.Y, max.X-min.X, max.Y-min.Y, stroke(pt, width)))
}

func (p *SVGPainter) FillCircle(c engine.Point, r float64, pt scene.Paint) {
	attr := p.fill(pt)
	p.sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" %s/>
`, c.X, c.Y, r, attr))
}

func (p *SVGPainter) StrokeCircle(c engine.Point, r, width float64, pt scene.Paint) {
	p.sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" %s/>
`, c.X, c.Y, r, stroke(pt, width)))
}

func (p *SVGPainter) Line(a, b engine.Point, width float64, pt scene.Paint) {
	p.sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke-linecap="round" %s/>
`, a.X, a.Y, b.X, b.Y, stroke(pt, width)))
}

func (p *SVGPainter) End() {
	p.sb.WriteString("</svg>\n")
}

func (p *SVGPainter) String() string { return p.sb.String() }

// SceneToSVG renders a display list on its own.
func SceneToSVG(s scene.Scene) string {
	var p SVGPainter
	s.Draw(&p)
	return p.String()
}

// FrameToSVG renders the scene of f with the status readout written over the
// top-left corner.
func FrameToSVG(f engine.Frame) string {
	out := SceneToSVG(scene.Build(f))
	r := panel.Read(f)

	var sb strings.Builder
	sb.WriteString(`<g font-family="monospace" font-size="14">` + "\n")
	y := 24
	if r.BannerVisible {
		sb.WriteString(fmt.Sprintf(`<text x="12" y="%d" fill="%s">%s</text>`+"\n", y, scene.ColdAccent.Hex(), escape(r.Banner)))
		y += 20
	}
	sb.WriteString(fmt.Sprintf(`<text x="12" y="%d" fill="%s">%s</text>`+"\n", y, r.StageColor.Hex(), escape(r.Stage)))
	sb.WriteString(fmt.Sprintf(`<text x="12" y="%d" fill="%s">%s</text>`+"\n", y+20, scene.LabelActive.Hex(), escape(r.Efficiency)))
	sb.WriteString("</g>\n")

	return strings.Replace(out, "</svg>\n", sb.String()+"</svg>\n", 1)
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

// TrajectoryToSVG draws a phase portrait as a single polyline.
func TrajectoryToSVG(points []analysis.Point2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, scene.Background.Hex(), strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		// screen y already grows downwards
		y := (p.Y - minY) / rangeY * float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>` + "\n</svg>\n")
	return sb.String()
}
