package analysis

import (
	"strings"

	"github.com/san-kum/carnot/internal/storage"
)

type Point2 struct{ X, Y float64 }

// PhasePortrait2D holds crank angle (X) against piston pin position (Y).
type PhasePortrait2D struct {
	Points []Point2
}

// NewPhasePortrait collects the animated frames of a run. Frames where the
// engine did not move are left out so a long pause does not dominate the plot.
func NewPhasePortrait(samples []storage.Sample) *PhasePortrait2D {
	p := &PhasePortrait2D{Points: make([]Point2, 0, len(samples))}
	for _, s := range samples {
		if !s.Running || s.Validity != "valid" {
			continue
		}
		p.Points = append(p.Points, Point2{X: s.Angle, Y: s.PistonY})
	}
	return p
}

// PhasePortraitToASCII plots the portrait on a width×height character grid.
// Screen y grows downwards, so the piston's highest position is the top row.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
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

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := int((p.Y - minY) / rangeY * float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// CrossingPeriod averages the number of frames between successive wraps of
// the crank angle through zero. It needs at least two wraps.
func CrossingPeriod(samples []storage.Sample) (float64, error) {
	var wraps []uint64
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		if cur.Running && cur.Validity == "valid" && cur.Angle < prev.Angle && prev.Angle-cur.Angle > 3 {
			wraps = append(wraps, cur.Frame)
		}
	}
	if len(wraps) < 2 {
		return 0, ErrTooShort
	}
	return float64(wraps[len(wraps)-1]-wraps[0]) / float64(len(wraps)-1), nil
}
