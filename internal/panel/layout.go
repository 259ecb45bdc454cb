package panel

import "github.com/san-kum/carnot/internal/engine"

// SideWidth is the width of the control column to the right of the scene.
const SideWidth = 280.0

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

type Button struct {
	Action Action
	Label  string
	Rect   Rect
}

// Layout places the window controls next to a scene of the given geometry.
type Layout struct {
	Width, Height float64
	Banner        Rect
	Stage         Rect
	Efficiency    Rect
	Fields        [2]Rect
	Buttons       []Button
}

func NewLayout(g engine.Geometry) Layout {
	x := g.Width + 20
	w := SideWidth - 40
	l := Layout{
		Width:      g.Width + SideWidth,
		Height:     g.Height,
		Banner:     Rect{X: x, Y: 20, W: w, H: 80},
		Stage:      Rect{X: x, Y: 110, W: w, H: 24},
		Efficiency: Rect{X: x, Y: 140, W: w, H: 24},
	}
	l.Fields[FieldHot] = Rect{X: x, Y: 200, W: w, H: 36}
	l.Fields[FieldCold] = Rect{X: x, Y: 260, W: w, H: 36}

	y := 330.0
	for _, b := range []struct {
		a     Action
		label string
	}{
		{ActionStart, "Start"},
		{ActionPause, "Pause"},
		{ActionResume, "Resume"},
		{ActionReset, "Reset"},
	} {
		l.Buttons = append(l.Buttons, Button{Action: b.a, Label: b.label, Rect: Rect{X: x, Y: y, W: w, H: 36}})
		y += 48
	}
	return l
}

type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetField
	TargetButton
)

// Target is what a pointer position lands on.
type Target struct {
	Kind   TargetKind
	Field  Field
	Action Action
}

func (l Layout) Hit(x, y float64) Target {
	for i, r := range l.Fields {
		if r.Contains(x, y) {
			return Target{Kind: TargetField, Field: Field(i)}
		}
	}
	for _, b := range l.Buttons {
		if b.Rect.Contains(x, y) {
			return Target{Kind: TargetButton, Action: b.Action}
		}
	}
	return Target{}
}
