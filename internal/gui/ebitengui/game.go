// Package ebitengui is the ebiten window backend. It draws the same scene
// and panel as the raylib backend without cgo.
package ebitengui

import (
	"fmt"
	"log/slog"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/carnot/internal/engine"
	"github.com/san-kum/carnot/internal/panel"
	"github.com/san-kum/carnot/internal/scene"
)

// Sink receives every stepped frame, such as the audio hum.
type Sink interface {
	UpdateEngine(f engine.Frame, fps int)
}

type Options struct {
	FPS   int
	Audio Sink
	Log   *slog.Logger
}

// Game implements ebiten.Game. Each Update is one engine frame.
type Game struct {
	ctrl   *panel.Controller
	layout panel.Layout
	keys   panel.KeyMap
	fps    int
	audio  Sink
	log    *slog.Logger
	frame  engine.Frame
	chars  []rune
	ticks  int
}

func NewGame(ctrl *panel.Controller, opts Options) *Game {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	return &Game{
		ctrl:   ctrl,
		layout: panel.NewLayout(ctrl.Animator().Params().Geometry),
		keys:   panel.DefaultKeyMap(),
		fps:    opts.FPS,
		audio:  opts.Audio,
		log:    opts.Log,
		frame:  ctrl.Frame(),
	}
}

// Run opens the window and blocks until it is closed.
func Run(ctrl *panel.Controller, opts Options) error {
	g := NewGame(ctrl, opts)
	ebiten.SetWindowSize(int(g.layout.Width), int(g.layout.Height))
	ebiten.SetWindowTitle("Carnot Cycle")
	ebiten.SetTPS(g.fps)
	g.log.Info("window opened", "backend", "ebiten", "width", g.layout.Width, "height", g.layout.Height)
	return ebiten.RunGame(g)
}

// HandleRune types r into the focused field, or runs the action bound to it.
func (g *Game) HandleRune(r rune) {
	if g.ctrl.Type(r) {
		return
	}
	if a := g.keys.Lookup(string(unicode.ToLower(r))); a != panel.ActionNone {
		g.ctrl.Apply(a)
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.ctrl.Click(g.layout, float64(x), float64(y))
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		g.HandleRune(r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.ctrl.Backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.ctrl.Apply(panel.ActionFocusNext)
	}

	g.Step()
	return nil
}

// Step advances the engine one frame outside of input handling.
func (g *Game) Step() engine.Frame {
	g.frame = g.ctrl.Step()
	g.ticks++
	if g.audio != nil {
		g.audio.UpdateEngine(g.frame, g.fps)
	}
	return g.frame
}

func (g *Game) Draw(screen *ebiten.Image) {
	scene.Build(g.frame).Draw(VectorPainter{Dst: screen})
	g.drawPanel(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.layout.Width), int(g.layout.Height)
}

func rectF(r panel.Rect) (float32, float32, float32, float32) {
	return float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
}

// drawPanel uses the debug font, which is always white; colour is carried by
// swatches and borders instead.
func (g *Game) drawPanel(screen *ebiten.Image) {
	l := g.layout
	geo := g.frame.Geometry
	vector.DrawFilledRect(screen, float32(geo.Width), 0, float32(l.Width-geo.Width), float32(l.Height),
		toColor(scene.ReservoirShadow, 1), false)

	r := panel.Read(g.frame)
	if r.BannerVisible {
		y := int(l.Banner.Y)
		for _, line := range panel.Wrap(r.Banner, 38) {
			ebitenutil.DebugPrintAt(screen, line, int(l.Banner.X), y)
			y += 16
		}
	}

	x, y, _, h := rectF(l.Stage)
	vector.DrawFilledRect(screen, x, y+2, 10, h-8, toColor(r.StageColor, 1), false)
	ebitenutil.DebugPrintAt(screen, r.Stage, int(l.Stage.X)+16, int(l.Stage.Y))
	ebitenutil.DebugPrintAt(screen, "Efficiency: "+r.Efficiency, int(l.Efficiency.X), int(l.Efficiency.Y))

	form := g.ctrl.Form()
	for i, fr := range l.Fields {
		f := panel.Field(i)
		ebitenutil.DebugPrintAt(screen, f.String()+" (K)", int(fr.X), int(fr.Y)-18)
		x, y, w, h := rectF(fr)
		border, v := scene.CylinderWall, form.Value(f)
		if form.Focus() == f {
			border = scene.LabelActive
			if g.ticks/(g.fps/2+1)%2 == 0 {
				v += "_"
			}
		}
		vector.StrokeRect(screen, x, y, w, h, 2, toColor(border, 1), false)
		ebitenutil.DebugPrintAt(screen, v, int(fr.X)+8, int(fr.Y)+10)
	}

	for _, b := range l.Buttons {
		x, y, w, h := rectF(b.Rect)
		vector.DrawFilledRect(screen, x, y, w, h, toColor(scene.FlywheelDisk, 1), false)
		vector.StrokeRect(screen, x, y, w, h, 1, toColor(scene.CylinderWall, 1), false)
		ebitenutil.DebugPrintAt(screen, b.Label, int(b.Rect.X)+12, int(b.Rect.Y)+10)
	}

	status := "PAUSED"
	if g.frame.Running {
		status = "RUNNING"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  %.0f TPS", status, ebiten.ActualTPS()), int(l.Fields[0].X), int(l.Height)-40)
}
