package gui

import (
	"fmt"
	"log/slog"
	"os"
	"unicode"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/carnot/internal/engine"
	"github.com/san-kum/carnot/internal/panel"
	"github.com/san-kum/carnot/internal/scene"
)

// Panel colors
var (
	ColPanel   = rl.NewColor(24, 24, 24, 255)
	ColText    = rl.NewColor(200, 200, 200, 255)
	ColTextDim = rl.NewColor(110, 110, 110, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColField   = rl.NewColor(36, 36, 36, 255)
	ColButton  = rl.NewColor(48, 48, 48, 255)
	ColHover   = rl.NewColor(70, 70, 70, 255)
	ColBanner  = rl.NewColor(243, 156, 18, 255)
)

const fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

// Sink receives every stepped frame, such as the audio hum.
type Sink interface {
	UpdateEngine(f engine.Frame, fps int)
}

type Options struct {
	FPS   int
	Audio Sink
	Log   *slog.Logger
}

// App is the raylib window: the scene on the left, fields and buttons on the
// right.
type App struct {
	Ctrl    *panel.Controller
	Layout  panel.Layout
	Painter Painter
	Keys    panel.KeyMap
	Font    rl.Font
	FPS     int
	Audio   Sink
	log     *slog.Logger
	frame   engine.Frame
}

func initWindow(l panel.Layout, fps int) {
	rl.InitWindow(int32(l.Width), int32(l.Height), "Carnot Cycle")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(rl.KeyEscape)
}

// loadFont falls back to the raylib default when Liberation Mono is missing.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(ctrl *panel.Controller, opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	return &App{
		Ctrl:   ctrl,
		Layout: panel.NewLayout(ctrl.Animator().Params().Geometry),
		Keys:   panel.DefaultKeyMap(),
		Font:   loadFont(),
		FPS:    opts.FPS,
		Audio:  opts.Audio,
		log:    opts.Log,
		frame:  ctrl.Frame(),
	}
}

// Run opens the window and blocks until it is closed.
func Run(ctrl *panel.Controller, opts Options) error {
	l := panel.NewLayout(ctrl.Animator().Params().Geometry)
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	initWindow(l, fps)
	defer rl.CloseWindow()
	app := NewApp(ctrl, opts)
	app.log.Info("window opened", "backend", "raylib", "width", l.Width, "height", l.Height)
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// Update routes input to the controller and steps the engine once.
func (a *App) Update() {
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		m := rl.GetMousePosition()
		a.Ctrl.Click(a.Layout, float64(m.X), float64(m.Y))
	}

	for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
		r := rune(c)
		if a.Ctrl.Type(r) {
			continue
		}
		if act := a.Keys.Lookup(string(unicode.ToLower(r))); act != panel.ActionNone {
			a.Ctrl.Apply(act)
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		a.Ctrl.Backspace()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.Ctrl.Apply(panel.ActionFocusNext)
	}

	a.frame = a.Ctrl.Step()
	if a.Audio != nil {
		a.Audio.UpdateEngine(a.frame, a.FPS)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	scene.Build(a.frame).Draw(a.Painter)
	a.drawPanel()
	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y float64, size float32, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), size, 1, color)
}

func rec(r panel.Rect) rl.Rectangle {
	return rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.W), float32(r.H))
}

func (a *App) drawPanel() {
	l := a.Layout
	g := a.frame.Geometry
	rl.DrawRectangle(int32(g.Width), 0, int32(l.Width-g.Width), int32(l.Height), ColPanel)

	r := panel.Read(a.frame)
	if r.BannerVisible {
		y := l.Banner.Y
		for _, line := range panel.Wrap(r.Banner, 26) {
			a.drawText(line, l.Banner.X, y, 16, ColBanner)
			y += 18
		}
	}

	a.drawText(r.Stage, l.Stage.X, l.Stage.Y, 20, toColor(r.StageColor, 1))
	a.drawText("Efficiency: "+r.Efficiency, l.Efficiency.X, l.Efficiency.Y, 20, ColText)

	form := a.Ctrl.Form()
	for i, fr := range l.Fields {
		f := panel.Field(i)
		a.drawText(f.String()+" (K)", fr.X, fr.Y-20, 16, ColTextDim)
		rl.DrawRectangleRec(rec(fr), ColField)
		border, v := ColTextDim, form.Value(f)
		if form.Focus() == f {
			border = ColSelect
			if int(rl.GetTime()*2)%2 == 0 {
				v += "_"
			}
		}
		rl.DrawRectangleLinesEx(rec(fr), 2, border)
		a.drawText(v, fr.X+8, fr.Y+8, 20, ColSelect)
	}

	m := rl.GetMousePosition()
	for _, b := range l.Buttons {
		col := ColButton
		if b.Rect.Contains(float64(m.X), float64(m.Y)) {
			col = ColHover
		}
		rl.DrawRectangleRounded(rec(b.Rect), 0.3, 8, col)
		a.drawText(b.Label, b.Rect.X+12, b.Rect.Y+9, 18, ColText)
	}

	status, col := "PAUSED", ColTextDim
	if a.frame.Running {
		status, col = "RUNNING", ColSelect
	}
	a.drawText(status, l.Fields[0].X, l.Height-60, 16, col)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), l.Fields[0].X, l.Height-36, 14, ColTextDim)
}
