package viz

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/carnot/internal/engine"
	"github.com/san-kum/carnot/internal/panel"
	"github.com/san-kum/carnot/internal/scene"
)

const (
	canvasWidth     = 40
	canvasHeight    = 35
	historyCapacity = 240
	gaugeWidth      = 24
)

type TickMsg time.Time

// Sink receives every stepped frame, such as the audio hum.
type Sink interface {
	UpdateEngine(f engine.Frame, fps int)
}

type Options struct {
	FPS     int
	Theme   string
	GIFPath string
	Audio   Sink
	Log     *slog.Logger
}

// Model is the bubbletea program: a braille rendering of the engine next to
// the status panel and the two temperature fields.
type Model struct {
	ctrl    *panel.Controller
	keys    panel.KeyMap
	fps     int
	canvas  *Canvas
	painter *CanvasPainter
	frame   engine.Frame
	volume  []float64

	gauge    harmonica.Spring
	gaugePos float64
	gaugeVel float64

	theme     Theme
	styles    Styles
	gif       *GIFRecorder
	recording bool
	gifPath   string
	showHelp  bool
	message   string

	audio Sink
	log   *slog.Logger
}

func NewModel(ctrl *panel.Controller, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "carnot.gif"
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	theme := GetTheme(opts.Theme)
	canvas := NewCanvas(canvasWidth, canvasHeight)
	m := Model{
		ctrl:    ctrl,
		keys:    panel.DefaultKeyMap(),
		fps:     opts.FPS,
		canvas:  canvas,
		painter: NewCanvasPainter(canvas),
		frame:   ctrl.Animator().Frame(),
		volume:  make([]float64, 0, historyCapacity),
		gauge:   harmonica.NewSpring(harmonica.FPS(opts.FPS), 6.0, 0.8),
		theme:   theme,
		styles:  NewStyles(theme),
		gifPath: opts.GIFPath,
		audio:   opts.Audio,
		log:     opts.Log,
	}
	m.draw()
	return m
}

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick(m.fps)
}

// Update handles keys and steps the engine. Every tick schedules the next
// one, whether or not the engine is running.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			if m.recording {
				m.toggleRecording()
			}
			return m, tea.Quit
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = NewStyles(m.theme)
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		case "backspace":
			m.ctrl.Backspace()
		default:
			if a := m.keys.Lookup(key); a != panel.ActionNone {
				m.ctrl.Apply(a)
				m.frame = m.ctrl.Frame()
				m.draw()
				break
			}
			if msg.Type == tea.KeyRunes {
				for _, r := range msg.Runes {
					m.ctrl.Type(r)
				}
			}
		}
	case TickMsg:
		m.step()
		return m, tick(m.fps)
	}
	return m, nil
}

func (m *Model) step() {
	f := m.ctrl.Step()
	m.frame = f
	m.draw()

	m.volume = append(m.volume, f.Geometry.CylinderBottom-f.Linkage.PistonBottomY)
	if len(m.volume) > historyCapacity {
		m.volume = m.volume[len(m.volume)-historyCapacity:]
	}

	m.gaugePos, m.gaugeVel = m.gauge.Update(m.gaugePos, m.gaugeVel, f.Efficiency)

	if m.audio != nil {
		m.audio.UpdateEngine(f, m.fps)
	}
	if m.recording {
		m.gif.Capture(m.canvas)
	}
}

func (m *Model) draw() {
	scene.Build(m.frame).Draw(m.painter)
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.gif = NewGIFRecorder(100 / m.fps)
		m.message = ""
		return
	}
	m.recording = false
	if err := m.gif.Save(m.gifPath); err != nil {
		m.message = "GIF not saved: " + err.Error()
		m.log.Warn("gif", "path", m.gifPath, "err", err)
	} else {
		m.message = fmt.Sprintf("saved %d frames to %s", m.gif.Len(), m.gifPath)
		m.log.Info("gif", "path", m.gifPath, "frames", m.gif.Len())
	}
	m.gif = nil
}

// Frame returns the last frame drawn.
func (m Model) Frame() engine.Frame { return m.frame }

func (m Model) field(f panel.Field) string {
	form := m.ctrl.Form()
	v := form.Value(f)
	style := m.styles.Field
	if form.Focus() == f {
		style = m.styles.FieldFocused
		v += "▏"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Label.Render(f.String()+" (K)"),
		style.Render(v),
	)
}

func (m Model) View() string {
	r := panel.Read(m.frame)
	st := m.styles

	var s strings.Builder
	s.WriteString(st.Title.Render(GradientText("CARNOT CYCLE", m.theme.Primary, m.theme.Accent)) + "\n")

	if r.BannerVisible {
		s.WriteString(st.Banner.Render(r.Banner) + "\n")
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.field(panel.FieldHot), "  ", m.field(panel.FieldCold)) + "\n\n")

	stage := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(r.StageColor.Hex())).Render(r.Stage)
	s.WriteString(st.Label.Render("Stage") + stage + "\n")
	s.WriteString(st.Label.Render("Efficiency") + st.Value.Render(r.Efficiency) + "\n")
	s.WriteString(st.Label.Render("") + ProgressBar(m.gaugePos, gaugeWidth, m.theme) + "\n")
	s.WriteString(st.Label.Render("Speed") + st.Value.Render(fmt.Sprintf("%.4f rad/frame", m.frame.Speed)) + "\n")
	s.WriteString(st.Label.Render("Crank") + st.Value.Render(fmt.Sprintf("%.1f°", m.frame.Angle*180/math.Pi)) + "\n")

	status := st.Paused.Render("PAUSED")
	if r.Running {
		status = st.Running.Render(AnimatedSpinner(m.frame.Frame) + " RUNNING")
	}
	if m.recording {
		status += "  " + st.Recording.Render(fmt.Sprintf("● REC %d", m.gif.Len()))
	}
	s.WriteString("\n" + status + "\n")

	if len(m.volume) > 1 {
		chart := asciigraph.Plot(m.volume, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("Gas column"))
		s.WriteString(st.Graph.Render(chart) + "\n")
	}
	if m.message != "" {
		s.WriteString(st.Hint.Render(m.message) + "\n")
	}
	s.WriteString("\n" + Separator(40, m.theme) + "\n")
	s.WriteString(st.Hint.Render("S:Start P:Pause U:Resume R:Reset\nSP:Toggle Tab:Field T:Theme G:Record\n?:Help Q:Quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, st.Canvas.Render(m.canvas.Render()), st.Panel.Render(s.String()))
	if m.showHelp {
		return st.Help.Render(helpText) + "\n\n" + main
	}
	return main
}

const helpText = `KEYBOARD SHORTCUTS

0-9 . - e  Type into the focused field
Backspace  Erase one character
Tab        Switch between T_H and T_C
S          Start
P          Pause
U          Resume
R          Reset (clears both fields)
Space      Pause/Resume
T          Cycle themes
G          Toggle GIF recording
?          Toggle this help
Q          Quit`

// RunInteractive runs the terminal UI until the user quits.
func RunInteractive(ctrl *panel.Controller, opts Options) error {
	p := tea.NewProgram(NewModel(ctrl, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
