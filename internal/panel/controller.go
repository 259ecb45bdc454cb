package panel

import (
	"log/slog"

	"github.com/san-kum/carnot/internal/engine"
)

// Controller connects the form and the control actions to an animator. Every
// surface (terminal, window) drives the engine through one of these.
type Controller struct {
	anim   *engine.Animator
	form   *Form
	log    *slog.Logger
	last   engine.Validity
	status engine.Status
	frame  engine.Frame
}

func NewController(anim *engine.Animator, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	f := anim.Frame()
	return &Controller{
		anim:   anim,
		form:   NewForm(anim.Inputs()),
		log:    log,
		last:   f.Validity,
		status: f.Status,
		frame:  f,
	}
}

func (c *Controller) Animator() *engine.Animator { return c.anim }
func (c *Controller) Form() *Form                { return c.form }

// Apply performs one control action.
func (c *Controller) Apply(a Action) {
	switch a {
	case ActionStart:
		c.anim.Start()
	case ActionPause:
		c.anim.Pause()
	case ActionResume:
		c.anim.Resume()
	case ActionReset:
		c.anim.Reset()
		c.form.Clear()
	case ActionToggle:
		if c.anim.Running() {
			c.anim.Pause()
		} else {
			c.anim.Resume()
		}
	case ActionFocusNext:
		c.form.FocusNext()
		return
	default:
		return
	}
	c.frame = c.anim.Frame()
	c.log.Info("control", "action", a.String(), "running", c.anim.Running())
}

// Type feeds a rune to the focused field.
func (c *Controller) Type(r rune) bool {
	if !c.form.Type(r) {
		return false
	}
	c.sync()
	return true
}

func (c *Controller) Backspace() {
	c.form.Backspace()
	c.sync()
}

func (c *Controller) SetField(f Field, v string) {
	c.form.Set(f, v)
	c.sync()
}

func (c *Controller) SetInputs(in engine.Inputs) {
	c.form.Set(FieldHot, in.Hot)
	c.form.Set(FieldCold, in.Cold)
	c.sync()
}

func (c *Controller) sync() { c.anim.SetInputs(c.form.Inputs()) }

// Click routes a pointer press through the layout.
func (c *Controller) Click(l Layout, x, y float64) Target {
	t := l.Hit(x, y)
	switch t.Kind {
	case TargetField:
		c.form.SetFocus(t.Field)
	case TargetButton:
		c.Apply(t.Action)
	}
	return t
}

// Step advances the engine one frame and logs validity changes.
func (c *Controller) Step() engine.Frame {
	f := c.anim.Step()
	c.Observe(f)
	return f
}

// Observe records a frame produced elsewhere, such as by a loop.Runner.
func (c *Controller) Observe(f engine.Frame) {
	if f.Validity != c.last {
		c.log.Info("validity", "from", c.last.String(), "to", f.Validity.String(),
			"hot", f.Hot.Value, "cold", f.Cold.Value, "efficiency", f.Efficiency)
		c.last = f.Validity
	}
	if f.Status != c.status {
		c.log.Debug("banner", "status", f.Status.String())
		c.status = f.Status
	}
	c.frame = f
}

// Frame is the last frame stepped or observed.
func (c *Controller) Frame() engine.Frame { return c.frame }

func (c *Controller) Readout() Readout { return Read(c.frame) }
