package panel

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/carnot/internal/engine"
	"github.com/san-kum/carnot/internal/scene"
)

const (
	BannerWaiting = "WAITING: Enter temperatures to start."
	BannerHalted  = "HALTED: The hot reservoir temperature must be higher than the cold reservoir temperature."
	BannerReset   = "RESET COMPLETE: Please enter T_H and T_C values to begin."

	NoGradient = "No Temperature Gradient"
)

// Readout is everything the status surface shows for one frame.
type Readout struct {
	Banner        string
	BannerVisible bool
	Stage         string
	StageColor    colorful.Color
	Efficiency    string
	Running       bool
	Validity      engine.Validity
}

func BannerText(s engine.Status) string {
	switch s {
	case engine.StatusWaiting:
		return BannerWaiting
	case engine.StatusHalted:
		return BannerHalted
	case engine.StatusReset:
		return BannerReset
	}
	return ""
}

// FormatEfficiency renders a fraction as a percentage with one decimal.
func FormatEfficiency(eff float64) string {
	return fmt.Sprintf("%.1f%%", eff*100)
}

func Read(f engine.Frame) Readout {
	r := Readout{
		Banner:        BannerText(f.Status),
		BannerVisible: f.Status != engine.StatusNone,
		Running:       f.Running,
		Validity:      f.Validity,
		Stage:         NoGradient,
		StageColor:    scene.LabelNeutral,
		Efficiency:    FormatEfficiency(0),
	}
	if f.Validity == engine.Valid {
		r.Stage = f.Stage.Label()
		r.StageColor = scene.LabelActive
		r.Efficiency = FormatEfficiency(f.Efficiency)
	}
	return r
}

// Accent is the theme colour of the current stage, used for highlights.
func Accent(f engine.Frame) colorful.Color {
	return scene.PaletteFor(f).Box
}
