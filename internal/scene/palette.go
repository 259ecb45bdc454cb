package scene

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/carnot/internal/engine"
)

// Fixed scene colours.
var (
	Background      = mustHex("#121212")
	ColdAccent      = mustHex("#3498db")
	HotBox          = mustHex("#e67e22")
	HotRod          = mustHex("#777777")
	ReservoirShadow = mustHex("#1a1a1a")
	GasTint         = colorful.Color{R: 100.0 / 255, G: 100.0 / 255, B: 1}
	CylinderWall    = mustHex("#444444")
	FlywheelDisk    = mustHex("#333333")
	FlywheelRim     = mustHex("#555555")
	FlywheelCross   = mustHex("#444444")
	PistonBody      = mustHex("#f1c40f")
	CrankArm        = mustHex("#e74c3c")
	LabelActive     = mustHex("#ffffff")
	LabelNeutral    = mustHex("#888888")
)

const GasAlpha = 0.05

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Palette is the pair of stage-dependent colours for one frame.
type Palette struct {
	Box colorful.Color
	Rod colorful.Color
}

// PaletteFor picks the stage colours. Frames without a valid reading keep the
// hot colours, matching a stopped engine.
func PaletteFor(f engine.Frame) Palette {
	if f.Validity == engine.Valid && f.Stage.Theme() == engine.ThemeCold {
		return Palette{Box: ColdAccent, Rod: ColdAccent}
	}
	return Palette{Box: HotBox, Rod: HotRod}
}

// Blend composites c over bg with the given opacity.
func Blend(bg, c colorful.Color, alpha float64) colorful.Color {
	return bg.BlendRgb(c, alpha).Clamped()
}
