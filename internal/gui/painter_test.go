package gui

import (
	"testing"

	"github.com/san-kum/carnot/internal/scene"
)

func TestToColor(t *testing.T) {
	c := toColor(scene.ColdAccent, 1)
	if c.R != 0x34 || c.G != 0x98 || c.B != 0xdb || c.A != 255 {
		t.Errorf("unexpected colour %+v", c)
	}
	if got := toColor(scene.GasTint, scene.GasAlpha).A; got != 13 {
		t.Errorf("expected alpha 13, got %d", got)
	}
}
