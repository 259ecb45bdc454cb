package scene

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/carnot/internal/engine"
)

func frameAt(t *testing.T, hot, cold string, angle float64) engine.Frame {
	t.Helper()
	a, err := engine.New(engine.DefaultParams(), 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.SetInputs(engine.Inputs{Hot: hot, Cold: cold})
	f := a.Step()
	f.Angle = angle
	f.Stage = engine.Classify(angle)
	f.Linkage = f.Geometry.Solve(angle)
	return f
}

func layers(s Scene) []Layer {
	var out []Layer
	for _, sh := range s.Shapes {
		if len(out) == 0 || out[len(out)-1] != sh.Layer {
			out = append(out, sh.Layer)
		}
	}
	return out
}

func TestBuildOrder(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  []Layer
	}{
		{"isothermal", 0.1, []Layer{LayerReservoir, LayerGas, LayerCylinder, LayerParticles, LayerFlywheel, LayerRod, LayerPiston, LayerCrank}},
		{"adiabatic", math.Pi/2 + 0.1, []Layer{LayerGas, LayerCylinder, LayerParticles, LayerFlywheel, LayerRod, LayerPiston, LayerCrank}},
		{"isothermal expansion", math.Pi + 0.1, []Layer{LayerReservoir, LayerGas, LayerCylinder, LayerParticles, LayerFlywheel, LayerRod, LayerPiston, LayerCrank}},
		{"adiabatic expansion", 1.5*math.Pi + 0.1, []Layer{LayerGas, LayerCylinder, LayerParticles, LayerFlywheel, LayerRod, LayerPiston, LayerCrank}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := layers(Build(frameAt(t, "400", "300", tt.angle)))
			if len(got) != len(tt.want) {
				t.Fatalf("layers = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("layers = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestBuildParticles(t *testing.T) {
	f := frameAt(t, "400", "300", 0.3)
	s := Build(f)
	ps := s.Layer(LayerParticles)
	if len(ps) != engine.ParticleCount {
		t.Fatalf("expected %d particles, got %d", engine.ParticleCount, len(ps))
	}
	for i, sh := range ps {
		if sh.A.X != f.Particles[i].X || sh.Radius != f.Particles[i].Size {
			t.Errorf("particle %d drawn at wrong place", i)
		}
	}
}

func TestBuildThemeColours(t *testing.T) {
	tests := []struct {
		name      string
		hot, cold string
		angle     float64
		particle  colorful.Color
		rod       colorful.Color
	}{
		{"compression is cold", "400", "300", 0.2, ColdAccent, ColdAccent},
		{"expansion is hot", "400", "300", math.Pi + 0.2, HotBox, HotRod},
		{"halted keeps hot colours", "300", "400", 0.2, HotBox, HotRod},
		{"waiting keeps hot colours", "", "", 0.2, HotBox, HotRod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Build(frameAt(t, tt.hot, tt.cold, tt.angle))
			if got := s.Layer(LayerParticles)[0].Paint.Top; got != tt.particle {
				t.Errorf("particle colour = %s, want %s", got.Hex(), tt.particle.Hex())
			}
			if got := s.Layer(LayerRod)[0].Paint.Top; got != tt.rod {
				t.Errorf("rod colour = %s, want %s", got.Hex(), tt.rod.Hex())
			}
			if got := s.Layer(LayerCrank)[0].Paint.Top; got != CrankArm {
				t.Errorf("crank colour = %s, want fixed red", got.Hex())
			}
		})
	}
}

func TestBuildGasBoundedByPiston(t *testing.T) {
	f := frameAt(t, "400", "300", 2.0)
	gas := Build(f).Layer(LayerGas)[0]
	if gas.A.Y != f.Linkage.PistonBottomY {
		t.Errorf("gas top = %f, want piston face %f", gas.A.Y, f.Linkage.PistonBottomY)
	}
	if gas.B.Y != f.Geometry.CylinderBottom {
		t.Errorf("gas bottom = %f, want %f", gas.B.Y, f.Geometry.CylinderBottom)
	}
	if gas.Paint.Alpha != GasAlpha {
		t.Errorf("gas alpha = %f", gas.Paint.Alpha)
	}
}

func TestReservoirGradient(t *testing.T) {
	box := Build(frameAt(t, "400", "300", 0.1)).Layer(LayerReservoir)[0]
	if !box.Paint.Graded() {
		t.Fatal("reservoir should be a gradient")
	}
	if box.Paint.At(0).Hex() != ColdAccent.Hex() || box.Paint.At(1).Hex() != ReservoirShadow.Hex() {
		t.Errorf("unexpected gradient ends %s..%s", box.Paint.At(0).Hex(), box.Paint.At(1).Hex())
	}
	if w := box.B.X - box.A.X; w != engine.ReservoirWidth {
		t.Errorf("reservoir width = %f", w)
	}
}

type recorder struct {
	calls []string
}

func (r *recorder) Begin(w, h float64, bg colorful.Color) { r.calls = append(r.calls, "begin") }
func (r *recorder) FillRect(min, max engine.Point, corner float64, p Paint) {
	r.calls = append(r.calls, "fillrect")
}
func (r *recorder) StrokeRect(min, max engine.Point, w float64, p Paint) {
	r.calls = append(r.calls, "strokerect")
}
func (r *recorder) FillCircle(c engine.Point, rad float64, p Paint) {
	r.calls = append(r.calls, "fillcircle")
}
func (r *recorder) StrokeCircle(c engine.Point, rad, w float64, p Paint) {
	r.calls = append(r.calls, "strokecircle")
}
func (r *recorder) Line(a, b engine.Point, w float64, p Paint) { r.calls = append(r.calls, "line") }
func (r *recorder) End()                                       { r.calls = append(r.calls, "end") }

func TestDrawReplaysEveryShape(t *testing.T) {
	s := Build(frameAt(t, "400", "300", 0.1))
	var r recorder
	s.Draw(&r)

	if len(r.calls) != len(s.Shapes)+2 {
		t.Fatalf("expected %d calls, got %d", len(s.Shapes)+2, len(r.calls))
	}
	if r.calls[0] != "begin" || r.calls[len(r.calls)-1] != "end" {
		t.Errorf("draw not bracketed by begin/end: %v", r.calls)
	}
	if r.calls[1] != "fillrect" {
		t.Errorf("first shape should be the reservoir, got %s", r.calls[1])
	}
}

func TestPaletteHex(t *testing.T) {
	tests := []struct {
		name string
		c    colorful.Color
		hex  string
	}{
		{"background", Background, "#121212"},
		{"cold accent", ColdAccent, "#3498db"},
		{"crank arm", CrankArm, "#e74c3c"},
		{"piston", PistonBody, "#f1c40f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Hex(); got != tt.hex {
				t.Errorf("expected %s, got %s", tt.hex, got)
			}
		})
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on malformed hex")
		}
	}()
	mustHex("not a colour")
}
