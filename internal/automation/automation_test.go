package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/carnot/internal/engine"
	"github.com/san-kum/carnot/internal/loop"
	"github.com/san-kum/carnot/internal/panel"
)

const demo = `
name: demo
hot: "400"
cold: "300"
frames: 300
seed: 4
steps:
  - frame: 200
    action: reset
  - frame: 10
    action: start
  - frame: 100
    action: set
    cold: "400"
  - frame: 150
    action: set
    cold: "300"
  - frame: 180
    action: pause
`

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(demo))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if s.Name != "demo" || s.Frames != 300 || len(s.Steps) != 5 {
		t.Fatalf("unexpected scenario %+v", s)
	}
	for i := 1; i < len(s.Steps); i++ {
		if s.Steps[i-1].Frame > s.Steps[i].Frame {
			t.Fatal("steps not sorted by frame")
		}
	}
	if s.Steps[1].Cold == nil || *s.Steps[1].Cold != "400" {
		t.Errorf("set step lost its value")
	}
}

func TestValidate(t *testing.T) {
	cold := "1"
	tests := []struct {
		name   string
		s      Scenario
		target error
	}{
		{"no frames", Scenario{}, ErrNoFrames},
		{"late step", Scenario{Frames: 5, Steps: []Step{{Frame: 5, Action: "start"}}}, ErrStepFrame},
		{"empty set", Scenario{Frames: 5, Steps: []Step{{Frame: 1, Action: "set"}}}, ErrSetMissing},
		{"unknown", Scenario{Frames: 5, Steps: []Step{{Frame: 1, Action: "warp"}}}, panel.ErrUnknownAction},
		{"ok", Scenario{Frames: 5, Steps: []Step{{Frame: 1, Action: "set", Cold: &cold}}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.target == nil {
				if err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte(demo), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}
}

func TestRunScenario(t *testing.T) {
	s, err := ParseScenario([]byte(demo))
	if err != nil {
		t.Fatal(err)
	}

	var frames []engine.Frame
	res, err := RunScenario(context.Background(), s, engine.DefaultParams(), nil,
		loop.ObserverFunc(func(f engine.Frame) { frames = append(frames, f) }))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Frames != 300 || len(res.Samples) != 300 || len(frames) != 300 {
		t.Fatalf("expected 300 frames, got %d/%d/%d", res.Frames, len(res.Samples), len(frames))
	}

	// frames 0..9 are paused with valid inputs
	if frames[5].Angle != engine.NeutralAngle || frames[5].Status != engine.StatusNone {
		t.Errorf("frame 5 should be paused and valid: %+v", frames[5].State)
	}
	if frames[50].Angle == engine.NeutralAngle {
		t.Error("engine should be turning at frame 50")
	}
	if frames[120].Validity != engine.Halted || frames[120].Angle != engine.NeutralAngle {
		t.Errorf("frame 120 should be halted at neutral")
	}
	if frames[160].Validity != engine.Valid || !frames[160].Running {
		t.Errorf("frame 160 should be running again")
	}
	a, b := frames[185].Angle, frames[195].Angle
	if a != b {
		t.Errorf("paused engine moved between 185 and 195: %f -> %f", a, b)
	}
	last := res.Last
	if last.Status != engine.StatusReset || last.Running || last.Angle != engine.NeutralAngle {
		t.Errorf("run should end reset: %+v", last.State)
	}
	if res.Metrics["halted_fraction"] <= 0 {
		t.Errorf("halted fraction not recorded: %v", res.Metrics)
	}
}

func TestRunScenarioCancelled(t *testing.T) {
	s := &Scenario{Hot: "400", Cold: "300", Frames: 100}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunScenario(ctx, s, engine.DefaultParams(), nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
