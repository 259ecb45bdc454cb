package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/san-kum/carnot/internal/engine"
	"github.com/san-kum/carnot/internal/loop"
	"github.com/san-kum/carnot/internal/metrics"
	"github.com/san-kum/carnot/internal/panel"
	"github.com/san-kum/carnot/internal/storage"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoFrames   = errors.New("automation: scenario needs a positive frame count")
	ErrStepFrame  = errors.New("automation: step frame beyond scenario end")
	ErrSetMissing = errors.New("automation: set step needs hot or cold")
)

// Scenario scripts inputs and control actions against one engine.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Hot         string `yaml:"hot"`
	Cold        string `yaml:"cold"`
	Frames      int    `yaml:"frames"`
	Seed        int64  `yaml:"seed"`
	Steps       []Step `yaml:"steps"`
	SaveAs      string `yaml:"save_as"`
}

// Step is applied before the frame with the given index is stepped.
type Step struct {
	Frame  uint64  `yaml:"frame"`
	Action string  `yaml:"action"`
	Hot    *string `yaml:"hot"`
	Cold   *string `yaml:"cold"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(scenario.Steps, func(i, j int) bool {
		return scenario.Steps[i].Frame < scenario.Steps[j].Frame
	})
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if s.Frames <= 0 {
		return ErrNoFrames
	}
	for i, st := range s.Steps {
		if st.Frame >= uint64(s.Frames) {
			return fmt.Errorf("step %d: %w (%d >= %d)", i+1, ErrStepFrame, st.Frame, s.Frames)
		}
		if st.Action == "set" {
			if st.Hot == nil && st.Cold == nil {
				return fmt.Errorf("step %d: %w", i+1, ErrSetMissing)
			}
			continue
		}
		if _, err := panel.ParseAction(st.Action); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

type Result struct {
	Frames  uint64
	Last    engine.Frame
	Metrics map[string]float64
	Samples []storage.Sample
}

// RunScenario plays the scenario headless, as fast as frames can be stepped.
// Extra observers see every frame after the recorder.
func RunScenario(ctx context.Context, s *Scenario, params engine.Params, log *slog.Logger, observers ...loop.Observer) (*Result, error) {
	anim, err := engine.New(params, s.Seed)
	if err != nil {
		return nil, err
	}
	ctrl := panel.NewController(anim, log)
	ctrl.SetInputs(engine.Inputs{Hot: s.Hot, Cold: s.Cold})

	runner, err := loop.New(ctrl, 60)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Default() {
		runner.AddMetric(m)
	}
	rec := storage.NewRecorder(0)
	runner.AddObserver(rec)
	for _, o := range observers {
		runner.AddObserver(o)
	}

	next := 0
	runner.AddHook(func(n uint64) {
		for next < len(s.Steps) && s.Steps[next].Frame == n {
			apply(ctrl, s.Steps[next], log)
			next++
		}
	})

	res, err := runner.RunFrames(ctx, s.Frames)
	if err != nil {
		return nil, err
	}
	return &Result{
		Frames:  res.Frames,
		Last:    res.Last,
		Metrics: res.Metrics,
		Samples: rec.Samples(),
	}, nil
}

func apply(ctrl *panel.Controller, st Step, log *slog.Logger) {
	if st.Action == "set" {
		in := ctrl.Form().Inputs()
		if st.Hot != nil {
			in.Hot = *st.Hot
		}
		if st.Cold != nil {
			in.Cold = *st.Cold
		}
		ctrl.SetInputs(in)
		if log != nil {
			log.Info("set", "frame", st.Frame, "hot", in.Hot, "cold", in.Cold)
		}
		return
	}
	a, _ := panel.ParseAction(st.Action)
	ctrl.Apply(a)
}
