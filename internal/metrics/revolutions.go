package metrics

import (
	"fmt"

	"github.com/san-kum/carnot/internal/engine"
)

// Revolutions counts full crank turns from the angle actually advanced.
type Revolutions struct {
	name     string
	advanced float64
}

func NewRevolutions() *Revolutions {
	return &Revolutions{name: "revolutions"}
}

func (r *Revolutions) Name() string { return r.name }

func (r *Revolutions) Observe(f engine.Frame) {
	if f.Validity == engine.Valid && f.Running {
		r.advanced += f.Speed
	}
}

func (r *Revolutions) Value() float64 {
	return r.advanced / engine.TwoPi
}

func (r *Revolutions) Reset() {
	r.advanced = 0
}

// StageShare is the fraction of animated frames spent in one stage.
type StageShare struct {
	name    string
	stage   engine.Stage
	hits    int
	samples int
}

func NewStageShare(s engine.Stage) *StageShare {
	return &StageShare{
		name:  fmt.Sprintf("stage_share_%d", s.Ordinal()),
		stage: s,
	}
}

func (s *StageShare) Name() string { return s.name }

func (s *StageShare) Observe(f engine.Frame) {
	if f.Validity != engine.Valid || !f.Running {
		return
	}
	s.samples++
	if f.Stage == s.stage {
		s.hits++
	}
}

func (s *StageShare) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.hits) / float64(s.samples)
}

func (s *StageShare) Reset() {
	s.hits = 0
	s.samples = 0
}
