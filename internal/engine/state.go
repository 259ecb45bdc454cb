package engine

import "math/rand"

// Status selects the banner shown above the engine.
type Status int

const (
	StatusNone Status = iota
	StatusWaiting
	StatusHalted
	StatusReset
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusWaiting:
		return "waiting"
	case StatusHalted:
		return "halted"
	case StatusReset:
		return "reset"
	}
	return "unknown"
}

// Inputs are the two free-text reservoir fields.
type Inputs struct {
	Hot  string
	Cold string
}

// State is the complete mutable engine state for one frame.
type State struct {
	Angle      float64
	Running    bool
	Hot, Cold  Temperature
	Validity   Validity
	Efficiency float64
	Speed      float64
	Status     Status
	Particles  []Particle
	Frame      uint64
}

// NewState returns a paused engine at the neutral angle with freshly spawned particles.
func NewState(g Geometry, rng *rand.Rand) State {
	return State{
		Angle:     NeutralAngle,
		Validity:  Waiting,
		Status:    StatusWaiting,
		Particles: NewParticles(ParticleCount, g.Bounds(), rng),
	}
}

func (s State) Clone() State {
	c := s
	c.Particles = make([]Particle, len(s.Particles))
	copy(c.Particles, s.Particles)
	return c
}

func (s State) Stage() Stage { return Classify(s.Angle) }

// Params bundles the fixed configuration Update needs.
type Params struct {
	Geometry Geometry
	Tuning   Tuning
}

func DefaultParams() Params {
	return Params{Geometry: DefaultGeometry(), Tuning: DefaultTuning()}
}

func (p Params) Validate() error {
	if err := p.Geometry.Validate(); err != nil {
		return err
	}
	return p.Tuning.Validate()
}
