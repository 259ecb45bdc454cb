package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Frame is a read-only snapshot handed to renderers and observers.
type Frame struct {
	State
	Stage    Stage
	Linkage  Linkage
	Geometry Geometry
}

// Animator owns one engine: its state, the two input fields and the random
// source used for particles. It is not safe for concurrent use; every call is
// expected from the single thread driving the frame loop.
type Animator struct {
	params Params
	rng    *rand.Rand
	state  State
	inputs Inputs
}

// New validates params and returns a paused animator at the neutral angle.
// A zero seed picks a time-based one.
func New(params Params, seed int64) (*Animator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine parameters: %w", err)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Animator{
		params: params,
		rng:    rng,
		state:  NewState(params.Geometry, rng),
	}, nil
}

func (a *Animator) Params() Params { return a.params }

func (a *Animator) Start()  { a.state.Running = true }
func (a *Animator) Pause()  { a.state.Running = false }
func (a *Animator) Resume() { a.state.Running = true }

// Reset stops the engine, returns the crank to neutral, clears both inputs and
// raises the reset banner.
func (a *Animator) Reset() {
	a.inputs = Inputs{}
	a.state.Running = false
	a.state.Angle = NeutralAngle
	a.state.Hot, a.state.Cold = Temperature{}, Temperature{}
	a.state.Validity = Waiting
	a.state.Efficiency = 0
	a.state.Speed = 0
	a.state.Status = StatusReset
}

func (a *Animator) Running() bool  { return a.state.Running }
func (a *Animator) Inputs() Inputs { return a.inputs }

func (a *Animator) SetInputs(in Inputs) { a.inputs = in }
func (a *Animator) SetHot(v string)     { a.inputs.Hot = v }
func (a *Animator) SetCold(v string)    { a.inputs.Cold = v }

// Step runs one frame of Update and returns the resulting snapshot.
func (a *Animator) Step() Frame {
	a.state = Update(a.state, a.inputs, a.params, a.rng)
	return a.Frame()
}

// Frame snapshots the current state without advancing it.
func (a *Animator) Frame() Frame {
	s := a.state.Clone()
	return Frame{
		State:    s,
		Stage:    s.Stage(),
		Linkage:  a.params.Geometry.Solve(s.Angle),
		Geometry: a.params.Geometry,
	}
}

func (a *Animator) State() State { return a.state.Clone() }

// Pose returns the current frame with the crank placed at angle and the
// inputs evaluated, without advancing or changing the engine. Snapshots use it
// to draw any point of the cycle.
func (a *Animator) Pose(angle float64) Frame {
	s := a.state.Clone()
	r := a.params.Tuning.Evaluate(a.inputs.Hot, a.inputs.Cold)
	s.Angle = Normalize(angle)
	s.Hot, s.Cold = r.Hot, r.Cold
	s.Validity, s.Efficiency, s.Speed = r.Validity, r.Efficiency, r.Speed
	return Frame{
		State:    s,
		Stage:    s.Stage(),
		Linkage:  a.params.Geometry.Solve(s.Angle),
		Geometry: a.params.Geometry,
	}
}
