package engine

import "math/rand"

// Update computes the next frame from s. It never mutates s; rng is only
// consumed when a particle has to be re-spawned.
//
// Physics only advance while the inputs are valid and the engine is running.
// A halted reading pins the crank to the neutral angle regardless of the
// running flag.
func Update(s State, in Inputs, p Params, rng *rand.Rand) State {
	next := s.Clone()
	next.Frame++

	r := p.Tuning.Evaluate(in.Hot, in.Cold)
	next.Hot, next.Cold = r.Hot, r.Cold
	next.Validity = r.Validity
	next.Efficiency = r.Efficiency
	next.Speed = r.Speed

	switch r.Validity {
	case Waiting:
		if s.Status != StatusReset || s.Running {
			next.Status = StatusWaiting
		}
		return next
	case Halted:
		next.Status = StatusHalted
		next.Angle = NeutralAngle
		return next
	}

	next.Status = StatusNone
	if !next.Running {
		return next
	}

	ceiling := p.Geometry.Solve(next.Angle).PistonBottomY
	b := p.Geometry.Bounds()
	for i, pt := range next.Particles {
		pt = StepParticle(pt, b, ceiling)
		if b.Escaped(pt, ceiling) {
			pt = ResetParticle(b, pt.Size, rng)
		}
		next.Particles[i] = pt
	}

	next.Angle = Normalize(next.Angle + next.Speed)
	return next
}
