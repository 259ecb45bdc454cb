package engine

import (
	"math"
	"math/rand"
)

// ParticleCount is the fixed size of the decorative gas.
const ParticleCount = 40

// floorNudge pushes a particle back inside after touching the floor or the piston.
const floorNudge = 2.0

type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
}

// NewParticles spawns n particles with random sizes in [1, 3).
func NewParticles(n int, b Bounds, rng *rand.Rand) []Particle {
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = ResetParticle(b, rng.Float64()*2+1, rng)
	}
	return ps
}

// ResetParticle places a particle of the given size at a random position near
// the cylinder floor with a random velocity in (-1, 1) on each axis.
func ResetParticle(b Bounds, size float64, rng *rand.Rand) Particle {
	return Particle{
		X:    b.CenterX + (rng.Float64()-0.5)*b.SpawnSpread,
		Y:    b.Floor - rng.Float64()*b.SpawnDepth,
		VX:   (rng.Float64() - 0.5) * 2,
		VY:   (rng.Float64() - 0.5) * 2,
		Size: size,
	}
}

// StepParticle advances a particle one frame and reflects it off the cylinder
// walls, the floor, and the piston face at ceiling.
func StepParticle(p Particle, b Bounds, ceiling float64) Particle {
	p.X += p.VX
	p.Y += p.VY

	if (p.X < b.Left && p.VX < 0) || (p.X > b.Right && p.VX > 0) {
		p.VX = -p.VX
	}
	if p.Y > b.Floor {
		p.Y = b.Floor - floorNudge
		p.VY = -math.Abs(p.VY)
	}
	if p.Y < ceiling {
		p.Y = ceiling + floorNudge
		p.VY = math.Abs(p.VY)
	}
	return p
}

// Escaped reports a particle that is further outside the cylinder than one
// velocity step can explain.
func (b Bounds) Escaped(p Particle, ceiling float64) bool {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return true
	}
	slackX := math.Abs(p.VX) + 1e-9
	if p.X < b.Left-slackX || p.X > b.Right+slackX {
		return true
	}
	return p.Y > b.Floor || p.Y < ceiling
}
