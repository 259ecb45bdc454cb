package engine

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewParticles(t *testing.T) {
	g := DefaultGeometry()
	b := g.Bounds()
	ps := NewParticles(ParticleCount, b, rand.New(rand.NewSource(1)))

	if len(ps) != ParticleCount {
		t.Fatalf("expected %d particles, got %d", ParticleCount, len(ps))
	}
	for i, p := range ps {
		if p.X < b.Left || p.X > b.Right {
			t.Errorf("particle %d spawned outside walls: x=%f", i, p.X)
		}
		if p.Y > b.Floor || p.Y < b.Floor-b.SpawnDepth {
			t.Errorf("particle %d spawned outside spawn band: y=%f", i, p.Y)
		}
		if math.Abs(p.VX) >= 1 || math.Abs(p.VY) >= 1 {
			t.Errorf("particle %d velocity out of range: (%f, %f)", i, p.VX, p.VY)
		}
		if p.Size < 1 || p.Size >= 3 {
			t.Errorf("particle %d size out of range: %f", i, p.Size)
		}
	}
}

func TestStepParticleRightWall(t *testing.T) {
	b := DefaultGeometry().Bounds()
	p := Particle{X: b.Right - 0.3, Y: 500, VX: 0.8, VY: 0}

	p = StepParticle(p, b, 400)
	if p.VX >= 0 {
		t.Fatalf("expected horizontal velocity to flip, got %f", p.VX)
	}
	if p.X-b.Right > 0.8 {
		t.Errorf("particle escaped by more than one step: %f", p.X-b.Right)
	}

	p = StepParticle(p, b, 400)
	if p.X > b.Right {
		t.Errorf("expected particle back inside, x=%f right=%f", p.X, b.Right)
	}
	if p.VX >= 0 {
		t.Errorf("velocity must not flip back while moving inwards, got %f", p.VX)
	}
}

func TestStepParticleLeftWall(t *testing.T) {
	b := DefaultGeometry().Bounds()
	p := StepParticle(Particle{X: b.Left + 0.1, Y: 500, VX: -0.5}, b, 400)
	if p.VX <= 0 {
		t.Errorf("expected positive velocity after left wall, got %f", p.VX)
	}
}

func TestStepParticleFloorAndCeiling(t *testing.T) {
	b := DefaultGeometry().Bounds()

	p := StepParticle(Particle{X: b.CenterX, Y: b.Floor - 0.2, VY: 0.9}, b, 400)
	if p.Y != b.Floor-2 || p.VY >= 0 {
		t.Errorf("floor bounce: got y=%f vy=%f", p.Y, p.VY)
	}

	ceiling := 430.0
	p = StepParticle(Particle{X: b.CenterX, Y: ceiling + 0.2, VY: -0.9}, b, ceiling)
	if p.Y != ceiling+2 || p.VY <= 0 {
		t.Errorf("piston bounce: got y=%f vy=%f", p.Y, p.VY)
	}
}

func TestEscaped(t *testing.T) {
	b := DefaultGeometry().Bounds()
	tests := []struct {
		name string
		p    Particle
		want bool
	}{
		{"inside", Particle{X: b.CenterX, Y: 500}, false},
		{"one step past wall", Particle{X: b.Right + 0.5, Y: 500, VX: -0.6}, false},
		{"far past wall", Particle{X: b.Right + 50, Y: 500, VX: 0.5}, true},
		{"above piston", Particle{X: b.CenterX, Y: 100}, true},
		{"nan", Particle{X: math.NaN(), Y: 500}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Escaped(tt.p, 430); got != tt.want {
				t.Errorf("Escaped() = %v, want %v", got, tt.want)
			}
		})
	}
}
