// Package particle holds the particle-system data model and the per-tick
// update rule that advances it.
package particle

import (
	"math/rand"

	"github.com/attractorlab/attractor/internal/physics"
)

// Color is an RGBA color, 8 bits per channel.
type Color [4]uint8

// Fade decrements one channel by step, flooring at zero: green first,
// then red, then blue. Alpha is left alone.
func (c Color) Fade(step uint8) Color {
	switch {
	case c[1] > 0:
		c[1] -= min(step, c[1])
	case c[0] > 0:
		c[0] -= min(step, c[0])
	case c[2] > 0:
		c[2] -= min(step, c[2])
	}
	return c
}

// Particle is a single point carried by the flow. Value type; copied
// freely, no ownership relationships to other particles. Expiry is the
// absolute simulation time after which the particle is dropped; zero or
// negative means it never expires.
type Particle struct {
	Pos    physics.Vec3
	Color  Color
	Expiry float64
}

// Snapshot is one complete state of the particle system. Once published a
// snapshot is immutable; only a newer snapshot replaces it. Generation
// strictly increases with each publish, giving consumers a total order
// over observed states.
type Snapshot struct {
	Particles  []Particle
	Generation uint64
	Time       float64
}

// Clone returns a deep copy, for callers that outlive the handoff slot.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Particles:  make([]Particle, len(s.Particles)),
		Generation: s.Generation,
		Time:       s.Time,
	}
	copy(c.Particles, s.Particles)
	return c
}

// RandomColor draws each channel uniformly from [lo,256), alpha 255.
func RandomColor(rng *rand.Rand, lo int) Color {
	span := 256 - lo
	return Color{
		uint8(lo + rng.Intn(span)),
		uint8(lo + rng.Intn(span)),
		uint8(lo + rng.Intn(span)),
		255,
	}
}

// RandomCloud builds n particles with positions uniform in [-20,20)³ and
// colors with channels in [64,256), matching the demo's initial state.
func RandomCloud(n int, rng *rand.Rand) []Particle {
	cloud := make([]Particle, n)
	for i := range cloud {
		cloud[i] = Particle{
			Pos: physics.Vec3{
				rng.Float32()*40 - 20,
				rng.Float32()*40 - 20,
				rng.Float32()*40 - 20,
			},
			Color: RandomColor(rng, 64),
		}
	}
	return cloud
}
