package particle

import "github.com/attractorlab/attractor/internal/physics"

// Source yields injected particles. Pop must never block; it is drained to
// empty once per tick from the simulation goroutine.
type Source interface {
	Pop() (Particle, bool)
}

// Options configure the per-tick update rule.
type Options struct {
	Field      physics.Field
	Integrator physics.Integrator
	Dt         float64 // integration step per tick
	Lifespan   float64 // seconds a newborn lives; <= 0 disables expiry and fade
	FadeStep   uint8   // per-tick color decrement while the lifecycle is on
	Seeds      Source  // may be nil
}

// System advances a particle population one tick at a time. It is owned by
// a single goroutine; concurrency lives in the handoff structures around
// it, not here.
type System struct {
	opts Options
	prev *Snapshot
}

func NewSystem(opts Options) *System {
	return &System{opts: opts}
}

// Prime writes the initial population into dst as generation 1. When the
// lifecycle is on, particles without an explicit expiry get now+lifespan.
// Must be called once, before the first Step.
func (s *System) Prime(dst *Snapshot, initial []Particle, now float64) {
	dst.Particles = append(dst.Particles[:0], initial...)
	if s.opts.Lifespan > 0 {
		for i := range dst.Particles {
			if dst.Particles[i].Expiry <= 0 {
				dst.Particles[i].Expiry = now + s.opts.Lifespan
			}
		}
	}
	dst.Generation = 1
	dst.Time = now
	s.prev = dst
}

// Step builds the next snapshot into dst from the previous one:
// live particles are integrated one step and faded, expired particles are
// dropped, and every queued seed is appended as a newborn. dst must not be
// the snapshot Step (or Prime) produced last tick — the handoff buffer's
// slot rotation guarantees that.
func (s *System) Step(dst *Snapshot, now float64) {
	mortal := s.opts.Lifespan > 0

	dst.Particles = dst.Particles[:0]
	for _, p := range s.prev.Particles {
		if p.Expiry > 0 && p.Expiry <= now {
			continue
		}
		p.Pos = s.opts.Integrator.Step(s.opts.Field, p.Pos, s.prev.Time, s.opts.Dt)
		if mortal {
			p.Color = p.Color.Fade(s.opts.FadeStep)
		}
		dst.Particles = append(dst.Particles, p)
	}

	if s.opts.Seeds != nil {
		for {
			p, ok := s.opts.Seeds.Pop()
			if !ok {
				break
			}
			if mortal {
				p.Expiry = now + s.opts.Lifespan
			}
			dst.Particles = append(dst.Particles, p)
		}
	}

	dst.Generation = s.prev.Generation + 1
	dst.Time = now
	s.prev = dst
}

// Generation reports the most recently produced generation.
func (s *System) Generation() uint64 {
	if s.prev == nil {
		return 0
	}
	return s.prev.Generation
}
