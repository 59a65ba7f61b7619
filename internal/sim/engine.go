package sim

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/attractorlab/attractor/internal/particle"
	"github.com/attractorlab/attractor/internal/physics"
	"github.com/attractorlab/attractor/internal/spsc"
	"github.com/attractorlab/attractor/internal/tribuf"
)

// Options wire up an Engine.
type Options struct {
	Field      physics.Field
	Integrator physics.Integrator
	Dt         float64       // integration step per tick
	Period     time.Duration // wall-clock time between ticks
	Lifespan   float64       // seconds; <= 0 keeps particles forever
	FadeStep   uint8
	Initial    []particle.Particle
	QueueCap   int              // capacity of the seed queue
	OnTick     func(gen uint64) // optional, called after each publish
}

// Engine owns the simulation goroutine and the two lock-free handoff
// structures around it: a bounded queue carrying injected particles in, and
// a triple buffer carrying snapshots out. Exactly one goroutine may call
// the frame-side methods (OnFrame) and one the seed side (SeedParticle);
// the tick goroutine is the opposite end of both.
type Engine struct {
	buf   *tribuf.Buffer[particle.Snapshot]
	seeds *spsc.Queue[particle.Particle]
	sys   *particle.System
	loop  *Loop

	onTick func(gen uint64)
	gen    atomic.Uint64
}

// NewEngine builds the particle system, primes generation 1 into the
// snapshot buffer, and prepares (but does not start) the tick loop.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		buf:    tribuf.New[particle.Snapshot](),
		seeds:  spsc.New[particle.Particle](opts.QueueCap),
		onTick: opts.OnTick,
	}
	e.sys = particle.NewSystem(particle.Options{
		Field:      opts.Field,
		Integrator: opts.Integrator,
		Dt:         opts.Dt,
		Lifespan:   opts.Lifespan,
		FadeStep:   opts.FadeStep,
		Seeds:      e.seeds,
	})

	e.sys.Prime(e.buf.StartWrite(), opts.Initial, 0)
	e.buf.CommitWrite()
	e.gen.Store(1)
	if e.onTick != nil {
		e.onTick(1)
	}

	e.loop = NewLoop(opts.Period, e.tick)
	return e
}

// Start launches the tick goroutine.
func (e *Engine) Start() error { return e.loop.Start() }

// Stop halts the tick goroutine and returns once the final tick completes.
func (e *Engine) Stop() error { return e.loop.Stop() }

// Running reports whether the tick goroutine is active.
func (e *Engine) Running() bool { return e.loop.Running() }

// Tick advances the simulation one step synchronously. Only valid while the
// loop is not running; headless runs drive the engine this way.
func (e *Engine) Tick(now float64) {
	e.step(now)
}

// OnFrame returns the freshest published snapshot, or nil when nothing new
// has arrived since the last call. It never blocks the tick goroutine. The
// returned snapshot stays valid until the next call that returns non-nil.
func (e *Engine) OnFrame() *particle.Snapshot {
	if !e.buf.TryAcquire() {
		return nil
	}
	return e.buf.Read()
}

// SeedParticle enqueues a particle for injection on the next tick. When the
// queue is full the particle is dropped and the error reports it.
func (e *Engine) SeedParticle(p particle.Particle) error {
	if err := e.seeds.Push(p); err != nil {
		return fmt.Errorf("seed particle: %w", err)
	}
	return nil
}

// Generation reports the latest published generation. Safe to call from
// any goroutine.
func (e *Engine) Generation() uint64 { return e.gen.Load() }

func (e *Engine) tick(now time.Duration) {
	e.step(now.Seconds())
}

func (e *Engine) step(now float64) {
	dst := e.buf.StartWrite()
	e.sys.Step(dst, now)
	e.buf.CommitWrite()
	e.gen.Store(dst.Generation)
	if e.onTick != nil {
		e.onTick(dst.Generation)
	}
}
