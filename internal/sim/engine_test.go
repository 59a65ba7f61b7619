package sim_test

import (
	"math/rand"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/attractorlab/attractor/internal/integrators"
	"github.com/attractorlab/attractor/internal/particle"
	"github.com/attractorlab/attractor/internal/physics"
	"github.com/attractorlab/attractor/internal/sim"
	"github.com/attractorlab/attractor/internal/spsc"
)

func newEngine(lifespan float64, queueCap int) *sim.Engine {
	return sim.NewEngine(sim.Options{
		Field:      physics.NewLorenz(),
		Integrator: integrators.NewEuler(),
		Dt:         0.003,
		Period:     time.Millisecond,
		Lifespan:   lifespan,
		FadeStep:   1,
		Initial:    particle.RandomCloud(10, rand.New(rand.NewSource(1))),
		QueueCap:   queueCap,
	})
}

var _ = Describe("Engine", func() {
	It("publishes generation 1 before the loop starts", func() {
		e := newEngine(0, 100)

		frame := e.OnFrame()
		Expect(frame).NotTo(BeNil())
		Expect(frame.Generation).To(Equal(uint64(1)))
		Expect(frame.Particles).To(HaveLen(10))
	})

	It("advances generations while running", func() {
		e := newEngine(0, 100)
		Expect(e.Start()).To(Succeed())
		defer e.Stop()

		Eventually(e.Generation, time.Second, time.Millisecond).
			Should(BeNumerically(">=", uint64(10)))
	})

	It("delivers fresh frames with strictly increasing generations", func() {
		e := newEngine(0, 100)
		Expect(e.Start()).To(Succeed())
		defer e.Stop()

		last := uint64(0)
		Eventually(func() uint64 {
			frame := e.OnFrame()
			if frame == nil {
				return last
			}
			Expect(frame.Generation).To(BeNumerically(">", last))
			last = frame.Generation
			return last
		}, time.Second, time.Millisecond).Should(BeNumerically(">=", uint64(10)))
	})

	It("returns nil from OnFrame when nothing new was published", func() {
		e := newEngine(0, 100)

		Expect(e.OnFrame()).NotTo(BeNil())
		Expect(e.OnFrame()).To(BeNil())
	})

	It("injects a seeded particle within a few ticks", func() {
		e := newEngine(0, 100)
		Expect(e.Start()).To(Succeed())
		defer e.Stop()

		seed := particle.Particle{
			Pos:   physics.Vec3{1, 1, 1},
			Color: particle.Color{9, 9, 9, 255},
		}
		Expect(e.SeedParticle(seed)).To(Succeed())

		count := 0
		Eventually(func() int {
			if frame := e.OnFrame(); frame != nil {
				count = len(frame.Particles)
			}
			return count
		}, time.Second, time.Millisecond).Should(Equal(11))
	})

	It("reports a full seed queue without corrupting it", func() {
		e := newEngine(0, 1)

		Expect(e.SeedParticle(particle.Particle{})).To(Succeed())
		err := e.SeedParticle(particle.Particle{})
		Expect(err).To(MatchError(spsc.ErrFull))
	})

	It("stops cleanly and publishes nothing afterwards", func() {
		e := newEngine(0, 100)
		Expect(e.Start()).To(Succeed())

		Eventually(e.Generation, time.Second, time.Millisecond).
			Should(BeNumerically(">", uint64(1)))
		Expect(e.Stop()).To(Succeed())

		gen := e.Generation()
		Consistently(e.Generation, 50*time.Millisecond, 5*time.Millisecond).
			Should(Equal(gen))
	})

	It("rejects a second Start and a Stop when idle", func() {
		e := newEngine(0, 100)

		Expect(e.Stop()).To(MatchError(sim.ErrNotRunning))
		Expect(e.Start()).To(Succeed())
		Expect(e.Start()).To(MatchError(sim.ErrAlreadyRunning))
		Expect(e.Stop()).To(Succeed())
		Expect(e.Stop()).To(MatchError(sim.ErrNotRunning))
	})

	It("expires mortal particles once their lifespan passes", func() {
		e := sim.NewEngine(sim.Options{
			Field:      physics.NewLorenz(),
			Integrator: integrators.NewEuler(),
			Dt:         0.003,
			Period:     time.Millisecond,
			Lifespan:   0.02,
			FadeStep:   1,
			Initial:    particle.RandomCloud(10, rand.New(rand.NewSource(1))),
			QueueCap:   100,
		})
		Expect(e.Start()).To(Succeed())
		defer e.Stop()

		count := -1
		Eventually(func() int {
			if frame := e.OnFrame(); frame != nil {
				count = len(frame.Particles)
			}
			return count
		}, time.Second, time.Millisecond).Should(BeZero())
	})
})

var _ = Describe("Loop", func() {
	It("ticks at a bounded cadence and joins on Stop", func() {
		var ticks atomic.Uint64
		l := sim.NewLoop(time.Millisecond, func(time.Duration) {
			ticks.Add(1)
		})

		Expect(l.Start()).To(Succeed())
		Eventually(ticks.Load, time.Second, time.Millisecond).
			Should(BeNumerically(">=", uint64(10)))

		Expect(l.Stop()).To(Succeed())
		Expect(l.Running()).To(BeFalse())

		after := ticks.Load()
		Consistently(ticks.Load, 20*time.Millisecond, time.Millisecond).
			Should(Equal(after))
	})

	It("passes monotonically increasing tick times", func() {
		var bad atomic.Bool
		var last atomic.Int64
		l := sim.NewLoop(time.Millisecond, func(now time.Duration) {
			if int64(now) <= last.Load() {
				bad.Store(true)
			}
			last.Store(int64(now))
		})

		Expect(l.Start()).To(Succeed())
		Eventually(last.Load, time.Second, time.Millisecond).
			Should(BeNumerically(">", int64(10*time.Millisecond)))
		Expect(l.Stop()).To(Succeed())

		Expect(bad.Load()).To(BeFalse())
	})
})
