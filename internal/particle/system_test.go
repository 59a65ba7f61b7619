package particle

import (
	"math"
	"math/rand"
	"testing"

	"github.com/attractorlab/attractor/internal/integrators"
	"github.com/attractorlab/attractor/internal/physics"
)

// sliceSource feeds a fixed set of particles, then reports empty.
type sliceSource struct{ items []Particle }

func (s *sliceSource) Pop() (Particle, bool) {
	if len(s.items) == 0 {
		return Particle{}, false
	}
	p := s.items[0]
	s.items = s.items[1:]
	return p, true
}

func newSystem(opts Options) *System {
	if opts.Field == nil {
		opts.Field = physics.NewLorenz()
	}
	if opts.Integrator == nil {
		opts.Integrator = integrators.NewEuler()
	}
	if opts.Dt == 0 {
		opts.Dt = 0.003
	}
	return NewSystem(opts)
}

func TestLorenzIntegrationStep(t *testing.T) {
	sys := newSystem(Options{})

	var a, b Snapshot
	sys.Prime(&a, []Particle{{Pos: physics.Vec3{1, 1, 1}}}, 0)
	sys.Step(&b, 1.0/60)

	if len(b.Particles) != 1 {
		t.Fatalf("expected 1 particle, got %d", len(b.Particles))
	}
	got := b.Particles[0].Pos
	want := physics.Vec3{1.0, 1.078, 0.995}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-3 {
			t.Errorf("component %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestGenerationIncrements(t *testing.T) {
	sys := newSystem(Options{})

	var a, b Snapshot
	sys.Prime(&a, RandomCloud(3, rand.New(rand.NewSource(1))), 0)
	if a.Generation != 1 {
		t.Errorf("prime should publish generation 1, got %d", a.Generation)
	}

	sys.Step(&b, 0.1)
	if b.Generation != 2 {
		t.Errorf("expected generation 2, got %d", b.Generation)
	}
	sys.Step(&a, 0.2)
	if a.Generation != 3 {
		t.Errorf("expected generation 3, got %d", a.Generation)
	}
	if sys.Generation() != 3 {
		t.Errorf("system should report generation 3, got %d", sys.Generation())
	}
}

func TestExpiryLifecycle(t *testing.T) {
	sys := newSystem(Options{Lifespan: 1.0, FadeStep: 1})

	var a, b Snapshot
	sys.Prime(&a, []Particle{{Pos: physics.Vec3{1, 1, 1}, Color: Color{100, 100, 100, 255}}}, 0)
	if a.Particles[0].Expiry != 1.0 {
		t.Fatalf("prime should stamp expiry now+lifespan, got %f", a.Particles[0].Expiry)
	}

	// Just before expiry the particle survives.
	sys.Step(&b, 0.99)
	if len(b.Particles) != 1 {
		t.Fatalf("particle dropped before its expiry")
	}

	// At or past expiry it is gone.
	sys.Step(&a, 1.0)
	if len(a.Particles) != 0 {
		t.Errorf("particle persisted past its expiry")
	}
}

func TestImmortalVariant(t *testing.T) {
	sys := newSystem(Options{Lifespan: 0})

	var a, b Snapshot
	cloud := RandomCloud(50, rand.New(rand.NewSource(7)))
	sys.Prime(&a, cloud, 0)

	snaps := [...]*Snapshot{&b, &a}
	for i := 0; i < 100; i++ {
		sys.Step(snaps[i%2], float64(i+1))
	}

	final := snaps[99%2]
	if len(final.Particles) != 50 {
		t.Errorf("population should stay fixed at 50, got %d", len(final.Particles))
	}
	for i, p := range final.Particles {
		if p.Expiry != 0 {
			t.Errorf("particle %d gained an expiry: %f", i, p.Expiry)
		}
		if p.Color != cloud[i].Color {
			t.Errorf("particle %d faded without a lifecycle", i)
		}
	}
}

func TestSeedInjectionWithinOneTick(t *testing.T) {
	seed := Particle{Pos: physics.Vec3{5, 5, 5}, Color: Color{1, 2, 3, 255}}
	src := &sliceSource{items: []Particle{seed}}
	sys := newSystem(Options{Lifespan: 10, FadeStep: 1, Seeds: src})

	var a, b Snapshot
	sys.Prime(&a, nil, 0)
	sys.Step(&b, 0.5)

	if len(b.Particles) != 1 {
		t.Fatalf("seeded particle should appear within one tick, got %d particles", len(b.Particles))
	}
	if b.Particles[0].Expiry != 10.5 {
		t.Errorf("newborn expiry should be now+lifespan, got %f", b.Particles[0].Expiry)
	}
}

func TestSeedsAppendInFIFOOrder(t *testing.T) {
	src := &sliceSource{items: []Particle{
		{Color: Color{1, 0, 0, 255}},
		{Color: Color{2, 0, 0, 255}},
		{Color: Color{3, 0, 0, 255}},
	}}
	sys := newSystem(Options{Seeds: src})

	var a, b Snapshot
	sys.Prime(&a, nil, 0)
	sys.Step(&b, 0.1)

	if len(b.Particles) != 3 {
		t.Fatalf("expected 3 newborns, got %d", len(b.Particles))
	}
	for i, want := range []uint8{1, 2, 3} {
		if b.Particles[i].Color[0] != want {
			t.Errorf("newborn %d out of order: red %d", i, b.Particles[i].Color[0])
		}
	}
}

func TestFadeOrder(t *testing.T) {
	c := Color{2, 3, 2, 255}

	// Green drains first.
	c = c.Fade(2)
	if c != (Color{2, 1, 2, 255}) {
		t.Fatalf("after first fade: %v", c)
	}
	c = c.Fade(2)
	if c != (Color{2, 0, 2, 255}) {
		t.Fatalf("green should floor at 0: %v", c)
	}

	// Then red.
	c = c.Fade(2)
	if c != (Color{0, 0, 2, 255}) {
		t.Fatalf("red should fade next: %v", c)
	}

	// Then blue.
	c = c.Fade(2)
	if c != (Color{0, 0, 0, 255}) {
		t.Fatalf("blue should fade last: %v", c)
	}

	// Fully dark colors are stable.
	if c.Fade(2) != c {
		t.Error("faded-out color should not change")
	}
}

func TestRandomCloudRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cloud := RandomCloud(200, rng)

	if len(cloud) != 200 {
		t.Fatalf("expected 200 particles, got %d", len(cloud))
	}
	for i, p := range cloud {
		for j, v := range p.Pos {
			if v < -20 || v >= 20 {
				t.Fatalf("particle %d pos[%d]=%f out of [-20,20)", i, j, v)
			}
		}
		for j := 0; j < 3; j++ {
			if p.Color[j] < 64 {
				t.Fatalf("particle %d channel %d below 64: %d", i, j, p.Color[j])
			}
		}
		if p.Color[3] != 255 {
			t.Fatalf("particle %d alpha should be 255", i)
		}
		if p.Expiry != 0 {
			t.Fatalf("cloud particles carry no expiry until primed")
		}
	}
}
