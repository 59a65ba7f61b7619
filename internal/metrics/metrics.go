// Package metrics aggregates per-snapshot statistics over a run.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/attractorlab/attractor/internal/particle"
)

// Metric observes published snapshots and reduces them to a single value.
type Metric interface {
	Name() string
	Observe(s *particle.Snapshot)
	Value() float64
	Reset()
}

// Population tracks the mean particle count across observed snapshots.
type Population struct {
	name    string
	counts  []float64
	samples int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(s *particle.Snapshot) {
	p.counts = append(p.counts, float64(len(s.Particles)))
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return stat.Mean(p.counts, nil)
}

func (p *Population) Reset() {
	p.counts = p.counts[:0]
	p.samples = 0
}

// Spread tracks the mean RMS distance of particles from their centroid, a
// rough measure of how far the cloud has collapsed onto the attractor.
type Spread struct {
	name    string
	rms     []float64
	samples int
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(snap *particle.Snapshot) {
	s.rms = append(s.rms, SnapshotSpread(snap))
	s.samples++
}

func (s *Spread) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return stat.Mean(s.rms, nil)
}

func (s *Spread) Reset() {
	s.rms = s.rms[:0]
	s.samples = 0
}

// SnapshotSpread computes the RMS distance from the centroid for a single
// snapshot. Empty snapshots spread zero.
func SnapshotSpread(snap *particle.Snapshot) float64 {
	n := len(snap.Particles)
	if n == 0 {
		return 0
	}

	var cx, cy, cz float64
	for _, p := range snap.Particles {
		cx += float64(p.Pos[0])
		cy += float64(p.Pos[1])
		cz += float64(p.Pos[2])
	}
	cx /= float64(n)
	cy /= float64(n)
	cz /= float64(n)

	var sum float64
	for _, p := range snap.Particles {
		dx := float64(p.Pos[0]) - cx
		dy := float64(p.Pos[1]) - cy
		dz := float64(p.Pos[2]) - cz
		sum += dx*dx + dy*dy + dz*dz
	}
	return math.Sqrt(sum / float64(n))
}
