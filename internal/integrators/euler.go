package integrators

import "github.com/attractorlab/attractor/internal/physics"

// Euler performs one explicit-Euler step. It is the scheme the particle
// demos were tuned around; dt must stay small for chaotic fields.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Step(f physics.Field, p physics.Vec3, t, dt float64) physics.Vec3 {
	return p.Add(f.Derive(p, t).Scale(float32(dt)))
}
