package integrators

import "github.com/attractorlab/attractor/internal/physics"

// RK4 performs one classic fourth-order Runge-Kutta step.
type RK4 struct{}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Step(f physics.Field, p physics.Vec3, t, dt float64) physics.Vec3 {
	h := float32(dt)

	k1 := f.Derive(p, t)
	k2 := f.Derive(p.Add(k1.Scale(h*0.5)), t+dt*0.5)
	k3 := f.Derive(p.Add(k2.Scale(h*0.5)), t+dt*0.5)
	k4 := f.Derive(p.Add(k3.Scale(h)), t+dt)

	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return p.Add(sum.Scale(h / 6))
}
