package physics

import "math"

// Vec3 is a point or derivative in the flow's phase space.
type Vec3 [3]float32

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec3) Norm() float64 {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
	return math.Sqrt(x*x + y*y + z*z)
}

// Field is a continuous-time flow. Derive returns the instantaneous
// velocity of a point carried by the flow at time t. Divergence is a
// property of the field, not an error: chaotic fields may grow without
// bound and the caller renders whatever it gets.
type Field interface {
	Derive(p Vec3, t float64) Vec3
}

// Integrator advances a point one discrete step of size dt through a field.
type Integrator interface {
	Step(f Field, p Vec3, t, dt float64) Vec3
}

// Configurable fields expose their parameters for runtime tuning.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64)
}
