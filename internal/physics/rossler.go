package physics

type Rossler struct{ a, b, c float32 }

func NewRossler() *Rossler { return &Rossler{0.2, 0.2, 5.7} }

// Derive calculates the Rossler attractor derivatives.
func (r *Rossler) Derive(p Vec3, _ float64) Vec3 {
	return Vec3{-p[1] - p[2], p[0] + r.a*p[1], r.b + p[2]*(p[0]-r.c)}
}

func (r *Rossler) GetParams() map[string]float64 {
	return map[string]float64{"a": float64(r.a), "b": float64(r.b), "c": float64(r.c)}
}

func (r *Rossler) SetParam(n string, v float64) {
	switch n {
	case "a":
		r.a = float32(v)
	case "b":
		r.b = float32(v)
	case "c":
		r.c = float32(v)
	}
}
