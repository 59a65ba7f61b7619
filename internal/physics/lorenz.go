package physics

type Lorenz struct{ sigma, rho, beta float32 }

func NewLorenz() *Lorenz { return &Lorenz{10.0, 28.0, 2.667} }

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(p Vec3, _ float64) Vec3 {
	return Vec3{l.sigma * (p[1] - p[0]), p[0]*(l.rho-p[2]) - p[1], p[0]*p[1] - l.beta*p[2]}
}

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": float64(l.sigma), "rho": float64(l.rho), "beta": float64(l.beta)}
}

func (l *Lorenz) SetParam(n string, v float64) {
	switch n {
	case "sigma":
		l.sigma = float32(v)
	case "rho":
		l.rho = float32(v)
	case "beta":
		l.beta = float32(v)
	}
}
