package config

var Presets = map[string]*Config{
	"classic": {
		Field: "lorenz", Integrator: "euler", Dt: 0.003, TickHz: 60,
		Particles: 100, Lifespan: 10.0, FadeStep: 1, QueueCap: 100, Duration: 10.0,
	},
	"immortal": {
		Field: "lorenz", Integrator: "euler", Dt: 0.003, TickHz: 60,
		Particles: 100, Lifespan: 0, FadeStep: 0, QueueCap: 100, Duration: 30.0,
	},
	"ephemeral": {
		Field: "lorenz", Integrator: "euler", Dt: 0.003, TickHz: 60,
		Particles: 200, Lifespan: 2.0, FadeStep: 2, QueueCap: 100, Duration: 10.0,
	},
	"rossler": {
		Field: "rossler", Integrator: "rk4", Dt: 0.01, TickHz: 60,
		Particles: 100, Lifespan: 20.0, FadeStep: 1, QueueCap: 100, Duration: 20.0,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
