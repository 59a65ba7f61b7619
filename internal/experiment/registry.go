package experiment

import (
	"fmt"
	"sort"

	"github.com/attractorlab/attractor/internal/integrators"
	"github.com/attractorlab/attractor/internal/metrics"
	"github.com/attractorlab/attractor/internal/physics"
)

type Registry struct {
	fields      map[string]func() physics.Field
	integrators map[string]func() physics.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		fields:      make(map[string]func() physics.Field),
		integrators: make(map[string]func() physics.Integrator),
	}

	r.fields["lorenz"] = func() physics.Field { return physics.NewLorenz() }
	r.fields["rossler"] = func() physics.Field { return physics.NewRossler() }

	r.integrators["euler"] = func() physics.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() physics.Integrator { return integrators.NewRK4() }

	return r
}

func (r *Registry) GetField(name string) (physics.Field, error) {
	fn, ok := r.fields[name]
	if !ok {
		return nil, fmt.Errorf("unknown field: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetIntegrator(name string) (physics.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListFields() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []metrics.Metric {
	return []metrics.Metric{
		metrics.NewPopulation(),
		metrics.NewSpread(),
	}
}
