package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/boxsim/internal/config"
	"github.com/san-kum/boxsim/internal/dynamo"
	"github.com/san-kum/boxsim/internal/metrics"
)

const smoothingWindow = 30

type Registry struct {
	metrics map[string]func(*config.Scenario) dynamo.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(*config.Scenario) dynamo.Metric),
	}

	r.metrics["energy"] = func(*config.Scenario) dynamo.Metric { return metrics.NewEnergy() }
	r.metrics["energy_drift"] = func(*config.Scenario) dynamo.Metric { return metrics.NewEnergyDrift() }
	r.metrics["momentum_drift"] = func(*config.Scenario) dynamo.Metric { return metrics.NewMomentumDrift() }
	r.metrics["mean_speed"] = func(*config.Scenario) dynamo.Metric { return metrics.NewMeanSpeed() }
	r.metrics["kinetic_smoothed"] = func(*config.Scenario) dynamo.Metric { return metrics.NewSmoothedKinetic(smoothingWindow) }
	r.metrics["containment"] = func(s *config.Scenario) dynamo.Metric {
		return metrics.NewContainment(s.LowerBound, s.UpperBound)
	}

	return r
}

func (r *Registry) GetMetric(name string, s *config.Scenario) (dynamo.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(s), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
