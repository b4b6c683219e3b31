package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/boxsim/internal/config"
	"github.com/san-kum/boxsim/internal/dynamo"
	"github.com/san-kum/boxsim/internal/experiment"
	"github.com/san-kum/boxsim/internal/log"
)

// Parameters understood by Apply.
const (
	ParamSubSteps  = "substeps"
	ParamTimestep  = "timestep"
	ParamGravity   = "gravity"
	ParamStiffness = "stiffness"
)

// Apply sets one named parameter on s. Stiffness applies to every spring.
func Apply(s *config.Scenario, name string, v float64) error {
	switch name {
	case ParamSubSteps:
		if v != math.Trunc(v) {
			return fmt.Errorf("%w: substeps must be an integer, got %g", dynamo.ErrParameterBounds, v)
		}
		s.SubSteps = int(v)
	case ParamTimestep:
		s.Timestep = v
	case ParamGravity:
		s.Gravity = v
	case ParamStiffness:
		for i := range s.Springs {
			s.Springs[i].Stiffness = v
		}
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

// Trial is one evaluated point of the grid.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs base once per grid point and returns the trial with the lowest
// value of metricName along with every trial in grid order. Runs that fail
// validation or diverge are recorded but never chosen.
func (g *GridSearch) Search(ctx context.Context, base *config.Scenario, metricName string) (Trial, []Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Trial{}, nil, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}
	for i, r := range g.ranges {
		if len(r) == 0 {
			return Trial{}, nil, fmt.Errorf("parameter %s has no values", g.paramNames[i])
		}
	}

	var trials []Trial
	if err := g.searchRecursive(ctx, 0, map[string]float64{}, base, metricName, &trials); err != nil {
		return Trial{}, trials, err
	}

	best := Trial{Value: math.Inf(1)}
	found := false
	for _, t := range trials {
		if t.Err == nil && t.Value < best.Value {
			best = t
			found = true
		}
	}
	if !found {
		return Trial{}, trials, errors.New("no grid point produced a valid run")
	}
	return best, trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Scenario,
	metricName string,
	trials *[]Trial,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		value, err := evaluate(ctx, base, params, metricName)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if err != nil {
			log.Debug("grid point %v: %v", params, err)
		}
		*trials = append(*trials, Trial{Params: params, Value: value, Err: err})
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		if err := g.searchRecursive(ctx, depth+1, current, base, metricName, trials); err != nil {
			return err
		}
	}
	delete(current, name)
	return nil
}

func evaluate(ctx context.Context, base *config.Scenario, params map[string]float64, metricName string) (float64, error) {
	s := base.Clone()
	for name, v := range params {
		if err := Apply(s, name, v); err != nil {
			return 0, err
		}
	}

	exp := experiment.New(s)
	if err := exp.Setup(metricName); err != nil {
		return 0, err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return 0, err
	}
	return result.Metrics[metricName], nil
}
