package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/boxsim/internal/dynamo"
	"github.com/san-kum/boxsim/internal/log"
	"github.com/san-kum/boxsim/internal/metrics"
)

type Simulator struct {
	world     *World
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(world *World) *Simulator {
	return &Simulator{
		world:     world,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) World() *World { return s.world }

// Run steps the world cfg.Frames times, recording every frame. Cancellation
// is checked between frames; a frame is never interrupted.
func (s *Simulator) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrParameterBounds, cfg.Frames)
	}

	w := s.world
	result := &Result{
		BodyIDs:    make([]string, len(w.Bodies)),
		Times:      make([]float64, 0, cfg.Frames+1),
		Positions:  make([][]float64, 0, cfg.Frames+1),
		Velocities: make([][]float64, 0, cfg.Frames+1),
		Metrics:    make(map[string]float64),
	}
	for i := range w.Bodies {
		result.BodyIDs[i] = w.Bodies[i].ID
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	log.Debug("run start: %d bodies, %d springs, %d frames, %d sub-steps", len(w.Bodies), len(w.Springs), cfg.Frames, w.Config.SubSteps)

	result.record(w.Bodies, w.Time())
	initialEnergy := metrics.Compute(w.Bodies, w.Springs).Total

	var runErr error
	for frame := 0; frame < cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(w.Bodies, w.Springs, w.Time())
		}

		w.Step()
		result.FramesRun++

		if cfg.ValidateState {
			if err := w.Validate(); err != nil {
				runErr = &dynamo.SimulationError{Frame: frame, Time: w.Time(), Wrapped: err}
				log.Warn("run aborted: %v", runErr)
				break
			}
		}

		for _, obs := range s.observers {
			obs.OnFrame(w.Bodies, w.Time())
		}
		result.record(w.Bodies, w.Time())
	}

	finalEnergy := metrics.Compute(w.Bodies, w.Springs).Total
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	log.Debug("run end: %d frames, energy drift %.6f", result.FramesRun, result.EnergyDrift)
	return result, runErr
}

// RunWithCallback steps the world until callback returns false or the
// context is canceled. The callback sees the state before each frame.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg RunConfig, callback func(bodies []dynamo.Body, t float64) bool) error {
	w := s.world
	for frame := 0; cfg.Frames <= 0 || frame < cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(w.Bodies, w.Time()) {
			return nil
		}

		w.Step()

		if cfg.ValidateState {
			if err := w.Validate(); err != nil {
				return &dynamo.SimulationError{Frame: frame, Time: w.Time(), Wrapped: err}
			}
		}
	}
	return nil
}
