package sim_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/boxsim/internal/dynamo"
	"github.com/san-kum/boxsim/internal/sim"
)

type frameCounter struct{ frames int }

func (f *frameCounter) OnFrame([]dynamo.Body, float64) { f.frames++ }

type lastPosition struct {
	value float64
	seen  int
}

func (m *lastPosition) Name() string { return "last_position" }
func (m *lastPosition) Observe(bodies []dynamo.Body, _ []dynamo.Spring, _ float64) {
	m.value = bodies[0].Position
	m.seen++
}
func (m *lastPosition) Value() float64 { return m.value }
func (m *lastPosition) Reset()         { m.value, m.seen = 0, 0 }

func newSimulator(cfg dynamo.Config, bodies ...dynamo.Body) *sim.Simulator {
	w, err := sim.NewWorld(cfg, bodies, nil)
	Expect(err).NotTo(HaveOccurred())
	return sim.New(w)
}

var _ = Describe("Simulator", func() {
	var cfg dynamo.Config

	BeforeEach(func() {
		cfg = dynamo.DefaultConfig()
	})

	It("records the initial frame plus one row per frame", func() {
		s := newSimulator(cfg, moving("a", 100, 1, 10), moving("b", 300, -1, 10))
		obs := &frameCounter{}
		m := &lastPosition{}
		s.AddObserver(obs)
		s.AddMetric(m)

		res, err := s.Run(context.Background(), sim.RunConfig{Frames: 10, ValidateState: true})
		Expect(err).NotTo(HaveOccurred())

		Expect(res.FramesRun).To(Equal(10))
		Expect(res.BodyIDs).To(Equal([]string{"a", "b"}))
		Expect(res.Times).To(HaveLen(11))
		Expect(res.Positions).To(HaveLen(11))
		Expect(res.Velocities).To(HaveLen(11))
		Expect(res.Times[10]).To(BeNumerically("~", 10, 1e-12))

		Expect(obs.frames).To(Equal(10))
		Expect(m.seen).To(Equal(10))
		Expect(res.Metrics).To(HaveKeyWithValue("last_position", BeNumerically("~", 109, 1e-9)))

		series := res.Series("b")
		Expect(series).To(HaveLen(11))
		Expect(series[0]).To(Equal(300.0))
		Expect(series[10]).To(BeNumerically("~", 290, 1e-9))
		Expect(res.Series("missing")).To(BeNil())
	})

	It("reports no energy drift for free bodies", func() {
		s := newSimulator(cfg, moving("a", 100, 1, 10))
		res, err := s.Run(context.Background(), sim.RunConfig{Frames: 20})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.EnergyDrift).To(BeNumerically("<", 1e-9))
	})

	It("rejects a non-positive frame count", func() {
		s := newSimulator(cfg, dynamo.NewBody("a", 100, 10, 6))
		_, err := s.Run(context.Background(), sim.RunConfig{Frames: 0})
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})

	It("stops between frames when the context is canceled", func() {
		s := newSimulator(cfg, dynamo.NewBody("a", 100, 10, 6))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := s.Run(ctx, sim.RunConfig{Frames: 10})
		Expect(err).To(MatchError(context.Canceled))
		Expect(res.FramesRun).To(BeZero())
		Expect(res.Positions).To(HaveLen(1))
	})

	It("aborts on a non-finite state", func() {
		cfg.Gravity = 1e308
		cfg.Timestep = 10
		cfg.SubSteps = 1
		s := newSimulator(cfg, dynamo.NewBody("a", 100, 10, 6))

		res, err := s.Run(context.Background(), sim.RunConfig{Frames: 5, ValidateState: true})
		Expect(err).To(MatchError(dynamo.ErrInvalidState))

		var simErr *dynamo.SimulationError
		Expect(errors.As(err, &simErr)).To(BeTrue())
		Expect(simErr.Frame).To(Equal(0))
		Expect(res.FramesRun).To(Equal(1))
	})

	Describe("RunWithCallback", func() {
		It("stops when the callback returns false", func() {
			s := newSimulator(cfg, moving("a", 100, 1, 10))
			calls := 0
			err := s.RunWithCallback(context.Background(), sim.RunConfig{}, func(_ []dynamo.Body, _ float64) bool {
				calls++
				return calls < 5
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(5))
			Expect(s.World().Time()).To(BeNumerically("~", 4, 1e-12))
		})

		It("honors the frame limit", func() {
			s := newSimulator(cfg, moving("a", 100, 1, 10))
			calls := 0
			err := s.RunWithCallback(context.Background(), sim.RunConfig{Frames: 3}, func(_ []dynamo.Body, _ float64) bool {
				calls++
				return true
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(3))
		})
	})
})

var _ = Describe("Ensemble", func() {
	It("returns results in input order", func() {
		var runs []*sim.Simulator
		for _, v := range []float64{1, 2, 3} {
			runs = append(runs, newSimulator(dynamo.DefaultConfig(), moving("a", 100, v, 10)))
		}
		e := sim.NewEnsemble(runs...)
		Expect(e.Len()).To(Equal(3))

		results, err := e.Run(context.Background(), sim.RunConfig{Frames: 5})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for i, res := range results {
			Expect(res.Positions[5][0]).To(BeNumerically("~", 100+5*float64(i+1), 1e-9))
		}
	})

	It("fails when any run fails", func() {
		bad := dynamo.DefaultConfig()
		bad.Gravity = 1e308
		bad.Timestep = 10
		bad.SubSteps = 1

		e := sim.NewEnsemble(
			newSimulator(dynamo.DefaultConfig(), moving("a", 100, 1, 10)),
			newSimulator(bad, dynamo.NewBody("a", 100, 10, 6)),
		)
		_, err := e.Run(context.Background(), sim.RunConfig{Frames: 5, ValidateState: true})
		Expect(err).To(MatchError(dynamo.ErrInvalidState))
	})
})
