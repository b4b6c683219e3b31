package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/boxsim/internal/dynamo"
	"github.com/san-kum/boxsim/internal/sim"
)

func moving(id string, pos, v, mass float64) dynamo.Body {
	b := dynamo.NewBody(id, pos, mass, 6)
	dynamo.SetVelocity(&b, v)
	return b
}

func momentum(bodies []dynamo.Body) float64 {
	var p float64
	for i := range bodies {
		p += bodies[i].Mass * dynamo.Velocity(&bodies[i])
	}
	return p
}

func kinetic(bodies []dynamo.Body) float64 {
	var e float64
	for i := range bodies {
		v := dynamo.Velocity(&bodies[i])
		e += 0.5 * bodies[i].Mass * v * v
	}
	return e
}

var _ = Describe("World", func() {
	var cfg dynamo.Config

	BeforeEach(func() {
		cfg = dynamo.DefaultConfig()
	})

	Describe("NewWorld", func() {
		It("accepts the two-box setup", func() {
			bodies := []dynamo.Body{
				dynamo.NewBody("a", 400, 10, 6),
				dynamo.NewBody("b", 480, 10, 6),
			}
			springs := []dynamo.Spring{{A: "a", B: "b", Stiffness: 0.01, RestingLength: 70}}

			w, err := sim.NewWorld(cfg, bodies, springs)
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Time()).To(BeZero())

			b, ok := w.Body("b")
			Expect(ok).To(BeTrue())
			Expect(b.Position).To(Equal(480.0))

			_, ok = w.Body("missing")
			Expect(ok).To(BeFalse())
		})

		DescribeTable("rejects invalid worlds",
			func(mutate func(*dynamo.Config, *[]dynamo.Body, *[]dynamo.Spring), want error) {
				bodies := []dynamo.Body{
					dynamo.NewBody("a", 100, 10, 6),
					dynamo.NewBody("b", 200, 10, 6),
				}
				var springs []dynamo.Spring
				c := cfg
				mutate(&c, &bodies, &springs)

				_, err := sim.NewWorld(c, bodies, springs)
				Expect(err).To(MatchError(want))
			},
			Entry("inverted bounds", func(c *dynamo.Config, _ *[]dynamo.Body, _ *[]dynamo.Spring) {
				c.LowerBound, c.UpperBound = 600, 0
			}, dynamo.ErrInvalidBounds),
			Entry("zero sub-steps", func(c *dynamo.Config, _ *[]dynamo.Body, _ *[]dynamo.Spring) {
				c.SubSteps = 0
			}, dynamo.ErrInvalidSubSteps),
			Entry("zero mass", func(_ *dynamo.Config, b *[]dynamo.Body, _ *[]dynamo.Spring) {
				(*b)[0].Mass = 0
			}, dynamo.ErrInvalidMass),
			Entry("duplicate body", func(_ *dynamo.Config, b *[]dynamo.Body, _ *[]dynamo.Spring) {
				(*b)[1].ID = "a"
			}, dynamo.ErrDuplicateBody),
			Entry("unknown body", func(_ *dynamo.Config, _ *[]dynamo.Body, s *[]dynamo.Spring) {
				*s = []dynamo.Spring{{A: "a", B: "z", Stiffness: 1}}
			}, dynamo.ErrUnknownBody),
			Entry("self spring", func(_ *dynamo.Config, _ *[]dynamo.Body, s *[]dynamo.Spring) {
				*s = []dynamo.Spring{{A: "a", B: "a", Stiffness: 1}}
			}, dynamo.ErrInvalidSpring),
			Entry("duplicate pair in either order", func(_ *dynamo.Config, _ *[]dynamo.Body, s *[]dynamo.Spring) {
				*s = []dynamo.Spring{
					{A: "a", B: "b", Stiffness: 1, RestingLength: 50},
					{A: "b", B: "a", Stiffness: 2, RestingLength: 60},
				}
			}, dynamo.ErrDuplicateSpring),
		)
	})

	Describe("Step", func() {
		It("keeps the velocity of a free body", func() {
			bodies := []dynamo.Body{moving("a", 100, 2, 10)}
			w, err := sim.NewWorld(cfg, bodies, nil)
			Expect(err).NotTo(HaveOccurred())

			w.Step()

			Expect(bodies[0].Position).To(BeNumerically("~", 102, 1e-9))
			Expect(dynamo.Velocity(&bodies[0])).To(BeNumerically("~", 2, 1e-9))
			Expect(w.Time()).To(Equal(1.0))
		})

		It("accelerates under gravity over the sub-steps", func() {
			cfg.SubSteps = 4
			cfg.Gravity = 0.1
			bodies := []dynamo.Body{dynamo.NewBody("a", 100, 10, 6)}
			w, err := sim.NewWorld(cfg, bodies, nil)
			Expect(err).NotTo(HaveOccurred())

			w.Step()

			Expect(bodies[0].Position).To(BeNumerically("~", 100.0625, 1e-12))
			Expect(dynamo.Velocity(&bodies[0])).To(BeNumerically("~", 0.1, 1e-12))
		})

		It("resolves a collision within a step and conserves momentum and energy", func() {
			bodies := []dynamo.Body{
				moving("a", 100, 3, 10),
				moving("b", 120, -3, 20),
			}
			w, err := sim.NewWorld(cfg, bodies, nil)
			Expect(err).NotTo(HaveOccurred())

			p0, e0 := momentum(bodies), kinetic(bodies)
			Expect(p0).To(BeNumerically("~", -30, 1e-9))

			for step := 0; step < 3; step++ {
				w.Step()
			}

			Expect(dynamo.Velocity(&bodies[0])).To(BeNumerically("~", -5, 1e-9))
			Expect(dynamo.Velocity(&bodies[1])).To(BeNumerically("~", 1, 1e-9))
			Expect(momentum(bodies)).To(BeNumerically("~", p0, 1e-9))
			Expect(kinetic(bodies)).To(BeNumerically("~", e0, 1e-9))
			Expect(bodies[1].Position - bodies[0].Position).To(BeNumerically(">=", 12))
		})

		It("keeps a falling body inside the bounds", func() {
			cfg.Gravity = 0.1
			bodies := []dynamo.Body{dynamo.NewBody("a", 100, 10, 6)}
			w, err := sim.NewWorld(cfg, bodies, nil)
			Expect(err).NotTo(HaveOccurred())

			for step := 0; step < 600; step++ {
				w.Step()
				Expect(bodies[0].Position).To(BeNumerically(">=", cfg.LowerBound+6))
				Expect(bodies[0].Position).To(BeNumerically("<=", cfg.UpperBound-6))
			}
		})

		It("leaves a spring at its resting length untouched", func() {
			bodies := []dynamo.Body{
				dynamo.NewBody("a", 400, 10, 6),
				dynamo.NewBody("b", 470, 10, 6),
			}
			springs := []dynamo.Spring{{A: "a", B: "b", Stiffness: 0.01, RestingLength: 70}}
			w, err := sim.NewWorld(cfg, bodies, springs)
			Expect(err).NotTo(HaveOccurred())

			for step := 0; step < 50; step++ {
				w.Step()
			}

			Expect(bodies[0].Position).To(Equal(400.0))
			Expect(bodies[1].Position).To(Equal(470.0))
		})

		It("keeps the center of mass of a free spring pair fixed", func() {
			bodies := []dynamo.Body{
				dynamo.NewBody("a", 400, 10, 6),
				dynamo.NewBody("b", 480, 10, 6),
			}
			springs := []dynamo.Spring{{A: "a", B: "b", Stiffness: 0.01, RestingLength: 70}}
			w, err := sim.NewWorld(cfg, bodies, springs)
			Expect(err).NotTo(HaveOccurred())

			for step := 0; step < 100; step++ {
				w.Step()
				Expect((bodies[0].Position + bodies[1].Position) / 2).To(BeNumerically("~", 440, 1e-6))
			}
		})
	})

	Describe("Step without a world", func() {
		It("validates its inputs", func() {
			bodies := []dynamo.Body{dynamo.NewBody("a", 100, 10, 6)}
			cfg.Timestep = 0
			Expect(sim.Step(cfg, bodies, nil)).To(MatchError(dynamo.ErrInvalidTimestep))
			Expect(bodies[0].Position).To(Equal(100.0))
		})

		It("advances valid bodies", func() {
			bodies := []dynamo.Body{moving("a", 100, 1, 10)}
			Expect(sim.Step(cfg, bodies, nil)).To(Succeed())
			Expect(bodies[0].Position).To(BeNumerically("~", 101, 1e-9))
		})
	})
})
