package boxes_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bouncebox/internal/boxes"
	"github.com/san-kum/bouncebox/internal/render"
)

const frameMs = 16.67

var _ = Describe("Simulation", func() {
	var (
		rec *render.Recorder
		sim *boxes.Simulation
	)

	BeforeEach(func() {
		rec = render.NewRecorder(800, 600)
		sim = boxes.New(rec, boxes.WithSeed(2024))
	})

	Context("before Init", func() {
		It("refuses to step and leaves the count at zero", func() {
			Expect(sim.Step(frameMs)).To(Equal(render.StatusFailure))
			Expect(sim.Len()).To(BeZero())
			Expect(rec.Flushes()).To(BeZero())
		})
	})

	Context("a box dropped from (400,100) on an 800x600 screen", func() {
		var idx int

		BeforeEach(func() {
			sim.Init(800, 600)
			sim.Spawn(400, 100)
			idx = sim.Len() - 1
		})

		It("lands on the floor and bounces back up", func() {
			size := sim.Params().BoxSize
			g := sim.Params().Gravity
			dt := float64(float32(frameMs)) / 1000

			bounced := false
			for frame := 0; frame < 600 && !bounced; frame++ {
				before, _ := sim.Box(idx)
				vyIn := before.VY + g*dt
				predicted := before.Y + vyIn*dt

				Expect(sim.Step(frameMs)).To(Equal(render.StatusOK))
				after, _ := sim.Box(idx)
				Expect(after.Y+size).To(BeNumerically("<=", 600+1e-9))

				if predicted+size > 600 {
					Expect(vyIn).To(BeNumerically(">", 0))
					Expect(after.Y).To(BeNumerically("~", 600-size, 1e-9))
					Expect(after.VY).To(BeNumerically("<", 0))
					Expect(after.VY).To(BeNumerically("~", -vyIn*boxes.DefaultBounceDamping, 1e-9))
					bounced = true
				}
			}
			Expect(bounced).To(BeTrue(), "box never reached the floor")
		})

		It("keeps every box inside the screen", func() {
			for frame := 0; frame < 1200; frame++ {
				sim.Step(frameMs)
				for _, b := range sim.Boxes() {
					Expect(b.X).To(BeNumerically(">=", 0))
					Expect(b.Y).To(BeNumerically(">=", 0))
					Expect(b.X + 60).To(BeNumerically("<=", 800+1e-9))
					Expect(b.Y + 60).To(BeNumerically("<=", 600+1e-9))
				}
			}
		})

		It("loses energy over time", func() {
			for frame := 0; frame < 60; frame++ {
				sim.Step(frameMs)
			}
			early := sim.KineticEnergy()
			for frame := 0; frame < 3000; frame++ {
				sim.Step(frameMs)
			}
			Expect(sim.KineticEnergy()).To(BeNumerically("<", early))
			Expect(sim.Stats().FloorBounces).To(BeNumerically(">", 0))
		})
	})

	Context("resizing under a box", func() {
		It("clamps on the next step, not on resize", func() {
			sim.Init(800, 600)
			sim.Spawn(790, 300)
			idx := sim.Len() - 1

			sim.Resize(400, 600)
			b, _ := sim.Box(idx)
			Expect(b.X + 60).To(BeNumerically(">", 400))
			Expect(rec.Resizes).To(Equal(1))

			sim.Step(frameMs)
			b, _ = sim.Box(idx)
			Expect(b.X + 60).To(BeNumerically("<=", 400))
		})
	})

	Context("capacity", func() {
		It("saturates at the configured capacity", func() {
			sim.Init(800, 600)
			for i := 0; i < 500; i++ {
				sim.Spawn(float64(i%800), 200)
			}
			Expect(sim.Len()).To(Equal(sim.Cap()))
			Expect(sim.Cap()).To(Equal(boxes.DefaultCapacity))
		})
	})

	Context("cleanup", func() {
		It("is idempotent", func() {
			sim.Init(800, 600)
			for frame := 0; frame < 200; frame++ {
				sim.Step(frameMs)
			}
			Expect(sim.Stats().Frames).To(Equal(200))
			sim.Cleanup()
			first := []any{sim.Len(), sim.Ready(), sim.Stats()}
			sim.Cleanup()
			Expect([]any{sim.Len(), sim.Ready(), sim.Stats()}).To(Equal(first))
			Expect(sim.Len()).To(BeZero())
			Expect(sim.Ready()).To(BeFalse())
			Expect(sim.Stats()).To(Equal(boxes.Stats{}))
			Expect(rec.Cleanups).To(Equal(2))
		})
	})
})
