package boxes

import (
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/san-kum/bouncebox/internal/render"
)

type Simulation struct {
	renderer render.Renderer
	params   Params

	boxes []Box // len == params.Capacity, live prefix is boxes[:count]
	count int

	width, height uint32
	ready         bool

	seed   uint64
	seeded bool
	rng    *rand.Rand

	stats Stats
}

type Option func(*Simulation)

// WithSeed makes every Init reseed from seed instead of the wall clock, so
// trajectories are reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Simulation) {
		s.seed = seed
		s.seeded = true
	}
}

// WithParams replaces DefaultParams. Invalid params fall back to defaults;
// call Params.Validate beforehand to surface the error.
func WithParams(p Params) Option {
	return func(s *Simulation) {
		if p.Validate() != nil {
			log.Printf("[boxes] ignoring invalid params, using defaults")
			return
		}
		s.params = p
	}
}

func New(r render.Renderer, opts ...Option) *Simulation {
	s := &Simulation{
		renderer: r,
		params:   DefaultParams(),
		width:    800,
		height:   600,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.boxes = make([]Box, s.params.Capacity)
	s.rng = rand.New(rand.NewPCG(s.seed, s.seed))
	return s
}

func (s *Simulation) reseed() {
	seed := s.seed
	if !s.seeded {
		seed = uint64(time.Now().UnixNano())
	}
	s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (s *Simulation) randf() float64 { return s.rng.Float64() }

// clampDims raises dimensions that cannot hold a single box.
func (s *Simulation) clampDims(width, height uint32) (uint32, uint32) {
	floor := uint32(math.Ceil(s.params.BoxSize))
	if width < floor || height < floor {
		log.Printf("[boxes] %dx%d below box size, clamping to %d", width, height, floor)
		width = max(width, floor)
		height = max(height, floor)
	}
	return width, height
}

func (s *Simulation) Init(width, height uint32) {
	s.reseed()

	s.width, s.height = s.clampDims(width, height)
	s.count = 0
	s.stats = Stats{}

	s.renderer.SetClearColor(ClearColor)

	cx := float64(s.width) / 2
	cy := float64(s.height) / 3
	for i := 0; i < s.params.InitialBoxes; i++ {
		s.Spawn(cx+(s.randf()-0.5)*200, cy)
	}

	s.ready = true
}

// Spawn adds a box centered on (x, y). At capacity the call is dropped.
func (s *Simulation) Spawn(x, y float64) {
	if s.count >= len(s.boxes) {
		s.stats.Dropped++
		return
	}

	half := s.params.BoxSize / 2
	s.boxes[s.count] = Box{
		X:             x - half,
		Y:             y - half,
		VX:            (s.randf() - 0.5) * 400,
		VY:            (s.randf()-0.5)*200 - 200,
		R:             0.3 + s.randf()*0.7,
		G:             0.3 + s.randf()*0.7,
		B:             0.3 + s.randf()*0.7,
		RotationSpeed: (s.randf() - 0.5) * 5,
	}
	s.count++
}

// Step advances every box by deltaMs, draws the frame and returns the
// renderer's flush status unchanged.
func (s *Simulation) Step(deltaMs float32) render.Status {
	if !s.ready {
		return render.StatusFailure
	}

	dt := float64(deltaMs) / 1000
	p := &s.params
	size := p.BoxSize
	w, h := float64(s.width), float64(s.height)

	for i := 0; i < s.count; i++ {
		b := &s.boxes[i]

		b.VY += p.Gravity * dt

		b.X += b.VX * dt
		b.Y += b.VY * dt

		b.Rotation += b.RotationSpeed * dt

		if b.X < 0 {
			b.X = 0
			b.VX = -b.VX * p.BounceDamping
			b.RotationSpeed = -b.RotationSpeed
			s.stats.WallBounces++
		}
		if b.X+size > w {
			b.X = w - size
			b.VX = -b.VX * p.BounceDamping
			b.RotationSpeed = -b.RotationSpeed
			s.stats.WallBounces++
		}

		// Ground contact bleeds more energy than the walls.
		if b.Y+size > h {
			b.Y = h - size
			b.VY = -b.VY * p.BounceDamping
			b.VX *= p.FloorFriction
			b.RotationSpeed *= p.FloorSpinDecay
			s.stats.FloorBounces++
		}

		if b.Y < 0 {
			b.Y = 0
			b.VY = -b.VY * p.BounceDamping
			s.stats.CeilingBounces++
		}

		s.renderer.DrawRect(render.Rect{
			X:       float32(b.X),
			Y:       float32(b.Y),
			W:       float32(size),
			H:       float32(size),
			Color:   render.Color{R: float32(b.R), G: float32(b.G), B: float32(b.B), A: 1},
			Texture: render.NoTexture,
		})
	}

	hx := w/2 - hintOffset
	for i := 0; i < hintCount; i++ {
		s.renderer.DrawRect(render.Rect{
			X:       float32(hx + float64(i)*hintSpacing),
			Y:       hintY,
			W:       hintW,
			H:       hintH,
			Color:   hintColor,
			Texture: render.NoTexture,
		})
	}

	s.stats.Frames++
	return s.renderer.RenderFrame(deltaMs)
}

// Resize only records the new bounds; boxes outside them are pulled back by
// the next Step's collision pass.
func (s *Simulation) Resize(width, height uint32) {
	s.width, s.height = s.clampDims(width, height)
	s.renderer.Resize(s.width, s.height)
}

func (s *Simulation) Cleanup() {
	s.count = 0
	s.stats = Stats{}
	s.ready = false
	s.renderer.Cleanup()
}

func (s *Simulation) Ready() bool    { return s.ready }
func (s *Simulation) Len() int       { return s.count }
func (s *Simulation) Cap() int       { return len(s.boxes) }
func (s *Simulation) Params() Params { return s.params }
func (s *Simulation) Stats() Stats   { return s.stats }

func (s *Simulation) Size() (width, height uint32) { return s.width, s.height }

// Boxes returns the live boxes. The slice aliases internal storage and is
// only valid until the next call that mutates the simulation.
func (s *Simulation) Boxes() []Box { return s.boxes[:s.count] }

func (s *Simulation) Box(i int) (Box, bool) {
	if i < 0 || i >= s.count {
		return Box{}, false
	}
	return s.boxes[i], true
}

// KineticEnergy sums ½v² over live boxes, treating each box as unit mass.
func (s *Simulation) KineticEnergy() float64 {
	e := 0.0
	for _, b := range s.boxes[:s.count] {
		e += 0.5 * (b.VX*b.VX + b.VY*b.VY)
	}
	return e
}
