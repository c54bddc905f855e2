package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/bouncebox/internal/boxes"
	"github.com/san-kum/bouncebox/internal/bridge"
	"github.com/san-kum/bouncebox/internal/config"
	"github.com/san-kum/bouncebox/internal/render"
)

// Headless is a surface provider whose renderer only records frames.
type Headless struct {
	// Keep bounds how many frames the recorder retains; 0 keeps all.
	Keep int
	// FailFrames is handed to the recorder to simulate dropped frames.
	FailFrames map[int]bool

	rec *render.Recorder
}

// Acquire reuses the recorder of an earlier run, so a provider handed to
// several runs only ever holds the latest one.
func (h *Headless) Acquire(width, height uint32) (render.Renderer, error) {
	if h.rec == nil {
		h.rec = render.NewRecorder(width, height)
	} else {
		h.rec.Reset()
		h.rec.Width, h.rec.Height = width, height
	}
	h.rec.Keep = h.Keep
	h.rec.FailFrames = h.FailFrames
	return h.rec, nil
}

func (h *Headless) Release() {}

func (h *Headless) Recorder() *render.Recorder { return h.rec }

// Simulator drives the boxes simulation through a Host for a fixed number
// of frames, replaying the scheduled touches and resizes of a config.
type Simulator struct {
	metrics   []Metric
	observers []Observer
	provider  *Headless
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetProvider replaces the default recorder-backed surface, which keeps only
// the last frame.
func (s *Simulator) SetProvider(h *Headless) { s.provider = h }

func (s *Simulator) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	provider := s.provider
	if provider == nil {
		provider = &Headless{Keep: 1}
	}
	host := bridge.NewHost(provider, boxes.WithSeed(seed), boxes.WithParams(cfg.Params()))
	if err := host.NativeInit(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	defer host.DemoCleanup()

	host.DemoInit(cfg.Width, cfg.Height)
	b := host.Simulation()
	if !b.Ready() {
		return nil, boxes.ErrNotReady
	}
	rec := provider.Recorder()

	touches := make(map[int][]config.TouchEvent)
	for _, t := range cfg.Touches {
		touches[t.Frame] = append(touches[t.Frame], t)
	}
	resizes := make(map[int][]config.ResizeEvent)
	for _, r := range cfg.Resizes {
		resizes[r.Frame] = append(resizes[r.Frame], r)
	}

	result := &Result{
		Seed:       seed,
		Samples:    make([]Sample, 0, cfg.Frames),
		Metrics:    make(map[string]float64),
		ClearColor: rec.ClearColor,
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	dt := float64(cfg.FrameMs) / 1000
	t := 0.0
	var runErr error

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		for _, r := range resizes[i] {
			host.DemoResize(r.Width, r.Height)
		}
		for _, tc := range touches[i] {
			host.DemoTouch(tc.X, tc.Y)
		}

		st := render.Status(host.DemoFrame(cfg.FrameMs))
		t += dt
		result.FramesRun++

		w, h := b.Size()
		frame := Frame{
			Index:   i,
			Time:    t,
			Boxes:   b.Boxes(),
			BoxSize: b.Params().BoxSize,
			Width:   w,
			Height:  h,
			Status:  st,
		}
		for _, m := range s.metrics {
			m.Observe(frame)
		}
		for _, obs := range s.observers {
			obs.OnFrame(frame)
		}

		draws := 0
		if last, ok := rec.Last(); ok {
			draws = len(last.Rects)
		}
		result.Samples = append(result.Samples, Sample{
			Time:       t,
			Count:      b.Len(),
			Energy:     b.KineticEnergy(),
			MeanHeight: meanHeight(frame),
			Bounces:    b.Stats().Bounces(),
			Draws:      draws,
		})

		if !st.OK() {
			runErr = SimError{Frame: i, Status: st}
			break
		}
	}

	result.Final = append([]boxes.Box(nil), b.Boxes()...)
	result.Stats = b.Stats()
	result.Width, result.Height = b.Size()
	if last, ok := rec.Last(); ok {
		result.LastFrame = last.Rects
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if runErr != nil {
		return result, fmt.Errorf("sim: run stopped after %d frames: %w", result.FramesRun, runErr)
	}
	return result, nil
}

func meanHeight(f Frame) float64 {
	if len(f.Boxes) == 0 {
		return 0
	}
	sum := 0.0
	for _, bx := range f.Boxes {
		sum += float64(f.Height) - (bx.Y + f.BoxSize)
	}
	return sum / float64(len(f.Boxes))
}
