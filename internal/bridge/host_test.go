package bridge

import (
	"errors"
	"testing"

	"github.com/san-kum/bouncebox/internal/boxes"
	"github.com/san-kum/bouncebox/internal/render"
)

type fakeProvider struct {
	rec      *render.Recorder
	err      error
	acquired int
	released int
}

func (p *fakeProvider) Acquire(width, height uint32) (render.Renderer, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.acquired++
	p.rec = render.NewRecorder(width, height)
	return p.rec, nil
}

func (p *fakeProvider) Release() { p.released++ }

func TestHostLifecycle(t *testing.T) {
	p := &fakeProvider{}
	h := NewHost(p, boxes.WithSeed(3))

	if err := h.NativeInit(800, 600); err != nil {
		t.Fatalf("native init failed: %v", err)
	}
	h.DemoInit(800, 600)

	if got := h.DemoFrame(16); got != 1 {
		t.Errorf("expected frame result 1, got %d", got)
	}

	h.DemoTouch(100, 100)
	if h.Simulation().Len() != boxes.DefaultInitialBoxes+1 {
		t.Errorf("expected touch to spawn a box, got %d", h.Simulation().Len())
	}

	h.DemoResize(1024, 768)
	if p.rec.Width != 1024 || p.rec.Height != 768 {
		t.Errorf("expected renderer resized, got %dx%d", p.rec.Width, p.rec.Height)
	}

	h.DemoCleanup()
	h.DemoCleanup()
	if p.released != 1 {
		t.Errorf("expected surface released once, got %d", p.released)
	}
	if p.rec.Cleanups != 1 {
		t.Errorf("expected renderer cleanup once, got %d", p.rec.Cleanups)
	}
	if h.Attached() {
		t.Error("expected host detached after cleanup")
	}
	if got := h.DemoFrame(16); got != 0 {
		t.Errorf("expected frame result 0 after cleanup, got %d", got)
	}
}

func TestHostFrameBeforeDemoInit(t *testing.T) {
	h := NewHost(&fakeProvider{})
	if err := h.NativeInit(320, 240); err != nil {
		t.Fatalf("native init failed: %v", err)
	}
	if got := h.DemoFrame(16); got != 0 {
		t.Errorf("expected frame result 0 before demo init, got %d", got)
	}
}

func TestHostAcquireFailure(t *testing.T) {
	errBoom := errors.New("no window")
	p := &fakeProvider{err: errBoom}
	h := NewHost(p)

	err := h.NativeInit(800, 600)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped acquire error, got %v", err)
	}

	h.DemoInit(800, 600)
	h.DemoTouch(10, 10)
	h.DemoResize(10, 10)
	if got := h.DemoFrame(16); got != 0 {
		t.Errorf("expected frame result 0 without surface, got %d", got)
	}
	h.DemoCleanup()
	if p.released != 0 {
		t.Errorf("expected no release without a surface, got %d", p.released)
	}
}

func TestHostReinitAfterCleanup(t *testing.T) {
	p := &fakeProvider{}
	h := NewHost(p, boxes.WithSeed(3))

	for i := 0; i < 2; i++ {
		if err := h.NativeInit(800, 600); err != nil {
			t.Fatalf("native init %d failed: %v", i, err)
		}
		h.DemoInit(800, 600)
		if got := h.DemoFrame(16); got != 1 {
			t.Errorf("session %d: expected frame result 1, got %d", i, got)
		}
		h.DemoCleanup()
	}
	if p.acquired != 2 || p.released != 2 {
		t.Errorf("expected 2 acquire/release pairs, got %d/%d", p.acquired, p.released)
	}
}

func TestHostNativeInitReplacesSurface(t *testing.T) {
	p := &fakeProvider{}
	h := NewHost(p, boxes.WithSeed(3))

	if err := h.NativeInit(800, 600); err != nil {
		t.Fatalf("first native init failed: %v", err)
	}
	h.DemoInit(800, 600)
	first := p.rec

	if err := h.NativeInit(640, 480); err != nil {
		t.Fatalf("second native init failed: %v", err)
	}
	if p.acquired != 2 || p.released != 1 {
		t.Errorf("expected the first surface released before the second, got %d/%d", p.acquired, p.released)
	}
	if first.Cleanups != 1 {
		t.Errorf("expected first renderer cleaned up once, got %d", first.Cleanups)
	}
	if !h.Attached() || h.Renderer() != p.rec {
		t.Error("expected host attached to the new surface")
	}

	h.DemoCleanup()
	if p.released != 2 {
		t.Errorf("expected 2 releases, got %d", p.released)
	}
}
