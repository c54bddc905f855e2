package gui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/bouncebox/internal/render"
)

func TestRendererKeepsPresentedFrame(t *testing.T) {
	r := &Renderer{}
	rects := []render.Rect{
		{X: 10, Y: 20, W: 60, H: 60, Color: render.Color{R: 1, A: 1}},
		{X: 330, Y: 50, W: 30, H: 8, Color: render.Color{R: 0.5, G: 0.5, B: 0.5, A: 0.3}},
	}
	for _, rect := range rects {
		r.DrawRect(rect)
	}

	// no window is open, so nothing reaches the screen
	if st := r.RenderFrame(16); st != render.StatusFailure {
		t.Errorf("expected StatusFailure without a window, got %d", st)
	}
	if r.batch.Len() != 0 {
		t.Errorf("expected batch consumed, %d rects left", r.batch.Len())
	}
	if diff := cmp.Diff(rects, r.presented); diff != "" {
		t.Errorf("presented frame mismatch (-want +got):\n%s", diff)
	}

	r.Present()
	if diff := cmp.Diff(rects, r.presented); diff != "" {
		t.Errorf("present consumed the frame (-want +got):\n%s", diff)
	}

	r.RenderFrame(16)
	if len(r.presented) != 0 {
		t.Errorf("expected an empty flush to replace the frame, got %d rects", len(r.presented))
	}

	r.DrawRect(rects[0])
	r.RenderFrame(16)
	r.Cleanup()
	if len(r.presented) != 0 || r.batch.Len() != 0 {
		t.Error("expected cleanup to drop kept rects")
	}
}
