package gui

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/bouncebox/internal/render"
)

var ErrNoWindow = errors.New("gui: window could not be created")

func toRL(c render.Color) rl.Color {
	r, g, b, a := c.RGBA8()
	return rl.NewColor(r, g, b, a)
}

// Renderer draws each flushed batch between BeginDrawing and EndDrawing and
// keeps it, so a paused loop can present the same frame again. An optional
// overlay is drawn on top before the frame is presented.
type Renderer struct {
	clear     rl.Color
	batch     render.Batch
	presented []render.Rect
	overlay   func()
}

func (r *Renderer) SetClearColor(c render.Color) { r.clear = toRL(c) }

func (r *Renderer) DrawRect(rect render.Rect) { r.batch.Push(rect) }

func (r *Renderer) RenderFrame(float32) render.Status {
	r.presented = r.presented[:0]
	r.batch.Each(func(rect render.Rect) { r.presented = append(r.presented, rect) })
	r.batch.Clear()
	return r.Present()
}

// Present draws the last flushed frame again without consuming new rects.
func (r *Renderer) Present() render.Status {
	if !rl.IsWindowReady() {
		return render.StatusFailure
	}

	rl.BeginDrawing()
	rl.ClearBackground(r.clear)
	for _, rect := range r.presented {
		rl.DrawRectangleRec(rl.NewRectangle(rect.X, rect.Y, rect.W, rect.H), toRL(rect.Color))
	}
	if r.overlay != nil {
		r.overlay()
	}
	rl.EndDrawing()
	return render.StatusOK
}

// Resize is a no-op: raylib resizes the default framebuffer with the window.
func (r *Renderer) Resize(uint32, uint32) {}

func (r *Renderer) Cleanup() {
	r.batch.Clear()
	r.presented = r.presented[:0]
}

// Window is the surface provider: acquiring opens the window, releasing
// closes it.
type Window struct {
	Title     string
	TargetFPS int32

	r *Renderer
}

func (w *Window) Acquire(width, height uint32) (render.Renderer, error) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), w.Title)
	if !rl.IsWindowReady() {
		return nil, ErrNoWindow
	}
	rl.SetTargetFPS(w.TargetFPS)

	w.r = &Renderer{}
	return w.r, nil
}

func (w *Window) Release() {
	w.r = nil
	rl.CloseWindow()
}
