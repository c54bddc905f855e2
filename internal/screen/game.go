// Package screen is the ebiten front end. Ebiten owns the loop, so a step
// runs in Update and the frame it flushed is painted in the next Draw.
package screen

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/bouncebox/internal/boxes"
	"github.com/san-kum/bouncebox/internal/bridge"
	"github.com/san-kum/bouncebox/internal/render"
)

func toNRGBA(c render.Color) color.NRGBA {
	r, g, b, a := c.RGBA8()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Renderer double-buffers rects: RenderFrame publishes the pending batch,
// Draw paints the last published one.
type Renderer struct {
	clear     color.NRGBA
	pending   render.Batch
	presented []render.Rect
}

func (r *Renderer) SetClearColor(c render.Color) { r.clear = toNRGBA(c) }

func (r *Renderer) DrawRect(rect render.Rect) { r.pending.Push(rect) }

func (r *Renderer) RenderFrame(float32) render.Status {
	r.presented = r.presented[:0]
	r.pending.Each(func(rect render.Rect) { r.presented = append(r.presented, rect) })
	r.pending.Clear()
	return render.StatusOK
}

// Resize is a no-op: the logical screen follows Layout.
func (r *Renderer) Resize(uint32, uint32) {}

func (r *Renderer) Cleanup() {
	r.pending.Clear()
	r.presented = r.presented[:0]
}

func (r *Renderer) Draw(dst *ebiten.Image) {
	dst.Fill(r.clear)
	for _, rect := range r.presented {
		vector.FillRect(dst, rect.X, rect.Y, rect.W, rect.H, toNRGBA(rect.Color), false)
	}
}

// Window is the surface provider for an ebiten window.
type Window struct {
	Title string

	r *Renderer
}

func (w *Window) Acquire(width, height uint32) (render.Renderer, error) {
	ebiten.SetWindowSize(int(width), int(height))
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w.r = &Renderer{}
	return w.r, nil
}

func (w *Window) Release() { w.r = nil }

type Game struct {
	host   *bridge.Host
	window *Window

	width, height int
	resized       bool
	paused        bool
}

func NewGame(opts ...boxes.Option) *Game {
	w := &Window{Title: "bouncebox"}
	return &Game{host: bridge.NewHost(w, opts...), window: w}
}

// Run opens the window and blocks until it is closed.
func Run(width, height uint32, opts ...boxes.Option) error {
	g := NewGame(opts...)
	if err := g.host.NativeInit(width, height); err != nil {
		return err
	}
	defer g.host.DemoCleanup()

	g.width, g.height = int(width), int(height)
	g.host.DemoInit(width, height)

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.host.DemoInit(uint32(g.width), uint32(g.height))
	}

	if g.resized {
		g.resized = false
		g.host.DemoResize(uint32(g.width), uint32(g.height))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.host.DemoTouch(float32(x), float32(y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		g.host.DemoTouch(float32(x), float32(y))
	}

	if g.paused {
		return nil
	}
	if g.host.DemoFrame(1000/float32(ebiten.TPS())) == 0 {
		log.Printf("[screen] frame not presented")
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.window.r != nil {
		g.window.r.Draw(screen)
	}
}

// Layout keeps one logical pixel per window pixel and queues a resize when
// the window size changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.resized = true
	}
	return outsideWidth, outsideHeight
}
