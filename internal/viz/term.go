package viz

import (
	"math"

	"github.com/san-kum/bouncebox/internal/render"
)

// DefaultScale is how many logical pixels one braille dot covers.
const DefaultScale = 8

// FloorInk colors the floor line.
var FloorInk = render.Color{R: 0.45, G: 0.45, B: 0.55, A: 1}

// TermRenderer rasterizes queued rects onto a braille canvas at flush time.
// Rects are drawn in submission order; alpha is ignored. With Floor set,
// every frame also rules a line along the bottom edge of the screen.
type TermRenderer struct {
	Floor bool

	scale         float32
	width, height uint32
	clear         render.Color
	batch         render.Batch
	canvas        *Canvas
	frames        int
}

func NewTermRenderer(width, height uint32, scale float32) *TermRenderer {
	if scale <= 0 {
		scale = DefaultScale
	}
	t := &TermRenderer{scale: scale}
	t.Resize(width, height)
	return t
}

func (t *TermRenderer) SetClearColor(c render.Color) { t.clear = c }

func (t *TermRenderer) DrawRect(r render.Rect) { t.batch.Push(r) }

func (t *TermRenderer) RenderFrame(float32) render.Status {
	t.canvas.Clear()
	t.batch.Each(func(r render.Rect) {
		x0 := int(math.Floor(float64(r.X / t.scale)))
		y0 := int(math.Floor(float64(r.Y / t.scale)))
		x1 := int(math.Ceil(float64(r.Right()/t.scale))) - 1
		y1 := int(math.Ceil(float64(r.Bottom()/t.scale))) - 1
		t.canvas.FillRect(x0, y0, max(x0, x1), max(y0, y1), r.Color)
	})
	t.batch.Clear()
	if t.Floor {
		y := t.floorRow()
		t.canvas.DrawLine(0, y, t.canvas.Width*2-1, y, FloorInk)
	}
	t.frames++
	return render.StatusOK
}

// floorRow is the dot row holding the last logical pixel row.
func (t *TermRenderer) floorRow() int {
	return max(int(math.Ceil(float64(t.height)/float64(t.scale)))-1, 0)
}

// Resize rebuilds the canvas so it covers width x height logical pixels.
func (t *TermRenderer) Resize(width, height uint32) {
	t.width, t.height = width, height
	cols := int(math.Ceil(float64(width) / float64(t.scale) / 2))
	rows := int(math.Ceil(float64(height) / float64(t.scale) / 4))
	t.canvas = NewCanvas(max(cols, 1), max(rows, 1))
}

func (t *TermRenderer) Cleanup() {
	t.batch.Clear()
	t.canvas.Clear()
}

func (t *TermRenderer) Canvas() *Canvas          { return t.canvas }
func (t *TermRenderer) ClearColor() render.Color { return t.clear }
func (t *TermRenderer) Frames() int              { return t.frames }
func (t *TermRenderer) Scale() float32           { return t.scale }

// ToLogical maps a terminal cell to the logical pixel at its center.
func (t *TermRenderer) ToLogical(col, row int) (float32, float32) {
	return (float32(col)*2 + 1) * t.scale, (float32(row)*4 + 2) * t.scale
}

// Provider hands out one TermRenderer per acquired surface.
type Provider struct {
	Scale float32
	Floor bool

	r *TermRenderer
}

func (p *Provider) Acquire(width, height uint32) (render.Renderer, error) {
	p.r = NewTermRenderer(width, height, p.Scale)
	p.r.Floor = p.Floor
	return p.r, nil
}

func (p *Provider) Release() { p.r = nil }

func (p *Provider) Renderer() *TermRenderer { return p.r }
