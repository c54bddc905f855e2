package render

// Status is the result code of a frame flush. It crosses the host boundary
// as a plain integer, so only the two values below are meaningful.
type Status int32

const (
	StatusFailure Status = 0
	StatusOK      Status = 1
)

func (s Status) OK() bool { return s == StatusOK }

// NoTexture marks an untextured, solid-color rect.
const NoTexture uint32 = 0

type Color struct {
	R, G, B, A float32
}

// RGBA8 returns the color as 8-bit channels, clamping out-of-range values.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Rect is one queued draw: top-left corner, size, color and texture id.
type Rect struct {
	X, Y    float32
	W, H    float32
	Color   Color
	Texture uint32
}

func (r Rect) Right() float32  { return r.X + r.W }
func (r Rect) Bottom() float32 { return r.Y + r.H }

type Renderer interface {
	SetClearColor(c Color)
	DrawRect(r Rect)
	RenderFrame(deltaMs float32) Status
	Resize(width, height uint32)
	Cleanup()
}
