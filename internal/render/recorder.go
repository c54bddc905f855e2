package render

// Frame is one flushed frame as seen by a Recorder.
type Frame struct {
	DeltaMs float32
	Rects   []Rect
	Status  Status
}

// Recorder is a Renderer that keeps what it is asked to draw instead of
// presenting it. Headless runs and tests use it.
type Recorder struct {
	ClearColor Color
	Width      uint32
	Height     uint32
	Resizes    int
	Cleanups   int

	// FailFrames makes RenderFrame report failure for the given frame
	// indices (0-based, counted over all flushes).
	FailFrames map[int]bool
	// Keep bounds how many flushed frames are retained; 0 keeps all.
	Keep int

	pending Batch
	frames  []Frame
	flushes int
}

func NewRecorder(width, height uint32) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) SetClearColor(c Color) { r.ClearColor = c }

func (r *Recorder) DrawRect(rect Rect) { r.pending.Push(rect) }

func (r *Recorder) RenderFrame(deltaMs float32) Status {
	st := StatusOK
	if r.FailFrames[r.flushes] {
		st = StatusFailure
	}
	rects := make([]Rect, 0, r.pending.Len())
	r.pending.Each(func(rect Rect) { rects = append(rects, rect) })
	r.pending.Clear()

	r.frames = append(r.frames, Frame{DeltaMs: deltaMs, Rects: rects, Status: st})
	if r.Keep > 0 && len(r.frames) > r.Keep {
		r.frames = append(r.frames[:0], r.frames[len(r.frames)-r.Keep:]...)
	}
	r.flushes++
	return st
}

func (r *Recorder) Resize(width, height uint32) {
	r.Width, r.Height = width, height
	r.Resizes++
}

func (r *Recorder) Cleanup() {
	r.pending.Clear()
	r.Cleanups++
}

// Pending is the number of rects queued since the last flush.
func (r *Recorder) Pending() int { return r.pending.Len() }

// Flushes counts every RenderFrame call, including dropped frames.
func (r *Recorder) Flushes() int { return r.flushes }

func (r *Recorder) Frames() []Frame { return r.frames }

// Last returns the most recent flushed frame.
func (r *Recorder) Last() (Frame, bool) {
	if len(r.frames) == 0 {
		return Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

// Reset forgets recorded frames and counters, keeping FailFrames and Keep.
func (r *Recorder) Reset() {
	r.pending.Clear()
	r.frames = nil
	r.flushes = 0
	r.Resizes = 0
	r.Cleanups = 0
}
