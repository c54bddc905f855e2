package render

type texBatch struct {
	texture uint32
	rects   []Rect
}

// Batch collects the rects queued between two frame flushes, grouped by
// texture id in first-use order. Storage is reused across frames.
type Batch struct {
	batches []texBatch
	n       int
}

func (b *Batch) Push(r Rect) {
	for i := range b.batches {
		if b.batches[i].texture == r.Texture {
			b.batches[i].rects = append(b.batches[i].rects, r)
			b.n++
			return
		}
	}
	b.batches = append(b.batches, texBatch{texture: r.Texture, rects: []Rect{r}})
	b.n++
}

// Len is the number of pending rects across all textures.
func (b *Batch) Len() int { return b.n }

// Each visits pending rects texture group by texture group, in push order
// within a group.
func (b *Batch) Each(fn func(Rect)) {
	for _, tb := range b.batches {
		for _, r := range tb.rects {
			fn(r)
		}
	}
}

// Textures lists the texture ids with pending geometry.
func (b *Batch) Textures() []uint32 {
	ids := make([]uint32, 0, len(b.batches))
	for _, tb := range b.batches {
		if len(tb.rects) > 0 {
			ids = append(ids, tb.texture)
		}
	}
	return ids
}

// Clear drops all pending geometry but keeps the allocated storage.
func (b *Batch) Clear() {
	for i := range b.batches {
		b.batches[i].rects = b.batches[i].rects[:0]
	}
	b.n = 0
}
