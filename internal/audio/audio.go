// Package audio sonifies a running simulation through the default output
// device.
package audio

import (
	"log"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/bouncebox/internal/audio/synth"
)

const BufferSize = 1024

// Processor owns the output stream. The render loop reports physics through
// Update; the audio callback reads it under the lock.
type Processor struct {
	Stream *portaudio.Stream
	Active bool

	mu          sync.Mutex
	synth       *synth.Synth
	energy      float64
	lastBounces int
}

func NewProcessor() *Processor {
	return &Processor{synth: synth.NewSynth()}
}

func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, synth.SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}

	log.Printf("[audio] output stream started")
	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if !a.Active {
		return
	}
	a.Stream.Stop()
	a.Stream.Close()
	portaudio.Terminate()
	a.Active = false
}

// Update records the latest kinetic energy and triggers a click when the
// floor bounce count has grown.
func (a *Processor) Update(energy float64, floorBounces int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.energy = energy
	if floorBounces > a.lastBounces {
		a.synth.Bounce(float64(floorBounces-a.lastBounces) / 4)
	}
	a.lastBounces = floorBounces
}

func (a *Processor) ProcessAudio(out [][]float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.synth.Render(a.energy, out)
}
