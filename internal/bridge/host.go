// Package bridge is the platform glue between a surface-owning front end and
// the boxes simulation. A front end translates its own events (window
// resize, mouse or touch press, frame tick) into Host calls; the Host owns
// the surface lifetime and forwards everything else to the simulation.
package bridge

import (
	"errors"
	"fmt"
	"log"

	"github.com/san-kum/bouncebox/internal/boxes"
	"github.com/san-kum/bouncebox/internal/render"
)

// Provider acquires a drawable surface and returns a Renderer bound to it.
type Provider interface {
	Acquire(width, height uint32) (render.Renderer, error)
	Release()
}

var ErrNoSurface = errors.New("bridge: no surface acquired")

// Host owns one surface and one simulation and must be driven from a
// single render thread.
type Host struct {
	provider Provider
	opts     []boxes.Option

	renderer render.Renderer
	sim      *boxes.Simulation
}

func NewHost(p Provider, opts ...boxes.Option) *Host {
	return &Host{provider: p, opts: opts}
}

// NativeInit acquires the surface and builds the simulation on top of it.
// On failure the host is left without a surface and frames report failure.
// A surface that is still attached is cleaned up and released first.
func (h *Host) NativeInit(width, height uint32) error {
	log.Printf("[bridge] nativeInit: %dx%d", width, height)
	if h.renderer != nil {
		log.Printf("[bridge] nativeInit: releasing previous surface")
		h.DemoCleanup()
	}

	r, err := h.provider.Acquire(width, height)
	if err != nil {
		log.Printf("[bridge] surface acquisition failed: %v", err)
		h.renderer, h.sim = nil, nil
		return fmt.Errorf("bridge: acquire surface: %w", err)
	}
	h.renderer = r
	h.sim = boxes.New(r, h.opts...)
	log.Printf("[bridge] renderer initialized")
	return nil
}

func (h *Host) DemoInit(width, height uint32) {
	log.Printf("[bridge] demoInit: %dx%d", width, height)
	if h.renderer == nil {
		log.Printf("[bridge] demoInit: %v", ErrNoSurface)
		return
	}
	h.sim.Init(width, height)
}

// DemoFrame steps the simulation and returns 1 on a presented frame, 0
// otherwise.
func (h *Host) DemoFrame(deltaMs float32) int32 {
	if h.renderer == nil {
		return int32(render.StatusFailure)
	}
	return int32(h.sim.Step(deltaMs))
}

func (h *Host) DemoResize(width, height uint32) {
	log.Printf("[bridge] demoResize: %dx%d", width, height)
	if h.renderer == nil {
		return
	}
	h.sim.Resize(width, height)
}

func (h *Host) DemoTouch(x, y float32) {
	if h.renderer == nil {
		return
	}
	h.sim.Spawn(float64(x), float64(y))
}

// DemoCleanup tears the simulation down and releases the surface. Safe to
// call more than once.
func (h *Host) DemoCleanup() {
	log.Printf("[bridge] demoCleanup")
	if h.renderer == nil {
		return
	}
	h.sim.Cleanup()
	h.provider.Release()
	h.renderer = nil
}

// Simulation exposes the simulation for read-only inspection. It is nil
// before a successful NativeInit and survives DemoCleanup.
func (h *Host) Simulation() *boxes.Simulation { return h.sim }

func (h *Host) Renderer() render.Renderer { return h.renderer }

// Attached reports whether a surface is currently held.
func (h *Host) Attached() bool { return h.renderer != nil }
