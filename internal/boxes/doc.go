// Package boxes implements the bouncing-boxes simulation.
//
// A [Simulation] owns a fixed-capacity array of [Box] values and the current
// screen size. Each [Simulation.Step] integrates gravity, resolves wall,
// floor and ceiling contacts with damping, and emits one rect per box plus a
// static hint row to a [render.Renderer] before asking it to flush the frame.
//
// # Lifecycle
//
//	s := boxes.New(renderer, boxes.WithSeed(42))
//	s.Init(800, 600)
//	for running {
//	    s.Step(deltaMs)
//	}
//	s.Cleanup()
//
// Step before Init reports [render.StatusFailure] and does nothing.
//
// # Thread Safety
//
// A Simulation is NOT safe for concurrent use. Drive it from one goroutine,
// normally the render callback of the surface it draws to.
package boxes
