// Package render defines the drawing contract the simulation talks to.
//
// A [Renderer] accepts colored rectangles for the current frame and flushes
// them to a surface on [Renderer.RenderFrame]:
//
//   - [Batch]: pending rects grouped by texture id, drained once per frame
//   - [Recorder]: in-memory Renderer that keeps every flushed frame
//
// Backends for real surfaces live in the front-end packages (viz, gui,
// screen); they embed a Batch and present it however their surface wants.
package render
