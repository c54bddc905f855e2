// Package viz is the terminal front end for the bouncing boxes demo.
//
// A [TermRenderer] rasterizes the frame's rects onto a braille [Canvas]; the
// [Model] is a Bubble Tea program that plays the platform role, turning
// ticks into frames, mouse presses into touches and terminal resizes into
// surface resizes.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart the session
//	S     - Drop a box at the top center
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit
package viz
