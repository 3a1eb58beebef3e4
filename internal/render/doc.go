// Package render turns the retained skeleton history into an ordered list
// of draw commands for a 2D surface.
//
// Rendering is a pure function of its inputs: the current body, the
// buffered snapshots (newest first) and the gesture colour state. The
// gesture classifier is run by the caller before RenderFrame, never from
// inside the bone loop.
package render
