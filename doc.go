// Package ink implements the drawing engine behind Zen-Note's canvas.
//
// # Overview
//
// ink is the data model and algorithm layer of a freehand whiteboard:
// pressure-tagged strokes with real-time smoothing, parametric shapes,
// embedded raster images, a bounded undo/redo history, a uniform-grid
// spatial index for erase hit-testing, a selection/transform subsystem
// and a two-layer software compositor built on rasterx.
//
// # Quick Start
//
//	cv := ink.NewCanvas()
//
//	// Capture a stroke from pointer events.
//	cv.BeginStroke(ink.Sample{X: 10, Y: 10, Pressure: 1}, ink.DefaultStyle(ink.ToolPen))
//	cv.ContinueStroke(ink.Sample{X: 40, Y: 25, Pressure: 1})
//	cv.EndStroke()
//
//	// Rasterize the page.
//	img := cv.Render(800, 600, nil)
//
// # Architecture
//
// The engine is single-threaded and event-driven: all operations are
// synchronous calls made from an external input loop. A Canvas owns one
// Document plus its derived caches (spatial index, render generation);
// nothing here locks, and correctness depends on the invalidation order
// mutate -> per-object caches -> render cache -> index rebuild at
// gesture end.
//
// # Coordinate System
//
// Document space uses standard computer graphics coordinates: origin at
// the top-left, X right, Y down. The renderer maps document space to
// pixel space with a plain scale + translate.
//
// # Rendering
//
// Pages are composited from two independent layers: a background layer
// (fill color plus an optional ruled/dotted/grid pattern) and a content
// layer (images, then shapes, then strokes). Eraser strokes are applied
// as a clear operation scoped to the content layer, so erasing never
// touches the background pattern. See Renderer.
package ink
