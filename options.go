package ink

// CanvasOption configures a Canvas during creation.
//
// Example:
//
//	cv := ink.NewCanvas(
//	    ink.WithHistoryLimit(100),
//	    ink.WithEraseRadius(16),
//	)
type CanvasOption func(*Canvas)

// WithDocument makes the canvas edit an existing document instead of a
// fresh single-page one.
func WithDocument(d *Document) CanvasOption {
	return func(c *Canvas) {
		if d != nil {
			c.doc = d
		}
	}
}

// WithCellSize sets the spatial index grid cell size in document units.
func WithCellSize(size float64) CanvasOption {
	return func(c *Canvas) {
		c.cellSize = size
	}
}

// WithHistoryLimit sets the maximum number of undoable actions.
func WithHistoryLimit(limit int) CanvasOption {
	return func(c *Canvas) {
		c.historyLimit = limit
	}
}

// WithEraseRadius sets the half-extent of the square erase probe in
// document units.
func WithEraseRadius(radius float64) CanvasOption {
	return func(c *Canvas) {
		c.eraseRadius = radius
	}
}

// WithRenderer sets a custom renderer for the Canvas.
//
// Example:
//
//	cv := ink.NewCanvas(ink.WithRenderer(
//	    ink.NewRenderer(ink.WithPatternSpacing(25)),
//	))
func WithRenderer(r *Renderer) CanvasOption {
	return func(c *Canvas) {
		if r != nil {
			c.renderer = r
		}
	}
}
