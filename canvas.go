package ink

import (
	"image"

	"github.com/IMAM-BASHA/Zen-Note--sub001/internal/cache"
)

// Canvas is the editing context for one document. It owns the document
// and every cache derived from it: the spatial index over the current
// page's strokes, the undo/redo history and the render generation.
//
// A Canvas is strictly single-threaded: all methods are synchronous
// and are expected to be driven from one input-event loop. At most one
// stroke and one shape can be in progress at a time; starting another
// while one is open is silently ignored, matching the engine's
// refuse-silently convention for precondition failures.
//
// Mutations follow a fixed invalidation order: mutate the data,
// invalidate per-object caches, bump the render generation, and
// rebuild the spatial index at gesture end.
type Canvas struct {
	doc      *Document
	history  *History
	index    *SpatialIndex
	renderer *Renderer
	sel      Selection
	er       eraser

	current      *Stroke
	currentShape *Shape

	cellSize     float64
	historyLimit int
	eraseRadius  float64

	generation uint64
	composites *cache.Cache[viewportKey, *image.RGBA]
}

// viewportKey identifies one rendered viewport. Composites are cached
// per viewport and the whole cache is dropped on any visible mutation,
// so flipping between a few zoom levels of an unchanged page is free.
type viewportKey struct {
	width   int
	height  int
	clip    Rect
	hasClip bool
}

// compositeCacheLimit bounds how many viewport composites are kept.
const compositeCacheLimit = 8

// NewCanvas creates a canvas over a fresh single-page document.
func NewCanvas(opts ...CanvasOption) *Canvas {
	c := &Canvas{
		doc:         NewDocument(),
		eraseRadius: DefaultEraseRadius,
		composites:  cache.New[viewportKey, *image.RGBA](compositeCacheLimit),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.history = NewHistory(c.historyLimit)
	c.history.SetOnChange(c.onHistoryChange)
	c.index = NewSpatialIndex(c.cellSize)
	if c.renderer == nil {
		c.renderer = NewRenderer()
	}
	c.rebuildIndex()
	return c
}

// Document returns the canvas's document.
func (c *Canvas) Document() *Document {
	return c.doc
}

// Page returns the page currently being edited.
func (c *Canvas) Page() *Page {
	return c.doc.Page()
}

// History returns the canvas's undo/redo history.
func (c *Canvas) History() *History {
	return c.history
}

// Index returns the spatial index over the current page's strokes.
func (c *Canvas) Index() *SpatialIndex {
	return c.index
}

// Selection returns the canvas's selection state.
func (c *Canvas) Selection() *Selection {
	return &c.sel
}

// Generation returns the render generation counter. It increments on
// every visible mutation; callers can use it to detect staleness of
// their own derived state.
func (c *Canvas) Generation() uint64 {
	return c.generation
}

// onHistoryChange runs after every Undo and Redo. The item lists may
// have grown or shrunk arbitrarily, so the selection's index sets are
// stale and are dropped rather than patched.
func (c *Canvas) onHistoryChange() {
	c.sel.Clear()
	c.invalidate()
	c.rebuildIndex()
}

// invalidate drops the cached composites and bumps the generation.
func (c *Canvas) invalidate() {
	c.generation++
	c.composites.Clear()
}

// rebuildIndex reindexes the current page's strokes.
func (c *Canvas) rebuildIndex() {
	c.index.Rebuild(c.Page().Strokes)
}

// SetCurrentPage switches the edited page. The history, selection and
// index all refer to per-page state, so they reset with the switch.
func (c *Canvas) SetCurrentPage(idx int) {
	c.doc.SetCurrentPage(idx)
	c.resetPageState()
}

// AddPage appends a new page and switches to it.
func (c *Canvas) AddPage(name string) *Page {
	p := c.doc.AddPage(name)
	c.resetPageState()
	return p
}

func (c *Canvas) resetPageState() {
	c.current = nil
	c.currentShape = nil
	c.er = eraser{}
	c.sel.Clear()
	c.history = NewHistory(c.historyLimit)
	c.history.SetOnChange(c.onHistoryChange)
	c.rebuildIndex()
	c.invalidate()
}

// --- Stroke gesture -------------------------------------------------

// BeginStroke opens a stroke at the pointer-down sample. Ignored while
// another stroke is in progress.
func (c *Canvas) BeginStroke(at Sample, style Style) {
	if c.current != nil {
		return
	}
	c.current = NewStroke(style)
	c.current.AddSample(at.X, at.Y, at.Pressure)
}

// ContinueStroke appends a pointer-move sample to the open stroke.
func (c *Canvas) ContinueStroke(at Sample) {
	if c.current == nil {
		return
	}
	c.current.AddSample(at.X, at.Y, at.Pressure)
}

// CurrentStroke returns the stroke in progress, or nil. The in-progress
// stroke is not part of the page yet; callers drawing a live preview
// read it from here.
func (c *Canvas) CurrentStroke() *Stroke {
	return c.current
}

// EndStroke finalizes the open stroke. A stroke with at least two
// samples is appended to the page and recorded in the history; shorter
// ones are discarded. Returns the committed stroke or nil.
func (c *Canvas) EndStroke() *Stroke {
	s := c.current
	c.current = nil
	if s == nil || s.Len() < 2 {
		return nil
	}

	p := c.Page()
	p.Strokes = append(p.Strokes, s)
	c.history.Push(AddStroke{Stroke: s})
	c.invalidate()
	c.rebuildIndex()
	return s
}

// DiscardStroke drops the stroke in progress without committing it.
func (c *Canvas) DiscardStroke() {
	c.current = nil
}

// --- Shape gesture --------------------------------------------------

// BeginShape opens a shape anchored at the pointer-down position.
// Ignored while another shape is in progress.
func (c *Canvas) BeginShape(kind ShapeKind, at Point, color RGBA, width float64) {
	if c.currentShape != nil {
		return
	}
	c.currentShape = NewShape(kind, at, color, width)
}

// UpdateShape drags the open shape's free anchor.
func (c *Canvas) UpdateShape(to Point) {
	if c.currentShape == nil {
		return
	}
	c.currentShape.End = to
}

// CurrentShape returns the shape in progress, or nil.
func (c *Canvas) CurrentShape() *Shape {
	return c.currentShape
}

// EndShape finalizes the open shape. Degenerate shapes whose anchors
// coincide are discarded. Returns the committed shape or nil.
func (c *Canvas) EndShape() *Shape {
	s := c.currentShape
	c.currentShape = nil
	if s == nil || s.Start == s.End {
		return nil
	}

	p := c.Page()
	p.Shapes = append(p.Shapes, s)
	c.history.Push(AddShape{Shape: s})
	c.invalidate()
	return s
}

// DiscardShape drops the shape in progress without committing it.
func (c *Canvas) DiscardShape() {
	c.currentShape = nil
}

// --- Images ---------------------------------------------------------

// AddImage appends an image to the page and records it in the history.
func (c *Canvas) AddImage(img *Image) {
	if img == nil {
		return
	}
	p := c.Page()
	p.Images = append(p.Images, img)
	c.history.Push(AddImage{Image: img})
	c.invalidate()
}

// --- Erase gesture --------------------------------------------------

// BeginErase starts an erase gesture.
func (c *Canvas) BeginErase() {
	c.er.begin()
}

// EraseAt probes the page at p, soft-deleting at most one stroke, and
// reports whether one was hit. Must be called between BeginErase and
// EndErase; probes outside a gesture are ignored.
func (c *Canvas) EraseAt(p Point) bool {
	if !c.er.active() {
		return false
	}
	hit := c.er.eraseAt(c.Page(), c.index, p, c.eraseRadius)
	if hit {
		c.invalidate()
	}
	return hit
}

// EndErase commits the erase gesture: all soft-deleted strokes are
// removed in one pass, the spatial index is rebuilt and a single
// batched action is recorded.
func (c *Canvas) EndErase() {
	act := c.er.commit(c.Page())
	if act == nil {
		return
	}
	c.history.Push(act)
	c.invalidate()
	c.rebuildIndex()
}

// EraseShapeAt removes the first shape whose outline passes near p and
// reports whether one was removed. Shape erase is immediate and is not
// batched into the gesture, mirroring how few shapes a page holds
// compared to strokes.
func (c *Canvas) EraseShapeAt(p Point) bool {
	s, _ := eraseShapeAt(c.Page(), p, c.eraseRadius)
	if s == nil {
		return false
	}
	c.invalidate()
	return true
}

// --- Bulk edits and history -----------------------------------------

// Clear wipes the page's strokes, shapes and images, recording a full
// snapshot so the wipe can be undone. Any selection is dropped.
// Clearing an empty page is a no-op.
func (c *Canvas) Clear() {
	p := c.Page()
	if len(p.Strokes) == 0 && len(p.Shapes) == 0 && len(p.Images) == 0 {
		return
	}

	snapshot := ClearPage{
		Strokes: append([]*Stroke(nil), p.Strokes...),
		Shapes:  append([]*Shape(nil), p.Shapes...),
		Images:  append([]*Image(nil), p.Images...),
	}
	p.Strokes = nil
	p.Shapes = nil
	p.Images = nil
	c.sel.Clear()
	c.history.Push(snapshot)
	c.invalidate()
	c.rebuildIndex()
}

// Undo reverts the most recent recorded edit. Returns false when the
// history is empty.
func (c *Canvas) Undo() bool {
	return c.history.Undo(c.Page())
}

// Redo re-applies the most recently undone edit. Returns false when
// there is nothing to redo.
func (c *Canvas) Redo() bool {
	return c.history.Redo(c.Page())
}

// --- Selection ------------------------------------------------------

// UpdateSelection recomputes the selection for rect.
func (c *Canvas) UpdateSelection(rect Rect) {
	c.sel.Update(c.Page(), rect)
}

// ClearSelection drops the selection. Page data is untouched; only the
// history rolls back finalized edits.
func (c *Canvas) ClearSelection() {
	c.sel.Clear()
}

// MoveSelection translates the selected items by delta. The spatial
// index stays stale until EndMove.
func (c *Canvas) MoveSelection(delta Point) {
	if c.sel.Empty() {
		return
	}
	c.sel.Move(c.Page(), delta)
	c.invalidate()
}

// EndMove finishes a move gesture and rebuilds the spatial index.
func (c *Canvas) EndMove() {
	c.rebuildIndex()
}

// ResizeSelection drags a resize handle of the single selected shape
// or image toward the proposed rect. Returns false when the selection
// cardinality does not allow resizing.
func (c *Canvas) ResizeSelection(handle Handle, proposed Rect) bool {
	if !c.sel.Resize(c.Page(), handle, proposed) {
		return false
	}
	c.invalidate()
	return true
}

// SplitRegion cuts strokes and images at rect's boundary.
func (c *Canvas) SplitRegion(rect Rect) {
	c.sel.SplitRegion(c.Page(), rect)
	c.invalidate()
	c.rebuildIndex()
}

// --- Rendering ------------------------------------------------------

// Render composites the current page into a width x height image,
// reusing a cached composite for the viewport when nothing changed
// since it was rendered.
func (c *Canvas) Render(width, height int, clip *Rect) *image.RGBA {
	key := viewportKey{width: width, height: height, hasClip: clip != nil}
	if clip != nil {
		key.clip = *clip
	}
	if img, ok := c.composites.Get(key); ok {
		return img
	}

	img := c.renderer.Render(c.Page(), width, height, clip)
	c.composites.Set(key, img)
	return img
}

// RenderHighRes produces an export-resolution composite of the current
// page. The result is not cached.
func (c *Canvas) RenderHighRes(targetWidthHint, maxDimension int) *image.RGBA {
	return c.renderer.RenderHighRes(c.Page(), targetWidthHint, maxDimension)
}
