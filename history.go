package ink

// DefaultHistoryLimit is the maximum number of undoable actions kept.
const DefaultHistoryLimit = 50

// Action is one recorded structural edit of a page. The variants form
// a closed set; History is the only consumer and switches over them
// exhaustively.
type Action interface {
	isAction()
}

// AddStroke records a finalized stroke appended to the page.
type AddStroke struct {
	Stroke *Stroke
}

func (AddStroke) isAction() {}

// AddShape records a finalized shape appended to the page.
type AddShape struct {
	Shape *Shape
}

func (AddShape) isAction() {}

// AddImage records an image appended to the page.
type AddImage struct {
	Image *Image
}

func (AddImage) isAction() {}

// IndexedStroke pairs a removed stroke with the index it occupied in
// the stroke list immediately before the erase commit.
type IndexedStroke struct {
	Index  int
	Stroke *Stroke
}

// EraseStrokes records one erase gesture: every stroke removed by the
// commit, with its pre-removal index, ordered ascending.
type EraseStrokes struct {
	Strokes []IndexedStroke
}

func (EraseStrokes) isAction() {}

// ClearPage records a full wipe with a snapshot of all three lists.
type ClearPage struct {
	Strokes []*Stroke
	Shapes  []*Shape
	Images  []*Image
}

func (ClearPage) isAction() {}

// History is a bounded undo/redo stack of structural page edits.
//
// Undo applies an action's inverse, redo re-applies its forward
// effect. Both mutate the page that is passed in; after every history
// mutation the onChange hook fires so the owner can rebuild the
// spatial index and drop its render cache.
type History struct {
	limit    int
	undo     []Action
	redo     []Action
	onChange func()
}

// NewHistory creates an empty history. A limit <= 0 selects
// DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// SetOnChange installs a hook invoked after every history mutation
// that touched a page (push does not fire it; undo and redo do).
func (h *History) SetOnChange(fn func()) {
	h.onChange = fn
}

// Push records an action, clears the redo stack and evicts the oldest
// entry once the stack exceeds its limit.
func (h *History) Push(a Action) {
	h.undo = append(h.undo, a)
	h.redo = h.redo[:0]
	if len(h.undo) > h.limit {
		n := copy(h.undo, h.undo[len(h.undo)-h.limit:])
		h.undo = h.undo[:n]
	}
}

// CanUndo reports whether an action is available to undo.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether an action is available to redo.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of undoable actions.
func (h *History) Len() int { return len(h.undo) }

// Undo pops the most recent action, applies its inverse to p and moves
// it to the redo stack. It returns false when there is nothing to undo.
func (h *History) Undo(p *Page) bool {
	if len(h.undo) == 0 {
		return false
	}
	a := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, a)

	h.applyInverse(p, a)
	h.notify()
	return true
}

// Redo pops the most recent undone action, re-applies its forward
// effect to p and moves it back to the undo stack. It returns false
// when there is nothing to redo.
func (h *History) Redo(p *Page) bool {
	if len(h.redo) == 0 {
		return false
	}
	a := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, a)

	h.applyForward(p, a)
	h.notify()
	return true
}

func (h *History) notify() {
	if h.onChange != nil {
		h.onChange()
	}
}

func (h *History) applyInverse(p *Page, a Action) {
	switch act := a.(type) {
	case AddStroke:
		for i := len(p.Strokes) - 1; i >= 0; i-- {
			if p.Strokes[i] == act.Stroke {
				p.removeStroke(i)
				break
			}
		}
	case AddShape:
		for i := len(p.Shapes) - 1; i >= 0; i-- {
			if p.Shapes[i] == act.Shape {
				p.removeShape(i)
				break
			}
		}
	case AddImage:
		for i := len(p.Images) - 1; i >= 0; i-- {
			if p.Images[i] == act.Image {
				p.removeImage(i)
				break
			}
		}
	case EraseStrokes:
		// Ascending index order keeps later insertion positions valid
		// as earlier strokes land back in the list. Indices that no
		// longer fit (the document shrank elsewhere) clamp to the end.
		for _, pair := range act.Strokes {
			p.insertStroke(pair.Index, pair.Stroke)
		}
	case ClearPage:
		p.Strokes = append(p.Strokes[:0], act.Strokes...)
		p.Shapes = append(p.Shapes[:0], act.Shapes...)
		p.Images = append(p.Images[:0], act.Images...)
	}
}

func (h *History) applyForward(p *Page, a Action) {
	switch act := a.(type) {
	case AddStroke:
		p.Strokes = append(p.Strokes, act.Stroke)
	case AddShape:
		p.Shapes = append(p.Shapes, act.Shape)
	case AddImage:
		p.Images = append(p.Images, act.Image)
	case EraseStrokes:
		erased := make(map[string]struct{}, len(act.Strokes))
		for _, pair := range act.Strokes {
			erased[pair.Stroke.ID] = struct{}{}
		}
		kept := p.Strokes[:0]
		for _, s := range p.Strokes {
			if _, gone := erased[s.ID]; !gone {
				kept = append(kept, s)
			}
		}
		p.Strokes = kept
	case ClearPage:
		p.Strokes = nil
		p.Shapes = nil
		p.Images = nil
	}
}
