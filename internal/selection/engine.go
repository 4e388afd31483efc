// Package selection turns touch drags over the photo grid into a committed
// set of selected photos.
//
// A gesture arms on touch start, locks to horizontal or vertical after the
// first few pixels of movement, and commits on touch end. While a horizontal
// drag is in progress the engine keeps a live preview range next to the
// committed set; callers render Displayed(), which derives the on-screen
// selection from both. The committed set only changes at gesture end or via
// the explicit Toggle/Replace/Clear calls.
package selection

import (
	"math"

	"github.com/mrlokans/photoalbum/internal/autoscroll"
	"github.com/mrlokans/photoalbum/internal/geom"
	"github.com/mrlokans/photoalbum/internal/photos"
)

// DefaultMoveThreshold is the displacement, in pixels, a touch must exceed on
// either axis before its direction is locked.
const DefaultMoveThreshold = 10

// Lock is the direction a gesture was classified as.
type Lock int

const (
	Unset Lock = iota
	Horizontal
	Vertical
)

func (l Lock) String() string {
	switch l {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unset"
	}
}

// Displayed derives the on-screen selection. Outside a horizontal drag it is
// the committed set. During one, a drag that started on a selected photo
// erases the preview range from the committed set and any other drag paints
// it on top.
func Displayed(committed Set, preview []string, anchorWasSelected bool, lock Lock) Set {
	shown := committed.Clone()
	if lock != Horizontal {
		return shown
	}
	for _, id := range preview {
		if anchorWasSelected {
			shown.Remove(id)
		} else {
			shown.Add(id)
		}
	}
	return shown
}

// Options configures an Engine.
type Options struct {
	// MoveThreshold overrides DefaultMoveThreshold when positive.
	MoveThreshold float64
	// OnChange, if set, is called after every change to the committed set.
	OnChange func(committed Set)
}

// Engine is the range selection state machine. It is driven from a single
// control goroutine and is not safe for concurrent use.
type Engine struct {
	seq       photos.Sequence
	items     Locator
	scroll    *autoscroll.Controller
	threshold float64
	onChange  func(Set)

	batch     bool
	committed Set

	armed             bool
	start             geom.Point
	anchor            int
	anchorID          string
	anchorWasSelected bool
	lock              Lock
	preview           []string
}

// New creates an engine over seq. Batch mode starts off, so the engine
// ignores touches until SetBatchMode(true). scroll may be nil for a grid
// with no scroll container.
func New(seq photos.Sequence, items Locator, scroll *autoscroll.Controller, opts Options) *Engine {
	threshold := opts.MoveThreshold
	if threshold <= 0 {
		threshold = DefaultMoveThreshold
	}
	return &Engine{
		seq:       seq,
		items:     items,
		scroll:    scroll,
		threshold: threshold,
		onChange:  opts.OnChange,
		committed: NewSet(),
	}
}

// SetBatchMode turns range selection on or off. Leaving batch mode abandons
// any gesture in progress and clears the selection.
func (e *Engine) SetBatchMode(on bool) {
	if e.batch == on {
		return
	}
	e.batch = on
	if !on {
		e.reset()
		e.stopScroll()
		e.Clear()
	}
}

// BatchMode reports whether the engine is accepting touches.
func (e *Engine) BatchMode() bool {
	return e.batch
}

// TouchStart arms a gesture on the photo with the given id.
func (e *Engine) TouchStart(id string, p geom.Point) {
	if !e.batch {
		return
	}
	idx := e.seq.Photos().IndexOf(id)
	if idx < 0 {
		return
	}

	e.armed = true
	e.start = p
	e.anchor = idx
	e.anchorID = id
	e.anchorWasSelected = e.committed.Has(id)
	e.lock = Unset
	e.preview = []string{id}
}

// TouchMove advances the gesture. It reports whether the platform's default
// scrolling should be suppressed, which is the case once the gesture is
// locked horizontal.
func (e *Engine) TouchMove(p geom.Point) (preventDefault bool) {
	if !e.batch || !e.armed {
		return false
	}

	if e.lock == Unset {
		d := p.Sub(e.start)
		dx, dy := math.Abs(d.X), math.Abs(d.Y)
		if dx > e.threshold || dy > e.threshold {
			if dx > dy {
				e.lock = Horizontal
			} else {
				e.lock = Vertical
			}
		}
	}

	switch e.lock {
	case Horizontal:
		e.extendPreview(p)
		e.updateScroll(p)
		return true
	case Vertical:
		e.updateScroll(p)
	}
	return false
}

func (e *Engine) extendPreview(p geom.Point) {
	idx, ok := e.items.ItemAt(p)
	if !ok {
		return
	}
	if ids := e.seq.Photos().IDs(e.anchor, idx); len(ids) > 0 {
		e.preview = ids
	}
}

// TouchEnd finishes the gesture. A horizontal drag commits its preview
// range, a touch that never locked toggles the anchor, and a vertical pan
// leaves the selection alone. Auto-scroll always stops.
func (e *Engine) TouchEnd() {
	defer e.stopScroll()
	if !e.armed {
		return
	}

	switch e.lock {
	case Horizontal:
		if len(e.preview) > 0 {
			e.commit()
		}
	case Unset:
		e.committed.Toggle(e.anchorID)
		e.changed()
	}
	e.reset()
}

func (e *Engine) commit() {
	for _, id := range e.preview {
		if e.anchorWasSelected {
			e.committed.Remove(id)
		} else {
			e.committed.Add(id)
		}
	}
	e.changed()
}

func (e *Engine) reset() {
	e.armed = false
	e.lock = Unset
	e.preview = nil
	e.anchor = -1
	e.anchorID = ""
	e.anchorWasSelected = false
}

func (e *Engine) changed() {
	if e.onChange != nil {
		e.onChange(e.committed.Clone())
	}
}

// Toggle flips a single photo's membership outside of any gesture.
func (e *Engine) Toggle(id string) {
	e.committed.Toggle(id)
	e.changed()
}

// Replace sets the committed selection to exactly ids.
func (e *Engine) Replace(ids []string) {
	e.committed = NewSet(ids...)
	e.changed()
}

// Clear empties the committed selection.
func (e *Engine) Clear() {
	e.committed = NewSet()
	e.changed()
}

// Committed returns a copy of the committed selection.
func (e *Engine) Committed() Set {
	return e.committed.Clone()
}

// Displayed returns the selection as it should be rendered right now.
func (e *Engine) Displayed() Set {
	return Displayed(e.committed, e.preview, e.anchorWasSelected, e.lock)
}

// Lock returns the current direction lock.
func (e *Engine) Lock() Lock {
	return e.lock
}

// Selecting reports whether a horizontal drag-select is in progress.
func (e *Engine) Selecting() bool {
	return e.armed && e.lock == Horizontal
}

// Close abandons any gesture and stops auto-scroll. Call when the view unmounts.
func (e *Engine) Close() {
	e.reset()
	e.stopScroll()
}

func (e *Engine) updateScroll(p geom.Point) {
	if e.scroll != nil {
		e.scroll.Update(p)
	}
}

func (e *Engine) stopScroll() {
	if e.scroll != nil {
		e.scroll.Stop()
	}
}
