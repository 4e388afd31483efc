// Package swipe drives the full-screen photo viewer: a horizontal drag
// either settles back or advances to the neighboring photo, with an eased
// animation and lookahead preloading.
package swipe

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/mrlokans/photoalbum/internal/frame"
	"github.com/mrlokans/photoalbum/internal/photos"
)

// DefaultThresholdRatio is the fraction of the viewport width a swipe must
// exceed to navigate.
const DefaultThresholdRatio = 0.05

const (
	transitionDragging = "none"
	transitionSettled  = "transform 0.1s cubic-bezier(0.1, 0, 0.1, 1)"
)

// Options configures a Navigator. Zero values select the defaults.
type Options struct {
	// ViewportWidth is read at the end of every gesture.
	ViewportWidth  func() float64
	ThresholdRatio float64
	Duration       time.Duration

	Resolver  photos.Resolver
	Preloader Preloader
	// PreloadRadius is resolved by EffectiveRadius: zero warms
	// DefaultPreloadRadius neighbors, negative warms nothing.
	PreloadRadius int

	// Now stamps the start of each animation. Defaults to time.Now.
	Now func() time.Time
	// OnIndexChange, if set, is called after every navigation.
	OnIndexChange func(index int)
}

// Style is the presentation state of the slider.
type Style struct {
	Transform  string
	Transition string
}

// Navigator is the swipe state machine. Like the selection engine it runs on
// the view's control goroutine and is not safe for concurrent use.
type Navigator struct {
	frames frame.Scheduler
	seq    photos.Sequence
	opts   Options

	index    int
	startX   float64
	latestX  float64
	offset   float64
	dragging bool

	track  frame.Handle
	settle frame.Handle
	anim   *Animation
}

// New creates a navigator showing the photo at index and warms its neighbors.
func New(frames frame.Scheduler, seq photos.Sequence, index int, opts Options) *Navigator {
	if opts.ThresholdRatio <= 0 {
		opts.ThresholdRatio = DefaultThresholdRatio
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	radius, ok := EffectiveRadius(opts.PreloadRadius)
	if !ok {
		opts.Preloader = nil
	}
	opts.PreloadRadius = radius
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ViewportWidth == nil {
		opts.ViewportWidth = func() float64 { return 0 }
	}

	n := &Navigator{
		frames: frames,
		seq:    seq,
		opts:   opts,
		index:  clamp(index, len(seq.Photos())),
	}
	n.preload()
	return n
}

// TouchStart begins a drag at x. Any settle animation still running is
// dropped on the spot, including a navigation it was about to complete.
func (n *Navigator) TouchStart(x float64) {
	n.startX = x
	n.latestX = x
	n.dragging = true
	n.cancelTrack()
	n.cancelSettle()
}

// TouchMove records the pointer and schedules one frame to copy the
// displacement into the offset. Moves within the same frame coalesce.
func (n *Navigator) TouchMove(x float64) {
	if !n.dragging {
		return
	}
	n.latestX = x
	if n.track == 0 {
		n.track = n.frames.Schedule(func(time.Time) {
			n.track = 0
			n.offset = n.latestX - n.startX
		})
	}
}

// TouchEnd releases the drag and animates either back to rest or on to the
// previous or next photo.
func (n *Navigator) TouchEnd() {
	if !n.dragging {
		return
	}
	n.dragging = false
	n.cancelTrack()

	count := len(n.seq.Photos())
	n.index = clamp(n.index, count)

	diff := n.latestX - n.startX
	width := n.opts.ViewportWidth()
	threshold := width * n.opts.ThresholdRatio

	switch {
	case math.Abs(diff) > threshold && diff > 0 && n.index > 0:
		n.animate(diff, width, n.Previous)
	case math.Abs(diff) > threshold && diff < 0 && n.index < count-1:
		n.animate(diff, -width, n.Next)
	default:
		n.animate(diff, 0, nil)
	}
}

func (n *Navigator) animate(from, to float64, onComplete func()) {
	n.cancelSettle()
	n.anim = &Animation{
		Start:      n.opts.Now(),
		From:       from,
		To:         to,
		Duration:   n.opts.Duration,
		OnComplete: onComplete,
	}
	n.offset = from
	n.settle = n.frames.Schedule(n.step)
}

func (n *Navigator) step(now time.Time) {
	n.settle = 0
	anim := n.anim
	if anim == nil {
		return
	}

	value, done := anim.Sample(now)
	if done {
		n.anim = nil
		n.offset = 0
		if anim.OnComplete != nil {
			anim.OnComplete()
		}
		return
	}
	n.offset = value
	n.settle = n.frames.Schedule(n.step)
}

func (n *Navigator) cancelTrack() {
	if n.track != 0 {
		n.frames.Cancel(n.track)
		n.track = 0
	}
}

func (n *Navigator) cancelSettle() {
	if n.settle != 0 {
		n.frames.Cancel(n.settle)
		n.settle = 0
	}
	n.anim = nil
}

// Previous moves to the previous photo if there is one.
func (n *Navigator) Previous() {
	if n.index > 0 {
		n.setIndex(n.index - 1)
	}
}

// Next moves to the next photo if there is one.
func (n *Navigator) Next() {
	if n.index < len(n.seq.Photos())-1 {
		n.setIndex(n.index + 1)
	}
}

// GoTo jumps to index, clamped to the sequence.
func (n *Navigator) GoTo(index int) {
	index = clamp(index, len(n.seq.Photos()))
	if index != n.index {
		n.setIndex(index)
	}
}

func (n *Navigator) setIndex(index int) {
	n.index = index
	n.preload()
	if n.opts.OnIndexChange != nil {
		n.opts.OnIndexChange(index)
	}
}

func (n *Navigator) preload() {
	if n.opts.Preloader == nil {
		return
	}
	urls := PreloadURLs(n.seq.Photos(), n.opts.Resolver, n.index, n.opts.PreloadRadius)
	if len(urls) > 0 {
		n.opts.Preloader.Preload(urls)
	}
}

// Index returns the settled photo index.
func (n *Navigator) Index() int {
	return n.index
}

// Current returns the settled photo.
func (n *Navigator) Current() (photos.Photo, bool) {
	list := n.seq.Photos()
	if n.index < 0 || n.index >= len(list) {
		return photos.Photo{}, false
	}
	return list[n.index], true
}

// Offset returns the displayed horizontal offset in pixels.
func (n *Navigator) Offset() float64 {
	return n.offset
}

// Dragging reports whether a touch is in progress.
func (n *Navigator) Dragging() bool {
	return n.dragging
}

// Animating reports whether a settle animation is running.
func (n *Navigator) Animating() bool {
	return n.settle != 0
}

// Style returns the slider transform and transition for the current state.
// Transitions are disabled while dragging so they do not fight the per-frame
// offset writes.
func (n *Navigator) Style() Style {
	transition := transitionSettled
	if n.dragging {
		transition = transitionDragging
	}
	return Style{
		Transform:  fmt.Sprintf("translateX(calc(-100%% * %d + %spx))", n.index, strconv.FormatFloat(n.offset, 'f', -1, 64)),
		Transition: transition,
	}
}

// Close cancels outstanding frames. Call when the viewer unmounts.
func (n *Navigator) Close() {
	n.cancelTrack()
	n.cancelSettle()
	n.dragging = false
}

func clamp(index, count int) int {
	if index >= count {
		index = count - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}
