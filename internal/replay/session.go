package replay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/photoalbum/internal/autoscroll"
	"github.com/mrlokans/photoalbum/internal/frame"
	"github.com/mrlokans/photoalbum/internal/geom"
	"github.com/mrlokans/photoalbum/internal/photos"
	"github.com/mrlokans/photoalbum/internal/selection"
	"github.com/mrlokans/photoalbum/internal/swipe"
)

// MaxIdleFrames bounds an "idle" event. A drag resting in an edge band keeps
// scrolling forever, so idle gives up instead of spinning.
const MaxIdleFrames = 600

// ErrNotIdle is returned when an idle event times out with frames still scheduled.
var ErrNotIdle = errors.New("frames still pending")

// Options tunes the components under replay. Zero values select each
// component's default.
type Options struct {
	MoveThreshold  float64
	ScrollBand     float64
	ScrollMaxSpeed float64
	ThresholdRatio float64
	SettleDuration time.Duration
	FrameInterval  time.Duration
	PreloadRadius  int

	// Preloader additionally receives every preload batch, for example to
	// warm the image cache while replaying.
	Preloader swipe.Preloader
	// Verbose logs every applied event.
	Verbose bool
}

// Result is the observable state after a replay.
type Result struct {
	// Selected is the committed selection in sequence order.
	Selected  []string    `json:"selected"`
	Index     int         `json:"index"`
	Offset    float64     `json:"offset"`
	ScrollTop float64     `json:"scrollTop"`
	Preloads  [][]string  `json:"preloads"`
	Frames    int         `json:"frames"`
	Style     swipe.Style `json:"style"`
	Lock      string      `json:"lock"`
}

// scrollContainer is the grid's scrollable element. Scrolling is clamped to
// the content height.
type scrollContainer struct {
	bounds    geom.Rect
	scrollTop float64
	maxScroll float64
}

func (c *scrollContainer) Bounds() geom.Rect { return c.bounds }

func (c *scrollContainer) ScrollBy(dy float64) {
	c.scrollTop += dy
	if c.scrollTop > c.maxScroll {
		c.scrollTop = c.maxScroll
	}
	if c.scrollTop < 0 {
		c.scrollTop = 0
	}
}

// Session owns one replayed view: a grid with range selection and
// auto-scroll, plus a full-screen viewer. A session from NewSession only
// advances frames on "frames" and "idle" events; one from
// NewRealtimeSession runs on a frame.Loop against the wall clock.
type Session struct {
	script   *Script
	list     photos.List
	queue    *frame.Queue
	loop     *frame.Loop
	now      time.Time
	clock    func() time.Time
	interval time.Duration
	verbose  bool

	container *scrollContainer
	grid      selection.GridLocator
	scroll    *autoscroll.Controller
	engine    *selection.Engine
	viewer    *swipe.Navigator

	preloads [][]string
	frames   int
}

// NewSession mounts the components described by script on a manual frame
// clock starting at the Unix epoch.
func NewSession(script *Script, opts Options) *Session {
	s := newSession(script, opts)
	s.queue = frame.NewQueue()
	s.now = time.Unix(0, 0).UTC()
	s.clock = func() time.Time { return s.now }
	s.mount(script, opts, s.queue)
	return s
}

// NewRealtimeSession mounts the components on a frame.Loop ticking at the
// frame interval. Play it with RunContext.
func NewRealtimeSession(script *Script, opts Options) *Session {
	s := newSession(script, opts)
	s.loop = frame.NewLoop(s.interval)
	s.clock = time.Now
	s.mount(script, opts, s.loop)
	return s
}

func newSession(script *Script, opts Options) *Session {
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = frame.DefaultInterval
	}
	return &Session{
		script:   script,
		list:     script.List(),
		interval: interval,
		verbose:  opts.Verbose,
	}
}

func (s *Session) mount(script *Script, opts Options, frames frame.Scheduler) {
	rows := (len(s.list) + script.Grid.Columns - 1) / script.Grid.Columns
	content := script.Grid.Top + float64(rows)*script.Grid.CellHeight
	s.container = &scrollContainer{
		bounds:    geom.Rect{Right: script.Viewport.Width, Bottom: script.Viewport.Height},
		maxScroll: max(0, content-script.Viewport.Height),
	}
	s.grid = selection.GridLocator{
		Origin:     geom.Point{X: script.Grid.Left, Y: script.Grid.Top},
		Columns:    script.Grid.Columns,
		CellWidth:  script.Grid.CellWidth,
		CellHeight: script.Grid.CellHeight,
		ScrollTop:  func() float64 { return s.container.scrollTop },
		Count:      func() int { return len(s.list) },
	}

	s.scroll = autoscroll.New(frames, autoscroll.LocatorFunc(func() (autoscroll.Container, bool) {
		return s.container, true
	}), autoscroll.Config{Band: opts.ScrollBand, MaxSpeed: opts.ScrollMaxSpeed})

	s.engine = selection.New(s.list, s.grid, s.scroll, selection.Options{MoveThreshold: opts.MoveThreshold})
	s.engine.SetBatchMode(script.BatchMode)

	s.viewer = swipe.New(frames, s.list, script.StartIndex, swipe.Options{
		ViewportWidth:  func() float64 { return script.Viewport.Width },
		ThresholdRatio: opts.ThresholdRatio,
		Duration:       opts.SettleDuration,
		Resolver:       photos.NewResolver(script.Origin),
		Preloader: swipe.PreloaderFunc(func(urls []string) {
			s.preloads = append(s.preloads, urls)
			if opts.Preloader != nil {
				opts.Preloader.Preload(urls)
			}
		}),
		PreloadRadius: opts.PreloadRadius,
		Now:           func() time.Time { return s.clock() },
	})
}

// Run applies every event of the script and returns the final state.
func (s *Session) Run() (Result, error) {
	if s.loop != nil {
		return s.RunContext(context.Background())
	}
	for i, ev := range s.script.Events {
		if err := s.Apply(ev); err != nil {
			return s.Result(), fmt.Errorf("event %d (%s %s): %w", i, ev.Target, ev.Type, err)
		}
	}
	return s.Result(), nil
}

// Apply feeds one event to the components. On a realtime session it must
// run on the loop goroutine and rejects "frames" and "idle".
func (s *Session) Apply(ev Event) error {
	if s.verbose {
		log.Printf("[REPLAY] %s %s x=%.1f y=%.1f", ev.Target, ev.Type, ev.X, ev.Y)
	}

	switch ev.Type {
	case EventFrames, EventIdle:
		if s.loop != nil {
			return fmt.Errorf("%s events are timed by the frame loop", ev.Type)
		}
		if ev.Type == EventIdle {
			return s.idle()
		}
		s.advance(ev.Count)
	case EventBatch:
		s.engine.SetBatchMode(ev.On)
	case EventToggle:
		s.engine.Toggle(ev.ID)
	case EventClear:
		s.engine.Clear()
	case EventNext:
		s.viewer.Next()
	case EventPrevious:
		s.viewer.Previous()
	case EventStart, EventMove, EventEnd:
		if ev.Target == TargetViewer {
			s.applyViewer(ev)
		} else {
			s.applyGrid(ev)
		}
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}

func (s *Session) applyGrid(ev Event) {
	p := geom.Point{X: ev.X, Y: ev.Y}
	switch ev.Type {
	case EventStart:
		// Touches that start between cells have no target photo.
		idx, ok := s.grid.ItemAt(p)
		if !ok {
			return
		}
		s.engine.TouchStart(s.list[idx].ID, p)
	case EventMove:
		s.engine.TouchMove(p)
	case EventEnd:
		s.engine.TouchEnd()
	}
}

func (s *Session) applyViewer(ev Event) {
	switch ev.Type {
	case EventStart:
		s.viewer.TouchStart(ev.X)
	case EventMove:
		s.viewer.TouchMove(ev.X)
	case EventEnd:
		s.viewer.TouchEnd()
	}
}

func (s *Session) advance(n int) {
	for i := 0; i < n; i++ {
		s.now = s.now.Add(s.interval)
		s.queue.Flush(s.now)
		s.frames++
	}
}

func (s *Session) idle() error {
	for i := 0; i < MaxIdleFrames && s.queue.Pending() > 0; i++ {
		s.advance(1)
	}
	if n := s.queue.Pending(); n > 0 {
		return fmt.Errorf("%w after %d frames: %d", ErrNotIdle, MaxIdleFrames, n)
	}
	return nil
}

// RunContext plays the script. A realtime session runs the frame loop for
// the duration of the replay: "frames" events wait that many intervals of
// wall time and "idle" polls the loop until nothing is scheduled. Input
// events are posted to the loop goroutine.
func (s *Session) RunContext(ctx context.Context) (Result, error) {
	if s.loop == nil {
		return s.Run()
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- s.loop.Run(ctx) }()

	err := s.play(ctx)
	cancel()
	<-done
	return s.Result(), err
}

func (s *Session) play(ctx context.Context) error {
	for i, ev := range s.script.Events {
		var err error
		switch ev.Type {
		case EventFrames:
			err = wait(ctx, time.Duration(ev.Count)*s.interval)
		case EventIdle:
			err = s.waitIdle(ctx)
		default:
			err = s.call(ctx, func() error { return s.Apply(ev) })
		}
		if err != nil {
			return fmt.Errorf("event %d (%s %s): %w", i, ev.Target, ev.Type, err)
		}
	}
	return nil
}

// call runs fn on the loop goroutine and waits for it.
func (s *Session) call(ctx context.Context, fn func() error) error {
	errc := make(chan error, 1)
	if err := s.loop.Post(ctx, func() { errc <- fn() }); err != nil {
		return err
	}
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) waitIdle(ctx context.Context) error {
	for i := 0; i < MaxIdleFrames; i++ {
		var pending int
		if err := s.call(ctx, func() error {
			pending = s.loop.Pending()
			return nil
		}); err != nil {
			return err
		}
		if pending == 0 {
			return nil
		}
		if err := wait(ctx, s.interval); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w after %d frames", ErrNotIdle, MaxIdleFrames)
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Result snapshots the observable state. On a realtime session it must not
// be called while RunContext is in progress.
func (s *Session) Result() Result {
	committed := s.engine.Committed()
	selected := make([]string, 0, len(committed))
	for _, p := range s.list {
		if committed.Has(p.ID) {
			selected = append(selected, p.ID)
		}
	}

	return Result{
		Selected:  selected,
		Index:     s.viewer.Index(),
		Offset:    s.viewer.Offset(),
		ScrollTop: s.container.scrollTop,
		Preloads:  s.preloads,
		Frames:    s.frameCount(),
		Style:     s.viewer.Style(),
		Lock:      s.engine.Lock().String(),
	}
}

// Displayed returns the selection as currently rendered, in sequence order.
func (s *Session) Displayed() []string {
	shown := s.engine.Displayed()
	ids := make([]string, 0, len(shown))
	for _, p := range s.list {
		if shown.Has(p.ID) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func (s *Session) frameCount() int {
	if s.loop != nil {
		return s.loop.Frames()
	}
	return s.frames
}

// Pending returns the number of scheduled frame callbacks.
func (s *Session) Pending() int {
	if s.loop != nil {
		return s.loop.Pending()
	}
	return s.queue.Pending()
}

// Close unmounts the components.
func (s *Session) Close() {
	s.engine.Close()
	s.viewer.Close()
}
