// Package autoscroll scrolls the photo grid while a drag lingers near its
// top or bottom edge.
package autoscroll

import (
	"time"

	"github.com/mrlokans/photoalbum/internal/frame"
	"github.com/mrlokans/photoalbum/internal/geom"
)

const (
	// DefaultBand is the distance from an edge, in pixels, inside which scrolling engages.
	DefaultBand = 150
	// DefaultMaxSpeed is the scroll speed at the edge itself, in pixels per frame.
	DefaultMaxSpeed = 10
)

// Container is the scrollable element holding the grid.
type Container interface {
	Bounds() geom.Rect
	ScrollBy(dy float64)
}

// Locator finds the current scroll container. It is queried on every update
// and every frame because the view tree may have changed in between.
type Locator interface {
	Container() (Container, bool)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func() (Container, bool)

// Container implements Locator.
func (f LocatorFunc) Container() (Container, bool) { return f() }

// Config tunes the edge band and speed.
type Config struct {
	Band     float64
	MaxSpeed float64
}

// DefaultConfig returns the standard band and speed.
func DefaultConfig() Config {
	return Config{Band: DefaultBand, MaxSpeed: DefaultMaxSpeed}
}

// Velocity returns the scroll speed for a pointer at p inside bounds:
// negative near the top, positive near the bottom, zero elsewhere. The
// magnitude grows linearly from 0 at the band boundary to maxSpeed at the
// edge and is capped there for points beyond the edge.
func Velocity(p geom.Point, bounds geom.Rect, band, maxSpeed float64) float64 {
	if band <= 0 {
		return 0
	}

	fromTop := p.Y - bounds.Top
	fromBottom := bounds.Bottom - p.Y

	switch {
	case fromTop < band:
		return -ramp(band-fromTop, band, maxSpeed)
	case fromBottom < band:
		return ramp(band-fromBottom, band, maxSpeed)
	default:
		return 0
	}
}

func ramp(depth, band, maxSpeed float64) float64 {
	if depth > band {
		depth = band
	}
	return depth / band * maxSpeed
}

// Controller owns the auto-scroll frame loop. Velocity is nonzero only while
// a frame is scheduled; once it drops to zero the loop ends on its next frame.
type Controller struct {
	frames  frame.Scheduler
	locator Locator
	cfg     Config

	velocity float64
	handle   frame.Handle
}

// New creates an idle controller.
func New(frames frame.Scheduler, locator Locator, cfg Config) *Controller {
	if cfg.Band <= 0 {
		cfg.Band = DefaultBand
	}
	if cfg.MaxSpeed <= 0 {
		cfg.MaxSpeed = DefaultMaxSpeed
	}
	return &Controller{
		frames:  frames,
		locator: locator,
		cfg:     cfg,
	}
}

// Update recomputes the velocity for the pointer at p and starts the scroll
// loop if it is needed and not already running. A missing container leaves
// the controller untouched.
func (c *Controller) Update(p geom.Point) {
	container, ok := c.locator.Container()
	if !ok {
		return
	}

	c.velocity = Velocity(p, container.Bounds(), c.cfg.Band, c.cfg.MaxSpeed)
	if c.velocity != 0 && c.handle == 0 {
		c.handle = c.frames.Schedule(c.tick)
	}
}

func (c *Controller) tick(time.Time) {
	c.handle = 0

	container, ok := c.locator.Container()
	if !ok || c.velocity == 0 {
		c.Stop()
		return
	}

	container.ScrollBy(c.velocity)
	c.handle = c.frames.Schedule(c.tick)
}

// Stop cancels any pending frame and zeroes the velocity. Safe to call when idle.
func (c *Controller) Stop() {
	if c.handle != 0 {
		c.frames.Cancel(c.handle)
		c.handle = 0
	}
	c.velocity = 0
}

// Velocity returns the current scroll speed in pixels per frame.
func (c *Controller) Velocity() float64 {
	return c.velocity
}

// Active reports whether a scroll frame is pending.
func (c *Controller) Active() bool {
	return c.handle != 0
}
