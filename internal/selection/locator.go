package selection

import "github.com/mrlokans/photoalbum/internal/geom"

// Locator resolves the grid item under a point to its position among its
// siblings. It reports false when the point is not over a photo.
type Locator interface {
	ItemAt(p geom.Point) (index int, ok bool)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(p geom.Point) (int, bool)

// ItemAt implements Locator.
func (f LocatorFunc) ItemAt(p geom.Point) (int, bool) { return f(p) }

// GridLocator resolves items in a fixed-column grid of equally sized cells
// laid out left to right, top to bottom.
type GridLocator struct {
	// Origin is the viewport position of the first cell's top-left corner
	// when the container is not scrolled.
	Origin     geom.Point
	Columns    int
	CellWidth  float64
	CellHeight float64

	// ScrollTop returns the container's current vertical scroll offset. Nil means 0.
	ScrollTop func() float64
	// Count returns the number of items currently rendered.
	Count func() int
}

// ItemAt implements Locator.
func (g GridLocator) ItemAt(p geom.Point) (int, bool) {
	if g.Columns <= 0 || g.CellWidth <= 0 || g.CellHeight <= 0 || g.Count == nil {
		return 0, false
	}

	x := p.X - g.Origin.X
	y := p.Y - g.Origin.Y
	if g.ScrollTop != nil {
		y += g.ScrollTop()
	}
	if x < 0 || y < 0 {
		return 0, false
	}

	col := int(x / g.CellWidth)
	if col >= g.Columns {
		return 0, false
	}
	idx := int(y/g.CellHeight)*g.Columns + col
	if idx >= g.Count() {
		return 0, false
	}
	return idx, true
}
