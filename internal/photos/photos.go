// Package photos defines the photo references the gesture engine indexes
// into. The engine never owns photo content: it reads identifiers, positions
// and display paths from a sequence owned by the caller.
package photos

// Photo is a stable identifier plus the stored path used for display.
type Photo struct {
	ID   string
	Path string
}

// Sequence is the externally owned, ordered list of photos currently on
// screen. Implementations may change between calls; consumers re-read it on
// every event instead of caching it.
type Sequence interface {
	Photos() List
}

// List is an ordered photo sequence. It implements Sequence over itself.
type List []Photo

// Photos implements Sequence.
func (l List) Photos() List { return l }

// IndexOf returns the position of id, or -1 when absent.
func (l List) IndexOf(id string) int {
	for i, p := range l {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// IDs returns the identifiers in the inclusive index range [from, to],
// clipped to the list bounds. Bounds may be given in either order.
func (l List) IDs(from, to int) []string {
	if from > to {
		from, to = to, from
	}
	if from < 0 {
		from = 0
	}
	if to >= len(l) {
		to = len(l) - 1
	}
	if from > to {
		return nil
	}

	ids := make([]string, 0, to-from+1)
	for _, p := range l[from : to+1] {
		ids = append(ids, p.ID)
	}
	return ids
}

// SequenceFunc adapts a function to the Sequence interface.
type SequenceFunc func() List

// Photos implements Sequence.
func (f SequenceFunc) Photos() List { return f() }
