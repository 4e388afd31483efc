// Package replay drives the gesture components from a recorded touch script
// on a manual frame clock. It is used to reproduce interaction bugs from the
// command line and to test whole gestures end to end.
package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/photoalbum/internal/photos"
)

// Targets an event can address.
const (
	TargetGrid   = "grid"
	TargetViewer = "viewer"
)

// Event types.
const (
	EventStart    = "start"
	EventMove     = "move"
	EventEnd      = "end"
	EventFrames   = "frames"
	EventIdle     = "idle"
	EventBatch    = "batch"
	EventToggle   = "toggle"
	EventClear    = "clear"
	EventNext     = "next"
	EventPrevious = "previous"
)

// ErrInvalidScript wraps every script validation failure.
var ErrInvalidScript = errors.New("invalid replay script")

// PhotoRef is a photo in the replayed sequence.
type PhotoRef struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// Grid describes the thumbnail grid layout.
type Grid struct {
	Columns    int     `json:"columns"`
	CellWidth  float64 `json:"cellWidth"`
	CellHeight float64 `json:"cellHeight"`
	Top        float64 `json:"top"`
	Left       float64 `json:"left"`
}

// Viewport is the visible area. The grid container fills it.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Event is one scripted input. Grid touches use X and Y, viewer touches use X.
type Event struct {
	Target string  `json:"target"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	// Count is the number of frames for "frames" events.
	Count int `json:"count,omitempty"`
	// On is the batch flag for "batch" events.
	On bool `json:"on,omitempty"`
	// ID is the photo for "toggle" events.
	ID string `json:"id,omitempty"`
}

// Script is a complete recorded session.
type Script struct {
	Origin     string     `json:"origin"`
	Photos     []PhotoRef `json:"photos"`
	Grid       Grid       `json:"grid"`
	Viewport   Viewport   `json:"viewport"`
	BatchMode  bool       `json:"batchMode"`
	StartIndex int        `json:"startIndex"`
	Events     []Event    `json:"events"`
}

// List returns the script's photos as a sequence.
func (s *Script) List() photos.List {
	list := make(photos.List, len(s.Photos))
	for i, p := range s.Photos {
		list[i] = photos.Photo{ID: p.ID, Path: p.Path}
	}
	return list
}

// Validate checks the layout and every event.
func (s *Script) Validate() error {
	if s.Grid.Columns <= 0 || s.Grid.CellWidth <= 0 || s.Grid.CellHeight <= 0 {
		return fmt.Errorf("%w: grid needs positive columns and cell size", ErrInvalidScript)
	}
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport needs a positive size", ErrInvalidScript)
	}

	seen := make(map[string]bool, len(s.Photos))
	for _, p := range s.Photos {
		if p.ID == "" {
			return fmt.Errorf("%w: photo without id", ErrInvalidScript)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate photo %q", ErrInvalidScript, p.ID)
		}
		seen[p.ID] = true
	}

	for i, ev := range s.Events {
		if err := ev.validate(); err != nil {
			return fmt.Errorf("%w: event %d: %v", ErrInvalidScript, i, err)
		}
	}
	return nil
}

func (ev Event) validate() error {
	switch ev.Type {
	case EventStart, EventMove, EventEnd:
		if ev.Target != TargetGrid && ev.Target != TargetViewer {
			return fmt.Errorf("unknown target %q", ev.Target)
		}
	case EventFrames:
		if ev.Count <= 0 {
			return errors.New("frames needs a positive count")
		}
	case EventToggle:
		if ev.ID == "" {
			return errors.New("toggle needs an id")
		}
	case EventIdle, EventBatch, EventClear, EventNext, EventPrevious:
	default:
		return fmt.Errorf("unknown type %q", ev.Type)
	}
	return nil
}

// Parse decodes and validates a script.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode replay script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a script from path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay script: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
