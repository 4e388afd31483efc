package replay

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadScript(t *testing.T, name string) *Script {
	t.Helper()
	script, err := Load("testdata/" + name)
	require.NoError(t, err)
	return script
}

func numberedPhotos(n int) []PhotoRef {
	refs := make([]PhotoRef, n)
	for i := range refs {
		refs[i] = PhotoRef{ID: fmt.Sprintf("id%d", i), Path: fmt.Sprintf("/uploads/%d.jpg", i)}
	}
	return refs
}

func TestReplay_RangeSelectScenario(t *testing.T) {
	session := NewSession(loadScript(t, "range_select.json"), Options{})
	defer session.Close()

	result, err := session.Run()
	require.NoError(t, err)

	assert.Equal(t, []string{"id0", "id2"}, result.Selected)
	assert.Equal(t, "unset", result.Lock)
	assert.Zero(t, result.ScrollTop)
	assert.Zero(t, session.Pending())
}

func TestReplay_RangeSelectSteps(t *testing.T) {
	script := loadScript(t, "range_select.json")
	session := NewSession(script, Options{})
	defer session.Close()

	// First drag: paint 2..4
	for _, ev := range script.Events[:3] {
		require.NoError(t, session.Apply(ev))
	}
	assert.Equal(t, []string{"id2", "id3", "id4"}, session.Displayed())
	assert.Empty(t, session.Result().Selected, "preview is not committed before release")

	require.NoError(t, session.Apply(script.Events[3]))
	assert.Equal(t, []string{"id2", "id3", "id4"}, session.Result().Selected)

	// Second drag starts on a selected photo and erases 3..4
	require.NoError(t, session.Apply(script.Events[4]))
	require.NoError(t, session.Apply(script.Events[5]))
	assert.Equal(t, []string{"id2"}, session.Displayed())
	assert.Equal(t, []string{"id2", "id3", "id4"}, session.Result().Selected)

	require.NoError(t, session.Apply(script.Events[6]))
	assert.Equal(t, []string{"id2"}, session.Result().Selected)
}

func TestReplay_SwipeScenario(t *testing.T) {
	session := NewSession(loadScript(t, "swipe_next.json"), Options{})
	defer session.Close()

	result, err := session.Run()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Index)
	assert.Zero(t, result.Offset)
	assert.Equal(t, 8, result.Frames, "one tracking frame plus the 100ms settle")
	assert.Equal(t, "translateX(calc(-100% * 1 + 0px))", result.Style.Transform)
	assert.Equal(t, [][]string{
		{"http://nas.local:5000/uploads/0.jpg", "http://nas.local:5000/uploads/1.jpg"},
		{"http://nas.local:5000/uploads/0.jpg", "http://nas.local:5000/uploads/1.jpg", "http://nas.local:5000/uploads/2.jpg"},
	}, result.Preloads)
}

func TestReplay_RealtimeSwipe(t *testing.T) {
	session := NewRealtimeSession(loadScript(t, "swipe_next.json"), Options{
		FrameInterval:  2 * time.Millisecond,
		SettleDuration: 20 * time.Millisecond,
	})
	defer session.Close()

	result, err := session.RunContext(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Index)
	assert.Zero(t, result.Offset)
	assert.Positive(t, result.Frames)
	assert.Zero(t, session.Pending())
	assert.Equal(t, [][]string{
		{"http://nas.local:5000/uploads/0.jpg", "http://nas.local:5000/uploads/1.jpg"},
		{"http://nas.local:5000/uploads/0.jpg", "http://nas.local:5000/uploads/1.jpg", "http://nas.local:5000/uploads/2.jpg"},
	}, result.Preloads)
}

func TestReplay_RealtimeCanceled(t *testing.T) {
	session := NewRealtimeSession(loadScript(t, "swipe_next.json"), Options{})
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := session.RunContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReplay_RealtimeRejectsTimedApply(t *testing.T) {
	session := NewRealtimeSession(loadScript(t, "swipe_next.json"), Options{})
	defer session.Close()

	assert.Error(t, session.Apply(Event{Type: EventFrames, Count: 1}))
	assert.Error(t, session.Apply(Event{Type: EventIdle}))
}

func TestReplay_SwipeBelowThresholdSettlesBack(t *testing.T) {
	script := loadScript(t, "swipe_next.json")
	script.Events = []Event{
		{Target: TargetViewer, Type: EventStart, X: 200},
		{Target: TargetViewer, Type: EventMove, X: 190},
		{Type: EventFrames, Count: 1},
		{Target: TargetViewer, Type: EventEnd},
		{Type: EventIdle},
	}
	session := NewSession(script, Options{})

	result, err := session.Run()
	require.NoError(t, err)

	assert.Equal(t, 0, result.Index)
	assert.Zero(t, result.Offset)
	assert.Len(t, result.Preloads, 1, "only the mount preload")
}

func TestReplay_ForwardsPreloads(t *testing.T) {
	var got [][]string
	session := NewSession(loadScript(t, "swipe_next.json"), Options{
		Preloader: preloaderFunc(func(urls []string) { got = append(got, urls) }),
	})

	_, err := session.Run()
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

type preloaderFunc func(urls []string)

func (f preloaderFunc) Preload(urls []string) { f(urls) }

func TestReplay_AutoScroll(t *testing.T) {
	script := &Script{
		Photos:    numberedPhotos(30),
		Grid:      Grid{Columns: 3, CellWidth: 100, CellHeight: 100, Top: 200},
		Viewport:  Viewport{Width: 300, Height: 800},
		BatchMode: true,
	}
	require.NoError(t, script.Validate())
	session := NewSession(script, Options{})

	require.NoError(t, session.Apply(Event{Target: TargetGrid, Type: EventStart, X: 50, Y: 250}))
	require.NoError(t, session.Apply(Event{Target: TargetGrid, Type: EventMove, X: 50, Y: 780}))
	assert.Equal(t, "vertical", session.Result().Lock)

	require.NoError(t, session.Apply(Event{Type: EventFrames, Count: 3}))
	assert.InDelta(t, 3*(130.0/150.0*10), session.Result().ScrollTop, 1e-9)

	err := session.Apply(Event{Type: EventIdle})
	assert.ErrorIs(t, err, ErrNotIdle)
	assert.Equal(t, 400.0, session.Result().ScrollTop, "clamped at the end of the content")

	require.NoError(t, session.Apply(Event{Target: TargetGrid, Type: EventEnd}))
	assert.Zero(t, session.Pending())
	assert.Empty(t, session.Result().Selected, "a vertical pan selects nothing")
}

func TestReplay_LeavingBatchModeClears(t *testing.T) {
	script := loadScript(t, "range_select.json")
	script.Events = append(script.Events, Event{Type: EventBatch, On: false})
	session := NewSession(script, Options{})

	result, err := session.Run()
	require.NoError(t, err)
	assert.Empty(t, result.Selected)
}

func TestReplay_TouchBetweenCellsIsIgnored(t *testing.T) {
	script := loadScript(t, "range_select.json")
	script.Events = []Event{
		{Target: TargetGrid, Type: EventStart, X: 250, Y: 100},
		{Target: TargetGrid, Type: EventMove, X: 450, Y: 100},
		{Target: TargetGrid, Type: EventEnd},
	}
	session := NewSession(script, Options{})

	result, err := session.Run()
	require.NoError(t, err)
	assert.Empty(t, result.Selected)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"malformed", `{"photos": [`},
		{"unknown field", `{"grid": {"columns": 1, "cellWidth": 1, "cellHeight": 1}, "viewport": {"width": 1, "height": 1}, "speed": 3}`},
		{"no grid", `{"viewport": {"width": 1, "height": 1}}`},
		{"no viewport", `{"grid": {"columns": 1, "cellWidth": 1, "cellHeight": 1}}`},
		{"duplicate photo", `{"grid": {"columns": 1, "cellWidth": 1, "cellHeight": 1}, "viewport": {"width": 1, "height": 1}, "photos": [{"id": "a"}, {"id": "a"}]}`},
		{"unknown event", `{"grid": {"columns": 1, "cellWidth": 1, "cellHeight": 1}, "viewport": {"width": 1, "height": 1}, "events": [{"type": "pinch"}]}`},
		{"unknown target", `{"grid": {"columns": 1, "cellWidth": 1, "cellHeight": 1}, "viewport": {"width": 1, "height": 1}, "events": [{"target": "map", "type": "start"}]}`},
		{"zero frames", `{"grid": {"columns": 1, "cellWidth": 1, "cellHeight": 1}, "viewport": {"width": 1, "height": 1}, "events": [{"type": "frames"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.script))
			assert.Error(t, err)
		})
	}
}

func TestParse_InvalidScriptIsTyped(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"viewport": {"width": 1, "height": 1}}`))
	assert.ErrorIs(t, err, ErrInvalidScript)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/missing.json")
	assert.Error(t, err)
}
