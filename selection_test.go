package purfectview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessButton_ClickKinds(t *testing.T) {
	tests := []struct {
		clicks int
		want   SelectionKind
	}{
		{1, SelectSimple},
		{2, SelectSemantic},
		{3, SelectLines},
		{4, SelectLines},
	}
	for _, tt := range tests {
		state := &ViewState{}
		ev := ButtonEvent{Button: ButtonPrimary, Pressed: true, Pos: PixelPoint{X: 12, Y: 5}, Clicks: tt.clicks}
		action := ProcessButton(state, NewBindings(), ev, PixelPoint{}, TermMode{})

		require.IsType(t, BackendCall{}, action)
		cmd := action.(BackendCall).Command.(SelectStartCommand)
		assert.Equal(t, tt.want, cmd.Kind, "clicks=%d", tt.clicks)
		assert.True(t, state.IsDragging)
	}
}

func TestProcessButton_DoubleClickPixelCoordinates(t *testing.T) {
	state := &ViewState{}
	ev := ButtonEvent{Button: ButtonPrimary, Pressed: true, Pos: PixelPoint{X: 12, Y: 5}, Clicks: 2}
	action := ProcessButton(state, NewBindings(), ev, PixelPoint{}, TermMode{})

	cmd := action.(BackendCall).Command
	assert.Equal(t, SelectStartCommand{Kind: SelectSemantic, X: 12, Y: 5}, cmd)
}

func TestProcessButton_OriginRelative(t *testing.T) {
	state := &ViewState{}
	ev := ButtonEvent{Button: ButtonPrimary, Pressed: true, Pos: PixelPoint{X: 112, Y: 55}, Clicks: 1}
	action := ProcessButton(state, NewBindings(), ev, PixelPoint{X: 100, Y: 50}, TermMode{})

	cmd := action.(BackendCall).Command
	assert.Equal(t, SelectStartCommand{Kind: SelectSimple, X: 12, Y: 5}, cmd)
}

func TestProcessButton_MouseReportModeDisablesSelection(t *testing.T) {
	mode := TermMode{MouseReport: true}
	for _, pressed := range []bool{true, false} {
		state := &ViewState{PointerGridPosition: GridPoint{Line: 2, Column: 7}}
		ev := ButtonEvent{Button: ButtonPrimary, Pressed: pressed, Clicks: 2}
		action := ProcessButton(state, NewBindings(), ev, PixelPoint{}, mode)

		require.IsType(t, BackendCall{}, action)
		report := action.(BackendCall).Command.(MouseReportCommand)
		assert.Equal(t, MouseLeft, report.Button)
		assert.Equal(t, GridPoint{Line: 2, Column: 7}, report.Point)
		assert.Equal(t, pressed, report.Pressed)
		assert.False(t, state.IsDragging)
	}
}

func TestProcessButton_ReleaseEndsDrag(t *testing.T) {
	state := &ViewState{IsDragging: true}
	ev := ButtonEvent{Button: ButtonPrimary, Pressed: false, Clicks: 1}
	action := ProcessButton(state, NewBindings(), ev, PixelPoint{}, TermMode{})

	assert.Equal(t, Ignore{}, action)
	assert.False(t, state.IsDragging)
}

func TestProcessButton_MultiClickReleaseRestartsSelection(t *testing.T) {
	state := &ViewState{IsDragging: true}
	ev := ButtonEvent{Button: ButtonPrimary, Pressed: false, Pos: PixelPoint{X: 4, Y: 8}, Clicks: 2}
	action := ProcessButton(state, NewBindings(), ev, PixelPoint{}, TermMode{})

	cmd := action.(BackendCall).Command
	assert.Equal(t, SelectStartCommand{Kind: SelectSemantic, X: 4, Y: 8}, cmd)
	assert.False(t, state.IsDragging)
}

func TestProcessButton_ReleaseWithLinkBinding(t *testing.T) {
	state := &ViewState{PointerGridPosition: GridPoint{Line: 1, Column: 3}}
	ev := ButtonEvent{
		Button:    ButtonPrimary,
		Pressed:   false,
		Clicks:    1,
		Modifiers: Modifiers{Command: true},
	}
	action := ProcessButton(state, NewBindings(), ev, PixelPoint{}, TermMode{})

	cmd := action.(BackendCall).Command
	assert.Equal(t, ProcessLinkCommand{Action: LinkOpen, Point: GridPoint{Line: 1, Column: 3}}, cmd)
}

func TestProcessButton_SecondaryIgnored(t *testing.T) {
	state := &ViewState{}
	ev := ButtonEvent{Button: ButtonSecondary, Pressed: true, Clicks: 1}
	action := ProcessButton(state, NewBindings(), ev, PixelPoint{}, TermMode{})
	assert.Equal(t, Ignore{}, action)
}

func TestProcessMove_UpdatesPointerGridPosition(t *testing.T) {
	state := &ViewState{}
	actions := ProcessMove(state, MoveEvent{Pos: PixelPoint{X: 33, Y: 50}}, PixelPoint{}, Modifiers{}, newFakeBackend())

	assert.Empty(t, actions)
	assert.Equal(t, GridPoint{Line: 3, Column: 4}, state.PointerGridPosition)
}

func TestProcessMove_DragWithMotionReporting(t *testing.T) {
	state := &ViewState{IsDragging: true}
	backend := newFakeBackend()
	backend.content.Mode = TermMode{MouseMotion: true}
	actions := ProcessMove(state, MoveEvent{Pos: PixelPoint{X: 16, Y: 32}}, PixelPoint{}, Modifiers{}, backend)

	require.Len(t, actions, 1)
	report := actions[0].(BackendCall).Command.(MouseReportCommand)
	assert.Equal(t, MouseLeftMove, report.Button)
	assert.Equal(t, Modifiers{}, report.Modifiers)
	assert.Equal(t, GridPoint{Line: 2, Column: 2}, report.Point)
	assert.True(t, report.Pressed)
}

func TestProcessMove_DragWithModifierFallsBackToSelection(t *testing.T) {
	// Holding a modifier while the terminal wants motion reports keeps
	// local selection in control.
	state := &ViewState{IsDragging: true}
	backend := newFakeBackend()
	backend.content.Mode = TermMode{MouseMotion: true}
	actions := ProcessMove(state, MoveEvent{Pos: PixelPoint{X: 16, Y: 32}}, PixelPoint{}, Modifiers{Shift: true}, backend)

	require.Len(t, actions, 1)
	assert.Equal(t, SelectUpdateCommand{X: 16, Y: 32}, actions[0].(BackendCall).Command)
}

func TestProcessMove_DragWithoutMotionReporting(t *testing.T) {
	state := &ViewState{IsDragging: true}
	actions := ProcessMove(state, MoveEvent{Pos: PixelPoint{X: 40, Y: 8}}, PixelPoint{}, Modifiers{}, newFakeBackend())

	require.Len(t, actions, 1)
	assert.Equal(t, SelectUpdateCommand{X: 40, Y: 8}, actions[0].(BackendCall).Command)
}

func TestProcessMove_HoverModifierProbesLink(t *testing.T) {
	state := &ViewState{}
	actions := ProcessMove(state, MoveEvent{Pos: PixelPoint{X: 80, Y: 16}}, PixelPoint{}, Modifiers{Command: true}, newFakeBackend())

	require.Len(t, actions, 1)
	cmd := actions[0].(BackendCall).Command
	assert.Equal(t, ProcessLinkCommand{Action: LinkHover, Point: GridPoint{Line: 1, Column: 10}}, cmd)
}

func TestProcessMove_HoverModifierMustBeExclusive(t *testing.T) {
	state := &ViewState{}
	actions := ProcessMove(state, MoveEvent{Pos: PixelPoint{X: 80, Y: 16}}, PixelPoint{}, Modifiers{Command: true, Shift: true}, newFakeBackend())
	assert.Empty(t, actions)
}

func TestProcessMove_DisplayOffsetCompensation(t *testing.T) {
	state := &ViewState{}
	backend := newFakeBackend()
	backend.content.DisplayOffset = 5
	ProcessMove(state, MoveEvent{Pos: PixelPoint{X: 0, Y: 32}}, PixelPoint{}, Modifiers{}, backend)
	assert.Equal(t, GridPoint{Line: -3, Column: 0}, state.PointerGridPosition)
}
