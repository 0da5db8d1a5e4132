package purfectview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewFrame_ResizesBeforeDispatch(t *testing.T) {
	backend := newFakeBackend()
	view := NewView(backend, NewStateStore()).
		SetSize(Size{Width: 640, Height: 384}).
		SetFocus(true)

	view.Frame([]Event{KeyEvent{Key: KeyEnter, Pressed: true}}, Modifiers{}, true)

	require.GreaterOrEqual(t, len(backend.commands), 2)
	resize, ok := backend.commands[0].(ResizeCommand)
	require.True(t, ok)
	assert.Equal(t, Size{Width: 640, Height: 384}, resize.Size)
	assert.Equal(t, WriteCommand{Data: []byte("\r")}, backend.commands[1])
}

func TestViewFrame_ReturnsRenderedBatch(t *testing.T) {
	backend := newFakeBackend()
	backend.content.Cells = []Cell{{
		Point: GridPoint{Line: 0, Column: 0},
		Char:  'a',
		FG:    ColorSpec{Kind: ColorDefaultFG},
		BG:    ColorSpec{Kind: ColorDefaultBG},
	}}
	backend.content.Cursor.Point = GridPoint{Line: -1, Column: -1}
	view := NewView(backend, NewStateStore()).SetSize(Size{Width: 80, Height: 32})

	batch := view.Frame(nil, Modifiers{}, false)
	require.Len(t, batch, 2)
	assert.IsType(t, RectPrimitive{}, batch[0])
	assert.IsType(t, GlyphPrimitive{}, batch[1])
}

func TestViewFrame_SearchToggleLifecycle(t *testing.T) {
	backend := newFakeBackend()
	backend.content.Cursor.Point = GridPoint{Line: -1, Column: -1}
	view := NewView(backend, NewStateStore()).SetFocus(true)

	toggle := KeyEvent{Key: KeyF, Pressed: true, Modifiers: Modifiers{Command: true}}
	view.Frame([]Event{toggle}, Modifiers{}, false)

	state := view.State()
	assert.True(t, state.SearchActive)
	assert.True(t, state.SearchJustOpened)
	assert.True(t, backend.searchActive)

	// Next frame consumes the focus request but keeps the overlay open.
	overlay := view.Overlay()
	assert.True(t, overlay.RequestFocus)
	assert.True(t, state.SearchActive)
	assert.False(t, state.SearchJustOpened)

	// Escape closes and clears the query.
	view.SetSearchQuery("needle")
	view.Frame([]Event{KeyEvent{Key: KeyEscape, Pressed: true}}, Modifiers{}, false)
	assert.False(t, state.SearchActive)
	assert.Empty(t, state.SearchQuery)
}

func TestViewFrame_StatePersistsAcrossFrames(t *testing.T) {
	backend := newFakeBackend()
	backend.content.Cursor.Point = GridPoint{Line: -1, Column: -1}
	store := NewStateStore()
	view := NewView(backend, store).SetFocus(true)

	press := ButtonEvent{Button: ButtonPrimary, Pressed: true, Pos: PixelPoint{X: 8, Y: 16}, Clicks: 1}
	view.Frame([]Event{press}, Modifiers{}, true)
	assert.True(t, store.Get(backend.ID()).IsDragging)

	// A second View over the same backend sees the same state.
	view2 := NewView(backend, store)
	assert.True(t, view2.State().IsDragging)
}

func TestViewAddBindings_OverridesDefaults(t *testing.T) {
	backend := newFakeBackend()
	backend.content.Cursor.Point = GridPoint{Line: -1, Column: -1}
	view := NewView(backend, NewStateStore()).SetFocus(true)
	view.AddBindings([]BindingEntry{
		{Binding: Binding{Input: KeyInput(KeyEnter)}, Action: EscAction("\n")},
	})

	view.Frame([]Event{KeyEvent{Key: KeyEnter, Pressed: true}}, Modifiers{}, false)

	require.GreaterOrEqual(t, len(backend.commands), 2)
	assert.Equal(t, WriteCommand{Data: []byte("\n")}, backend.commands[1])
}
