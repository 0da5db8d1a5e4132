package purfectview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dispatchOne(t *testing.T, ev Event, ctx Context, state *ViewState, backend *fakeBackend) InputAction {
	t.Helper()
	actions := ProcessEvent(ev, ctx, state, backend, NewBindings())
	require.Len(t, actions, 1)
	return actions[0]
}

func focusedCtx() Context {
	return Context{HasFocus: true, ContainsPointer: true, FontSize: 14}
}

func TestDispatch_BracketedPaste(t *testing.T) {
	backend := newFakeBackend()
	backend.content.Mode.BracketedPaste = true

	action := dispatchOne(t, PasteEvent{Text: "echo hi\n"}, focusedCtx(), &ViewState{}, backend)
	assert.Equal(t,
		BackendCall{Command: WriteCommand{Data: []byte("\x1b[200~echo hi\n\x1b[201~")}},
		action)
}

func TestDispatch_BracketedPasteStripsEscAndEtx(t *testing.T) {
	backend := newFakeBackend()
	backend.content.Mode.BracketedPaste = true

	action := dispatchOne(t, PasteEvent{Text: "a\x1b[201~b\x03c"}, focusedCtx(), &ViewState{}, backend)
	data := action.(BackendCall).Command.(WriteCommand).Data

	assert.Equal(t, []byte("\x1b[200~a[201~bc\x1b[201~"), data)
	// No raw ESC or ETX may survive between the markers.
	inner := data[6 : len(data)-6]
	for _, b := range inner {
		assert.NotEqual(t, byte(0x1b), b)
		assert.NotEqual(t, byte(0x03), b)
	}
}

func TestDispatch_PlainPasteNormalizesLineEndings(t *testing.T) {
	backend := newFakeBackend()
	action := dispatchOne(t, PasteEvent{Text: "one\r\ntwo\nthree"}, focusedCtx(), &ViewState{}, backend)
	assert.Equal(t, []byte("one\rtwo\rthree"), action.(BackendCall).Command.(WriteCommand).Data)
}

func TestDispatch_KeyboardRequiresFocus(t *testing.T) {
	backend := newFakeBackend()
	ctx := focusedCtx()
	ctx.HasFocus = false

	for _, ev := range []Event{
		TextEvent{Text: "x"},
		KeyEvent{Key: KeyEnter, Pressed: true},
		PasteEvent{Text: "hi"},
		CopyEvent{},
		CutEvent{},
	} {
		assert.Empty(t, ProcessEvent(ev, ctx, &ViewState{}, backend, NewBindings()))
	}
}

func TestDispatch_WheelRequiresPointerInside(t *testing.T) {
	backend := newFakeBackend()
	ctx := focusedCtx()
	ctx.ContainsPointer = false

	actions := ProcessEvent(WheelEvent{Unit: WheelUnitLine, Delta: PixelPoint{Y: 3}}, ctx, &ViewState{}, backend, NewBindings())
	assert.Empty(t, actions)
}

func TestDispatch_MoveIsUnconditional(t *testing.T) {
	backend := newFakeBackend()
	ctx := Context{HasFocus: false, ContainsPointer: false}
	state := &ViewState{}

	ProcessEvent(MoveEvent{Pos: PixelPoint{X: 24, Y: 48}}, ctx, state, backend, NewBindings())
	assert.Equal(t, GridPoint{Line: 3, Column: 3}, state.PointerGridPosition)
}

func TestDispatch_TextForwardsLiteralBytes(t *testing.T) {
	backend := newFakeBackend()
	action := dispatchOne(t, TextEvent{Text: "λ"}, focusedCtx(), &ViewState{}, backend)
	assert.Equal(t, BackendCall{Command: WriteCommand{Data: []byte("λ")}}, action)
}

func TestDispatch_TextSuppressedByNamedKeyBinding(t *testing.T) {
	// Ctrl+letter text arrives with a binding that already handled it, so
	// raw forwarding must not duplicate the write.
	backend := newFakeBackend()
	ctx := focusedCtx()
	ctx.Modifiers = Modifiers{Ctrl: true}

	action := dispatchOne(t, TextEvent{Text: "c"}, ctx, &ViewState{}, backend)
	assert.Equal(t, Ignore{}, action)
}

func TestDispatch_KeyResolvesBinding(t *testing.T) {
	backend := newFakeBackend()

	action := dispatchOne(t, KeyEvent{Key: KeyEnter, Pressed: true}, focusedCtx(), &ViewState{}, backend)
	assert.Equal(t, BackendCall{Command: WriteCommand{Data: []byte("\r")}}, action)

	action = dispatchOne(t, KeyEvent{Key: KeyPageUp, Pressed: true}, focusedCtx(), &ViewState{}, backend)
	assert.Equal(t, BackendCall{Command: WriteCommand{Data: []byte("\x1b[5~")}}, action)
}

func TestDispatch_KeyReleaseIgnored(t *testing.T) {
	backend := newFakeBackend()
	action := dispatchOne(t, KeyEvent{Key: KeyEnter, Pressed: false}, focusedCtx(), &ViewState{}, backend)
	assert.Equal(t, Ignore{}, action)
}

func TestDispatch_AppCursorArrows(t *testing.T) {
	backend := newFakeBackend()

	action := dispatchOne(t, KeyEvent{Key: KeyArrowUp, Pressed: true}, focusedCtx(), &ViewState{}, backend)
	assert.Equal(t, []byte("\x1b[A"), action.(BackendCall).Command.(WriteCommand).Data)

	backend.content.Mode.AppCursor = true
	action = dispatchOne(t, KeyEvent{Key: KeyArrowUp, Pressed: true}, focusedCtx(), &ViewState{}, backend)
	assert.Equal(t, []byte("\x1bOA"), action.(BackendCall).Command.(WriteCommand).Data)
}

func TestDispatch_SearchToggleShortcut(t *testing.T) {
	backend := newFakeBackend()
	ev := KeyEvent{Key: KeyF, Pressed: true, Modifiers: Modifiers{Command: true}}
	action := dispatchOne(t, ev, focusedCtx(), &ViewState{}, backend)
	assert.Equal(t, ToggleSearch{}, action)
}

func TestDispatch_CopyCutBareComboForwardsControlBytes(t *testing.T) {
	prev := nativeClipboardShortcuts
	nativeClipboardShortcuts = false
	defer func() { nativeClipboardShortcuts = prev }()

	backend := newFakeBackend()

	action := dispatchOne(t, CopyEvent{}, focusedCtx(), &ViewState{}, backend)
	assert.Equal(t, BackendCall{Command: WriteCommand{Data: []byte{0x03}}}, action)

	action = dispatchOne(t, CutEvent{}, focusedCtx(), &ViewState{}, backend)
	assert.Equal(t, BackendCall{Command: WriteCommand{Data: []byte{0x18}}}, action)
}

func TestDispatch_CopyShiftedComboCopiesSelection(t *testing.T) {
	prev := nativeClipboardShortcuts
	nativeClipboardShortcuts = false
	defer func() { nativeClipboardShortcuts = prev }()

	backend := newFakeBackend()
	backend.selectable = "selected text"
	ctx := focusedCtx()
	ctx.Modifiers = Modifiers{Command: true, Shift: true}

	action := dispatchOne(t, CopyEvent{}, ctx, &ViewState{}, backend)
	assert.Equal(t, WriteToClipboard{Text: "selected text"}, action)
}

func TestDispatch_CopyAlwaysCopiesWithNativeShortcuts(t *testing.T) {
	prev := nativeClipboardShortcuts
	nativeClipboardShortcuts = true
	defer func() { nativeClipboardShortcuts = prev }()

	backend := newFakeBackend()
	backend.selectable = "selected text"

	action := dispatchOne(t, CopyEvent{}, focusedCtx(), &ViewState{}, backend)
	assert.Equal(t, WriteToClipboard{Text: "selected text"}, action)
}

func TestApply_BackendCallAndClipboard(t *testing.T) {
	backend := newFakeBackend()
	clip := &fakeClipboard{}
	state := &ViewState{}

	Apply(BackendCall{Command: ScrollCommand{Lines: 2}}, state, backend, clip)
	require.Len(t, backend.commands, 1)
	assert.Equal(t, ScrollCommand{Lines: 2}, backend.commands[0])

	Apply(WriteToClipboard{Text: "copied"}, state, backend, clip)
	assert.Equal(t, []string{"copied"}, clip.texts)
}

func TestDispatch_EventOrderWithinFrame(t *testing.T) {
	// A press followed by a move in the same frame must start the drag
	// before the move extends it.
	backend := newFakeBackend()
	clip := &fakeClipboard{}
	state := &ViewState{}
	ctx := focusedCtx()
	bindings := NewBindings()

	events := []Event{
		ButtonEvent{Button: ButtonPrimary, Pressed: true, Pos: PixelPoint{X: 8, Y: 16}, Clicks: 1},
		MoveEvent{Pos: PixelPoint{X: 24, Y: 16}},
	}
	for _, ev := range events {
		for _, action := range ProcessEvent(ev, ctx, state, backend, bindings) {
			Apply(action, state, backend, clip)
		}
	}

	require.Len(t, backend.commands, 2)
	assert.IsType(t, SelectStartCommand{}, backend.commands[0])
	assert.Equal(t, SelectUpdateCommand{X: 24, Y: 16}, backend.commands[1])
}
