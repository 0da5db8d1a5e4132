package purfectview

import (
	"runtime"
	"strings"
)

// nativeClipboardShortcuts is true on platforms where the OS binds
// clipboard shortcuts on a modifier the terminal never sees (macOS Cmd-C),
// so copy/cut can always copy without clobbering the terminal's own
// Ctrl-C/Ctrl-X. Overridable in tests.
var nativeClipboardShortcuts = runtime.GOOS == "darwin" || runtime.GOOS == "ios"

// Context is everything one event dispatch needs from the surrounding
// frame, passed explicitly so the dispatcher carries no hidden
// dependencies.
type Context struct {
	// HasFocus gates keyboard, copy/cut and paste events.
	HasFocus bool
	// ContainsPointer gates wheel and button events.
	ContainsPointer bool
	// Origin is the widget's top-left corner in window coordinates.
	Origin PixelPoint
	// Modifiers is the frame-wide modifier state, used for events that do
	// not carry their own.
	Modifiers Modifiers
	// FontSize is the pixel granularity of pixel-unit wheel scrolling.
	FontSize float64
}

// ProcessEvent turns one input event into zero or more input actions.
// Events must be processed in arrival order; selection-drag and
// mouse-report state depend on sequence. The returned actions are applied
// in order by Apply and never persisted.
func ProcessEvent(ev Event, ctx Context, state *ViewState, backend Backend, bindings *Bindings) []InputAction {
	switch e := ev.(type) {
	case TextEvent, KeyEvent, CopyEvent, CutEvent, PasteEvent:
		if !ctx.HasFocus {
			return nil
		}
		return []InputAction{processKeyboardEvent(e, ctx, state, backend, bindings)}
	case WheelEvent:
		if !ctx.ContainsPointer {
			return nil
		}
		return []InputAction{TranslateWheel(state, ctx.FontSize, e.Unit, e.Delta, backend.LastContent().Mode)}
	case ButtonEvent:
		if !ctx.ContainsPointer {
			return nil
		}
		return []InputAction{ProcessButton(state, bindings, e, ctx.Origin, backend.LastContent().Mode)}
	case MoveEvent:
		return ProcessMove(state, e, ctx.Origin, ctx.Modifiers, backend)
	}
	return nil
}

// processKeyboardEvent handles text, key, copy, cut and paste events. While
// the search overlay is open, key events are pre-empted by the overlay and
// everything else is swallowed.
func processKeyboardEvent(ev Event, ctx Context, state *ViewState, backend Backend, bindings *Bindings) InputAction {
	if state.SearchActive {
		if ke, ok := ev.(KeyEvent); ok {
			return processSearchKey(ke)
		}
		return Ignore{}
	}

	switch e := ev.(type) {
	case TextEvent:
		return processText(e.Text, ctx.Modifiers, backend, bindings)
	case PasteEvent:
		return BackendCall{Command: WriteCommand{
			Data: pastePayload(e.Text, backend.LastContent().Mode),
		}}
	case CopyEvent:
		return processCopyCut(ctx.Modifiers, backend, 0x03)
	case CutEvent:
		return processCopyCut(ctx.Modifiers, backend, 0x18)
	case KeyEvent:
		return processKey(e, backend, bindings)
	}
	return Ignore{}
}

// processText forwards literal text bytes unless the text names a key with
// an explicit binding; a non-Ignore binding has already handled the input,
// so raw forwarding is suppressed.
func processText(text string, mods Modifiers, backend Backend, bindings *Bindings) InputAction {
	if k, ok := KeyFromName(text); ok {
		action := bindings.Resolve(KeyInput(k), mods, backend.LastContent().Mode)
		if action.Kind != ActionIgnore {
			return Ignore{}
		}
	}
	return BackendCall{Command: WriteCommand{Data: []byte(text)}}
}

// processKey resolves a named-key press against the binding table. The
// global search toggle is checked ahead of the table.
func processKey(ev KeyEvent, backend Backend, bindings *Bindings) InputAction {
	if !ev.Pressed {
		return Ignore{}
	}
	if isSearchToggle(ev.Key, ev.Modifiers) {
		return ToggleSearch{}
	}

	action := bindings.Resolve(KeyInput(ev.Key), ev.Modifiers, backend.LastContent().Mode)
	switch action.Kind {
	case ActionChar:
		return BackendCall{Command: WriteCommand{Data: []byte(string(action.Char))}}
	case ActionEsc:
		return BackendCall{Command: WriteCommand{Data: []byte(action.Esc)}}
	}
	return Ignore{}
}

// processCopyCut decides between copying the selection and forwarding the
// terminal's own control byte (interrupt for copy, terminate for cut).
//
// Where the OS binds clipboard shortcuts away from the terminal's keys the
// event always copies. Elsewhere the copy/cut shortcut doubles as Ctrl-C /
// Ctrl-X, so only Shift+primary copies and the bare combination forwards
// the control byte.
func processCopyCut(mods Modifiers, backend Backend, controlByte byte) InputAction {
	if nativeClipboardShortcuts {
		return WriteToClipboard{Text: backend.SelectableContent()}
	}
	if (mods.Command || mods.Ctrl) && mods.Shift {
		return WriteToClipboard{Text: backend.SelectableContent()}
	}
	return BackendCall{Command: WriteCommand{Data: []byte{controlByte}}}
}

// pastePayload prepares pasted text for the terminal. Under bracketed
// paste the payload is wrapped in paste markers with embedded ESC and ETX
// bytes stripped, so pasted text can neither fake a marker nor inject an
// interrupt. Otherwise line endings are normalized to carriage returns.
func pastePayload(text string, mode TermMode) []byte {
	if mode.BracketedPaste {
		payload := make([]byte, 0, len(text)+12)
		payload = append(payload, "\x1b[200~"...)
		for i := 0; i < len(text); i++ {
			if text[i] != 0x1b && text[i] != 0x03 {
				payload = append(payload, text[i])
			}
		}
		payload = append(payload, "\x1b[201~"...)
		return payload
	}
	normalized := strings.ReplaceAll(text, "\r\n", "\r")
	normalized = strings.ReplaceAll(normalized, "\n", "\r")
	return []byte(normalized)
}

// Apply performs the side effects of a dispatched action: backend calls,
// clipboard writes and search overlay transitions.
func Apply(action InputAction, state *ViewState, backend Backend, clip Clipboard) {
	switch a := action.(type) {
	case BackendCall:
		backend.ProcessCommand(a.Command)
	case WriteToClipboard:
		clip.WriteText(a.Text)
	case ToggleSearch:
		toggleSearch(state, backend)
	case SearchNext:
		searchStep(backend, true)
	case SearchPrev:
		searchStep(backend, false)
	case Ignore:
	}
}
