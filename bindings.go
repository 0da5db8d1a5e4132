package purfectview

// BindingActionKind discriminates BindingAction variants.
type BindingActionKind int

const (
	// ActionIgnore means no binding claimed the input.
	ActionIgnore BindingActionKind = iota
	// ActionChar writes a single character to the terminal.
	ActionChar
	// ActionEsc writes a raw escape sequence to the terminal.
	ActionEsc
	// ActionLinkOpen opens the hyperlink under the pointer.
	ActionLinkOpen
)

// BindingAction is what a resolved binding does.
type BindingAction struct {
	Kind BindingActionKind
	Char rune
	Esc  string
}

// IgnoreAction is the no-match result.
var IgnoreAction = BindingAction{Kind: ActionIgnore}

// CharAction writes one character.
func CharAction(c rune) BindingAction { return BindingAction{Kind: ActionChar, Char: c} }

// EscAction writes an escape sequence.
func EscAction(seq string) BindingAction { return BindingAction{Kind: ActionEsc, Esc: seq} }

// LinkOpenAction opens the hovered hyperlink.
var LinkOpenAction = BindingAction{Kind: ActionLinkOpen}

// InputKind is what a binding matches on: a named key or a pointer button.
type InputKind struct {
	Key    Key
	Button PointerButton
	// IsMouse selects between the Key and Button fields.
	IsMouse bool
}

// KeyInput builds an InputKind for a named key.
func KeyInput(k Key) InputKind { return InputKind{Key: k} }

// MouseInput builds an InputKind for a pointer button.
func MouseInput(b PointerButton) InputKind { return InputKind{Button: b, IsMouse: true} }

// Binding matches one input against required modifiers and terminal-mode
// guards. Mode lists capabilities that must be set, NotMode capabilities
// that must be clear.
type Binding struct {
	Input   InputKind
	Mods    Modifiers
	Mode    TermMode
	NotMode TermMode
}

func (b Binding) matches(input InputKind, mods Modifiers, mode TermMode) bool {
	return b.Input == input &&
		b.Mods == mods &&
		mode.Contains(b.Mode) &&
		!mode.IntersectsAny(b.NotMode)
}

// BindingEntry pairs a matcher with its action.
type BindingEntry struct {
	Binding Binding
	Action  BindingAction
}

// Bindings is an ordered binding table. Resolution scans front to back and
// the first match wins, so table order encodes priority; caller-added
// bindings are placed ahead of the defaults.
type Bindings struct {
	entries []BindingEntry
}

// NewBindings returns a table preloaded with the default layout.
func NewBindings() *Bindings {
	return &Bindings{entries: defaultBindings()}
}

// Add prepends bindings so they take priority over existing entries.
func (b *Bindings) Add(entries []BindingEntry) {
	b.entries = append(append([]BindingEntry{}, entries...), b.entries...)
}

// Resolve looks up the action for an input under the given modifiers and
// terminal mode. No match resolves to IgnoreAction.
func (b *Bindings) Resolve(input InputKind, mods Modifiers, mode TermMode) BindingAction {
	for _, e := range b.entries {
		if e.Binding.matches(input, mods, mode) {
			return e.Action
		}
	}
	return IgnoreAction
}

// key is shorthand for a plain named-key entry.
func key(k Key, mods Modifiers, action BindingAction) BindingEntry {
	return BindingEntry{Binding: Binding{Input: KeyInput(k), Mods: mods}, Action: action}
}

// keyMode is a named-key entry with terminal-mode guards.
func keyMode(k Key, mods Modifiers, mode, notMode TermMode, action BindingAction) BindingEntry {
	return BindingEntry{
		Binding: Binding{Input: KeyInput(k), Mods: mods, Mode: mode, NotMode: notMode},
		Action:  action,
	}
}

var (
	noMods    = Modifiers{}
	shiftMod  = Modifiers{Shift: true}
	altMod    = Modifiers{Alt: true}
	ctrlMod   = Modifiers{Ctrl: true}
	cmdMod    = Modifiers{Command: true}
	appCursor = TermMode{AppCursor: true}
)

// defaultBindings is the built-in layout: named keys, application-cursor
// variants, modified cursor/function sequences and the link-open mouse
// binding.
func defaultBindings() []BindingEntry {
	entries := []BindingEntry{
		key(KeyEnter, noMods, CharAction('\r')),
		key(KeyTab, noMods, CharAction('\t')),
		key(KeyBackspace, noMods, CharAction('\x7f')),
		key(KeyBackspace, altMod, EscAction("\x1b\x7f")),
		key(KeyEscape, noMods, CharAction('\x1b')),
		key(KeyEscape, altMod, EscAction("\x1b\x1b")),
		key(KeySpace, ctrlMod, CharAction('\x00')),

		key(KeyInsert, noMods, EscAction("\x1b[2~")),
		key(KeyDelete, noMods, EscAction("\x1b[3~")),
		key(KeyPageUp, noMods, EscAction("\x1b[5~")),
		key(KeyPageDown, noMods, EscAction("\x1b[6~")),
		key(KeyPageUp, shiftMod, EscAction("\x1b[5;2~")),
		key(KeyPageDown, shiftMod, EscAction("\x1b[6;2~")),

		// Home/End and arrows depend on DECCKM application cursor mode.
		keyMode(KeyHome, noMods, appCursor, TermMode{}, EscAction("\x1bOH")),
		keyMode(KeyHome, noMods, TermMode{}, appCursor, EscAction("\x1b[H")),
		keyMode(KeyEnd, noMods, appCursor, TermMode{}, EscAction("\x1bOF")),
		keyMode(KeyEnd, noMods, TermMode{}, appCursor, EscAction("\x1b[F")),
		keyMode(KeyArrowUp, noMods, appCursor, TermMode{}, EscAction("\x1bOA")),
		keyMode(KeyArrowUp, noMods, TermMode{}, appCursor, EscAction("\x1b[A")),
		keyMode(KeyArrowDown, noMods, appCursor, TermMode{}, EscAction("\x1bOB")),
		keyMode(KeyArrowDown, noMods, TermMode{}, appCursor, EscAction("\x1b[B")),
		keyMode(KeyArrowRight, noMods, appCursor, TermMode{}, EscAction("\x1bOC")),
		keyMode(KeyArrowRight, noMods, TermMode{}, appCursor, EscAction("\x1b[C")),
		keyMode(KeyArrowLeft, noMods, appCursor, TermMode{}, EscAction("\x1bOD")),
		keyMode(KeyArrowLeft, noMods, TermMode{}, appCursor, EscAction("\x1b[D")),

		key(KeyF1, noMods, EscAction("\x1bOP")),
		key(KeyF2, noMods, EscAction("\x1bOQ")),
		key(KeyF3, noMods, EscAction("\x1bOR")),
		key(KeyF4, noMods, EscAction("\x1bOS")),
		key(KeyF5, noMods, EscAction("\x1b[15~")),
		key(KeyF6, noMods, EscAction("\x1b[17~")),
		key(KeyF7, noMods, EscAction("\x1b[18~")),
		key(KeyF8, noMods, EscAction("\x1b[19~")),
		key(KeyF9, noMods, EscAction("\x1b[20~")),
		key(KeyF10, noMods, EscAction("\x1b[21~")),
		key(KeyF11, noMods, EscAction("\x1b[23~")),
		key(KeyF12, noMods, EscAction("\x1b[24~")),

		// Cmd/Ctrl-click opens hyperlinks.
		{
			Binding: Binding{Input: MouseInput(ButtonPrimary), Mods: cmdMod},
			Action:  LinkOpenAction,
		},
		{
			Binding: Binding{Input: MouseInput(ButtonPrimary), Mods: ctrlMod},
			Action:  LinkOpenAction,
		},
	}

	// Modified cursor keys use CSI 1;<mod> encodings. The modifier
	// parameter is 1 + shift(1) + alt(2) + ctrl(4).
	cursor := []struct {
		k Key
		c byte
	}{
		{KeyArrowUp, 'A'},
		{KeyArrowDown, 'B'},
		{KeyArrowRight, 'C'},
		{KeyArrowLeft, 'D'},
		{KeyHome, 'H'},
		{KeyEnd, 'F'},
	}
	modCombos := []struct {
		mods  Modifiers
		param byte
	}{
		{Modifiers{Shift: true}, '2'},
		{Modifiers{Alt: true}, '3'},
		{Modifiers{Shift: true, Alt: true}, '4'},
		{Modifiers{Ctrl: true}, '5'},
		{Modifiers{Shift: true, Ctrl: true}, '6'},
		{Modifiers{Alt: true, Ctrl: true}, '7'},
		{Modifiers{Shift: true, Alt: true, Ctrl: true}, '8'},
	}
	for _, ck := range cursor {
		for _, mc := range modCombos {
			seq := "\x1b[1;" + string(mc.param) + string(ck.c)
			entries = append(entries, key(ck.k, mc.mods, EscAction(seq)))
		}
	}

	// Ctrl+letter control characters for letters that reach us as named
	// keys rather than text.
	for i := 0; i < 26; i++ {
		entries = append(entries, key(KeyA+Key(i), ctrlMod, CharAction(rune(1+i))))
	}

	return entries
}
