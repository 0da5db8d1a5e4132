package purfectview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindings_NoMatchIgnores(t *testing.T) {
	b := NewBindings()
	action := b.Resolve(KeyInput(KeyZ), Modifiers{Alt: true, Shift: true}, TermMode{})
	assert.Equal(t, IgnoreAction, action)
}

func TestBindings_ExactModifierMatch(t *testing.T) {
	b := NewBindings()

	// Enter with no modifiers matches; with an unexpected modifier it
	// falls through to no match.
	assert.Equal(t, CharAction('\r'), b.Resolve(KeyInput(KeyEnter), Modifiers{}, TermMode{}))
	assert.Equal(t, IgnoreAction, b.Resolve(KeyInput(KeyEnter), Modifiers{Alt: true}, TermMode{}))
}

func TestBindings_ModeGuards(t *testing.T) {
	b := NewBindings()

	normal := b.Resolve(KeyInput(KeyHome), Modifiers{}, TermMode{})
	assert.Equal(t, EscAction("\x1b[H"), normal)

	app := b.Resolve(KeyInput(KeyHome), Modifiers{}, TermMode{AppCursor: true})
	assert.Equal(t, EscAction("\x1bOH"), app)
}

func TestBindings_FirstMatchWins(t *testing.T) {
	b := NewBindings()
	b.Add([]BindingEntry{
		{Binding: Binding{Input: KeyInput(KeyEnter)}, Action: EscAction("override")},
	})

	assert.Equal(t, EscAction("override"), b.Resolve(KeyInput(KeyEnter), Modifiers{}, TermMode{}))
}

func TestBindings_AddedBindingsKeepInternalOrder(t *testing.T) {
	b := NewBindings()
	b.Add([]BindingEntry{
		{Binding: Binding{Input: KeyInput(KeyEnter)}, Action: EscAction("first")},
		{Binding: Binding{Input: KeyInput(KeyEnter)}, Action: EscAction("second")},
	})

	assert.Equal(t, EscAction("first"), b.Resolve(KeyInput(KeyEnter), Modifiers{}, TermMode{}))
}

func TestBindings_ModifiedCursorSequences(t *testing.T) {
	b := NewBindings()

	tests := []struct {
		mods Modifiers
		want string
	}{
		{Modifiers{Shift: true}, "\x1b[1;2A"},
		{Modifiers{Alt: true}, "\x1b[1;3A"},
		{Modifiers{Ctrl: true}, "\x1b[1;5A"},
		{Modifiers{Shift: true, Ctrl: true}, "\x1b[1;6A"},
	}
	for _, tt := range tests {
		assert.Equal(t, EscAction(tt.want), b.Resolve(KeyInput(KeyArrowUp), tt.mods, TermMode{}))
	}
}

func TestBindings_CtrlLetterControlChars(t *testing.T) {
	b := NewBindings()

	assert.Equal(t, CharAction('\x01'), b.Resolve(KeyInput(KeyA), Modifiers{Ctrl: true}, TermMode{}))
	assert.Equal(t, CharAction('\x03'), b.Resolve(KeyInput(KeyC), Modifiers{Ctrl: true}, TermMode{}))
	assert.Equal(t, CharAction('\x1a'), b.Resolve(KeyInput(KeyZ), Modifiers{Ctrl: true}, TermMode{}))
}

func TestBindings_MouseLinkOpen(t *testing.T) {
	b := NewBindings()

	assert.Equal(t, LinkOpenAction, b.Resolve(MouseInput(ButtonPrimary), Modifiers{Command: true}, TermMode{}))
	assert.Equal(t, LinkOpenAction, b.Resolve(MouseInput(ButtonPrimary), Modifiers{Ctrl: true}, TermMode{}))
	assert.Equal(t, IgnoreAction, b.Resolve(MouseInput(ButtonPrimary), Modifiers{}, TermMode{}))
}

func TestKeyFromName(t *testing.T) {
	k, ok := KeyFromName("Enter")
	assert.True(t, ok)
	assert.Equal(t, KeyEnter, k)

	k, ok = KeyFromName("q")
	assert.True(t, ok)
	assert.Equal(t, KeyQ, k)

	_, ok = KeyFromName("λ")
	assert.False(t, ok)
}
