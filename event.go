package purfectview

// Key identifies a named (non-text) key on the keyboard.
type Key int

// Named keys understood by the dispatcher and binding tables. Letter keys
// are included so bindings can claim modifier+letter combinations; plain
// letter presses normally arrive as TextEvent instead.
const (
	KeyNone Key = iota

	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeySpace
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

var keyNames = map[string]Key{
	"Enter":     KeyEnter,
	"Escape":    KeyEscape,
	"Tab":       KeyTab,
	"Backspace": KeyBackspace,
	" ":         KeySpace,
	"Space":     KeySpace,
	"Insert":    KeyInsert,
	"Delete":    KeyDelete,
	"Home":      KeyHome,
	"End":       KeyEnd,
	"PageUp":    KeyPageUp,
	"PageDown":  KeyPageDown,
	"ArrowUp":   KeyArrowUp,
	"ArrowDown": KeyArrowDown,
	"ArrowLeft": KeyArrowLeft,
	"ArrowRight": KeyArrowRight,
	"F1":  KeyF1,
	"F2":  KeyF2,
	"F3":  KeyF3,
	"F4":  KeyF4,
	"F5":  KeyF5,
	"F6":  KeyF6,
	"F7":  KeyF7,
	"F8":  KeyF8,
	"F9":  KeyF9,
	"F10": KeyF10,
	"F11": KeyF11,
	"F12": KeyF12,
	"a":   KeyA, "b": KeyB, "c": KeyC, "d": KeyD, "e": KeyE, "f": KeyF,
	"g": KeyG, "h": KeyH, "i": KeyI, "j": KeyJ, "k": KeyK, "l": KeyL,
	"m": KeyM, "n": KeyN, "o": KeyO, "p": KeyP, "q": KeyQ, "r": KeyR,
	"s": KeyS, "t": KeyT, "u": KeyU, "v": KeyV, "w": KeyW, "x": KeyX,
	"y": KeyY, "z": KeyZ,
}

// KeyFromName looks up a named key for a piece of committed text. Text
// events whose payload matches a named key (single letters, "Enter", etc.)
// may be claimed by an explicit binding before raw forwarding.
func KeyFromName(name string) (Key, bool) {
	k, ok := keyNames[name]
	return k, ok
}

// PointerButton identifies a pointer device button.
type PointerButton int

const (
	ButtonPrimary PointerButton = iota
	ButtonSecondary
	ButtonMiddle
)

// WheelUnit is the unit a wheel event's delta is expressed in.
type WheelUnit int

const (
	// WheelUnitLine means the delta counts whole text lines.
	WheelUnitLine WheelUnit = iota
	// WheelUnitPoint means the delta counts pixels; fractional lines are
	// accumulated across events.
	WheelUnitPoint
	// WheelUnitPage means the delta counts pages. Page scrolling is not
	// translated to terminal scrolling.
	WheelUnitPage
)

// Event is a single host-toolkit input event. Adapters translate their
// toolkit's native events into these before handing them to the dispatcher.
// Events within one frame must be delivered in arrival order.
type Event interface {
	isEvent()
}

// TextEvent is committed text input (a typed character, possibly from an
// input method).
type TextEvent struct {
	Text string
}

// KeyEvent is a named-key press or release.
type KeyEvent struct {
	Key       Key
	Pressed   bool
	Modifiers Modifiers
}

// CopyEvent is the host's copy shortcut.
type CopyEvent struct{}

// CutEvent is the host's cut shortcut.
type CutEvent struct{}

// PasteEvent carries pasted clipboard text.
type PasteEvent struct {
	Text string
}

// WheelEvent is scroll-wheel or trackpad motion. Line deltas are signed
// wheel notches with positive Y meaning scroll down, toward the live
// screen. Point deltas are pixel motion in the opposite convention,
// positive Y meaning scroll up; the translator's accumulator inverts them
// so both units agree after translation.
type WheelEvent struct {
	Unit  WheelUnit
	Delta PixelPoint
}

// ButtonEvent is a pointer button press or release. Clicks is the click
// multiplicity reported by the toolkit for a press (1 = single, 2 = double,
// 3 = triple); toolkits that report double/triple clicks on release set it
// there as well.
type ButtonEvent struct {
	Button    PointerButton
	Pressed   bool
	Pos       PixelPoint
	Clicks    int
	Modifiers Modifiers
}

// MoveEvent is pointer motion in window coordinates.
type MoveEvent struct {
	Pos PixelPoint
}

func (TextEvent) isEvent()   {}
func (KeyEvent) isEvent()    {}
func (CopyEvent) isEvent()   {}
func (CutEvent) isEvent()    {}
func (PasteEvent) isEvent()  {}
func (WheelEvent) isEvent()  {}
func (ButtonEvent) isEvent() {}
func (MoveEvent) isEvent()   {}
