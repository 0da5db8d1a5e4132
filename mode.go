package purfectview

// TermMode is the set of terminal mode capabilities that influence input
// dispatch. The backend derives it from the escape sequences the running
// program has issued; this core only reads it.
//
// It is kept as named booleans rather than a raw bitset so the mode guards
// in binding resolution and scroll/selection dispatch stay legible.
type TermMode struct {
	// MouseReport is true when any mouse button reporting mode is active
	// (X10, normal, button-event or any-event tracking). While set, button
	// and wheel input is forwarded to the terminal program and local
	// selection/scrollback handling is suppressed.
	MouseReport bool

	// MouseMotion is true when the terminal wants motion events reported
	// while a button is held.
	MouseMotion bool

	// AltScreen is true while the alternate screen buffer is active.
	AltScreen bool

	// AlternateScroll converts wheel motion into cursor-key sequences while
	// the alternate screen is active.
	AlternateScroll bool

	// BracketedPaste wraps pasted text in paste markers.
	BracketedPaste bool

	// AppCursor is DECCKM application cursor key mode.
	AppCursor bool
}

// Contains reports whether every capability set in want is also set in m.
// Used as the positive mode guard in binding resolution.
func (m TermMode) Contains(want TermMode) bool {
	return (!want.MouseReport || m.MouseReport) &&
		(!want.MouseMotion || m.MouseMotion) &&
		(!want.AltScreen || m.AltScreen) &&
		(!want.AlternateScroll || m.AlternateScroll) &&
		(!want.BracketedPaste || m.BracketedPaste) &&
		(!want.AppCursor || m.AppCursor)
}

// IntersectsAny reports whether any capability set in probe is also set in
// m. Used as the negative mode guard in binding resolution.
func (m TermMode) IntersectsAny(probe TermMode) bool {
	return (probe.MouseReport && m.MouseReport) ||
		(probe.MouseMotion && m.MouseMotion) ||
		(probe.AltScreen && m.AltScreen) ||
		(probe.AlternateScroll && m.AlternateScroll) ||
		(probe.BracketedPaste && m.BracketedPaste) ||
		(probe.AppCursor && m.AppCursor)
}
