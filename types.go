// Package purfectview provides the input-dispatch and grid-projection core of
// an embeddable terminal display widget, shared between GUI toolkit
// implementations (GTK, Qt, etc.).
//
// This package contains:
//   - Input event types and the per-event dispatcher
//   - Key/mouse binding resolution
//   - Wheel-scroll translation (scrollback, alternate scroll, mouse reporting)
//   - Selection and search-overlay controllers
//   - The grid renderer, which projects a backend content snapshot into an
//     ordered list of draw primitives
//
// It deliberately knows nothing about how glyphs are rasterized, how the
// terminal grid itself is maintained, or how the child process is driven.
// Those live behind the Backend, Theme, Font and Painter collaborators.
// GUI-specific packages (purfectview/gtk, purfectview/qt) provide widget
// implementations that use this core package.
package purfectview

// GridPoint is a position on the terminal grid. Line counts from the top of
// the visible area (negative lines address scrollback history), Column from
// the left.
type GridPoint struct {
	Line   int
	Column int
}

// Cmp compares two grid points in scan order (line first, then column).
// Returns -1, 0 or 1.
func (p GridPoint) Cmp(o GridPoint) int {
	switch {
	case p.Line < o.Line:
		return -1
	case p.Line > o.Line:
		return 1
	case p.Column < o.Column:
		return -1
	case p.Column > o.Column:
		return 1
	}
	return 0
}

// PointRange is an inclusive range of grid points in scan order.
type PointRange struct {
	Start GridPoint
	End   GridPoint
}

// Contains reports whether the point lies within the range, inclusive on
// both ends.
func (r PointRange) Contains(p GridPoint) bool {
	return r.Start.Cmp(p) <= 0 && r.End.Cmp(p) >= 0
}

// Size is a widget size in pixels.
type Size struct {
	Width  float64
	Height float64
}

// CellMetrics holds the pixel dimensions of one terminal cell, measured from
// the active font.
type CellMetrics struct {
	CellWidth  float64
	CellHeight float64
}

// PixelPoint is a position in widget-local pixel coordinates.
type PixelPoint struct {
	X float64
	Y float64
}

// Modifiers is the set of modifier keys held during an input event. Command
// is the platform primary modifier (Ctrl on most systems, Cmd on macOS).
type Modifiers struct {
	Shift   bool
	Ctrl    bool
	Alt     bool
	Command bool
}

// None reports whether no modifier is held.
func (m Modifiers) None() bool {
	return !m.Shift && !m.Ctrl && !m.Alt && !m.Command
}

// CommandOnly reports whether Command is held with no other modifier.
func (m Modifiers) CommandOnly() bool {
	return m.Command && !m.Shift && !m.Ctrl && !m.Alt
}

// Contains reports whether every modifier set in want is also set in m.
func (m Modifiers) Contains(want Modifiers) bool {
	return (!want.Shift || m.Shift) &&
		(!want.Ctrl || m.Ctrl) &&
		(!want.Alt || m.Alt) &&
		(!want.Command || m.Command)
}
