package purfectview

// Backend is the terminal state collaborator: it owns the cell grid, the
// escape-sequence parser and the PTY, none of which this package touches
// directly. A backend instance is exclusively borrowed for the duration of
// one frame's processing; the host toolkit guarantees that exclusion.
type Backend interface {
	// ID returns a stable identifier for this terminal instance, used to
	// key persisted view state.
	ID() string

	// LastContent returns the most recently synced content snapshot without
	// side effects.
	LastContent() *Content

	// Sync pulls pending terminal output, refreshes internal state and
	// returns a fresh snapshot.
	Sync() *Content

	// ProcessCommand applies one widget command (write, resize, scroll,
	// selection, mouse report, link processing).
	ProcessCommand(cmd Command)

	// SearchSetQuery updates the active search query.
	SearchSetQuery(query string)

	// SearchSetActive enables or disables search match tracking.
	SearchSetActive(active bool)

	// SearchActive reports whether search match tracking is enabled.
	SearchActive() bool

	// SearchNext returns the next match position, if any.
	SearchNext() (GridPoint, bool)

	// SearchPrev returns the previous match position, if any.
	SearchPrev() (GridPoint, bool)

	// ScrollToPoint scrolls the view so the given point is visible.
	ScrollToPoint(p GridPoint)

	// SelectableContent returns the text of the current selection, or ""
	// when nothing is selected.
	SelectableContent() string

	// SelectionPoint converts widget-local pixel coordinates to the grid
	// position used for pointer tracking. Unlike ToGridPoint the backend
	// may clamp the result to its grid bounds.
	SelectionPoint(x, y float64, metrics CellMetrics, displayOffset int) GridPoint
}
