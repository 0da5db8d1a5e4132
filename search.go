package purfectview

// processSearchKey pre-empts key handling while the search overlay is open.
// Escape closes the overlay, F3 and Ctrl/Cmd+Enter navigate matches (Shift
// reverses direction), and the global toggle shortcut closes from within.
// Everything else is swallowed by the overlay's text input.
func processSearchKey(ev KeyEvent) InputAction {
	if !ev.Pressed {
		return Ignore{}
	}
	mods := ev.Modifiers

	switch {
	case ev.Key == KeyEscape:
		return ToggleSearch{}
	case ev.Key == KeyF3:
		if mods.Shift {
			return SearchPrev{}
		}
		return SearchNext{}
	case ev.Key == KeyEnter && (mods.Ctrl || mods.Command):
		if mods.Shift {
			return SearchPrev{}
		}
		return SearchNext{}
	case isSearchToggle(ev.Key, mods):
		return ToggleSearch{}
	}
	return Ignore{}
}

// isSearchToggle reports whether the key combination is the global search
// toggle: primary modifier + F.
func isSearchToggle(k Key, m Modifiers) bool {
	return k == KeyF && (m.Command || m.Ctrl) && !m.Shift && !m.Alt
}

// toggleSearch flips the overlay state. Opening schedules a one-shot focus
// request for the query input; closing clears the query. The backend is
// told either way so it can start or stop match tracking.
func toggleSearch(state *ViewState, backend Backend) {
	state.SearchActive = !state.SearchActive
	backend.SearchSetActive(state.SearchActive)
	if state.SearchActive {
		state.SearchJustOpened = true
	} else {
		// Closing before the focus request was consumed must not leave it
		// pending for the next time the overlay opens.
		state.SearchJustOpened = false
		state.SearchQuery = ""
	}
}

// searchStep moves to the next or previous match and scrolls it into view.
// A no-op while the backend reports search inactive.
func searchStep(backend Backend, forward bool) {
	if !backend.SearchActive() {
		return
	}
	var p GridPoint
	var ok bool
	if forward {
		p, ok = backend.SearchNext()
	} else {
		p, ok = backend.SearchPrev()
	}
	if ok {
		backend.ScrollToPoint(p)
	}
}

// SearchOverlay is what a host needs to draw the search UI for one frame.
type SearchOverlay struct {
	Active bool
	Query  string
	// RequestFocus is the consumed one-shot focus request: true exactly
	// once, on the first frame after the overlay opens.
	RequestFocus bool
	// NoMatches indicates the backend found nothing for a non-empty query.
	NoMatches bool
}

// searchPanelPadding is the vertical padding around the overlay input row.
const searchPanelPadding = 4.0

// PanelHeight returns the vertical space to reserve for the overlay input
// row, or 0 while the overlay is closed. Hosts subtract this from the
// widget height before sizing the grid.
func (o SearchOverlay) PanelHeight(metrics CellMetrics) float64 {
	if !o.Active {
		return 0
	}
	return metrics.CellHeight + 2*searchPanelPadding
}
