package purfectview

// View is the terminal widget for one frame. Hosts construct it with the
// backend handle and frame parameters, feed it the frame's input events and
// draw the primitive batch it returns. All processing is synchronous within
// the frame callback; the View owns no background work.
type View struct {
	backend  Backend
	store    *StateStore
	size     Size
	origin   PixelPoint
	hasFocus bool
	theme    *Theme
	font     Font
	bindings *Bindings
	clip     Clipboard
}

// NewView creates a view over a backend. The store carries widget state
// across frames, keyed by the backend's identifier.
func NewView(backend Backend, store *StateStore) *View {
	return &View{
		backend:  backend,
		store:    store,
		theme:    DefaultTheme(),
		font:     DefaultFont(),
		bindings: NewBindings(),
		clip:     SystemClipboard{},
	}
}

// SetTheme replaces the color theme.
func (v *View) SetTheme(theme *Theme) *View {
	v.theme = theme
	return v
}

// SetFont replaces the terminal font.
func (v *View) SetFont(font Font) *View {
	v.font = font
	return v
}

// SetFocus marks whether the widget holds keyboard focus this frame.
func (v *View) SetFocus(focus bool) *View {
	v.hasFocus = focus
	return v
}

// SetSize sets the widget's pixel size for this frame.
func (v *View) SetSize(size Size) *View {
	v.size = size
	return v
}

// SetOrigin sets the widget's top-left corner in window coordinates.
func (v *View) SetOrigin(origin PixelPoint) *View {
	v.origin = origin
	return v
}

// SetClipboard replaces the clipboard sink.
func (v *View) SetClipboard(clip Clipboard) *View {
	v.clip = clip
	return v
}

// AddBindings prepends caller bindings, which take priority over the
// default layout.
func (v *View) AddBindings(entries []BindingEntry) *View {
	v.bindings.Add(entries)
	return v
}

// State returns the persisted view state for this widget.
func (v *View) State() *ViewState {
	return v.store.Get(v.backend.ID())
}

// Frame runs one UI frame: resizes the backend to the current widget box,
// dispatches the frame's input events in arrival order, then syncs the
// backend and renders its fresh snapshot into an ordered primitive batch.
//
// containsPointer reports whether the pointer is inside the widget bounds;
// mods is the frame-wide modifier state.
func (v *View) Frame(events []Event, mods Modifiers, containsPointer bool) []Primitive {
	state := v.State()

	v.backend.ProcessCommand(ResizeCommand{Size: v.size, Metrics: v.font.Metrics()})

	ctx := Context{
		HasFocus:        v.hasFocus,
		ContainsPointer: containsPointer,
		Origin:          v.origin,
		Modifiers:       mods,
		FontSize:        v.font.Size,
	}

	for _, ev := range events {
		for _, action := range ProcessEvent(ev, ctx, state, v.backend, v.bindings) {
			Apply(action, state, v.backend, v.clip)
		}
	}

	content := v.backend.Sync()
	return Render(content, v.theme, state, v.origin, v.size)
}

// Overlay returns the search overlay state for this frame and consumes the
// one-shot focus request scheduled when the overlay opened.
func (v *View) Overlay() SearchOverlay {
	state := v.State()
	o := SearchOverlay{
		Active:       state.SearchActive,
		Query:        state.SearchQuery,
		RequestFocus: state.SearchJustOpened,
	}
	content := v.backend.LastContent()
	o.NoMatches = content.Search.NoMatch && state.SearchQuery != ""
	state.SearchJustOpened = false
	return o
}

// SetSearchQuery stores an edited query and pushes it to the backend.
// Called by the host on every overlay edit; there is no debouncing.
func (v *View) SetSearchQuery(query string) {
	state := v.State()
	if state.SearchQuery == query {
		return
	}
	state.SearchQuery = query
	v.backend.SearchSetQuery(query)
}

// SearchForward moves to the next match, for overlay navigation buttons.
func (v *View) SearchForward() {
	searchStep(v.backend, true)
}

// SearchBackward moves to the previous match.
func (v *View) SearchBackward() {
	searchStep(v.backend, false)
}

// ToggleSearchOverlay flips the overlay, for hosts that expose a menu item
// or toolbar button in addition to the keyboard shortcut.
func (v *View) ToggleSearchOverlay() {
	toggleSearch(v.State(), v.backend)
}
