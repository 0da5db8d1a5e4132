package purfectview

// selectionKindForClicks maps click multiplicity to selection granularity:
// double click selects words, triple click selects lines.
func selectionKindForClicks(clicks int) SelectionKind {
	switch {
	case clicks >= 3:
		return SelectLines
	case clicks == 2:
		return SelectSemantic
	default:
		return SelectSimple
	}
}

// ProcessButton handles a primary-button press or release. Non-primary
// buttons are ignored.
//
// While the terminal is in a mouse-report mode, presses and releases are
// always forwarded as mouse reports and local selection is disabled
// entirely. Otherwise a press starts a drag and a selection whose kind is
// decided by click multiplicity; a multi-click release restarts the
// selection rather than ending it; a plain release consults the pointer
// binding and opens the hovered hyperlink when it resolves to LinkOpen.
func ProcessButton(state *ViewState, bindings *Bindings, ev ButtonEvent, origin PixelPoint, mode TermMode) InputAction {
	if ev.Button != ButtonPrimary {
		return Ignore{}
	}

	if mode.MouseReport {
		return BackendCall{Command: MouseReportCommand{
			Button:    MouseLeft,
			Modifiers: ev.Modifiers,
			Point:     state.PointerGridPosition,
			Pressed:   ev.Pressed,
		}}
	}

	x := ev.Pos.X - origin.X
	y := ev.Pos.Y - origin.Y

	if ev.Pressed {
		state.IsDragging = true
		return BackendCall{Command: SelectStartCommand{
			Kind: selectionKindForClicks(ev.Clicks),
			X:    x,
			Y:    y,
		}}
	}

	state.IsDragging = false
	if ev.Clicks >= 2 {
		// A double/triple click reported on release re-triggers selection
		// instead of ending a drag.
		return BackendCall{Command: SelectStartCommand{
			Kind: selectionKindForClicks(ev.Clicks),
			X:    x,
			Y:    y,
		}}
	}

	action := bindings.Resolve(MouseInput(ButtonPrimary), ev.Modifiers, mode)
	if action.Kind == ActionLinkOpen {
		return BackendCall{Command: ProcessLinkCommand{
			Action: LinkOpen,
			Point:  state.PointerGridPosition,
		}}
	}
	return Ignore{}
}

// ProcessMove handles pointer motion. The pointer grid position is always
// refreshed; while dragging, motion either extends the selection or, when
// the terminal wants motion reports and no modifier is held, becomes a
// mouse report instead. An exclusively held hover modifier probes the cell
// under the pointer for a hyperlink.
func ProcessMove(state *ViewState, ev MoveEvent, origin PixelPoint, mods Modifiers, backend Backend) []InputAction {
	content := backend.LastContent()
	x := ev.Pos.X - origin.X
	y := ev.Pos.Y - origin.Y
	state.PointerGridPosition = backend.SelectionPoint(x, y, content.Metrics, content.DisplayOffset)

	var actions []InputAction
	if state.IsDragging {
		if content.Mode.MouseMotion && mods.None() {
			actions = append(actions, BackendCall{Command: MouseReportCommand{
				Button:    MouseLeftMove,
				Modifiers: mods,
				Point:     state.PointerGridPosition,
				Pressed:   true,
			}})
		} else {
			actions = append(actions, BackendCall{Command: SelectUpdateCommand{X: x, Y: y}})
		}
	}

	if isHoverModifier(mods) {
		actions = append(actions, BackendCall{Command: ProcessLinkCommand{
			Action: LinkHover,
			Point:  state.PointerGridPosition,
		}})
	}
	return actions
}

// isHoverModifier reports whether exactly the link-hover modifier is held:
// Cmd or Ctrl alone, nothing else.
func isHoverModifier(m Modifiers) bool {
	return (m.Command != m.Ctrl) && !m.Shift && !m.Alt
}
