package purfectview

import "math"

// TranslateWheel converts one wheel event into an input action according to
// the current terminal mode.
//
// Dispatch priority is load-bearing: an active mouse-report mode always
// wins and produces a single mouse report per wheel event (direction only,
// never magnitude); otherwise alternate-scroll on the alternate screen
// produces cursor-key sequences, one triplet per line; otherwise the wheel
// moves the scrollback view. Translated lines are positive scrolling down,
// toward the live screen.
func TranslateWheel(state *ViewState, fontSize float64, unit WheelUnit, delta PixelPoint, mode TermMode) InputAction {
	var lines int
	switch unit {
	case WheelUnitLine:
		if delta.Y > 0 {
			lines = int(math.Ceil(delta.Y))
		} else {
			lines = -int(math.Ceil(-delta.Y))
		}
	case WheelUnitPoint:
		// Accumulate pixels so fractional lines carry to the next event.
		state.AccumulatedWheelPixels -= delta.Y
		lines = int(math.Trunc(state.AccumulatedWheelPixels / fontSize))
		state.AccumulatedWheelPixels = math.Mod(state.AccumulatedWheelPixels, fontSize)
	case WheelUnitPage:
		lines = 0
	}

	if lines == 0 {
		return Ignore{}
	}

	if mode.MouseReport {
		btn := MouseScrollUp
		if lines > 0 {
			btn = MouseScrollDown
		}
		return BackendCall{Command: MouseReportCommand{
			Button:  btn,
			Point:   state.PointerGridPosition,
			Pressed: true,
		}}
	}

	if mode.AltScreen && mode.AlternateScroll {
		dir := byte('A')
		if lines > 0 {
			dir = 'B'
		}
		n := lines
		if n < 0 {
			n = -n
		}
		seq := make([]byte, 0, n*3)
		for i := 0; i < n; i++ {
			seq = append(seq, 0x1b, 'O', dir)
		}
		return BackendCall{Command: WriteCommand{Data: seq}}
	}

	return BackendCall{Command: ScrollCommand{Lines: lines}}
}
