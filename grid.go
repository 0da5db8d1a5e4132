package purfectview

// ToGridPoint maps widget-local pixel coordinates to a grid position.
// displayOffset compensates for scrolled history so the point lands on the
// correct logical row while the view is scrolled back. The result is not
// clamped; the backend bounds-checks grid positions itself.
func ToGridPoint(x, y float64, m CellMetrics, displayOffset int) GridPoint {
	col := 0
	if m.CellWidth > 0 {
		col = int(x / m.CellWidth)
	}
	line := 0
	if m.CellHeight > 0 {
		line = int(y / m.CellHeight)
	}
	return GridPoint{Line: line - displayOffset, Column: col}
}
