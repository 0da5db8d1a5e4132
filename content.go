package purfectview

// CellFlags are per-cell attribute bits carried in a content snapshot.
type CellFlags uint16

const (
	// FlagWideChar marks the leading cell of a double-width glyph.
	FlagWideChar CellFlags = 1 << iota
	// FlagWideCharSpacer marks the trailing half of a double-width glyph;
	// spacer cells are skipped entirely by the renderer.
	FlagWideCharSpacer
	// FlagInverse swaps foreground and background.
	FlagInverse
	// FlagDim renders the foreground at reduced intensity.
	FlagDim
	FlagBold
	FlagItalic
)

// Cell is one visible terminal cell in a content snapshot.
type Cell struct {
	Point GridPoint
	Char  rune
	Flags CellFlags
	FG    ColorSpec
	BG    ColorSpec
}

// Cursor is the terminal cursor position and color.
type Cursor struct {
	Point GridPoint
	Color ColorSpec
}

// SearchState is the backend's view of the current search: whether match
// tracking is on, whether the query matched nothing, and where the matches
// lie on the visible grid.
type SearchState struct {
	Active  bool
	NoMatch bool
	// Matches are the visible match ranges.
	Matches []PointRange
	// Focused is the match the view is currently centered on, if any.
	Focused *PointRange
}

// PointInMatch reports whether the point lies inside any visible match.
func (s *SearchState) PointInMatch(p GridPoint) bool {
	for _, r := range s.Matches {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// IsFocusedMatch reports whether the point lies inside the focused match.
func (s *SearchState) IsFocusedMatch(p GridPoint) bool {
	return s.Focused != nil && s.Focused.Contains(p)
}

// Content is a read-only snapshot of the backend's visible state, recomputed
// fresh every frame. Cells are listed in scan order, top-to-bottom then
// left-to-right.
type Content struct {
	Cells []Cell

	Cursor Cursor

	// SelectableRange covers the in-progress or completed selection, nil
	// when nothing is selected.
	SelectableRange *PointRange

	// HoveredHyperlink covers the hyperlink currently under consideration,
	// nil when there is none.
	HoveredHyperlink *PointRange

	Search SearchState

	Mode TermMode

	Metrics CellMetrics

	// DisplayOffset is how many rows the view is scrolled back into
	// history.
	DisplayOffset int
}
