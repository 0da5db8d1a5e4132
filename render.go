package purfectview

import (
	"github.com/mattn/go-runewidth"
)

// Search match highlight colors, non-focused and focused.
var (
	searchHighlightColor        = RGBA{255, 165, 0, 255}
	searchFocusedHighlightColor = RGBA{255, 140, 0, 255}
)

// Primitive is one draw operation. A frame's primitives form an ordered
// batch: later primitives paint over earlier ones.
type Primitive interface {
	isPrimitive()
}

// RectPrimitive is an axis-aligned filled rectangle.
type RectPrimitive struct {
	X, Y          float64
	Width, Height float64
	Color         RGBA
}

// LinePrimitive is a stroked line segment.
type LinePrimitive struct {
	X1, Y1      float64
	X2, Y2      float64
	StrokeWidth float64
	Color       RGBA
}

// GlyphPrimitive draws one character. X is the horizontal center of the
// cell box and Y its top edge.
type GlyphPrimitive struct {
	X, Y   float64
	Char   rune
	Bold   bool
	Italic bool
	Color  RGBA
}

func (RectPrimitive) isPrimitive()  {}
func (LinePrimitive) isPrimitive()  {}
func (GlyphPrimitive) isPrimitive() {}

// Painter consumes one frame's primitive batch.
type Painter interface {
	Paint(batch []Primitive)
}

// Render projects a content snapshot into an ordered primitive batch. It is
// a pure function of the snapshot, the theme and the view state; it never
// mutates any of them.
//
// origin and size position the widget in window coordinates. The batch
// starts with a full background fill, then per cell in scan order: cell
// background (when it differs from the global background), search-match
// highlight, hovered-hyperlink underline, cursor box, glyph.
func Render(content *Content, theme *Theme, state *ViewState, origin PixelPoint, size Size) []Primitive {
	cellW := content.Metrics.CellWidth
	cellH := content.Metrics.CellHeight
	globalBG := theme.Resolve(ColorSpec{Kind: ColorDefaultBG})

	batch := []Primitive{RectPrimitive{
		X:      origin.X,
		Y:      origin.Y,
		Width:  size.Width,
		Height: size.Height,
		Color:  globalBG,
	}}

	for _, cell := range content.Cells {
		if cell.Flags&FlagWideCharSpacer != 0 {
			continue
		}

		isWide := cell.Flags&FlagWideChar != 0 || runewidth.RuneWidth(cell.Char) == 2
		isSelected := content.SelectableRange != nil && content.SelectableRange.Contains(cell.Point)
		isHoveredLink := content.HoveredHyperlink != nil &&
			content.HoveredHyperlink.Contains(cell.Point) &&
			content.HoveredHyperlink.Contains(state.PointerGridPosition)
		isSearchMatch := content.Search.Active && content.Search.PointInMatch(cell.Point)
		isCursor := content.Cursor.Point == cell.Point

		x := origin.X + cellW*float64(cell.Point.Column)
		y := origin.Y + cellH*float64(cell.Point.Line+content.DisplayOffset)

		fg := theme.Resolve(cell.FG)
		bg := theme.Resolve(cell.BG)
		width := cellW
		if isWide {
			width = cellW * 2
		}

		if cell.Flags&FlagDim != 0 {
			fg = fg.LinearMultiply(DimFactor)
		}
		if cell.Flags&FlagInverse != 0 || isSelected {
			fg, bg = bg, fg
		}

		if bg != globalBG {
			// Overfill by one pixel so adjacent colored cells leave no seam.
			batch = append(batch, RectPrimitive{
				X: x, Y: y,
				Width: width + 1, Height: cellH + 1,
				Color: bg,
			})
		}

		if isSearchMatch {
			highlight := searchHighlightColor
			if content.Search.IsFocusedMatch(cell.Point) {
				highlight = searchFocusedHighlightColor
			}
			batch = append(batch, RectPrimitive{
				X: x, Y: y,
				Width: width + 1, Height: cellH + 1,
				Color: highlight,
			})
		}

		if isHoveredLink {
			batch = append(batch, LinePrimitive{
				X1: x, Y1: y + cellH,
				X2: x + width, Y2: y + cellH,
				StrokeWidth: cellH * 0.15,
				Color:       fg,
			})
		}

		if isCursor {
			batch = append(batch, RectPrimitive{
				X: x, Y: y,
				Width: width, Height: cellH,
				Color: theme.Resolve(content.Cursor.Color),
			})
		}

		if cell.Char != ' ' && cell.Char != '\t' && cell.Char != 0 {
			if isCursor && content.Mode.AppCursor {
				fg, bg = bg, fg
			}
			batch = append(batch, GlyphPrimitive{
				X:      x + width/2,
				Y:      y,
				Char:   cell.Char,
				Bold:   cell.Flags&FlagBold != 0,
				Italic: cell.Flags&FlagItalic != 0,
				Color:  fg,
			})
		}
	}

	return batch
}
