package purfectview

// Font describes the monospace font used to measure and draw terminal
// cells. Rasterization itself belongs to the toolkit adapter; the core only
// needs the descriptor and the resulting cell metrics.
type Font struct {
	Family string
	// Size is the point size; it doubles as the pixel granularity of
	// pixel-unit wheel scrolling.
	Size float64
	// Measured cell box. Adapters fill these from their text engine; the
	// zero value falls back to a Size-derived estimate.
	Width  float64
	Height float64
}

// DefaultFont returns a monospace font at a readable terminal size.
func DefaultFont() Font {
	return Font{Family: "monospace", Size: 14}
}

// Metrics returns the pixel cell box for this font.
func (f Font) Metrics() CellMetrics {
	w, h := f.Width, f.Height
	if w <= 0 {
		w = f.Size * 0.6
	}
	if h <= 0 {
		h = f.Size * 1.3
	}
	return CellMetrics{CellWidth: w, CellHeight: h}
}
