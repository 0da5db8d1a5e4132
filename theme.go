package purfectview

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorKind indicates how a cell color was specified by the terminal
// program.
type ColorKind uint8

const (
	// ColorDefaultFG is the terminal default foreground (SGR 39).
	ColorDefaultFG ColorKind = iota
	// ColorDefaultBG is the terminal default background (SGR 49).
	ColorDefaultBG
	// ColorCursor is the theme cursor color.
	ColorCursor
	// ColorStandard is one of the 16 ANSI colors (Index 0-15).
	ColorStandard
	// ColorPalette is a 256-color palette entry (Index 0-255).
	ColorPalette
	// ColorTrueColor is 24-bit RGB.
	ColorTrueColor
)

// ColorSpec is a terminal color with its original specification preserved,
// so theme palette swaps apply to palette-addressed colors but not to
// explicit true-color output.
type ColorSpec struct {
	Kind    ColorKind
	Index   uint8
	R, G, B uint8
}

// StandardColor creates a standard 16-color ANSI color spec (index 0-15).
func StandardColor(index int) ColorSpec {
	if index < 0 || index > 15 {
		index = 7
	}
	return ColorSpec{Kind: ColorStandard, Index: uint8(index)}
}

// PaletteColor creates a 256-color palette color spec (index 0-255).
func PaletteColor(index int) ColorSpec {
	if index < 0 || index > 255 {
		index = 7
	}
	return ColorSpec{Kind: ColorPalette, Index: uint8(index)}
}

// TrueColor creates a 24-bit color spec.
func TrueColor(r, g, b uint8) ColorSpec {
	return ColorSpec{Kind: ColorTrueColor, R: r, G: g, B: b}
}

// RGBA is a resolved display color.
type RGBA struct {
	R, G, B, A uint8
}

// DimFactor is the multiplicative intensity applied to dim-flagged
// foregrounds.
const DimFactor = 0.7

// LinearMultiply scales the color by f in linear RGB space. Alpha is left
// untouched on purpose, unlike premultiplied linear_multiply scaling: cell
// colors here are always opaque and dimming must not punch holes in the
// background.
func (c RGBA) LinearMultiply(f float64) RGBA {
	lr, lg, lb := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.LinearRgb()
	out := colorful.LinearRgb(lr*f, lg*f, lb*f).Clamped()
	return RGBA{
		R: uint8(out.R*255.0 + 0.5),
		G: uint8(out.G*255.0 + 0.5),
		B: uint8(out.B*255.0 + 0.5),
		A: c.A,
	}
}

// Standard ANSI 16-color palette values, in ANSI order.
var ansiPalette = [16]RGBA{
	{0, 0, 0, 255},       // 0: black
	{170, 0, 0, 255},     // 1: red
	{0, 170, 0, 255},     // 2: green
	{170, 85, 0, 255},    // 3: yellow/brown
	{0, 0, 170, 255},     // 4: blue
	{170, 0, 170, 255},   // 5: magenta
	{0, 170, 170, 255},   // 6: cyan
	{170, 170, 170, 255}, // 7: white/silver
	{85, 85, 85, 255},    // 8: bright black
	{255, 85, 85, 255},   // 9: bright red
	{85, 255, 85, 255},   // 10: bright green
	{255, 255, 85, 255},  // 11: bright yellow
	{85, 85, 255, 255},   // 12: bright blue
	{255, 85, 255, 255},  // 13: bright magenta
	{85, 255, 255, 255},  // 14: bright cyan
	{255, 255, 255, 255}, // 15: bright white
}

// Theme resolves terminal color specifications to display colors.
type Theme struct {
	Foreground RGBA
	Background RGBA
	Cursor     RGBA
	Palette    [16]RGBA
}

// DefaultTheme returns a dark theme with the standard ANSI palette.
func DefaultTheme() *Theme {
	return &Theme{
		Foreground: RGBA{212, 212, 212, 255},
		Background: RGBA{30, 30, 30, 255},
		Cursor:     RGBA{255, 255, 255, 255},
		Palette:    ansiPalette,
	}
}

// Resolve maps a color spec to a display color. Unknown specs degrade to
// the theme background rather than failing.
func (t *Theme) Resolve(spec ColorSpec) RGBA {
	switch spec.Kind {
	case ColorDefaultFG:
		return t.Foreground
	case ColorDefaultBG:
		return t.Background
	case ColorCursor:
		return t.Cursor
	case ColorStandard:
		if spec.Index < 16 {
			return t.Palette[spec.Index]
		}
		return t.Foreground
	case ColorPalette:
		return t.resolvePalette(int(spec.Index))
	case ColorTrueColor:
		return RGBA{spec.R, spec.G, spec.B, 255}
	}
	return t.Background
}

// resolvePalette maps a 256-color index: 0-15 through the theme palette,
// 16-231 through the 6x6x6 color cube, 232-255 through the gray ramp.
func (t *Theme) resolvePalette(idx int) RGBA {
	switch {
	case idx < 16:
		return t.Palette[idx]
	case idx < 232:
		idx -= 16
		b := idx % 6
		g := (idx / 6) % 6
		r := idx / 36
		return RGBA{uint8(r * 51), uint8(g * 51), uint8(b * 51), 255}
	default:
		gray := uint8((idx-232)*10 + 8)
		return RGBA{gray, gray, gray, 255}
	}
}
