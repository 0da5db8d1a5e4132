// Package purfectviewqt embeds the purfectview terminal widget in Qt via
// the miqt bindings.
//
// Qt delivers input through event overrides; the widget translates each one
// into a core event, queues it, and replays the queue through one core frame
// inside the paint event. The primitive batch is drawn with QPainter.
package purfectviewqt

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/mappu/miqt/qt"

	"github.com/phroun/purfectview"
)

// Qt interprets point sizes differently than Pango, so sizes are scaled to
// keep cell geometry consistent with the GTK widget.
const qtFontSizeScale = 1.333

// Multi-click detection window and slop.
const (
	multiClickTime = 400 * time.Millisecond
	multiClickSlop = 4
)

// Options configures widget creation.
type Options struct {
	FontFamily string  // default "Monospace"
	FontSize   float64 // default 14
	Theme      *purfectview.Theme
}

// Widget hosts one terminal view inside a QWidget.
type Widget struct {
	mu sync.Mutex

	widget  *qt.QWidget
	backend purfectview.Backend
	view    *purfectview.View
	store   *purfectview.StateStore
	font    purfectview.Font
	qfont   *qt.QFont

	pending       []purfectview.Event
	modifiers     purfectview.Modifiers
	hasFocus      bool
	pointerInside bool

	charAscent int

	lastClickTime  time.Time
	lastClickX     int
	lastClickY     int
	lastClickCount int
}

// NewWidget creates a terminal widget over a backend. The caller parents the
// returned QWidget into its layout and keeps the backend alive for the
// widget's lifetime.
func NewWidget(backend purfectview.Backend, opts Options) *Widget {
	if opts.FontFamily == "" {
		opts.FontFamily = "Monospace"
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 14
	}
	if opts.Theme == nil {
		opts.Theme = purfectview.DefaultTheme()
	}

	store := purfectview.NewStateStore()
	w := &Widget{
		widget:  qt.NewQWidget2(),
		backend: backend,
		store:   store,
		font:    purfectview.Font{Family: opts.FontFamily, Size: opts.FontSize},
	}
	w.view = purfectview.NewView(backend, store).
		SetTheme(opts.Theme).
		SetClipboard(qtClipboard{})

	w.measureFont()

	w.widget.SetFocusPolicy(qt.StrongFocus)
	w.widget.SetMouseTracking(true)
	w.widget.SetMinimumSize2(100, 50)

	w.widget.OnPaintEvent(func(super func(event *qt.QPaintEvent), event *qt.QPaintEvent) {
		w.paintEvent(event)
	})
	w.widget.OnKeyPressEvent(func(super func(event *qt.QKeyEvent), event *qt.QKeyEvent) {
		w.keyPressEvent(event)
	})
	w.widget.OnMousePressEvent(func(super func(event *qt.QMouseEvent), event *qt.QMouseEvent) {
		w.mousePressEvent(event)
	})
	w.widget.OnMouseReleaseEvent(func(super func(event *qt.QMouseEvent), event *qt.QMouseEvent) {
		w.mouseReleaseEvent(event)
	})
	w.widget.OnMouseMoveEvent(func(super func(event *qt.QMouseEvent), event *qt.QMouseEvent) {
		w.mouseMoveEvent(event)
	})
	w.widget.OnWheelEvent(func(super func(event *qt.QWheelEvent), event *qt.QWheelEvent) {
		w.wheelEvent(event)
	})
	w.widget.OnFocusInEvent(func(super func(event *qt.QFocusEvent), event *qt.QFocusEvent) {
		w.setFocus(true)
	})
	w.widget.OnFocusOutEvent(func(super func(event *qt.QFocusEvent), event *qt.QFocusEvent) {
		w.setFocus(false)
	})
	w.widget.OnEnterEvent(func(super func(event *qt.QEvent), event *qt.QEvent) {
		w.setPointerInside(true)
	})
	w.widget.OnLeaveEvent(func(super func(event *qt.QEvent), event *qt.QEvent) {
		w.setPointerInside(false)
	})

	return w
}

// QWidget returns the underlying widget to parent into a layout.
func (w *Widget) QWidget() *qt.QWidget {
	return w.widget
}

// AddBindings prepends caller bindings ahead of the default layout.
func (w *Widget) AddBindings(entries []purfectview.BindingEntry) {
	w.view.AddBindings(entries)
}

func (w *Widget) queue(ev purfectview.Event) {
	w.mu.Lock()
	w.pending = append(w.pending, ev)
	w.mu.Unlock()
	w.widget.Update()
}

func (w *Widget) setFocus(focus bool) {
	w.mu.Lock()
	w.hasFocus = focus
	w.mu.Unlock()
	w.widget.Update()
}

func (w *Widget) setPointerInside(inside bool) {
	w.mu.Lock()
	w.pointerInside = inside
	w.mu.Unlock()
}

func (w *Widget) measureFont() {
	size := int(math.Round(w.font.Size * qtFontSizeScale))
	w.qfont = qt.NewQFont6(w.font.Family, size)
	w.qfont.SetFixedPitch(true)
	metrics := qt.NewQFontMetrics(w.qfont)
	w.font.Width = float64(metrics.AverageCharWidth())
	w.font.Height = float64(metrics.Height())
	w.charAscent = metrics.Ascent()
	if w.font.Width < 1 {
		w.font.Width = math.Ceil(w.font.Size * 0.6)
	}
	if w.font.Height < 1 {
		w.font.Height = math.Ceil(w.font.Size * 1.3)
	}
	if w.charAscent < 1 {
		w.charAscent = int(w.font.Size)
	}
}

func (w *Widget) paintEvent(event *qt.QPaintEvent) {
	w.mu.Lock()
	events := w.pending
	w.pending = nil
	mods := w.modifiers
	focus := w.hasFocus
	inside := w.pointerInside
	w.mu.Unlock()

	size := purfectview.Size{
		Width:  float64(w.widget.Width()),
		Height: float64(w.widget.Height()),
	}

	batch := w.view.
		SetFont(w.font).
		SetSize(size).
		SetFocus(focus).
		Frame(events, mods, inside)

	painter := qt.NewQPainter2(w.widget.QPaintDevice)
	defer painter.End()
	painter.SetFont(w.qfont)

	for _, prim := range batch {
		w.paintPrimitive(painter, prim)
	}
}

func (w *Widget) paintPrimitive(painter *qt.QPainter, prim purfectview.Primitive) {
	switch p := prim.(type) {
	case purfectview.RectPrimitive:
		painter.FillRect5(int(p.X), int(p.Y), int(p.Width), int(p.Height), qColor(p.Color))
	case purfectview.LinePrimitive:
		pen := qt.NewQPen3(qColor(p.Color))
		width := int(p.StrokeWidth + 0.5)
		if width < 1 {
			width = 1
		}
		pen.SetWidth(width)
		painter.SetPenWithPen(pen)
		painter.DrawLine3(int(p.X1), int(p.Y1), int(p.X2), int(p.Y2))
	case purfectview.GlyphPrimitive:
		font := w.qfont
		if p.Bold || p.Italic {
			font = qt.NewQFont6(w.font.Family, int(math.Round(w.font.Size*qtFontSizeScale)))
			font.SetFixedPitch(true)
			font.SetBold(p.Bold)
			font.SetItalic(p.Italic)
		}
		painter.SetFont(font)
		painter.SetPenWithPen(qt.NewQPen3(qColor(p.Color)))
		x := int(p.X - w.font.Width/2)
		painter.DrawText3(x, int(p.Y)+w.charAscent, string(p.Char))
		if font != w.qfont {
			painter.SetFont(w.qfont)
		}
	}
}

func qColor(c purfectview.RGBA) *qt.QColor {
	return qt.NewQColor3(int(c.R), int(c.G), int(c.B))
}

func (w *Widget) keyPressEvent(event *qt.QKeyEvent) {
	event.Accept()

	key := qt.Key(event.Key())
	if isModifierKey(key) {
		w.updateModifiers(event.Modifiers())
		return
	}

	mods := w.updateModifiers(event.Modifiers())

	// Clipboard shortcuts: Ctrl+Shift+C/X/V, plus the bare primary
	// shortcut on macOS where Command+C is native.
	primary := mods.Ctrl || mods.Command
	native := runtime.GOOS == "darwin" && mods.Command && !mods.Shift
	if (primary && mods.Shift) || native {
		switch key {
		case qt.Key_C:
			w.queue(purfectview.CopyEvent{})
			return
		case qt.Key_X:
			w.queue(purfectview.CutEvent{})
			return
		case qt.Key_V:
			clipboard := qt.QGuiApplication_Clipboard()
			if text := clipboard.Text(); text != "" {
				w.queue(purfectview.PasteEvent{Text: text})
			}
			return
		}
	}

	if named, ok := translateKey(key); ok {
		w.queue(purfectview.KeyEvent{Key: named, Pressed: true, Modifiers: mods})
		return
	}

	if mods.Ctrl || mods.Command || mods.Alt {
		if key >= qt.Key_A && key <= qt.Key_Z {
			name := string(rune('a' + (key - qt.Key_A)))
			if named, ok := purfectview.KeyFromName(name); ok {
				w.queue(purfectview.KeyEvent{Key: named, Pressed: true, Modifiers: mods})
				return
			}
		}
	}

	if text := event.Text(); text != "" {
		w.queue(purfectview.TextEvent{Text: text})
	}
}

// updateModifiers converts Qt modifier flags to core modifiers and records
// them for the next frame. On macOS Qt swaps Control and Meta so that
// ControlModifier follows the Command key; we swap back to report physical
// keys.
func (w *Widget) updateModifiers(modifiers qt.KeyboardModifier) purfectview.Modifiers {
	hasCtrl := modifiers&qt.ControlModifier != 0
	hasMeta := modifiers&qt.MetaModifier != 0
	if runtime.GOOS == "darwin" {
		hasCtrl, hasMeta = hasMeta, hasCtrl
	}
	mods := purfectview.Modifiers{
		Shift:   modifiers&qt.ShiftModifier != 0,
		Ctrl:    hasCtrl,
		Alt:     modifiers&qt.AltModifier != 0,
		Command: hasMeta,
	}
	w.mu.Lock()
	w.modifiers = mods
	w.mu.Unlock()
	return mods
}

func (w *Widget) mousePressEvent(event *qt.QMouseEvent) {
	if event.Button() != qt.LeftButton {
		return
	}
	w.widget.SetFocus()

	mods := w.updateModifiers(event.Modifiers())
	pos := event.Pos()
	clicks := w.trackClick(pos.X(), pos.Y())

	w.queue(purfectview.ButtonEvent{
		Button:    purfectview.ButtonPrimary,
		Pressed:   true,
		Pos:       purfectview.PixelPoint{X: float64(pos.X()), Y: float64(pos.Y())},
		Clicks:    clicks,
		Modifiers: mods,
	})
}

func (w *Widget) mouseReleaseEvent(event *qt.QMouseEvent) {
	if event.Button() != qt.LeftButton {
		return
	}

	w.mu.Lock()
	clicks := w.lastClickCount
	w.mu.Unlock()

	pos := event.Pos()
	w.queue(purfectview.ButtonEvent{
		Button:    purfectview.ButtonPrimary,
		Pressed:   false,
		Pos:       purfectview.PixelPoint{X: float64(pos.X()), Y: float64(pos.Y())},
		Clicks:    clicks,
		Modifiers: w.updateModifiers(event.Modifiers()),
	})
}

func (w *Widget) trackClick(x, y int) int {
	now := time.Now()
	w.mu.Lock()
	defer w.mu.Unlock()
	if now.Sub(w.lastClickTime) <= multiClickTime &&
		abs(x-w.lastClickX) <= multiClickSlop &&
		abs(y-w.lastClickY) <= multiClickSlop {
		w.lastClickCount++
	} else {
		w.lastClickCount = 1
	}
	w.lastClickTime = now
	w.lastClickX = x
	w.lastClickY = y
	return w.lastClickCount
}

func (w *Widget) mouseMoveEvent(event *qt.QMouseEvent) {
	w.updateModifiers(event.Modifiers())
	pos := event.Pos()
	w.queue(purfectview.MoveEvent{
		Pos: purfectview.PixelPoint{X: float64(pos.X()), Y: float64(pos.Y())},
	})
}

func (w *Widget) wheelEvent(event *qt.QWheelEvent) {
	w.updateModifiers(event.Modifiers())

	// Qt reports positive deltas for scrolling up. Pixel deltas come from
	// touchpads and pass through (the translator's accumulator inverts
	// them); angle deltas are in eighths of a degree with 120 per wheel
	// notch and are negated into scroll-down-positive line space.
	pixel := event.PixelDelta()
	if pixel.Y() != 0 {
		w.queue(purfectview.WheelEvent{
			Unit:  purfectview.WheelUnitPoint,
			Delta: purfectview.PixelPoint{Y: float64(pixel.Y())},
		})
		return
	}
	angle := event.AngleDelta()
	if angle.Y() != 0 {
		w.queue(purfectview.WheelEvent{
			Unit:  purfectview.WheelUnitLine,
			Delta: purfectview.PixelPoint{Y: -float64(angle.Y()) / 120},
		})
	}
}

func translateKey(key qt.Key) (purfectview.Key, bool) {
	switch key {
	case qt.Key_Return, qt.Key_Enter:
		return purfectview.KeyEnter, true
	case qt.Key_Escape:
		return purfectview.KeyEscape, true
	case qt.Key_Tab, qt.Key_Backtab:
		return purfectview.KeyTab, true
	case qt.Key_Backspace:
		return purfectview.KeyBackspace, true
	case qt.Key_Insert:
		return purfectview.KeyInsert, true
	case qt.Key_Delete:
		return purfectview.KeyDelete, true
	case qt.Key_Home:
		return purfectview.KeyHome, true
	case qt.Key_End:
		return purfectview.KeyEnd, true
	case qt.Key_PageUp:
		return purfectview.KeyPageUp, true
	case qt.Key_PageDown:
		return purfectview.KeyPageDown, true
	case qt.Key_Up:
		return purfectview.KeyArrowUp, true
	case qt.Key_Down:
		return purfectview.KeyArrowDown, true
	case qt.Key_Left:
		return purfectview.KeyArrowLeft, true
	case qt.Key_Right:
		return purfectview.KeyArrowRight, true
	case qt.Key_F1:
		return purfectview.KeyF1, true
	case qt.Key_F2:
		return purfectview.KeyF2, true
	case qt.Key_F3:
		return purfectview.KeyF3, true
	case qt.Key_F4:
		return purfectview.KeyF4, true
	case qt.Key_F5:
		return purfectview.KeyF5, true
	case qt.Key_F6:
		return purfectview.KeyF6, true
	case qt.Key_F7:
		return purfectview.KeyF7, true
	case qt.Key_F8:
		return purfectview.KeyF8, true
	case qt.Key_F9:
		return purfectview.KeyF9, true
	case qt.Key_F10:
		return purfectview.KeyF10, true
	case qt.Key_F11:
		return purfectview.KeyF11, true
	case qt.Key_F12:
		return purfectview.KeyF12, true
	}
	return purfectview.KeyNone, false
}

func isModifierKey(key qt.Key) bool {
	switch key {
	case qt.Key_Shift, qt.Key_Control, qt.Key_Alt, qt.Key_Meta,
		qt.Key_Super_L, qt.Key_Super_R,
		qt.Key_Hyper_L, qt.Key_Hyper_R,
		qt.Key_CapsLock, qt.Key_NumLock, qt.Key_ScrollLock,
		qt.Key_AltGr:
		return true
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// qtClipboard writes through the application clipboard.
type qtClipboard struct{}

func (qtClipboard) WriteText(text string) {
	qt.QGuiApplication_Clipboard().SetText(text)
}
