// Package purfectviewgtk embeds the purfectview terminal widget in GTK 3.
//
// The widget translates GDK input events into core events, queues them, and
// replays the queue through one core frame inside the draw callback. The
// resulting primitive batch is painted with cairo.
package purfectviewgtk

import (
	"math"
	"sync"

	"github.com/gotk3/gotk3/cairo"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"

	"github.com/phroun/purfectview"
)

// Multi-click detection window and slop, in GDK event time units (ms) and
// pixels.
const (
	multiClickTime = 400
	multiClickSlop = 4.0
)

// Options configures widget creation.
type Options struct {
	FontFamily string  // default "Monospace"
	FontSize   float64 // default 14
	Theme      *purfectview.Theme
}

// Widget hosts one terminal view inside a GTK drawing area.
type Widget struct {
	mu sync.Mutex

	area    *gtk.DrawingArea
	backend purfectview.Backend
	view    *purfectview.View
	store   *purfectview.StateStore
	font    purfectview.Font

	pending       []purfectview.Event
	modifiers     purfectview.Modifiers
	hasFocus      bool
	pointerInside bool

	// Manual multi-click tracking; GDK's synthetic 2BUTTON_PRESS events
	// are not exposed uniformly across platforms.
	lastClickTime   uint32
	lastClickX      float64
	lastClickY      float64
	lastClickCount  int
	metricsMeasured bool
}

// NewWidget creates a terminal widget over a backend. The caller packs the
// returned drawing area into its layout and keeps the backend alive for the
// widget's lifetime.
func NewWidget(backend purfectview.Backend, opts Options) (*Widget, error) {
	if opts.FontFamily == "" {
		opts.FontFamily = "Monospace"
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 14
	}
	if opts.Theme == nil {
		opts.Theme = purfectview.DefaultTheme()
	}

	area, err := gtk.DrawingAreaNew()
	if err != nil {
		return nil, err
	}

	store := purfectview.NewStateStore()
	w := &Widget{
		area:    area,
		backend: backend,
		store:   store,
		font:    purfectview.Font{Family: opts.FontFamily, Size: opts.FontSize},
	}
	w.view = purfectview.NewView(backend, store).
		SetTheme(opts.Theme).
		SetClipboard(gtkClipboard{})

	area.SetCanFocus(true)
	area.AddEvents(int(gdk.BUTTON_PRESS_MASK | gdk.BUTTON_RELEASE_MASK |
		gdk.POINTER_MOTION_MASK | gdk.SCROLL_MASK | gdk.SMOOTH_SCROLL_MASK |
		gdk.KEY_PRESS_MASK | gdk.ENTER_NOTIFY_MASK | gdk.LEAVE_NOTIFY_MASK |
		gdk.FOCUS_CHANGE_MASK))

	area.Connect("draw", w.onDraw)
	area.Connect("key-press-event", w.onKeyPress)
	area.Connect("button-press-event", w.onButtonPress)
	area.Connect("button-release-event", w.onButtonRelease)
	area.Connect("motion-notify-event", w.onMotionNotify)
	area.Connect("scroll-event", w.onScroll)
	area.Connect("enter-notify-event", w.onEnterNotify)
	area.Connect("leave-notify-event", w.onLeaveNotify)
	area.Connect("focus-in-event", w.onFocusIn)
	area.Connect("focus-out-event", w.onFocusOut)

	return w, nil
}

// Area returns the GTK drawing area to pack into a container.
func (w *Widget) Area() *gtk.DrawingArea {
	return w.area
}

// AddBindings prepends caller bindings ahead of the default layout.
func (w *Widget) AddBindings(entries []purfectview.BindingEntry) {
	w.view.AddBindings(entries)
}

// queue appends an event and schedules a redraw so the next frame picks it
// up.
func (w *Widget) queue(ev purfectview.Event) {
	w.mu.Lock()
	w.pending = append(w.pending, ev)
	w.mu.Unlock()
	w.area.QueueDraw()
}

func (w *Widget) onDraw(da *gtk.DrawingArea, cr *cairo.Context) bool {
	w.measureFont(cr)

	w.mu.Lock()
	events := w.pending
	w.pending = nil
	mods := w.modifiers
	focus := w.hasFocus
	inside := w.pointerInside
	w.mu.Unlock()

	size := purfectview.Size{
		Width:  float64(da.GetAllocatedWidth()),
		Height: float64(da.GetAllocatedHeight()),
	}

	batch := w.view.
		SetFont(w.font).
		SetSize(size).
		SetFocus(focus).
		Frame(events, mods, inside)

	for _, prim := range batch {
		paintPrimitive(cr, prim, w.font)
	}
	return true
}

// measureFont fills the font's cell box from cairo's scaled font metrics.
// Measured once per font; the line height follows the usual 1.2x ratio
// since cairo's toy text API does not expose font extents.
func (w *Widget) measureFont(cr *cairo.Context) {
	if w.metricsMeasured {
		return
	}
	cr.SelectFontFace(w.font.Family, cairo.FONT_SLANT_NORMAL, cairo.FONT_WEIGHT_NORMAL)
	cr.SetFontSize(w.font.Size)
	ext := cr.TextExtents("M")
	w.font.Width = math.Ceil(ext.XAdvance)
	w.font.Height = math.Ceil(w.font.Size * 1.2)
	w.metricsMeasured = true
}

func paintPrimitive(cr *cairo.Context, prim purfectview.Primitive, font purfectview.Font) {
	switch p := prim.(type) {
	case purfectview.RectPrimitive:
		setColor(cr, p.Color)
		cr.Rectangle(p.X, p.Y, p.Width, p.Height)
		cr.Fill()
	case purfectview.LinePrimitive:
		setColor(cr, p.Color)
		cr.SetLineWidth(p.StrokeWidth)
		cr.MoveTo(p.X1, p.Y1)
		cr.LineTo(p.X2, p.Y2)
		cr.Stroke()
	case purfectview.GlyphPrimitive:
		slant := cairo.FONT_SLANT_NORMAL
		if p.Italic {
			slant = cairo.FONT_SLANT_ITALIC
		}
		weight := cairo.FONT_WEIGHT_NORMAL
		if p.Bold {
			weight = cairo.FONT_WEIGHT_BOLD
		}
		cr.SelectFontFace(font.Family, slant, weight)
		cr.SetFontSize(font.Size)
		setColor(cr, p.Color)

		text := string(p.Char)
		ext := cr.TextExtents(text)
		// Baseline sits roughly at the font size below the cell top.
		cr.MoveTo(p.X-ext.XAdvance/2, p.Y+font.Size)
		cr.ShowText(text)
	}
}

func setColor(cr *cairo.Context, c purfectview.RGBA) {
	cr.SetSourceRGBA(
		float64(c.R)/255.0,
		float64(c.G)/255.0,
		float64(c.B)/255.0,
		float64(c.A)/255.0,
	)
}

func (w *Widget) onKeyPress(da *gtk.DrawingArea, ev *gdk.Event) bool {
	key := gdk.EventKeyNewFromEvent(ev)
	keyval := key.KeyVal()
	mods := translateState(key.State())

	w.mu.Lock()
	w.modifiers = mods
	w.mu.Unlock()

	if isModifierKeyval(keyval) {
		return false
	}

	// Clipboard shortcuts first: Ctrl+Shift+C/X/V follow the usual
	// terminal-emulator convention.
	if mods.Ctrl && mods.Shift {
		switch keyval {
		case gdk.KEY_C, gdk.KEY_c:
			w.queue(purfectview.CopyEvent{})
			return true
		case gdk.KEY_X, gdk.KEY_x:
			w.queue(purfectview.CutEvent{})
			return true
		case gdk.KEY_V, gdk.KEY_v:
			if text := readClipboard(); text != "" {
				w.queue(purfectview.PasteEvent{Text: text})
			}
			return true
		}
	}

	if named, ok := translateKeyval(keyval); ok {
		w.queue(purfectview.KeyEvent{Key: named, Pressed: true, Modifiers: mods})
		return true
	}

	if r := gdk.KeyvalToUnicode(keyval); r != 0 {
		if mods.Ctrl || mods.Command || mods.Alt {
			// Modified printable keys go through the binding table as
			// named keys when possible.
			if named, ok := purfectview.KeyFromName(string(unicodeLower(r))); ok {
				w.queue(purfectview.KeyEvent{Key: named, Pressed: true, Modifiers: mods})
				return true
			}
		}
		w.queue(purfectview.TextEvent{Text: string(r)})
		return true
	}
	return false
}

func (w *Widget) onButtonPress(da *gtk.DrawingArea, ev *gdk.Event) bool {
	btn := gdk.EventButtonNewFromEvent(ev)
	if btn.Button() != 1 {
		return false
	}
	w.area.GrabFocus()

	mods := translateState(btn.State())
	x, y := btn.X(), btn.Y()
	clicks := w.trackClick(btn.Time(), x, y)

	w.queue(purfectview.ButtonEvent{
		Button:    purfectview.ButtonPrimary,
		Pressed:   true,
		Pos:       purfectview.PixelPoint{X: x, Y: y},
		Clicks:    clicks,
		Modifiers: mods,
	})
	return true
}

func (w *Widget) onButtonRelease(da *gtk.DrawingArea, ev *gdk.Event) bool {
	btn := gdk.EventButtonNewFromEvent(ev)
	if btn.Button() != 1 {
		return false
	}

	w.mu.Lock()
	clicks := w.lastClickCount
	w.mu.Unlock()

	w.queue(purfectview.ButtonEvent{
		Button:    purfectview.ButtonPrimary,
		Pressed:   false,
		Pos:       purfectview.PixelPoint{X: btn.X(), Y: btn.Y()},
		Clicks:    clicks,
		Modifiers: translateState(btn.State()),
	})
	return true
}

// trackClick counts consecutive clicks within the multi-click window.
func (w *Widget) trackClick(t uint32, x, y float64) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t-w.lastClickTime <= multiClickTime &&
		math.Abs(x-w.lastClickX) <= multiClickSlop &&
		math.Abs(y-w.lastClickY) <= multiClickSlop {
		w.lastClickCount++
	} else {
		w.lastClickCount = 1
	}
	w.lastClickTime = t
	w.lastClickX = x
	w.lastClickY = y
	return w.lastClickCount
}

func (w *Widget) onMotionNotify(da *gtk.DrawingArea, ev *gdk.Event) bool {
	motion := gdk.EventMotionNewFromEvent(ev)
	x, y := motion.MotionVal()

	w.mu.Lock()
	w.modifiers = translateState(motion.State())
	w.mu.Unlock()

	w.queue(purfectview.MoveEvent{Pos: purfectview.PixelPoint{X: x, Y: y}})
	return true
}

func (w *Widget) onScroll(da *gtk.DrawingArea, ev *gdk.Event) bool {
	scroll := gdk.EventScrollNewFromEvent(ev)

	// GDK's positive Y means "scroll down". Point deltas want the opposite
	// sign (the translator's accumulator inverts them back), line deltas
	// are already in scroll-down-positive space.
	switch scroll.Direction() {
	case gdk.SCROLL_SMOOTH:
		w.queue(purfectview.WheelEvent{
			Unit:  purfectview.WheelUnitPoint,
			Delta: purfectview.PixelPoint{Y: -scroll.DeltaY() * w.font.Size},
		})
	case gdk.SCROLL_UP:
		w.queue(purfectview.WheelEvent{
			Unit:  purfectview.WheelUnitLine,
			Delta: purfectview.PixelPoint{Y: -1},
		})
	case gdk.SCROLL_DOWN:
		w.queue(purfectview.WheelEvent{
			Unit:  purfectview.WheelUnitLine,
			Delta: purfectview.PixelPoint{Y: 1},
		})
	}
	return true
}

func (w *Widget) onEnterNotify(da *gtk.DrawingArea, ev *gdk.Event) bool {
	w.mu.Lock()
	w.pointerInside = true
	w.mu.Unlock()
	return false
}

func (w *Widget) onLeaveNotify(da *gtk.DrawingArea, ev *gdk.Event) bool {
	w.mu.Lock()
	w.pointerInside = false
	w.mu.Unlock()
	return false
}

func (w *Widget) onFocusIn(da *gtk.DrawingArea, ev *gdk.Event) bool {
	w.mu.Lock()
	w.hasFocus = true
	w.mu.Unlock()
	w.area.QueueDraw()
	return false
}

func (w *Widget) onFocusOut(da *gtk.DrawingArea, ev *gdk.Event) bool {
	w.mu.Lock()
	w.hasFocus = false
	w.mu.Unlock()
	w.area.QueueDraw()
	return false
}

// translateState maps a GDK modifier bitmask to core modifiers. Command is
// the Super/Meta key; the core treats Ctrl as an equivalent primary
// modifier where that matters.
func translateState(state uint) purfectview.Modifiers {
	return purfectview.Modifiers{
		Shift:   state&uint(gdk.SHIFT_MASK) != 0,
		Ctrl:    state&uint(gdk.CONTROL_MASK) != 0,
		Alt:     state&uint(gdk.MOD1_MASK) != 0,
		Command: state&uint(gdk.SUPER_MASK) != 0 || state&uint(gdk.META_MASK) != 0,
	}
}

// translateKeyval maps GDK keyvals for named keys.
func translateKeyval(keyval uint) (purfectview.Key, bool) {
	switch keyval {
	case gdk.KEY_Return, gdk.KEY_KP_Enter:
		return purfectview.KeyEnter, true
	case gdk.KEY_Escape:
		return purfectview.KeyEscape, true
	case gdk.KEY_Tab:
		return purfectview.KeyTab, true
	case gdk.KEY_BackSpace:
		return purfectview.KeyBackspace, true
	case gdk.KEY_Insert:
		return purfectview.KeyInsert, true
	case gdk.KEY_Delete:
		return purfectview.KeyDelete, true
	case gdk.KEY_Home:
		return purfectview.KeyHome, true
	case gdk.KEY_End:
		return purfectview.KeyEnd, true
	case gdk.KEY_Page_Up:
		return purfectview.KeyPageUp, true
	case gdk.KEY_Page_Down:
		return purfectview.KeyPageDown, true
	case gdk.KEY_Up:
		return purfectview.KeyArrowUp, true
	case gdk.KEY_Down:
		return purfectview.KeyArrowDown, true
	case gdk.KEY_Left:
		return purfectview.KeyArrowLeft, true
	case gdk.KEY_Right:
		return purfectview.KeyArrowRight, true
	case gdk.KEY_F1:
		return purfectview.KeyF1, true
	case gdk.KEY_F2:
		return purfectview.KeyF2, true
	case gdk.KEY_F3:
		return purfectview.KeyF3, true
	case gdk.KEY_F4:
		return purfectview.KeyF4, true
	case gdk.KEY_F5:
		return purfectview.KeyF5, true
	case gdk.KEY_F6:
		return purfectview.KeyF6, true
	case gdk.KEY_F7:
		return purfectview.KeyF7, true
	case gdk.KEY_F8:
		return purfectview.KeyF8, true
	case gdk.KEY_F9:
		return purfectview.KeyF9, true
	case gdk.KEY_F10:
		return purfectview.KeyF10, true
	case gdk.KEY_F11:
		return purfectview.KeyF11, true
	case gdk.KEY_F12:
		return purfectview.KeyF12, true
	}
	return purfectview.KeyNone, false
}

// isModifierKeyval reports keyvals that never produce terminal input on
// their own.
func isModifierKeyval(keyval uint) bool {
	switch keyval {
	case gdk.KEY_Shift_L, gdk.KEY_Shift_R,
		gdk.KEY_Control_L, gdk.KEY_Control_R,
		gdk.KEY_Alt_L, gdk.KEY_Alt_R,
		gdk.KEY_Super_L, gdk.KEY_Super_R,
		gdk.KEY_Meta_L, gdk.KEY_Meta_R,
		gdk.KEY_Caps_Lock, gdk.KEY_Num_Lock:
		return true
	}
	return false
}

func unicodeLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// gtkClipboard writes through the GTK clipboard.
type gtkClipboard struct{}

func (gtkClipboard) WriteText(text string) {
	clip, err := gtk.ClipboardGet(gdk.SELECTION_CLIPBOARD)
	if err != nil {
		return
	}
	clip.SetText(text)
}

func readClipboard() string {
	clip, err := gtk.ClipboardGet(gdk.SELECTION_CLIPBOARD)
	if err != nil {
		return ""
	}
	text, err := clip.WaitForText()
	if err != nil {
		return ""
	}
	return text
}
