package purfectviewdemo

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/phroun/purfectview"
)

// processByte advances the escape-sequence state machine by one byte.
// Callers hold the lock.
func (b *Backend) processByte(by byte) {
	// UTF-8 continuation bytes finish a pending rune before anything else.
	if b.utf8Need > 0 {
		b.utf8Buf = append(b.utf8Buf, by)
		b.utf8Need--
		if b.utf8Need == 0 {
			r, _ := utf8.DecodeRune(b.utf8Buf)
			b.utf8Buf = b.utf8Buf[:0]
			if r != utf8.RuneError {
				b.putChar(r)
			}
		}
		return
	}

	switch b.pstate {
	case stateGround:
		b.handleGround(by)
	case stateEscape:
		b.handleEscape(by)
	case stateCSI:
		b.handleCSI(by)
	}
}

func (b *Backend) handleGround(by byte) {
	switch {
	case by == 0x1b:
		b.pstate = stateEscape
	case by == '\r':
		b.cursor.Column = 0
	case by == '\n':
		b.lineFeed()
	case by == '\b':
		if b.cursor.Column > 0 {
			b.cursor.Column--
		}
	case by == '\t':
		next := (b.cursor.Column/8 + 1) * 8
		if next >= b.cols {
			next = b.cols - 1
		}
		b.cursor.Column = next
	case by < 0x20:
		// Other control bytes are ignored.
	case by < 0x80:
		b.putChar(rune(by))
	default:
		// Start of a UTF-8 sequence.
		switch {
		case by&0xe0 == 0xc0:
			b.utf8Need = 1
		case by&0xf0 == 0xe0:
			b.utf8Need = 2
		case by&0xf8 == 0xf0:
			b.utf8Need = 3
		default:
			return
		}
		b.utf8Buf = append(b.utf8Buf[:0], by)
	}
}

func (b *Backend) handleEscape(by byte) {
	switch by {
	case '[':
		b.pstate = stateCSI
		b.csiBuf.Reset()
		b.csiPriv = false
	case 'c':
		b.resetState()
		b.pstate = stateGround
	default:
		b.pstate = stateGround
	}
}

func (b *Backend) handleCSI(by byte) {
	switch {
	case by == '?':
		b.csiPriv = true
	case by >= 0x30 && by <= 0x3f:
		b.csiBuf.WriteByte(by)
	case by >= 0x40 && by <= 0x7e:
		b.executeCSI(by)
		b.pstate = stateGround
	default:
		b.pstate = stateGround
	}
}

func (b *Backend) csiParams() []int {
	raw := b.csiBuf.String()
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	params := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			n = 0
		}
		params = append(params, n)
	}
	return params
}

func param(params []int, idx, def int) int {
	if idx >= len(params) || params[idx] == 0 {
		return def
	}
	return params[idx]
}

func (b *Backend) executeCSI(final byte) {
	params := b.csiParams()

	if b.csiPriv {
		switch final {
		case 'h':
			b.setPrivateModes(params, true)
		case 'l':
			b.setPrivateModes(params, false)
		}
		return
	}

	switch final {
	case 'A':
		b.cursor.Line -= param(params, 0, 1)
		if b.cursor.Line < 0 {
			b.cursor.Line = 0
		}
	case 'B':
		b.cursor.Line += param(params, 0, 1)
		if b.cursor.Line >= b.rows {
			b.cursor.Line = b.rows - 1
		}
	case 'C':
		b.cursor.Column += param(params, 0, 1)
		if b.cursor.Column >= b.cols {
			b.cursor.Column = b.cols - 1
		}
	case 'D':
		b.cursor.Column -= param(params, 0, 1)
		if b.cursor.Column < 0 {
			b.cursor.Column = 0
		}
	case 'H', 'f':
		b.cursor.Line = clamp(param(params, 0, 1)-1, 0, b.rows-1)
		b.cursor.Column = clamp(param(params, 1, 1)-1, 0, b.cols-1)
	case 'J':
		b.eraseDisplay(param(params, 0, 0))
	case 'K':
		b.eraseLine(param(params, 0, 0))
	case 'm':
		b.executeSGR(params)
	}
}

func (b *Backend) setPrivateModes(params []int, set bool) {
	for _, p := range params {
		switch p {
		case 1:
			b.mode.AppCursor = set
		case 1000, 1002:
			b.mode.MouseReport = set
			if p == 1002 {
				b.mode.MouseMotion = set
			}
		case 1007:
			b.mode.AlternateScroll = set
		case 1049:
			b.mode.AltScreen = set
			b.screen = makeScreen(b.cols, b.rows)
			b.cursor = purfectview.GridPoint{}
		case 2004:
			b.mode.BracketedPaste = set
		}
	}
}

func (b *Backend) executeSGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			b.current = defaultPen()
		case p == 1:
			b.current.flags |= purfectview.FlagBold
		case p == 2:
			b.current.flags |= purfectview.FlagDim
		case p == 3:
			b.current.flags |= purfectview.FlagItalic
		case p == 7:
			b.current.flags |= purfectview.FlagInverse
		case p == 22:
			b.current.flags &^= purfectview.FlagBold | purfectview.FlagDim
		case p == 23:
			b.current.flags &^= purfectview.FlagItalic
		case p == 27:
			b.current.flags &^= purfectview.FlagInverse
		case p >= 30 && p <= 37:
			b.current.fg = purfectview.StandardColor(p - 30)
		case p == 38:
			if spec, skip, ok := extendedColor(params[i+1:]); ok {
				b.current.fg = spec
				i += skip
			}
		case p == 39:
			b.current.fg = purfectview.ColorSpec{Kind: purfectview.ColorDefaultFG}
		case p >= 40 && p <= 47:
			b.current.bg = purfectview.StandardColor(p - 40)
		case p == 48:
			if spec, skip, ok := extendedColor(params[i+1:]); ok {
				b.current.bg = spec
				i += skip
			}
		case p == 49:
			b.current.bg = purfectview.ColorSpec{Kind: purfectview.ColorDefaultBG}
		case p >= 90 && p <= 97:
			b.current.fg = purfectview.StandardColor(p - 90 + 8)
		case p >= 100 && p <= 107:
			b.current.bg = purfectview.StandardColor(p - 100 + 8)
		}
	}
}

// extendedColor parses the tail of a 38/48 sequence: 5;n or 2;r;g;b.
func extendedColor(rest []int) (purfectview.ColorSpec, int, bool) {
	if len(rest) >= 2 && rest[0] == 5 {
		return purfectview.PaletteColor(rest[1]), 2, true
	}
	if len(rest) >= 4 && rest[0] == 2 {
		return purfectview.TrueColor(uint8(rest[1]), uint8(rest[2]), uint8(rest[3])), 4, true
	}
	return purfectview.ColorSpec{}, 0, false
}

func (b *Backend) eraseDisplay(mode int) {
	switch mode {
	case 0:
		b.eraseLine(0)
		for y := b.cursor.Line + 1; y < b.rows; y++ {
			b.screen[y] = make([]cell, b.cols)
		}
	case 1:
		b.eraseLine(1)
		for y := 0; y < b.cursor.Line; y++ {
			b.screen[y] = make([]cell, b.cols)
		}
	case 2, 3:
		b.screen = makeScreen(b.cols, b.rows)
	}
}

func (b *Backend) eraseLine(mode int) {
	if b.cursor.Line < 0 || b.cursor.Line >= b.rows {
		return
	}
	line := b.screen[b.cursor.Line]
	switch mode {
	case 0:
		for x := b.cursor.Column; x < b.cols; x++ {
			line[x] = cell{}
		}
	case 1:
		for x := 0; x <= b.cursor.Column && x < b.cols; x++ {
			line[x] = cell{}
		}
	case 2:
		b.screen[b.cursor.Line] = make([]cell, b.cols)
	}
}

func (b *Backend) putChar(r rune) {
	wide := runewidth.RuneWidth(r) == 2
	if b.cursor.Column >= b.cols || (wide && b.cursor.Column >= b.cols-1) {
		b.cursor.Column = 0
		b.lineFeed()
	}

	flags := b.current.flags
	if wide {
		flags |= purfectview.FlagWideChar
	}
	b.screen[b.cursor.Line][b.cursor.Column] = cell{
		ch:    r,
		flags: flags,
		fg:    b.current.fg,
		bg:    b.current.bg,
	}
	b.cursor.Column++
	if wide && b.cursor.Column < b.cols {
		b.screen[b.cursor.Line][b.cursor.Column] = cell{
			ch:    ' ',
			flags: b.current.flags | purfectview.FlagWideCharSpacer,
			fg:    b.current.fg,
			bg:    b.current.bg,
		}
		b.cursor.Column++
	}
}

// lineFeed moves the cursor down, scrolling the top line into scrollback
// when the cursor is already on the bottom row.
func (b *Backend) lineFeed() {
	if b.cursor.Line < b.rows-1 {
		b.cursor.Line++
		return
	}
	if b.maxBack > 0 && !b.mode.AltScreen {
		b.back = append(b.back, b.screen[0])
		if len(b.back) > b.maxBack {
			b.back = b.back[1:]
		}
	}
	copy(b.screen, b.screen[1:])
	b.screen[b.rows-1] = make([]cell, b.cols)
}

func (b *Backend) resetState() {
	b.screen = makeScreen(b.cols, b.rows)
	b.back = nil
	b.cursor = purfectview.GridPoint{}
	b.current = defaultPen()
	b.mode = purfectview.TermMode{}
	b.displayOffset = 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
