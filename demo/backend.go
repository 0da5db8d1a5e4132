// Package purfectviewdemo provides a self-contained in-process backend for
// the example programs. It keeps a small grid with scrollback, parses a
// useful subset of ANSI escape sequences, and implements selection, search
// and hyperlink hovering over that grid.
//
// It is not a full terminal emulator; applications embedding the widget are
// expected to bring their own backend over a real terminal state machine.
package purfectviewdemo

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/phroun/purfectview"
)

// Characters that end a word for semantic (double-click) selection.
const wordSeparators = " \t\"'`()[]{}<>,;:|"

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// cell is one stored grid cell.
type cell struct {
	ch    rune
	flags purfectview.CellFlags
	fg    purfectview.ColorSpec
	bg    purfectview.ColorSpec
}

// pen is the current write attributes, updated by SGR sequences.
type pen struct {
	flags purfectview.CellFlags
	fg    purfectview.ColorSpec
	bg    purfectview.ColorSpec
}

func defaultPen() pen {
	return pen{
		fg: purfectview.ColorSpec{Kind: purfectview.ColorDefaultFG},
		bg: purfectview.ColorSpec{Kind: purfectview.ColorDefaultBG},
	}
}

type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateCSI
)

// Backend is an in-memory terminal grid implementing the widget's backend
// contract. All methods are safe for concurrent use.
type Backend struct {
	mu sync.Mutex

	id      uint64
	cols    int
	rows    int
	screen  [][]cell
	back    [][]cell // scrollback, oldest first
	maxBack int

	cursor      purfectview.GridPoint
	current     pen
	mode        purfectview.TermMode
	lastMetrics purfectview.CellMetrics

	displayOffset int

	selStart  *purfectview.GridPoint
	selEnd    *purfectview.GridPoint
	selKind   purfectview.SelectionKind
	hoverLink *purfectview.PointRange

	searchQuery   string
	searchActive  bool
	searchMatches []absRange
	searchFocused int // index into searchMatches, -1 when unset

	// state machine
	pstate   parserState
	csiBuf   strings.Builder
	csiPriv  bool
	utf8Buf  []byte
	utf8Need int

	last *purfectview.Content

	// output receives terminal-bound bytes from WriteCommand and mouse
	// reports; nil discards them.
	output io.Writer
	logger *log.Logger

	// OpenLink is called when a hovered hyperlink is activated.
	OpenLink func(url string)
}

// absRange is a match range in absolute line coordinates, where line 0 is
// the oldest scrollback line.
type absRange struct {
	startLine, startCol int
	endLine, endCol     int
}

var nextID uint64

// New creates a backend with the given visible grid size and scrollback
// limit.
func New(cols, rows, scrollback int) *Backend {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	nextID++
	b := &Backend{
		id:            nextID,
		cols:          cols,
		rows:          rows,
		maxBack:       scrollback,
		current:       defaultPen(),
		searchFocused: -1,
		logger:        log.New(io.Discard),
	}
	b.screen = makeScreen(cols, rows)
	return b
}

// SetOutput directs terminal-bound bytes (keyboard writes, mouse reports)
// to w.
func (b *Backend) SetOutput(w io.Writer) {
	b.mu.Lock()
	b.output = w
	b.mu.Unlock()
}

// SetLogger replaces the discard logger for diagnostics.
func (b *Backend) SetLogger(logger *log.Logger) {
	b.mu.Lock()
	b.logger = logger
	b.mu.Unlock()
}

func makeScreen(cols, rows int) [][]cell {
	s := make([][]cell, rows)
	for i := range s {
		s[i] = make([]cell, cols)
	}
	return s
}

// ID identifies this backend instance for per-view state keying.
func (b *Backend) ID() string {
	return fmt.Sprintf("demo-%d", b.id)
}

// Feed parses program output into the grid.
func (b *Backend) Feed(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, by := range data {
		b.processByte(by)
	}
	b.refreshSearchLocked()
}

// FeedString parses program output into the grid.
func (b *Backend) FeedString(data string) {
	b.Feed([]byte(data))
}

// LastContent returns the most recent snapshot without recomputing it.
func (b *Backend) LastContent() *purfectview.Content {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last == nil {
		b.last = b.snapshotLocked()
	}
	return b.last
}

// Sync recomputes and returns a fresh snapshot.
func (b *Backend) Sync() *purfectview.Content {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = b.snapshotLocked()
	return b.last
}

// ProcessCommand applies one widget command to the grid.
func (b *Backend) ProcessCommand(cmd purfectview.Command) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch c := cmd.(type) {
	case purfectview.WriteCommand:
		if b.output != nil {
			b.output.Write(c.Data)
		}
		// Local echo keeps the demo interactive without a PTY.
		for _, by := range c.Data {
			if by == '\r' {
				b.processByte('\r')
				b.processByte('\n')
			} else {
				b.processByte(by)
			}
		}
		b.displayOffset = 0
	case purfectview.ResizeCommand:
		b.resizeLocked(c.Size, c.Metrics)
	case purfectview.ScrollCommand:
		b.scrollLocked(c.Lines)
	case purfectview.MouseReportCommand:
		b.reportMouseLocked(c)
	case purfectview.SelectStartCommand:
		b.startSelectionLocked(c)
	case purfectview.SelectUpdateCommand:
		b.updateSelectionLocked(c.X, c.Y)
	case purfectview.ProcessLinkCommand:
		b.processLinkLocked(c)
	}
	b.refreshSearchLocked()
}

func (b *Backend) resizeLocked(size purfectview.Size, m purfectview.CellMetrics) {
	if m.CellWidth <= 0 || m.CellHeight <= 0 {
		return
	}
	cols := int(size.Width / m.CellWidth)
	rows := int(size.Height / m.CellHeight)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	b.lastMetrics = m
	if cols == b.cols && rows == b.rows {
		return
	}

	old := b.screen
	b.screen = makeScreen(cols, rows)
	for y := 0; y < rows && y < len(old); y++ {
		copy(b.screen[y], old[y])
	}
	b.cols = cols
	b.rows = rows
	if b.cursor.Column >= cols {
		b.cursor.Column = cols - 1
	}
	if b.cursor.Line >= rows {
		b.cursor.Line = rows - 1
	}
	b.clearSelectionLocked()
}

// scrollLocked moves the view, positive lines toward the live screen and
// negative lines back into history.
func (b *Backend) scrollLocked(lines int) {
	b.displayOffset -= lines
	if b.displayOffset < 0 {
		b.displayOffset = 0
	}
	if b.displayOffset > len(b.back) {
		b.displayOffset = len(b.back)
	}
}

// reportMouseLocked encodes an SGR mouse report for the program side.
func (b *Backend) reportMouseLocked(c purfectview.MouseReportCommand) {
	if b.output == nil {
		return
	}
	code := 0
	switch c.Button {
	case purfectview.MouseLeft:
		code = 0
	case purfectview.MouseMiddle:
		code = 1
	case purfectview.MouseRight:
		code = 2
	case purfectview.MouseLeftMove:
		code = 32
	case purfectview.MouseScrollUp:
		code = 64
	case purfectview.MouseScrollDown:
		code = 65
	}
	if c.Modifiers.Shift {
		code += 4
	}
	if c.Modifiers.Alt {
		code += 8
	}
	if c.Modifiers.Ctrl {
		code += 16
	}
	suffix := byte('M')
	if !c.Pressed {
		suffix = 'm'
	}
	fmt.Fprintf(b.output, "\x1b[<%d;%d;%d%c", code, c.Point.Column+1, c.Point.Line+1, suffix)
}

// --- selection ---

func (b *Backend) clearSelectionLocked() {
	b.selStart = nil
	b.selEnd = nil
}

func (b *Backend) startSelectionLocked(c purfectview.SelectStartCommand) {
	p := b.clampPointLocked(c.X, c.Y)
	b.selKind = c.Kind
	b.selStart = &p
	end := p
	b.selEnd = &end
}

func (b *Backend) updateSelectionLocked(x, y float64) {
	if b.selStart == nil {
		return
	}
	p := b.clampPointLocked(x, y)
	b.selEnd = &p
}

func (b *Backend) clampPointLocked(x, y float64) purfectview.GridPoint {
	m := b.metricsLocked()
	return b.clampGridLocked(purfectview.ToGridPoint(x, y, m, b.displayOffset))
}

func (b *Backend) clampGridLocked(p purfectview.GridPoint) purfectview.GridPoint {
	if p.Column < 0 {
		p.Column = 0
	}
	if p.Column >= b.cols {
		p.Column = b.cols - 1
	}
	low := -len(b.back)
	if p.Line < low {
		p.Line = low
	}
	if p.Line >= b.rows {
		p.Line = b.rows - 1
	}
	return p
}

func (b *Backend) metricsLocked() purfectview.CellMetrics {
	// The widget resizes us from pixel geometry; for grid conversion the
	// exact cell box is supplied with every resize, so a unit box is only
	// a bootstrap fallback.
	if b.lastMetrics.CellWidth > 0 {
		return b.lastMetrics
	}
	return purfectview.CellMetrics{CellWidth: 1, CellHeight: 1}
}

// selectionRangeLocked expands the raw anchor pair per the selection kind.
func (b *Backend) selectionRangeLocked() *purfectview.PointRange {
	if b.selStart == nil || b.selEnd == nil {
		return nil
	}
	start, end := *b.selStart, *b.selEnd
	if start.Cmp(end) > 0 {
		start, end = end, start
	}
	switch b.selKind {
	case purfectview.SelectLines:
		start.Column = 0
		end.Column = b.cols - 1
	case purfectview.SelectSemantic:
		start.Column = b.wordStartLocked(start)
		end.Column = b.wordEndLocked(end)
	}
	return &purfectview.PointRange{Start: start, End: end}
}

func (b *Backend) wordStartLocked(p purfectview.GridPoint) int {
	line := b.lineLocked(p.Line)
	if line == nil {
		return p.Column
	}
	col := p.Column
	for col > 0 && !isSeparator(line[col-1].ch) {
		col--
	}
	return col
}

func (b *Backend) wordEndLocked(p purfectview.GridPoint) int {
	line := b.lineLocked(p.Line)
	if line == nil {
		return p.Column
	}
	col := p.Column
	for col+1 < b.cols && !isSeparator(line[col+1].ch) {
		col++
	}
	return col
}

func isSeparator(r rune) bool {
	return r == 0 || unicode.IsSpace(r) || strings.ContainsRune(wordSeparators, r)
}

// lineLocked resolves a grid line (negative means scrollback) to storage.
func (b *Backend) lineLocked(line int) []cell {
	if line >= 0 {
		if line >= b.rows {
			return nil
		}
		return b.screen[line]
	}
	idx := len(b.back) + line
	if idx < 0 {
		return nil
	}
	return b.back[idx]
}

// SelectionText returns the text covered by the current selection.
func (b *Backend) SelectionText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := b.selectionRangeLocked()
	if r == nil {
		return ""
	}
	var sb strings.Builder
	for line := r.Start.Line; line <= r.End.Line; line++ {
		cells := b.lineLocked(line)
		if cells == nil {
			continue
		}
		first, last := 0, b.cols-1
		if line == r.Start.Line {
			first = r.Start.Column
		}
		if line == r.End.Line {
			last = r.End.Column
		}
		text := lineText(cells, first, last)
		sb.WriteString(strings.TrimRight(text, " "))
		if line < r.End.Line {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func lineText(cells []cell, first, last int) string {
	var sb strings.Builder
	for col := first; col <= last && col < len(cells); col++ {
		ch := cells[col].ch
		if ch == 0 {
			ch = ' '
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

// --- hyperlinks ---

func (b *Backend) processLinkLocked(c purfectview.ProcessLinkCommand) {
	r, url := b.findLinkLocked(c.Point)
	switch c.Action {
	case purfectview.LinkHover:
		b.hoverLink = r
	case purfectview.LinkOpen:
		if url != "" {
			b.logger.Info("open hyperlink", "url", url)
			if b.OpenLink != nil {
				b.OpenLink(url)
			}
		}
	}
}

// findLinkLocked scans the line under the point for a URL covering it.
func (b *Backend) findLinkLocked(p purfectview.GridPoint) (*purfectview.PointRange, string) {
	cells := b.lineLocked(p.Line)
	if cells == nil || p.Column < 0 || p.Column >= len(cells) {
		return nil, ""
	}
	text := lineText(cells, 0, len(cells)-1)
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]-1
		if p.Column >= start && p.Column <= end {
			return &purfectview.PointRange{
				Start: purfectview.GridPoint{Line: p.Line, Column: start},
				End:   purfectview.GridPoint{Line: p.Line, Column: end},
			}, strings.TrimRight(text[start:loc[1]], " ")
		}
	}
	return nil, ""
}

// --- search ---

// SearchSetQuery updates the query and recomputes matches.
func (b *Backend) SearchSetQuery(query string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.searchQuery = query
	b.searchFocused = -1
	b.refreshSearchLocked()
}

// SearchSetActive turns match tracking on or off.
func (b *Backend) SearchSetActive(active bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.searchActive = active
	if !active {
		b.searchQuery = ""
		b.searchMatches = nil
		b.searchFocused = -1
	}
}

// SearchActive reports whether match tracking is on.
func (b *Backend) SearchActive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.searchActive
}

// SearchNext advances the focused match and returns its start point.
func (b *Backend) SearchNext() (purfectview.GridPoint, bool) {
	return b.stepSearch(1)
}

// SearchPrev moves the focused match backwards and returns its start point.
func (b *Backend) SearchPrev() (purfectview.GridPoint, bool) {
	return b.stepSearch(-1)
}

func (b *Backend) stepSearch(dir int) (purfectview.GridPoint, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.searchMatches) == 0 {
		return purfectview.GridPoint{}, false
	}
	if b.searchFocused < 0 {
		if dir > 0 {
			b.searchFocused = 0
		} else {
			b.searchFocused = len(b.searchMatches) - 1
		}
	} else {
		n := len(b.searchMatches)
		b.searchFocused = (b.searchFocused + dir + n) % n
	}
	m := b.searchMatches[b.searchFocused]
	return purfectview.GridPoint{
		Line:   m.startLine - len(b.back),
		Column: m.startCol,
	}, true
}

// ScrollToPoint adjusts the display offset until the point is visible.
func (b *Backend) ScrollToPoint(p purfectview.GridPoint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p.Line < -b.displayOffset {
		b.displayOffset = -p.Line
	} else if p.Line >= b.rows-b.displayOffset {
		b.displayOffset = b.rows - 1 - p.Line
	}
	if b.displayOffset < 0 {
		b.displayOffset = 0
	}
	if b.displayOffset > len(b.back) {
		b.displayOffset = len(b.back)
	}
}

// SelectableContent returns the selected text, or the whole visible screen
// when nothing is selected.
func (b *Backend) SelectableContent() string {
	if text := b.SelectionText(); text != "" {
		return text
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var sb strings.Builder
	for y := 0; y < b.rows; y++ {
		sb.WriteString(strings.TrimRight(lineText(b.screen[y], 0, b.cols-1), " "))
		if y < b.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// SelectionPoint converts pixel coordinates to a grid position, clamped to
// the grid including scrollback.
func (b *Backend) SelectionPoint(x, y float64, metrics purfectview.CellMetrics, displayOffset int) purfectview.GridPoint {
	b.mu.Lock()
	defer b.mu.Unlock()
	if metrics.CellWidth <= 0 || metrics.CellHeight <= 0 {
		metrics = b.metricsLocked()
	}
	return b.clampGridLocked(purfectview.ToGridPoint(x, y, metrics, displayOffset))
}

// refreshSearchLocked recomputes matches over scrollback plus screen.
func (b *Backend) refreshSearchLocked() {
	b.searchMatches = b.searchMatches[:0]
	if !b.searchActive || b.searchQuery == "" {
		b.searchFocused = -1
		return
	}
	query := strings.ToLower(b.searchQuery)
	total := len(b.back) + b.rows
	for abs := 0; abs < total; abs++ {
		line := b.lineLocked(abs - len(b.back))
		text := strings.ToLower(lineText(line, 0, len(line)-1))
		from := 0
		for {
			idx := strings.Index(text[from:], query)
			if idx < 0 {
				break
			}
			start := from + idx
			b.searchMatches = append(b.searchMatches, absRange{
				startLine: abs,
				startCol:  start,
				endLine:   abs,
				endCol:    start + len(query) - 1,
			})
			from = start + len(query)
		}
	}
	if b.searchFocused >= len(b.searchMatches) {
		b.searchFocused = -1
	}
}

// --- snapshot ---

var _ purfectview.Backend = (*Backend)(nil)

func (b *Backend) snapshotLocked() *purfectview.Content {
	content := &purfectview.Content{
		Mode:          b.mode,
		Metrics:       b.metricsLocked(),
		DisplayOffset: b.displayOffset,
		Cursor: purfectview.Cursor{
			Point: b.cursor,
			Color: purfectview.ColorSpec{Kind: purfectview.ColorCursor},
		},
		SelectableRange:  b.selectionRangeLocked(),
		HoveredHyperlink: b.hoverLink,
	}

	// Visible window: rows shifted displayOffset lines into scrollback.
	for vis := 0; vis < b.rows; vis++ {
		line := vis - b.displayOffset
		cells := b.lineLocked(line)
		if cells == nil {
			continue
		}
		for col := 0; col < b.cols && col < len(cells); col++ {
			c := cells[col]
			if c.ch == 0 {
				// Untouched cell; written cells always carry pen colors.
				c = cell{
					ch: ' ',
					fg: purfectview.ColorSpec{Kind: purfectview.ColorDefaultFG},
					bg: purfectview.ColorSpec{Kind: purfectview.ColorDefaultBG},
				}
			}
			content.Cells = append(content.Cells, purfectview.Cell{
				Point: purfectview.GridPoint{Line: line, Column: col},
				Char:  c.ch,
				Flags: c.flags,
				FG:    c.fg,
				BG:    c.bg,
			})
		}
	}

	content.Search = b.searchStateLocked()
	return content
}

func (b *Backend) searchStateLocked() purfectview.SearchState {
	state := purfectview.SearchState{
		Active:  b.searchActive,
		NoMatch: b.searchActive && b.searchQuery != "" && len(b.searchMatches) == 0,
	}
	for i, m := range b.searchMatches {
		r := purfectview.PointRange{
			Start: purfectview.GridPoint{Line: m.startLine - len(b.back), Column: m.startCol},
			End:   purfectview.GridPoint{Line: m.endLine - len(b.back), Column: m.endCol},
		}
		state.Matches = append(state.Matches, r)
		if i == b.searchFocused {
			focused := r
			state.Focused = &focused
		}
	}
	return state
}
