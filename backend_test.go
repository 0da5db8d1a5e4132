package purfectview

// fakeBackend records commands and serves a configurable content snapshot.
type fakeBackend struct {
	id       string
	content  *Content
	commands []Command

	searchActive bool
	queries      []string
	nextPoint    *GridPoint
	prevPoint    *GridPoint
	scrolledTo   []GridPoint
	selectable   string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		id: "term-0",
		content: &Content{
			Metrics: CellMetrics{CellWidth: 8, CellHeight: 16},
		},
	}
}

func (b *fakeBackend) ID() string            { return b.id }
func (b *fakeBackend) LastContent() *Content { return b.content }
func (b *fakeBackend) Sync() *Content        { return b.content }

func (b *fakeBackend) ProcessCommand(cmd Command) {
	b.commands = append(b.commands, cmd)
}

func (b *fakeBackend) SearchSetQuery(query string) {
	b.queries = append(b.queries, query)
}

func (b *fakeBackend) SearchSetActive(active bool) { b.searchActive = active }
func (b *fakeBackend) SearchActive() bool          { return b.searchActive }

func (b *fakeBackend) SearchNext() (GridPoint, bool) {
	if b.nextPoint == nil {
		return GridPoint{}, false
	}
	return *b.nextPoint, true
}

func (b *fakeBackend) SearchPrev() (GridPoint, bool) {
	if b.prevPoint == nil {
		return GridPoint{}, false
	}
	return *b.prevPoint, true
}

func (b *fakeBackend) ScrollToPoint(p GridPoint) {
	b.scrolledTo = append(b.scrolledTo, p)
}

func (b *fakeBackend) SelectableContent() string { return b.selectable }

func (b *fakeBackend) SelectionPoint(x, y float64, metrics CellMetrics, displayOffset int) GridPoint {
	return ToGridPoint(x, y, metrics, displayOffset)
}

// fakeClipboard captures clipboard writes.
type fakeClipboard struct {
	texts []string
}

func (c *fakeClipboard) WriteText(text string) {
	c.texts = append(c.texts, text)
}
