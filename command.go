package purfectview

// SelectionKind is the granularity of a text selection, decided by click
// multiplicity.
type SelectionKind int

const (
	// SelectSimple is a plain character-wise selection.
	SelectSimple SelectionKind = iota
	// SelectSemantic selects whole words (double click).
	SelectSemantic
	// SelectLines selects whole lines (triple click).
	SelectLines
)

// MouseButton identifies a button in a mouse report sent to the terminal
// program.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseLeftMove
	MouseScrollUp
	MouseScrollDown
)

// LinkAction is what to do with a hyperlink under the pointer.
type LinkAction int

const (
	LinkOpen LinkAction = iota
	LinkHover
)

// Command is an instruction for the backend collaborator. Commands are data
// only; the backend interprets them against its grid and PTY state.
type Command interface {
	isCommand()
}

// WriteCommand sends raw bytes to the terminal program.
type WriteCommand struct {
	Data []byte
}

// ResizeCommand informs the backend of the widget's pixel size and the
// current cell metrics so it can recompute its grid dimensions.
type ResizeCommand struct {
	Size    Size
	Metrics CellMetrics
}

// ScrollCommand moves the scrollback view by a signed number of lines.
type ScrollCommand struct {
	Lines int
}

// MouseReportCommand asks the backend to encode and send a mouse report.
type MouseReportCommand struct {
	Button    MouseButton
	Modifiers Modifiers
	Point     GridPoint
	Pressed   bool
}

// SelectStartCommand begins a selection at widget-local pixel coordinates.
type SelectStartCommand struct {
	Kind SelectionKind
	X    float64
	Y    float64
}

// SelectUpdateCommand extends the in-progress selection to widget-local
// pixel coordinates.
type SelectUpdateCommand struct {
	X float64
	Y float64
}

// ProcessLinkCommand asks the backend to open or hover-probe a hyperlink at
// a grid position.
type ProcessLinkCommand struct {
	Action LinkAction
	Point  GridPoint
}

func (WriteCommand) isCommand()        {}
func (ResizeCommand) isCommand()       {}
func (ScrollCommand) isCommand()       {}
func (MouseReportCommand) isCommand()  {}
func (SelectStartCommand) isCommand()  {}
func (SelectUpdateCommand) isCommand() {}
func (ProcessLinkCommand) isCommand()  {}

// InputAction is the intermediate result of dispatching one input event.
// Actions are consumed within the same event-processing pass and never
// persisted.
type InputAction interface {
	isInputAction()
}

// BackendCall forwards a command to the backend.
type BackendCall struct {
	Command Command
}

// WriteToClipboard places text on the host clipboard.
type WriteToClipboard struct {
	Text string
}

// ToggleSearch flips the search overlay open/closed.
type ToggleSearch struct{}

// SearchNext advances to the next search match.
type SearchNext struct{}

// SearchPrev moves to the previous search match.
type SearchPrev struct{}

// Ignore does nothing.
type Ignore struct{}

func (BackendCall) isInputAction()      {}
func (WriteToClipboard) isInputAction() {}
func (ToggleSearch) isInputAction()     {}
func (SearchNext) isInputAction()       {}
func (SearchPrev) isInputAction()       {}
func (Ignore) isInputAction()           {}
