package purfectview

import "github.com/atotto/clipboard"

// Clipboard is where copied selection text goes. Toolkit adapters usually
// provide their toolkit's clipboard; SystemClipboard is a portable default.
type Clipboard interface {
	WriteText(text string)
}

// SystemClipboard writes through the operating system clipboard.
type SystemClipboard struct{}

// WriteText stores text on the system clipboard. Failures are swallowed;
// a missing clipboard is not an error state the widget can act on.
func (SystemClipboard) WriteText(text string) {
	_ = clipboard.WriteAll(text)
}
