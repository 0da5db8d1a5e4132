package purfectview

import "sync"

// ViewState is the per-widget state that survives across frames: drag and
// wheel accumulation for input handling, the pointer's grid position, and
// the search overlay.
//
// Invariants: SearchJustOpened is only ever true while SearchActive is
// true, and AccumulatedWheelPixels never holds more than one row's worth of
// pixels (it is reduced modulo the font pixel size on every pixel-unit
// wheel event).
type ViewState struct {
	IsDragging             bool
	AccumulatedWheelPixels float64
	PointerGridPosition    GridPoint
	SearchQuery            string
	SearchActive           bool
	SearchJustOpened       bool
}

// StateStore keeps ViewState per widget identifier. The host toolkit owns
// one store for as long as its widgets live; state is created on first use
// of an identifier.
//
// The mutex only guards the map itself: distinct widgets may be driven from
// distinct toolkit threads, but a single widget instance is never
// dispatched concurrently.
type StateStore struct {
	mu     sync.Mutex
	states map[string]*ViewState
}

// NewStateStore creates an empty store.
func NewStateStore() *StateStore {
	return &StateStore{states: make(map[string]*ViewState)}
}

// Get returns the state for a widget identifier, creating it on first use.
func (s *StateStore) Get(id string) *ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	if !ok {
		st = &ViewState{}
		s.states[id] = st
	}
	return st
}

// Drop forgets the state for a widget identifier, for hosts that destroy
// widgets.
func (s *StateStore) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
}
