// Package editor implements the create/update/delete flows for topics and
// exams. Both editors share one lifecycle: Closed -> Open(New)|Open(Edit) ->
// Saving -> Closed on success, back to Open on failure. Saving is the only
// state in which a second save attempt is rejected.
package editor

import (
	"sync"

	"github.com/pkg/errors"
)

type State int

const (
	StateClosed State = iota
	StateOpenNew
	StateOpenEdit
	StateSaving
)

var (
	ErrNotOpen      = errors.New("editor is not open")
	ErrSaveInFlight = errors.New("a save is already in progress")
)

// guard serializes the editor lifecycle. A generation counter detects the
// editor being closed while a save is still resolving: the in-flight save
// then completes against the store but stops updating editor state.
type guard struct {
	mu    sync.Mutex
	state State
	prev  State
	gen   int
}

func (g *guard) open(edit bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if edit {
		g.state = StateOpenEdit
	} else {
		g.state = StateOpenNew
	}
	g.gen++
}

func (g *guard) beginSave() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch g.state {
	case StateSaving:
		return 0, ErrSaveInFlight
	case StateClosed:
		return 0, ErrNotOpen
	}
	g.prev = g.state
	g.state = StateSaving
	return g.gen, nil
}

func (g *guard) endSave(gen int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gen != gen || g.state != StateSaving { // closed while saving
		return
	}
	if ok {
		g.state = StateClosed
	} else {
		g.state = g.prev
	}
}

func (g *guard) cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = StateClosed
	g.gen++
}

func (g *guard) current() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *guard) isNew() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateSaving {
		return g.prev == StateOpenNew
	}
	return g.state == StateOpenNew
}
