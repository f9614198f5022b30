package flow

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrBusy is returned when an action is triggered while another request
	// of the same controller is in flight.
	ErrBusy = errors.New("request already in flight")

	// ErrSuperseded is returned when a result arrived after the user moved
	// on; the result has been discarded.
	ErrSuperseded = errors.New("request superseded")
)

// inflight admits one request at a time. Each admitted request gets a
// token; only the holder of the current token may apply its result.
type inflight struct {
	mu      sync.Mutex
	busy    bool
	current uuid.UUID
}

func (g *inflight) begin() (uuid.UUID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return uuid.Nil, ErrBusy
	}
	g.busy = true
	g.current = uuid.New()
	return g.current, nil
}

// finish ends the request holding tok and reports whether its result is
// still wanted.
func (g *inflight) finish(tok uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if tok != g.current {
		return false
	}
	g.busy = false
	return true
}

// valid reports whether tok is still current.
func (g *inflight) valid(tok uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return tok == g.current
}

// invalidate drops the current request; its result will be discarded and
// a new request may begin at once.
func (g *inflight) invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.busy = false
	g.current = uuid.Nil
}

func (g *inflight) loading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}
