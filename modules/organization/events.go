package organization

import (
	"sync"

	"github.com/dmitrymomot/onboarding/pkg/orgkey"
)

// keySignals is the part of the client store owned by the key field.
type keySignals struct {
	OrgKey      string `json:"orgKey"`
	OrgKeyValid bool   `json:"orgKeyValid"`
}

// fieldEvents hands field notifications to the stream loop. Field callbacks
// must not block, so only the latest state and the latest change are kept.
type fieldEvents struct {
	mu      sync.Mutex
	state   *orgkey.State
	signals *keySignals
	notify  chan struct{}
}

func newFieldEvents() *fieldEvents {
	return &fieldEvents{notify: make(chan struct{}, 1)}
}

func (e *fieldEvents) pushState(st orgkey.State) {
	e.mu.Lock()
	e.state = &st
	e.mu.Unlock()
	e.wake()
}

func (e *fieldEvents) pushChange(key string, ok bool) {
	e.mu.Lock()
	e.signals = &keySignals{OrgKey: key, OrgKeyValid: ok}
	e.mu.Unlock()
	e.wake()
}

func (e *fieldEvents) wake() {
	select {
	case e.notify <- struct{}{}:
	default:
	}
}

// take returns and clears the pending state and change. Either may be nil.
func (e *fieldEvents) take() (*orgkey.State, *keySignals) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, sig := e.state, e.signals
	e.state, e.signals = nil, nil
	return st, sig
}
