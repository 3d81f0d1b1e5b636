package services

import (
	"sync"

	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// DisplayAccess serialises every physical write to the panel. A full
// refresh sequence and a partial story update never interleave.
type DisplayAccess struct {
	mu      sync.Mutex
	display driven.Display
}

// NewDisplayAccess wraps display.
func NewDisplayAccess(display driven.Display) *DisplayAccess {
	return &DisplayAccess{display: display}
}

// Do runs fn with exclusive access to the panel.
func (a *DisplayAccess) Do(fn func(d driven.Display) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fn(a.display)
}

// Sleep puts the panel to sleep under the lock.
func (a *DisplayAccess) Sleep() error {
	return a.Do(func(d driven.Display) error {
		return d.Sleep()
	})
}
