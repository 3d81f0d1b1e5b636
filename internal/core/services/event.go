package services

// RefreshEvent is a level-triggered wake-up signal with at most one
// pending fire. Receiving from C consumes the fire.
type RefreshEvent struct {
	ch chan struct{}
}

// NewRefreshEvent creates an event in the cleared state.
func NewRefreshEvent() *RefreshEvent {
	return &RefreshEvent{ch: make(chan struct{}, 1)}
}

// Fire sets the event. Firing an already set event is a no-op.
func (e *RefreshEvent) Fire() {
	select {
	case e.ch <- struct{}{}:
	default:
	}
}

// C returns the channel that yields once per fire.
func (e *RefreshEvent) C() <-chan struct{} {
	return e.ch
}

// Clear drops a pending fire.
func (e *RefreshEvent) Clear() {
	select {
	case <-e.ch:
	default:
	}
}

// Pending reports whether the event is set.
func (e *RefreshEvent) Pending() bool {
	return len(e.ch) > 0
}
