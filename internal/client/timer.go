package client

import (
	"sync"
	"time"
)

// DefaultInactivityWindow is how long a session may stay idle before logout.
const DefaultInactivityWindow = 5 * time.Minute

// InactivityTimer runs onExpire once the window passes without a Touch. It is a
// convenience for the client only; the server does not enforce idleness.
type InactivityTimer struct {
	mu       sync.Mutex
	window   time.Duration
	onExpire func()
	timer    *time.Timer
}

func NewInactivityTimer(window time.Duration, onExpire func()) *InactivityTimer {
	if window <= 0 {
		window = DefaultInactivityWindow
	}
	return &InactivityTimer{window: window, onExpire: onExpire}
}

// Touch records activity and restarts the window.
func (t *InactivityTimer) Touch() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.window, t.expire)
}

// Stop cancels a pending expiry.
func (t *InactivityTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *InactivityTimer) expire() {
	t.mu.Lock()
	t.timer = nil
	fn := t.onExpire
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}
