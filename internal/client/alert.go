package client

import (
	"sync"
	"time"
)

// AlertDuration is how long an alert stays visible.
const AlertDuration = 1500 * time.Millisecond

// AlertType mirrors the styles the UI shows.
type AlertType string

const (
	AlertSuccess AlertType = "success"
	AlertDanger  AlertType = "danger"
	AlertWarning AlertType = "warning"
)

type Alert struct {
	Msg  string
	Type AlertType
}

// AlertBanner holds the most recent alert and clears it after AlertDuration.
type AlertBanner struct {
	mu       sync.Mutex
	current  *Alert
	duration time.Duration
	seq      uint64
}

func NewAlertBanner() *AlertBanner {
	return &AlertBanner{duration: AlertDuration}
}

// Show replaces the current alert. A later Show restarts the timer.
func (b *AlertBanner) Show(msg string, typ AlertType) {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.current = &Alert{Msg: msg, Type: typ}
	b.mu.Unlock()

	time.AfterFunc(b.duration, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.seq == seq {
			b.current = nil
		}
	})
}

// Current returns the visible alert, if any.
func (b *AlertBanner) Current() (Alert, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Alert{}, false
	}
	return *b.current, true
}
