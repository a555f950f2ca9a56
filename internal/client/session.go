package client

import (
	"sync"
	"time"
)

// Session is the client-side state of one signed-in user.
type Session struct {
	API    *APIClient
	Tokens *TokenStore
	Notes  *NoteState
	Alerts *AlertBanner
	Idle   *InactivityTimer

	mu       sync.Mutex
	darkMode bool
}

// NewSession wires a client against baseURL. The inactivity timer logs the user
// out after idle.
func NewSession(baseURL string, tokens *TokenStore, idle time.Duration) *Session {
	api := NewAPIClient(baseURL, tokens)
	s := &Session{
		API:    api,
		Tokens: tokens,
		Notes:  NewNoteState(api),
		Alerts: NewAlertBanner(),
	}
	s.Idle = NewInactivityTimer(idle, func() {
		_ = s.Logout()
		s.Alerts.Show("Logged out due to inactivity", AlertWarning)
	})
	return s
}

// Logout clears the token and the loaded notes.
func (s *Session) Logout() error {
	s.Idle.Stop()
	s.Notes.Clear()
	return s.Tokens.Clear()
}

func (s *Session) ToggleDarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = !s.darkMode
	return s.darkMode
}

func (s *Session) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}
