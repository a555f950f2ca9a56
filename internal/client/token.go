package client

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// TokenStore holds the session token in memory. With a non-empty path the token
// is also written to that file so the next process can reuse it.
type TokenStore struct {
	mu    sync.RWMutex
	token string
	path  string
}

// NewTokenStore loads a previously saved token from path, if any.
func NewTokenStore(path string) (*TokenStore, error) {
	s := &TokenStore{path: path}
	if path == "" {
		return s, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}
	s.token = strings.TrimSpace(string(raw))
	return s, nil
}

func (s *TokenStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *TokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if s.path == "" {
		return nil
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Clear forgets the token and removes the file.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

func (s *TokenStore) LoggedIn() bool {
	return s.Get() != ""
}
