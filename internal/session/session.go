// Package session owns the client's only persisted state: the auth token
// (plus the signed-in user for display). It is process-wide with explicit
// init and teardown; all readers go through the accessors.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"presskit-cli/internal/config"
	"presskit-cli/internal/model"
)

type Session struct {
	Token string      `json:"token,omitempty"`
	User  *model.User `json:"user,omitempty"`
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

func Path() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// Load reads the persisted session. A missing file yields an empty
// session, not an error.
func Load() (*Session, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Session{}, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func Save(s *Session) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Clear removes the persisted session file.
func Clear() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

var (
	mu      sync.Mutex
	current *Session
)

// Init loads the persisted session into the process-wide slot. Called once
// on startup.
func Init() (*Session, error) {
	s, err := Load()
	if err != nil {
		return nil, err
	}
	mu.Lock()
	current = s
	mu.Unlock()
	return s, nil
}

// Current returns the process-wide session; never nil after Init.
func Current() *Session {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = &Session{}
	}
	return current
}

// SetCurrent replaces the process-wide session and persists it.
func SetCurrent(s *Session) error {
	mu.Lock()
	current = s
	mu.Unlock()
	return Save(s)
}

// Logout clears both the in-memory session and the persisted file.
func Logout() error {
	mu.Lock()
	current = &Session{}
	mu.Unlock()
	return Clear()
}

// Token is the bearer credential for API requests; empty when signed out.
func Token() string {
	return Current().Token
}
