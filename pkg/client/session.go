package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Session is the persisted sign-in state. One session at a time; signing in
// overwrites the previous one.
type Session struct {
	Token string `json:"token"`
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionStore keeps the session in a single JSON file.
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// DefaultSessionPath places the session file in the user's config directory.
func DefaultSessionPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(configDir, "nutrilog", "session.json"), nil
}

func (store *SessionStore) Save(session Session) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return os.WriteFile(store.path, data, 0o600)
}

// Load returns the stored session, or an empty session when none exists or
// the file is unreadable. A corrupt session file is treated as signed out.
func (store *SessionStore) Load() Session {
	data, err := os.ReadFile(store.path)
	if err != nil {
		return Session{}
	}
	session := Session{}
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}
	}
	return session
}

func (store *SessionStore) Token() string {
	return store.Load().Token
}

func (store *SessionStore) Clear() error {
	err := os.Remove(store.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
