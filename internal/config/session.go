package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Session is dashboard state that survives restarts.
type Session struct {
	// LastConversation is the most recently opened conversation id.
	LastConversation string `yaml:"last_conversation,omitempty"`
	// LastPatient is the patient name of that conversation (for display).
	LastPatient string `yaml:"last_patient,omitempty"`
	// UpdatedAt is when the session was last modified.
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

// IsEmpty returns true if nothing has been opened yet.
func (s *Session) IsEmpty() bool {
	return s.LastConversation == ""
}

// Remember records an opened conversation.
func (s *Session) Remember(id, patient string) {
	s.LastConversation = id
	s.LastPatient = patient
	s.UpdatedAt = time.Now().UTC()
}

// String returns a human-readable representation of the session.
func (s *Session) String() string {
	if s.IsEmpty() {
		return "(no conversation opened)"
	}
	if s.LastPatient == "" {
		return s.LastConversation
	}
	return fmt.Sprintf("%s (%s)", s.LastConversation, s.LastPatient)
}

// SessionStore loads and saves the session file.
type SessionStore struct {
	path string
	mu   sync.RWMutex
}

// NewSessionStore creates a session store. An empty path disables
// persistence: Load returns an empty session and Save is a no-op.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Path returns the session file path.
func (s *SessionStore) Path() string {
	return s.path
}

// Load reads the session from disk.
// Returns an empty session if the file doesn't exist.
func (s *SessionStore) Load() (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session := &Session{}
	if s.path == "" {
		return session, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return session, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err := yaml.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return session, nil
}

// Save writes the session to disk.
func (s *SessionStore) Save(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" || session == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := yaml.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the session file.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
