// Package session holds the bearer credential used to authenticate
// against the TranscriptionSaaS API.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store provides access to the current API credential. The token is
// treated as immutable once set; concurrent readers are safe.
type Store interface {
	// Token returns the current credential and whether one is set.
	Token() (string, bool)
	// SetToken replaces the current credential.
	SetToken(token string) error
	// Clear removes the credential, including any persisted copy.
	Clear() error
}

// sessionFile is the on-disk representation of a session.
type sessionFile struct {
	Token string `json:"token"`
}

// FileStore persists the credential in a single JSON file so it
// survives process restarts.
type FileStore struct {
	path string
}

// DefaultPath returns the standard session file location
// (~/.scribe/session.json).
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".scribe", "session.json"), nil
}

// NewFileStore creates a file-backed session store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Token reads the persisted credential. A missing or unreadable file
// means "unauthenticated".
func (s *FileStore) Token() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return "", false
	}
	if sf.Token == "" {
		return "", false
	}
	return sf.Token, true
}

// SetToken writes the credential to disk, creating parent directories.
// The file is created with owner-only permissions.
func (s *FileStore) SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("token must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(sessionFile{Token: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent session is not
// an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Memory is an in-process session store used by tests and one-off
// invocations that pass a token directly.
type Memory struct {
	token string
}

// NewMemory creates a memory-backed store, optionally pre-seeded.
func NewMemory(token string) *Memory {
	return &Memory{token: token}
}

func (m *Memory) Token() (string, bool) {
	return m.token, m.token != ""
}

func (m *Memory) SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("token must not be empty")
	}
	m.token = token
	return nil
}

func (m *Memory) Clear() error {
	m.token = ""
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*Memory)(nil)
)
