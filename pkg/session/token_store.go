package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore persists the bearer credential between runs. Load returns an
// empty string when no credential is stored; Clear on an empty store is not
// an error.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// tokenFileName is the fixed key the credential lives under.
const tokenFileName = "token"

// FileTokenStore keeps the credential in a single file under the user's
// config directory.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a store at path, or at the default location
// (<user config dir>/annotateview/token) when path is empty.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config dir: %w", err)
		}
		path = filepath.Join(dir, "annotateview", tokenFileName)
	}
	return &FileTokenStore{path: path}, nil
}

func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// MemTokenStore is an in-memory TokenStore for tests.
type MemTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
