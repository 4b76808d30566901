package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ViewMode is the persisted list rendering preference
type ViewMode string

const (
	ViewModeGrid  ViewMode = "grid"
	ViewModeTable ViewMode = "table"
)

// Storage keys. Fixed so that independent screens read the same slots.
const (
	TokenKey        = "bankerdir_token"
	RefreshTokenKey = "bankerdir_refresh_token"
	ViewModeKey     = "bankerdir_view_mode"
)

var ErrNoToken = errors.New("no session token stored")

// Store holds the client-side session state: the token pair and one UI
// preference. Implementations must be safe for concurrent reads.
// ClearToken drops both tokens.
type Store interface {
	GetToken() (string, error)
	SetToken(token string) error
	GetRefreshToken() (string, error)
	SetRefreshToken(token string) error
	ClearToken() error

	GetViewMode() ViewMode
	SetViewMode(mode ViewMode) error
}

// MemoryStore is an in-memory Store, used in tests and ephemeral sessions
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) GetToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.values[TokenKey]
	if !ok || token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[TokenKey] = token
	return nil
}

func (s *MemoryStore) GetRefreshToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.values[RefreshTokenKey]
	if !ok || token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *MemoryStore) SetRefreshToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[RefreshTokenKey] = token
	return nil
}

func (s *MemoryStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, TokenKey)
	delete(s.values, RefreshTokenKey)
	return nil
}

func (s *MemoryStore) GetViewMode() ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if mode := ViewMode(s.values[ViewModeKey]); mode == ViewModeTable {
		return ViewModeTable
	}
	return ViewModeGrid
}

func (s *MemoryStore) SetViewMode(mode ViewMode) error {
	if mode != ViewModeGrid && mode != ViewModeTable {
		return errors.New("view mode must be grid or table")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[ViewModeKey] = string(mode)
	return nil
}

// FileStore persists session state as a JSON file under the user's
// config directory. The token survives process restarts until an
// explicit logout clears it.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed store at the given path.
// The parent directory is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the default session file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bankerdir", "session.json"), nil
}

func (s *FileStore) GetToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.read()
	if err != nil {
		return "", ErrNoToken
	}
	token, ok := values[TokenKey]
	if !ok || token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *FileStore) SetToken(token string) error {
	return s.write(TokenKey, token)
}

func (s *FileStore) GetRefreshToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.read()
	if err != nil {
		return "", ErrNoToken
	}
	token, ok := values[RefreshTokenKey]
	if !ok || token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *FileStore) SetRefreshToken(token string) error {
	return s.write(RefreshTokenKey, token)
}

func (s *FileStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.read()
	if err != nil {
		return nil
	}
	delete(values, TokenKey)
	delete(values, RefreshTokenKey)
	return s.flush(values)
}

func (s *FileStore) GetViewMode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.read()
	if err != nil {
		return ViewModeGrid
	}
	if mode := ViewMode(values[ViewModeKey]); mode == ViewModeTable {
		return ViewModeTable
	}
	return ViewModeGrid
}

func (s *FileStore) SetViewMode(mode ViewMode) error {
	if mode != ViewModeGrid && mode != ViewModeTable {
		return errors.New("view mode must be grid or table")
	}
	return s.write(ViewModeKey, string(mode))
}

func (s *FileStore) write(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.read()
	if err != nil {
		values = make(map[string]string)
	}
	values[key] = value
	return s.flush(values)
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *FileStore) flush(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
