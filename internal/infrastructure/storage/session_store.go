package storage

import (
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"
)

// FileSessionStore is a synchronous string key-value store persisted as a
// JSON file, holding the web application's session record across restarts.
// It implements port.SessionStore.
type FileSessionStore struct {
	mu     sync.Mutex
	path   string
	items  map[string]string
	logger *zap.Logger
}

// NewFileSessionStore loads (or initializes) the store at path.
func NewFileSessionStore(path string, logger *zap.Logger) *FileSessionStore {
	s := &FileSessionStore{
		path:   path,
		items:  make(map[string]string),
		logger: logger,
	}
	raw, err := os.ReadFile(path)
	if err == nil {
		if jerr := json.Unmarshal(raw, &s.items); jerr != nil {
			logger.Warn("corrupt session file, starting empty", zap.String("path", path), zap.Error(jerr))
			s.items = make(map[string]string)
		}
	}
	return s
}

// GetItem returns the value stored under key.
func (s *FileSessionStore) GetItem(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok
}

// SetItem stores value under key and persists the store.
func (s *FileSessionStore) SetItem(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	s.flush()
}

// RemoveItem deletes key and persists the store.
func (s *FileSessionStore) RemoveItem(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	s.flush()
}

func (s *FileSessionStore) flush() {
	raw, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Error("failed to encode session store", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		s.logger.Error("failed to persist session store", zap.String("path", s.path), zap.Error(err))
	}
}

// MemSessionStore is an in-memory SessionStore for tests and demo runs.
type MemSessionStore struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemSessionStore creates an empty in-memory session store.
func NewMemSessionStore() *MemSessionStore {
	return &MemSessionStore{items: make(map[string]string)}
}

// GetItem returns the value stored under key.
func (s *MemSessionStore) GetItem(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok
}

// SetItem stores value under key.
func (s *MemSessionStore) SetItem(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// RemoveItem deletes key.
func (s *MemSessionStore) RemoveItem(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}
