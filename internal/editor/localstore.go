package editor

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/ng-portfolio/backend/pkg/logger"
)

// LocalStore is a localStorage-like string key/value store for the editor and
// viewer processes. It lives in memory and, when a path is given, writes
// through to a JSON file so the cache survives restarts. Writes are
// best-effort: a failed file write keeps the in-memory value.
type LocalStore struct {
	mu     sync.RWMutex
	values map[string]string
	path   string
}

// NewLocalStore returns an in-memory store. path may be empty.
func NewLocalStore(path string) *LocalStore {
	s := &LocalStore{values: map[string]string{}, path: path}
	if path != "" {
		if raw, err := os.ReadFile(path); err == nil {
			_ = json.Unmarshal(raw, &s.values)
		}
	}
	return s
}

// Get returns the stored value and whether the key exists.
func (s *LocalStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *LocalStore) Set(key, value string) {
	s.mu.Lock()
	s.values[key] = value
	s.persistLocked()
	s.mu.Unlock()
}

func (s *LocalStore) Remove(key string) {
	s.mu.Lock()
	delete(s.values, key)
	s.persistLocked()
	s.mu.Unlock()
}

func (s *LocalStore) persistLocked() {
	if s.path == "" {
		return
	}
	raw, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		logger.Warnf("local store write failed: %v", err)
	}
}
