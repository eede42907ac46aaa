package repository

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ng-portfolio/backend/internal/content"
)

// MemoryStore holds the document as serialized bytes so callers always get an
// independent copy back. Used by unit tests and the standalone content binary.
type MemoryStore struct {
	mu  sync.RWMutex
	raw []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*content.PortfolioContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.raw == nil {
		return content.Defaults(), nil
	}
	doc := &content.PortfolioContent{}
	if err := json.Unmarshal(s.raw, doc); err != nil {
		return content.Defaults(), nil
	}
	return doc, nil
}

func (s *MemoryStore) Save(doc *content.PortfolioContent) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("serialize portfolio data: %w", err)
	}
	s.mu.Lock()
	s.raw = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Reset() (*content.PortfolioContent, error) {
	doc := content.Defaults()
	if err := s.Save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
