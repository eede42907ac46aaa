package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ng-portfolio/backend/internal/content"
	"github.com/ng-portfolio/backend/pkg/logger"
)

// Store is the persistence contract for the single portfolio document.
// There is deliberately no partial update: Save always replaces the whole
// record (last writer wins, no locking) and Load never reports "not found";
// a missing or unreadable record is masked by the built-in default.
type Store interface {
	Load() (*content.PortfolioContent, error)
	Save(doc *content.PortfolioContent) error
	Reset() (*content.PortfolioContent, error)
}

// FileStore keeps the document as one pretty-printed JSON file.
// The path (rather than a hardcoded location) is what a future multi-tenant
// extension would thread a key through.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

// Load returns the stored document, or the default document when the file is
// missing or cannot be parsed. Only directory-level I/O failures surface.
func (s *FileStore) Load() (*content.PortfolioContent, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return content.Defaults(), nil
	}
	doc := &content.PortfolioContent{}
	if err := json.Unmarshal(raw, doc); err != nil {
		logger.Warnf("portfolio data file unreadable, serving defaults: %v", err)
		return content.Defaults(), nil
	}
	return doc, nil
}

// Save overwrites the stored record unconditionally.
func (s *FileStore) Save(doc *content.PortfolioContent) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize portfolio data: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write portfolio data: %w", err)
	}
	return nil
}

// Reset overwrites the stored record with the built-in default and returns it.
func (s *FileStore) Reset() (*content.PortfolioContent, error) {
	doc := content.Defaults()
	if err := s.Save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
