package service

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ng-portfolio/backend/internal/content"
	"github.com/ng-portfolio/backend/internal/content/repository"
)

// ErrMissingFields marks a save rejected because a required field was empty.
// Name and email are the only required fields; everything else is accepted
// as-is (deliberately permissive).
var ErrMissingFields = errors.New("name and email are required")

// Service defines the content operations used by the handler layer.
// All three operate on the whole document.
type Service interface {
	Load() (*content.PortfolioContent, error)
	Save(doc *content.PortfolioContent) (*content.PortfolioContent, error)
	Reset() (*content.PortfolioContent, error)
}

// NewFileService returns a Service persisting to a single JSON file.
func NewFileService(path string) Service {
	return &contentService{store: repository.NewFileStore(path)}
}

// NewMemoryService returns a Service backed by the in-memory store.
func NewMemoryService() Service {
	return &contentService{store: repository.NewMemoryStore()}
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller owns the client; the document lives under the given fixed key.
func NewMongoService(col *mongo.Collection, key string) Service {
	return &contentService{store: repository.NewMongoStore(col, key)}
}

type contentService struct {
	store repository.Store
}

func (s *contentService) Load() (*content.PortfolioContent, error) {
	return s.store.Load()
}

// Save validates the two required fields, then replaces the stored record
// verbatim and echoes it back.
func (s *contentService) Save(doc *content.PortfolioContent) (*content.PortfolioContent, error) {
	if doc.Name == "" || doc.Email == "" {
		return nil, ErrMissingFields
	}
	if err := s.store.Save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *contentService) Reset() (*content.PortfolioContent, error) {
	return s.store.Reset()
}
