package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/mmcdole/aisle/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CategoryService loads the category list once per process.
// Concurrent callers share one request; failures are not remembered.
type CategoryService struct {
	repo   domain.CatalogRepository
	logger *slog.Logger

	group singleflight.Group

	mu         sync.RWMutex
	categories []string
	loaded     bool
}

// NewCategoryService creates a new category service
func NewCategoryService(repo domain.CatalogRepository, logger *slog.Logger) *CategoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryService{
		repo:   repo,
		logger: logger,
	}
}

// Categories returns the category names in catalog order
func (s *CategoryService) Categories(ctx context.Context) ([]string, error) {
	if cats, ok := s.Cached(); ok {
		return cats, nil
	}

	v, err, shared := s.group.Do("categories", func() (interface{}, error) {
		categories, err := s.repo.GetCategories(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.categories = categories
		s.loaded = true
		s.mu.Unlock()

		s.logger.Info("categories loaded", "count", len(categories))
		return categories, nil
	})
	if err != nil {
		s.logger.Error("failed to load categories", "error", err)
		return nil, err
	}
	if shared {
		s.logger.Debug("category request shared between callers")
	}

	return slices.Clone(v.([]string)), nil
}

// Cached returns the category list if it has been loaded
func (s *CategoryService) Cached() ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, false
	}
	return slices.Clone(s.categories), true
}
