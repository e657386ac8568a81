package services

import (
	"fmt"
	"strings"
	"time"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"
	"repair_shop/internal/repository"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

type SearchResult struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// SearchCache is the cache surface the search service needs. Satisfied by
// the redis client; a nil cache disables caching.
type SearchCache interface {
	Get(key string, dest interface{}) error
	Set(key string, value interface{}, ttl time.Duration) error
}

type SearchService interface {
	// SearchCatalog returns catalog rows whose name contains the term,
	// case-insensitively, for autocomplete.
	SearchCatalog(kind models.CatalogKind, term string, limit int) ([]SearchResult, error)
	SearchDevices(term string, limit int) ([]string, error)
}

type searchService struct {
	repos *repository.Registry
	cache SearchCache
	ttl   time.Duration
}

func NewSearchService(repos *repository.Registry, cache SearchCache, ttl time.Duration) SearchService {
	return &searchService{repos: repos, cache: cache, ttl: ttl}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	if limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}

func (s *searchService) SearchCatalog(kind models.CatalogKind, term string, limit int) ([]SearchResult, error) {
	term = strings.TrimSpace(term)
	limit = clampLimit(limit)

	cacheKey := fmt.Sprintf("search:%s:%d:%s", kind, limit, strings.ToUpper(term))
	var results []SearchResult
	if s.cache != nil {
		if err := s.cache.Get(cacheKey, &results); err == nil {
			return results, nil
		}
	}

	switch kind {
	case models.KindDeviceType:
		types, err := s.repos.Catalog.SearchTypes(term, limit)
		if err != nil {
			return nil, err
		}
		for _, t := range types {
			results = append(results, SearchResult{ID: t.ID, Text: t.Name})
		}
	case models.KindBrand:
		brands, err := s.repos.Catalog.SearchBrands(term, limit)
		if err != nil {
			return nil, err
		}
		for _, b := range brands {
			results = append(results, SearchResult{ID: b.ID, Text: b.Name})
		}
	case models.KindModel:
		modelRows, err := s.repos.Catalog.SearchModels(term, limit)
		if err != nil {
			return nil, err
		}
		for _, m := range modelRows {
			results = append(results, SearchResult{ID: m.ID, Text: m.Name})
		}
	default:
		verrs := apperrors.NewValidation()
		verrs.Add("kind", fmt.Sprintf("unknown catalog kind %q", kind))
		return nil, verrs
	}

	if s.cache != nil {
		// Best effort: a failed cache write never fails the search.
		_ = s.cache.Set(cacheKey, results, s.ttl)
	}
	return results, nil
}

func (s *searchService) SearchDevices(term string, limit int) ([]string, error) {
	term = strings.TrimSpace(term)
	limit = clampLimit(limit)

	cacheKey := fmt.Sprintf("search:device:%d:%s", limit, strings.ToUpper(term))
	var serials []string
	if s.cache != nil {
		if err := s.cache.Get(cacheKey, &serials); err == nil {
			return serials, nil
		}
	}

	serials, err := s.repos.Devices.SearchSerials(term, limit)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(cacheKey, serials, s.ttl)
	}
	return serials, nil
}
