package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/where2buy/backend/internal/domain"
	"github.com/where2buy/backend/internal/infrastructure/metrics"
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	RadiusMeters      int
	MaxOfflineResults int
	MaxConcurrency    int // 0 = one goroutine per item
}

// SearchService runs the extract-then-resolve pipeline for one shopping list
type SearchService struct {
	generator      domain.TextGenerator
	placesClient   domain.PlacesClient
	sessions       domain.LocationStore
	extractor      *Extractor
	offline        *OfflineResolver
	maxConcurrency int
}

// NewSearchService creates a new search service with dependencies.
// sessions may be nil, which disables session locations.
func NewSearchService(
	generator domain.TextGenerator,
	placesClient domain.PlacesClient,
	sessions domain.LocationStore,
	config SearchServiceConfig,
) *SearchService {
	return &SearchService{
		generator:    generator,
		placesClient: placesClient,
		sessions:     sessions,
		extractor:    NewExtractor(generator),
		offline: NewOfflineResolver(placesClient, OfflineResolverConfig{
			RadiusMeters: config.RadiusMeters,
			MaxResults:   config.MaxOfflineResults,
		}),
		maxConcurrency: config.MaxConcurrency,
	}
}

// Search validates the request, extracts items and resolves each one concurrently.
// Flow: validate -> extract -> resolve (parallel) -> respond
func (s *SearchService) Search(ctx context.Context, sessionID string, request *domain.ShoppingRequest) (*domain.SearchResponse, error) {
	location, err := s.validate(ctx, sessionID, request)
	if err != nil {
		return nil, err
	}

	items, err := s.extractor.Extract(ctx, request.Text)
	if err != nil {
		return nil, err
	}
	metrics.ExtractedItems.Observe(float64(len(items)))

	results, resolutions := s.resolve(ctx, items, location)

	failed := 0
	for _, r := range resolutions {
		if r.Err != nil {
			failed++
		}
	}
	slog.InfoContext(ctx, "[SEARCH] completed",
		"items", len(items),
		"offline_failures", failed)

	return &domain.SearchResponse{Results: results}, nil
}

// validate checks input and credentials before any upstream call is made.
// It returns the location to search around.
func (s *SearchService) validate(ctx context.Context, sessionID string, request *domain.ShoppingRequest) (domain.Location, error) {
	if request == nil || strings.TrimSpace(request.Text) == "" {
		return domain.Location{}, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}

	location, err := s.resolveLocation(ctx, sessionID, request.Location)
	if err != nil {
		return domain.Location{}, err
	}

	if !s.generator.Configured() || !s.placesClient.Configured() {
		return domain.Location{}, domain.ErrConfiguration
	}

	return location, nil
}

// resolveLocation prefers the request's location and falls back to the session's.
// A request location also refreshes the session entry.
func (s *SearchService) resolveLocation(ctx context.Context, sessionID string, requested *domain.Location) (domain.Location, error) {
	if requested != nil {
		if !requested.Valid() {
			return domain.Location{}, fmt.Errorf("%w: location out of range", domain.ErrValidation)
		}
		if s.sessions != nil && sessionID != "" {
			if err := s.sessions.Set(ctx, sessionID, *requested); err != nil {
				slog.WarnContext(ctx, "[SEARCH] failed to store session location", "error", err)
			}
		}
		return *requested, nil
	}

	if s.sessions != nil && sessionID != "" {
		stored, err := s.sessions.Get(ctx, sessionID)
		if err == nil {
			return stored, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			slog.WarnContext(ctx, "[SEARCH] session lookup failed", "error", err)
		}
	}

	return domain.Location{}, fmt.Errorf("%w: location is required", domain.ErrValidation)
}

// resolve builds one SearchResult per item. Items run concurrently and
// each goroutine writes only its own slot, so order matches extraction.
func (s *SearchService) resolve(ctx context.Context, items []domain.ExtractedItem, location domain.Location) ([]domain.SearchResult, []domain.OfflineResolution) {
	results := make([]domain.SearchResult, len(items))
	resolutions := make([]domain.OfflineResolution, len(items))

	var g errgroup.Group
	if s.maxConcurrency > 0 {
		g.SetLimit(s.maxConcurrency)
	}

	for i, item := range items {
		g.Go(func() error {
			online := OnlineLinks(item)
			resolution := s.offline.Resolve(ctx, item, location)

			resolutions[i] = resolution
			results[i] = domain.SearchResult{
				Item:     item.Query,
				Category: item.Category,
				Online:   online,
				Offline:  resolution.Shops,
			}
			return nil
		})
	}

	// Resolve never returns an error; Wait is only a barrier here.
	_ = g.Wait()

	return results, resolutions
}

// SaveLocation stores a location for a session
func (s *SearchService) SaveLocation(ctx context.Context, sessionID string, location *domain.Location) error {
	if sessionID == "" || location == nil || !location.Valid() {
		return fmt.Errorf("%w: session and valid location are required", domain.ErrValidation)
	}
	if s.sessions == nil {
		return fmt.Errorf("%w: session store is not configured", domain.ErrConfiguration)
	}
	return s.sessions.Set(ctx, sessionID, *location)
}

// ClearLocation forgets the stored location for a session
func (s *SearchService) ClearLocation(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: session is required", domain.ErrValidation)
	}
	if s.sessions == nil {
		return fmt.Errorf("%w: session store is not configured", domain.ErrConfiguration)
	}
	return s.sessions.Delete(ctx, sessionID)
}
