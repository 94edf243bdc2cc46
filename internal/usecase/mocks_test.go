package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/where2buy/backend/internal/domain"
)

// MockTextGenerator is a mock implementation of domain.TextGenerator
type MockTextGenerator struct {
	output       string
	err          error
	unconfigured bool
	calls        atomic.Int32
	lastPrompt   string
}

func NewMockTextGenerator(output string) *MockTextGenerator {
	return &MockTextGenerator{output: output}
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls.Add(1)
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.output, nil
}

func (m *MockTextGenerator) Configured() bool {
	return !m.unconfigured
}

// MockPlacesClient is a mock implementation of domain.PlacesClient.
// Responses are keyed by query; unknown queries get defaultResp.
type MockPlacesClient struct {
	mu           sync.Mutex
	responses    map[string]*domain.PlacesSearchResponse
	errors       map[string]error
	defaultResp  *domain.PlacesSearchResponse
	unconfigured bool
	queries      []string
	locations    []domain.Location
	radii        []int
}

func NewMockPlacesClient() *MockPlacesClient {
	return &MockPlacesClient{
		responses:   make(map[string]*domain.PlacesSearchResponse),
		errors:      make(map[string]error),
		defaultResp: &domain.PlacesSearchResponse{Status: domain.PlacesStatusZeroResults},
	}
}

func (m *MockPlacesClient) TextSearch(ctx context.Context, query string, location domain.Location, radiusMeters int) (*domain.PlacesSearchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queries = append(m.queries, query)
	m.locations = append(m.locations, location)
	m.radii = append(m.radii, radiusMeters)

	if err, ok := m.errors[query]; ok {
		return nil, err
	}
	if resp, ok := m.responses[query]; ok {
		return resp, nil
	}
	return m.defaultResp, nil
}

func (m *MockPlacesClient) Configured() bool {
	return !m.unconfigured
}

func (m *MockPlacesClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

// MockLocationStore is a mock implementation of domain.LocationStore
type MockLocationStore struct {
	mu   sync.Mutex
	data map[string]domain.Location
}

func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{data: make(map[string]domain.Location)}
}

func (m *MockLocationStore) Get(ctx context.Context, sessionID string) (domain.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if loc, ok := m.data[sessionID]; ok {
		return loc, nil
	}
	return domain.Location{}, domain.ErrSessionNotFound
}

func (m *MockLocationStore) Set(ctx context.Context, sessionID string, location domain.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[sessionID] = location
	return nil
}

func (m *MockLocationStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	return nil
}

func okPlaces(names ...string) *domain.PlacesSearchResponse {
	resp := &domain.PlacesSearchResponse{Status: domain.PlacesStatusOK}
	for _, n := range names {
		resp.Results = append(resp.Results, domain.PlaceResult{
			Name:             n,
			FormattedAddress: n + " address",
			PlaceID:          "id-" + n,
		})
	}
	return resp
}
