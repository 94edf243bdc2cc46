package domain

import "context"

// TextGenerator defines the interface for the generative-text completion API
type TextGenerator interface {
	// Generate returns the text of the first candidate, or "" when there is none.
	Generate(ctx context.Context, prompt string) (string, error)
	Configured() bool
}

// PlacesClient defines the interface for the places text-search API
type PlacesClient interface {
	TextSearch(ctx context.Context, query string, location Location, radiusMeters int) (*PlacesSearchResponse, error)
	Configured() bool
}

// LocationStore keeps the last known location per session
type LocationStore interface {
	Get(ctx context.Context, sessionID string) (Location, error)
	Set(ctx context.Context, sessionID string, location Location) error
	Delete(ctx context.Context, sessionID string) error
}
