package domain

import "errors"

var (
	// ErrValidation is returned when required input is missing or out of range
	ErrValidation = errors.New("invalid request parameters")

	// ErrConfiguration is returned when upstream API credentials are not configured
	ErrConfiguration = errors.New("API keys are not configured")

	// ErrUpstream is returned when the generative-text API request fails
	ErrUpstream = errors.New("generative-text API request failed")

	// ErrParse is returned when the model output is not valid JSON
	ErrParse = errors.New("failed to parse model output")

	// ErrNoItems is returned when extraction yields no usable items
	ErrNoItems = errors.New("no valid items found")

	// ErrOfflineResolution is returned when a nearby-store lookup fails.
	// It is recorded per item and never fails a request.
	ErrOfflineResolution = errors.New("offline store lookup failed")

	// ErrSessionNotFound is returned when no location is stored for a session
	ErrSessionNotFound = errors.New("session location not found")
)
