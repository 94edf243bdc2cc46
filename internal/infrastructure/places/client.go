package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/where2buy/backend/internal/domain"
	"github.com/where2buy/backend/internal/infrastructure/metrics"
	"github.com/where2buy/backend/internal/infrastructure/upstream"
)

// Options tunes the HTTP behaviour of the client
type Options struct {
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 = unlimited
	Burst             int
}

// Client handles communication with the Google Places text-search API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new Places API client
func NewClient(apiKey, baseURL string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: upstream.NewLimiter(opts.RequestsPerSecond, opts.Burst),
	}
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// TextSearch finds places matching query around location.
// A non-OK status in the payload is returned as-is with a nil error;
// callers decide what it means.
func (c *Client) TextSearch(ctx context.Context, query string, location domain.Location, radiusMeters int) (*domain.PlacesSearchResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Add("query", query)
	params.Add("location", fmt.Sprintf("%.6f,%.6f", location.Latitude, location.Longitude))
	params.Add("radius", strconv.Itoa(radiusMeters))
	params.Add("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/textsearch/json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", upstream.RedactURLError(err))
	}
	req.Header.Set("User-Agent", "where2buy/1.0")

	start := time.Now()
	// The text-search endpoint only accepts the key as a query parameter,
	// so transport errors are redacted before they leave this client.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(metrics.UpstreamPlaces, "transport_error", start)
		return nil, fmt.Errorf("failed to call places API: %w", upstream.RedactURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ObserveUpstream(metrics.UpstreamPlaces, "http_error", start)
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("places API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result domain.PlacesSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.ObserveUpstream(metrics.UpstreamPlaces, "decode_error", start)
		return nil, fmt.Errorf("failed to parse places response: %w", err)
	}
	metrics.ObserveUpstream(metrics.UpstreamPlaces, "ok", start)

	slog.DebugContext(ctx, "[PLACES] text search",
		"query", query,
		"status", result.Status,
		"results", len(result.Results))

	return &result, nil
}
