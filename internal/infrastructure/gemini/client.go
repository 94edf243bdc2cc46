package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/where2buy/backend/internal/domain"
	"github.com/where2buy/backend/internal/infrastructure/metrics"
	"github.com/where2buy/backend/internal/infrastructure/upstream"
)

// apiKeyHeader carries the key so it never appears in request URLs
const apiKeyHeader = "x-goog-api-key"

// Options tunes the HTTP behaviour of the client
type Options struct {
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 = unlimited
	Burst             int
}

// Client handles communication with the Gemini generateContent API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Gemini API client
func NewClient(apiKey, baseURL, model string, opts Options) *Client {
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
		model:       model,
		rateLimiter: upstream.NewLimiter(opts.RequestsPerSecond, opts.Burst),
	}
}

// SetDebug enables logging of raw model output
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends a single-turn prompt and returns the first candidate's first part text.
// An empty string is returned when the response carries no candidates.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "where2buy/1.0")
	req.Header.Set(apiKeyHeader, c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = upstream.RedactURLError(err)
		metrics.ObserveUpstream(metrics.UpstreamGemini, "transport_error", start)
		slog.ErrorContext(ctx, "[GEMINI] request failed", "error", err)
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveUpstream(metrics.UpstreamGemini, "read_error", start)
		slog.ErrorContext(ctx, "[GEMINI] failed to read response body",
			"status", resp.StatusCode,
			"error", err)
		return "", fmt.Errorf("%w: failed to read response: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ObserveUpstream(metrics.UpstreamGemini, "http_error", start)
		slog.ErrorContext(ctx, "[GEMINI] API error",
			"status", resp.StatusCode,
			"body", string(respBody))
		return "", fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		metrics.ObserveUpstream(metrics.UpstreamGemini, "decode_error", start)
		slog.ErrorContext(ctx, "[GEMINI] JSON decode error", "error", err)
		return "", fmt.Errorf("%w: failed to decode response: %v", domain.ErrUpstream, err)
	}
	metrics.ObserveUpstream(metrics.UpstreamGemini, "ok", start)

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		slog.WarnContext(ctx, "[GEMINI] response had no candidates")
		return "", nil
	}

	text := genResp.Candidates[0].Content.Parts[0].Text
	if c.debug {
		slog.DebugContext(ctx, "[GEMINI] raw output", "text", text)
	}
	return text, nil
}
