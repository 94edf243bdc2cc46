package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/where2buy/backend/internal/domain"
	"github.com/where2buy/backend/internal/infrastructure/metrics"
	"github.com/where2buy/backend/internal/usecase"
)

const (
	serviceName    = "where2buy-backend"
	serviceVersion = "1.0.0"

	sessionHeader = "X-Session-ID"
)

// Client-facing error messages. Details stay in the server log.
const (
	msgInvalidRequest = "Text and user location are required"
	msgNotConfigured  = "API keys are not configured"
	msgUpstream       = "Failed to process request with AI"
	msgParse          = "Failed to parse AI response"
	msgNoItems        = "No valid items found in the request"
	msgServerError    = "Server error"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService *usecase.SearchService
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService *usecase.SearchService) *Handler {
	return &Handler{
		searchService: searchService,
	}
}

// Root is the plain-text liveness probe
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Hello from the API!")
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// Search handles shopping list search requests
// POST /search
func (h *Handler) Search(c *gin.Context) {
	if h.searchService == nil {
		h.respondError(c, domain.ErrConfiguration)
		return
	}

	var req domain.ShoppingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "[SEARCH] invalid request body",
			"request_id", requestID(c),
			"error", err)
		metrics.SearchErrorsTotal.WithLabelValues("validation").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), c.GetHeader(sessionHeader), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SaveLocation stores the caller's location for later searches
// PUT /location
func (h *Handler) SaveLocation(c *gin.Context) {
	if h.searchService == nil {
		h.respondError(c, domain.ErrConfiguration)
		return
	}

	var loc domain.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	if err := h.searchService.SaveLocation(c.Request.Context(), c.GetHeader(sessionHeader), &loc); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearLocation forgets the caller's stored location
// DELETE /location
func (h *Handler) ClearLocation(c *gin.Context) {
	if h.searchService == nil {
		h.respondError(c, domain.ErrConfiguration)
		return
	}

	if err := h.searchService.ClearLocation(c.Request.Context(), c.GetHeader(sessionHeader)); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondError maps domain errors to a status code and a fixed message
func (h *Handler) respondError(c *gin.Context, err error) {
	status, kind, message := classifyError(err)

	slog.ErrorContext(c.Request.Context(), "[SEARCH] request failed",
		"request_id", requestID(c),
		"kind", kind,
		"status", status,
		"error", err)
	metrics.SearchErrorsTotal.WithLabelValues(kind).Inc()

	c.JSON(status, gin.H{"error": message})
}

func classifyError(err error) (status int, kind, message string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "validation", msgInvalidRequest
	case errors.Is(err, domain.ErrNoItems):
		return http.StatusBadRequest, "no_items", msgNoItems
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusInternalServerError, "configuration", msgNotConfigured
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusInternalServerError, "upstream", msgUpstream
	case errors.Is(err, domain.ErrParse):
		return http.StatusInternalServerError, "parse", msgParse
	default:
		return http.StatusInternalServerError, "internal", msgServerError
	}
}
