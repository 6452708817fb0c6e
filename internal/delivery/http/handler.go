package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/priceradar/backend/internal/domain"
)

// SearchService is the slice of the usecase layer the handlers need
type SearchService interface {
	Search(ctx context.Context, rawInput string) (*domain.BatchResult, error)
	Retailers() []string
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService SearchService
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService SearchService) *Handler {
	return &Handler{searchService: searchService}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "priceradar-backend",
		"version": "1.0.0",
	})
}

// ListRetailers returns all retailers the scraper can search
func (h *Handler) ListRetailers(c *gin.Context) {
	retailers := h.searchService.Retailers()
	c.JSON(http.StatusOK, gin.H{
		"retailers": retailers,
		"count":     len(retailers),
	})
}

// SearchPrices runs a batch price search. The q parameter may name several
// products separated by comma, period or slash; each is searched across all
// retailers and answered with its own ranked offers.
func (h *Handler) SearchPrices(c *gin.Context) {
	raw := c.Query("q")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyBatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "no valid query: each product needs at least 2 characters"})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "search cancelled before completion"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"queries": len(result.Results),
		"dropped": result.Dropped,
		"results": result.Results,
	})
}
