package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brewdex/backend/internal/domain"
	"github.com/brewdex/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog *usecase.CatalogService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *usecase.CatalogService) *Handler {
	return &Handler{catalog: catalog}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "brewdex-backend",
		"version": "1.0.0",
	})
}

// MergeCatalog folds the posted source collections into canonical records
// and returns them together with the merge statistics. The merge is
// stateless; it never touches the loaded catalog.
func (h *Handler) MergeCatalog(c *gin.Context) {
	var req struct {
		Collections []domain.SourceCollection `json:"collections" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	records, stats, err := h.catalog.Merge(c.Request.Context(), req.Collections)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"stats":   stats,
	})
}

// SearchCatalog runs a producer/name query over the loaded records. Fuzzy
// matching is on unless the request turns it off.
func (h *Handler) SearchCatalog(c *gin.Context) {
	var req struct {
		Producer string `json:"producer"`
		Name     string `json:"name"`
		Fuzzy    *bool  `json:"fuzzy"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	fuzzy := true
	if req.Fuzzy != nil {
		fuzzy = *req.Fuzzy
	}

	results, err := h.catalog.Search(c.Request.Context(), domain.SearchQuery{
		Producer: req.Producer,
		Name:     req.Name,
		Fuzzy:    fuzzy,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}

// ListRecords returns the loaded canonical catalog and its merge statistics.
func (h *Handler) ListRecords(c *gin.Context) {
	records, stats, err := h.catalog.Canonical()
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"stats":   stats,
	})
}

// renderError maps domain errors onto HTTP status codes.
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCatalogNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog not loaded yet, try again later"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
