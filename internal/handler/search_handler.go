package handler

import (
	"net/http"
	"time"

	"github.com/danwu/photo-search-go/internal/models"
	"github.com/danwu/photo-search-go/internal/service"
	"github.com/danwu/photo-search-go/pkg/response"
	"github.com/gin-gonic/gin"
)

// SearchHandler handles HTTP requests for free-text search
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// Search handles GET /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	// Default values
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 100
	}

	result, err := h.searchService.Search(req.Query, req.Page, req.PageSize)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// SearchClusters handles GET /api/v1/search/clusters
func (h *SearchHandler) SearchClusters(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	if req.RadiusKm < 0 {
		response.BadRequest(c, "radiusKm must be positive")
		return
	}

	result, err := h.searchService.SearchClusters(req.Query, req.RadiusKm)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// Timeline handles GET /api/v1/timeline
func (h *SearchHandler) Timeline(c *gin.Context) {
	var req models.TimelineRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid year parameter")
		return
	}

	if req.Year == 0 {
		req.Year = time.Now().Year()
	}
	if req.Year < 1900 || req.Year > 2200 {
		response.Error(c, http.StatusBadRequest, "Year out of range")
		return
	}

	result, err := h.searchService.Timeline(req.Year)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}
