package handler

import (
	"github.com/danwu/photo-search-go/internal/models"
	"github.com/danwu/photo-search-go/internal/service"
	"github.com/danwu/photo-search-go/pkg/response"
	"github.com/gin-gonic/gin"
)

// PhotoHandler handles HTTP requests for photo records
type PhotoHandler struct {
	photoService *service.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// List handles GET /api/v1/photos
func (h *PhotoHandler) List(c *gin.Context) {
	var filter models.PhotoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	// Default values
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}

	photos, total, err := h.photoService.List(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if photos == nil {
		photos = []models.Photo{}
	}

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	response.Success(c, models.PhotosResponse{
		Data:       photos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	})
}

// Get handles GET /api/v1/photos/:id
func (h *PhotoHandler) Get(c *gin.Context) {
	id := c.Param("id")

	photo, err := h.photoService.GetByID(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if photo == nil {
		response.NotFound(c, "Photo not found")
		return
	}

	response.Success(c, photo)
}

// Create handles POST /api/v1/photos
func (h *PhotoHandler) Create(c *gin.Context) {
	var photo models.Photo
	if err := c.ShouldBindJSON(&photo); err != nil {
		response.BadRequest(c, "Invalid photo payload")
		return
	}

	if err := h.photoService.Create(&photo); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, photo)
}
