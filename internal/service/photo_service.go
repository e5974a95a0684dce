package service

import (
	"github.com/google/uuid"

	"github.com/danwu/photo-search-go/internal/models"
	"github.com/danwu/photo-search-go/internal/repository"
)

// PhotoService handles business logic for photos
type PhotoService struct {
	repo *repository.PhotoRepository
}

// NewPhotoService creates a new photo service
func NewPhotoService(repo *repository.PhotoRepository) *PhotoService {
	return &PhotoService{repo: repo}
}

// List retrieves photos with filtering and pagination
func (s *PhotoService) List(filter models.PhotoFilter) ([]models.Photo, int64, error) {
	return s.repo.List(filter)
}

// GetByID retrieves a single photo by ID
func (s *PhotoService) GetByID(id string) (*models.Photo, error) {
	return s.repo.GetByID(id)
}

// Create stores a photo record, assigning an id when none is given
func (s *PhotoService) Create(p *models.Photo) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return s.repo.Insert(p)
}
