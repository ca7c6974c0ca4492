package repository

import (
	"gorm.io/gorm"

	"ftcportal/internal/models"
)

// GormGuideRepository is a GORM implementation of GuideRepository
type GormGuideRepository struct {
	db *gorm.DB
}

// NewGuideRepository creates a new GuideRepository
func NewGuideRepository(db *gorm.DB) GuideRepository {
	return &GormGuideRepository{db: db}
}

// Create inserts a new guide topic
func (r *GormGuideRepository) Create(guide *models.Guide) error {
	return r.db.Create(guide).Error
}

// FindByID finds a guide by ID
func (r *GormGuideRepository) FindByID(id uint) (*models.Guide, error) {
	var guide models.Guide
	if err := r.db.First(&guide, id).Error; err != nil {
		return nil, err
	}
	return &guide, nil
}

// List returns guide topics ordered by name
func (r *GormGuideRepository) List() ([]models.Guide, error) {
	var guides []models.Guide
	err := r.db.Order("topic_name").Find(&guides).Error
	return guides, err
}

// AddVideo attaches a video to a guide
func (r *GormGuideRepository) AddVideo(video *models.GuideVideo) error {
	return r.db.Create(video).Error
}

// ListVideos returns a guide's videos in the order they were added
func (r *GormGuideRepository) ListVideos(guideID uint) ([]models.GuideVideo, error) {
	var videos []models.GuideVideo
	err := r.db.Where("guide_id = ?", guideID).Order("added_at, id").Find(&videos).Error
	return videos, err
}
