package repositories

import (
	"context"
	"errors"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/models"
	"gorm.io/gorm"
)

// TestimonyRepository handles database operations for testimonies
type TestimonyRepository struct {
	db *gorm.DB
}

// NewTestimonyRepository creates a new testimony repository instance
func NewTestimonyRepository(db *gorm.DB) *TestimonyRepository {
	return &TestimonyRepository{db: db}
}

// FindAll retrieves testimonies ordered by sort order, newest first
func (r *TestimonyRepository) FindAll(ctx context.Context, filter dto.TestimonyFilter) ([]models.Testimony, error) {
	testimonies := []models.Testimony{}
	query := r.db.WithContext(ctx).Model(&models.Testimony{})
	if filter.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}
	result := query.Order("sort_order ASC").Order("created_at DESC").Find(&testimonies)
	return testimonies, result.Error
}

// FindByID retrieves a testimony by its ID
func (r *TestimonyRepository) FindByID(ctx context.Context, id string) (models.Testimony, error) {
	var testimony models.Testimony
	if !validID(id) {
		return testimony, ErrNotFound
	}
	result := r.db.WithContext(ctx).First(&testimony, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return testimony, ErrNotFound
	}
	return testimony, result.Error
}

// Create inserts a new testimony
func (r *TestimonyRepository) Create(ctx context.Context, testimony *models.Testimony) error {
	return r.db.WithContext(ctx).Create(testimony).Error
}

// Update writes every field of an existing testimony. It never inserts: a row
// deleted since it was loaded yields ErrNotFound.
func (r *TestimonyRepository) Update(ctx context.Context, testimony *models.Testimony) error {
	if !validID(testimony.ID) {
		return ErrNotFound
	}
	result := r.db.WithContext(ctx).Model(testimony).Select("*").Updates(testimony)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a testimony permanently
func (r *TestimonyRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	result := r.db.WithContext(ctx).Delete(&models.Testimony{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
