package repositories

import (
	"context"
	"errors"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/models"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindAll retrieves projects matching the filter, ordered by sort order
// and then newest first
func (r *ProjectRepository) FindAll(ctx context.Context, filter dto.ProjectFilter) ([]models.Project, error) {
	projects := []models.Project{}
	query := r.db.WithContext(ctx).Model(&models.Project{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	result := query.Order("sort_order ASC").Order("created_at DESC").Find(&projects)
	return projects, result.Error
}

// FindByID retrieves a project by its ID
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (models.Project, error) {
	var project models.Project
	if !validID(id) {
		return project, ErrNotFound
	}
	result := r.db.WithContext(ctx).First(&project, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return project, ErrNotFound
	}
	return project, result.Error
}

// SlugTaken reports whether another project already uses slug
func (r *ProjectRepository) SlugTaken(ctx context.Context, slug, exceptID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Project{}).Where("slug = ?", slug)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update writes every field of an existing project. It never inserts: a row
// deleted since it was loaded yields ErrNotFound.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	if !validID(project.ID) {
		return ErrNotFound
	}
	result := r.db.WithContext(ctx).Model(project).Select("*").Updates(project)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a project permanently
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	result := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
