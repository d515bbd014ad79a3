package repositories

import (
	"context"
	"errors"

	"github.com/opsvix-api/models"
	"gorm.io/gorm"
)

// EnquiryRepository handles database operations for enquiries
type EnquiryRepository struct {
	db *gorm.DB
}

// NewEnquiryRepository creates a new enquiry repository instance
func NewEnquiryRepository(db *gorm.DB) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

// Create inserts a new enquiry
func (r *EnquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	return r.db.WithContext(ctx).Create(enquiry).Error
}

// FindAll retrieves enquiries newest first, optionally with one status only
func (r *EnquiryRepository) FindAll(ctx context.Context, status models.EnquiryStatus) ([]models.Enquiry, error) {
	enquiries := []models.Enquiry{}
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	result := query.Find(&enquiries)
	return enquiries, result.Error
}

// FindByID retrieves an enquiry by its ID
func (r *EnquiryRepository) FindByID(ctx context.Context, id string) (models.Enquiry, error) {
	var enquiry models.Enquiry
	if !validID(id) {
		return enquiry, ErrNotFound
	}
	result := r.db.WithContext(ctx).First(&enquiry, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return enquiry, ErrNotFound
	}
	return enquiry, result.Error
}

// UpdateStatus sets the status of an enquiry. Writing the current value
// again is not an error.
func (r *EnquiryRepository) UpdateStatus(ctx context.Context, id string, status models.EnquiryStatus) error {
	if !validID(id) {
		return ErrNotFound
	}
	result := r.db.WithContext(ctx).Model(&models.Enquiry{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// some drivers report zero rows when the value is unchanged
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Enquiry{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes an enquiry permanently
func (r *EnquiryRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	result := r.db.WithContext(ctx).Delete(&models.Enquiry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns the number of enquiries per status
func (r *EnquiryRepository) CountByStatus(ctx context.Context) (map[models.EnquiryStatus]int64, error) {
	var rows []struct {
		Status models.EnquiryStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Enquiry{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.EnquiryStatus]int64, len(models.EnquiryStatuses))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
