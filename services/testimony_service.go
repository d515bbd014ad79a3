package services

import (
	"context"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/lib/storage"
	"github.com/opsvix-api/models"
	"github.com/opsvix-api/repositories"
)

// TestimonyService handles business logic for client testimonies
type TestimonyService struct {
	repo   *repositories.TestimonyRepository
	assets *assetManager
	logger hclog.Logger
}

// NewTestimonyService creates a new testimony service instance
func NewTestimonyService(repo *repositories.TestimonyRepository, store storage.AssetStore, logger hclog.Logger) *TestimonyService {
	logger = logger.Named("testimonies")
	return &TestimonyService{
		repo:   repo,
		assets: &assetManager{store: store, logger: logger},
		logger: logger,
	}
}

// List retrieves testimonies ordered by sort order, newest first
func (s *TestimonyService) List(ctx context.Context, filter dto.TestimonyFilter) ([]models.Testimony, error) {
	return s.repo.FindAll(ctx, filter)
}

// Get retrieves a testimony by its ID
func (s *TestimonyService) Get(ctx context.Context, id string) (*models.Testimony, error) {
	testimony, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Testimony")
	}
	return &testimony, nil
}

// Create validates the input, uploads the avatar and stores the testimony
func (s *TestimonyService) Create(ctx context.Context, input dto.TestimonyInput, avatar *dto.FileUpload) (*models.Testimony, error) {
	testimony := models.Testimony{Rating: models.DefaultRating}
	applyTestimonyInput(&testimony, input)
	if err := validateTestimony(&testimony); err != nil {
		return nil, err
	}

	uploaded, err := s.uploadAvatar(ctx, avatar)
	if err != nil {
		return nil, err
	}
	if uploaded != nil {
		testimony.Avatar = *uploaded
	}

	if err := s.repo.Create(ctx, &testimony); err != nil {
		if uploaded != nil {
			s.assets.discard(ctx, []models.Asset{*uploaded})
		}
		return nil, mapNotFound(err, "Testimony")
	}

	s.logger.Info("testimony created", "id", testimony.ID)
	return &testimony, nil
}

// Update applies the submitted fields. A new avatar replaces the old one,
// which is purged once the record is saved.
func (s *TestimonyService) Update(ctx context.Context, id string, input dto.TestimonyInput, avatar *dto.FileUpload) (*models.Testimony, error) {
	testimony, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Testimony")
	}

	applyTestimonyInput(&testimony, input)
	if err := validateTestimony(&testimony); err != nil {
		return nil, err
	}

	uploaded, err := s.uploadAvatar(ctx, avatar)
	if err != nil {
		return nil, err
	}

	var replaced []models.Asset
	if uploaded != nil {
		if testimony.Avatar.PublicID != "" {
			replaced = append(replaced, testimony.Avatar)
		}
		testimony.Avatar = *uploaded
	}

	if err := s.repo.Update(ctx, &testimony); err != nil {
		if uploaded != nil {
			s.assets.discard(ctx, []models.Asset{*uploaded})
		}
		return nil, mapNotFound(err, "Testimony")
	}

	s.assets.discard(ctx, replaced)
	s.logger.Info("testimony updated", "id", id)
	return &testimony, nil
}

// Delete purges the avatar and then removes the record. When the purge
// fails the record is kept and an AssetPurgeError is returned.
func (s *TestimonyService) Delete(ctx context.Context, id string) error {
	testimony, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapNotFound(err, "Testimony")
	}

	if err := s.assets.purge(ctx, []models.Asset{testimony.Avatar}); err != nil {
		s.logger.Error("testimony delete aborted", "id", id, "error", err)
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, "Testimony")
	}

	s.logger.Info("testimony deleted", "id", id)
	return nil
}

func (s *TestimonyService) uploadAvatar(ctx context.Context, avatar *dto.FileUpload) (*models.Asset, error) {
	if avatar == nil {
		return nil, nil
	}
	if err := checkUploads(storage.AvatarFolder, *avatar); err != nil {
		return nil, err
	}
	uploaded, err := s.assets.upload(ctx, storage.AvatarFolder, *avatar)
	if err != nil {
		return nil, err
	}
	return &uploaded[0], nil
}

func validateTestimony(t *models.Testimony) error {
	if t.Name == "" || t.Content == "" {
		return &ValidationError{Message: "Name and content are required"}
	}
	if t.Rating < models.MinRating || t.Rating > models.MaxRating {
		return validationErrorf("Rating must be between %d and %d", models.MinRating, models.MaxRating)
	}
	return nil
}

func applyTestimonyInput(t *models.Testimony, in dto.TestimonyInput) {
	if in.Name != nil {
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		t.Role = strings.TrimSpace(*in.Role)
	}
	if in.Company != nil {
		t.Company = strings.TrimSpace(*in.Company)
	}
	if in.Content != nil {
		t.Content = strings.TrimSpace(*in.Content)
	}
	if in.Rating != nil {
		t.Rating = *in.Rating
	}
	if in.Featured != nil {
		t.Featured = *in.Featured
	}
	if in.Order != nil {
		t.Order = *in.Order
	}
}
