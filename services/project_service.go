package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/lib/storage"
	"github.com/opsvix-api/models"
	"github.com/opsvix-api/repositories"
	"github.com/opsvix-api/utils"
)

// ProjectService handles business logic for portfolio projects
type ProjectService struct {
	repo   *repositories.ProjectRepository
	assets *assetManager
	logger hclog.Logger
}

// NewProjectService creates a new project service instance
func NewProjectService(repo *repositories.ProjectRepository, store storage.AssetStore, logger hclog.Logger) *ProjectService {
	logger = logger.Named("projects")
	return &ProjectService{
		repo:   repo,
		assets: &assetManager{store: store, logger: logger},
		logger: logger,
	}
}

// List retrieves projects matching the filter. Unless AllStatuses is set
// an empty status filter means published only.
func (s *ProjectService) List(ctx context.Context, filter dto.ProjectFilter) ([]models.Project, error) {
	if filter.Status != "" && !models.ProjectStatus(filter.Status).Valid() {
		return nil, validationErrorf("Status must be one of: %s, %s", models.ProjectStatusDraft, models.ProjectStatusPublished)
	}
	if filter.Status == "" && !filter.AllStatuses {
		filter.Status = string(models.ProjectStatusPublished)
	}
	return s.repo.FindAll(ctx, filter)
}

// Get retrieves a project by its ID
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Project")
	}
	return &project, nil
}

// Create validates the input, uploads the attached files and stores the project
func (s *ProjectService) Create(ctx context.Context, input dto.ProjectInput, uploads dto.ProjectUploads) (*models.Project, error) {
	project := models.Project{Technologies: models.StringList{}, Images: models.AssetList{}}
	applyProjectInput(&project, input)
	if err := s.validate(ctx, &project); err != nil {
		return nil, err
	}
	if err := checkProjectUploads(uploads); err != nil {
		return nil, err
	}

	thumbnail, images, err := s.uploadFiles(ctx, uploads)
	if err != nil {
		return nil, err
	}
	if thumbnail != nil {
		project.Thumbnail = *thumbnail
	}
	project.Images = append(project.Images, images...)

	if err := s.repo.Create(ctx, &project); err != nil {
		s.assets.discard(ctx, project.Assets())
		return nil, err
	}

	s.logger.Info("project created", "id", project.ID, "slug", project.Slug)
	return &project, nil
}

// Update applies the submitted fields. A new thumbnail replaces the old one,
// which is purged once the record is saved; new images are appended.
func (s *ProjectService) Update(ctx context.Context, id string, input dto.ProjectInput, uploads dto.ProjectUploads) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Project")
	}

	applyProjectInput(&project, input)
	if err := s.validate(ctx, &project); err != nil {
		return nil, err
	}
	if err := checkProjectUploads(uploads); err != nil {
		return nil, err
	}

	thumbnail, images, err := s.uploadFiles(ctx, uploads)
	if err != nil {
		return nil, err
	}

	var replaced []models.Asset
	if thumbnail != nil {
		if project.Thumbnail.PublicID != "" {
			replaced = append(replaced, project.Thumbnail)
		}
		project.Thumbnail = *thumbnail
	}
	project.Images = append(project.Images, images...)

	if err := s.repo.Update(ctx, &project); err != nil {
		fresh := images
		if thumbnail != nil {
			fresh = append([]models.Asset{*thumbnail}, images...)
		}
		s.assets.discard(ctx, fresh)
		return nil, mapNotFound(err, "Project")
	}

	s.assets.discard(ctx, replaced)
	s.logger.Info("project updated", "id", project.ID)
	return &project, nil
}

// Delete purges every asset of the project and then removes the record.
// When a purge fails the record is kept and an AssetPurgeError is returned.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapNotFound(err, "Project")
	}

	if err := s.assets.purge(ctx, project.Assets()); err != nil {
		s.logger.Error("project delete aborted", "id", id, "error", err)
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, "Project")
	}

	s.logger.Info("project deleted", "id", id)
	return nil
}

// RemoveImage purges one gallery image and stores the remaining list
func (s *ProjectService) RemoveImage(ctx context.Context, id, publicID string) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Project")
	}

	remaining := make(models.AssetList, 0, len(project.Images))
	var target []models.Asset
	for _, img := range project.Images {
		if img.PublicID == publicID {
			target = append(target, img)
			continue
		}
		remaining = append(remaining, img)
	}
	if len(target) == 0 {
		return nil, &NotFoundError{Resource: "Image"}
	}

	if err := s.assets.purge(ctx, target); err != nil {
		return nil, err
	}

	project.Images = remaining
	if err := s.repo.Update(ctx, &project); err != nil {
		return nil, mapNotFound(err, "Project")
	}

	s.logger.Info("project image removed", "id", id, "asset", publicID)
	return &project, nil
}

func (s *ProjectService) validate(ctx context.Context, p *models.Project) error {
	if p.Title == "" {
		return &ValidationError{Message: "Title is required"}
	}
	if utf8.RuneCountInString(p.Title) > models.MaxProjectTitleLength {
		return validationErrorf("Title cannot exceed %d characters", models.MaxProjectTitleLength)
	}
	if utf8.RuneCountInString(p.ShortDescription) > models.MaxProjectShortDescriptionLength {
		return validationErrorf("Short description cannot exceed %d characters", models.MaxProjectShortDescriptionLength)
	}
	if !p.Status.Valid() {
		return validationErrorf("Status must be one of: %s, %s", models.ProjectStatusDraft, models.ProjectStatusPublished)
	}

	slug := utils.Slugify(p.Title)
	if slug == "" {
		return &ValidationError{Message: "Title must contain at least one letter or digit"}
	}
	taken, err := s.repo.SlugTaken(ctx, slug, p.ID)
	if err != nil {
		return err
	}
	if taken {
		return validationErrorf("A project with the slug %q already exists", slug)
	}
	return nil
}

func (s *ProjectService) uploadFiles(ctx context.Context, uploads dto.ProjectUploads) (*models.Asset, []models.Asset, error) {
	var thumbnail *models.Asset
	if uploads.Thumbnail != nil {
		uploaded, err := s.assets.upload(ctx, storage.ProjectFolder, *uploads.Thumbnail)
		if err != nil {
			return nil, nil, err
		}
		thumbnail = &uploaded[0]
	}

	images, err := s.assets.upload(ctx, storage.ProjectFolder, uploads.Images...)
	if err != nil {
		if thumbnail != nil {
			s.assets.discard(ctx, []models.Asset{*thumbnail})
		}
		return nil, nil, err
	}
	return thumbnail, images, nil
}

func checkProjectUploads(uploads dto.ProjectUploads) error {
	if len(uploads.Images) > MaxProjectImages {
		return validationErrorf("A maximum of %d images can be uploaded at once", MaxProjectImages)
	}
	if uploads.Thumbnail != nil {
		if err := checkUploads(storage.ProjectFolder, *uploads.Thumbnail); err != nil {
			return err
		}
	}
	return checkUploads(storage.ProjectFolder, uploads.Images...)
}

func applyProjectInput(p *models.Project, in dto.ProjectInput) {
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ShortDescription != nil {
		p.ShortDescription = strings.TrimSpace(*in.ShortDescription)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Technologies != nil {
		p.Technologies = utils.SplitList(*in.Technologies)
	}
	if in.LiveURL != nil {
		p.LiveURL = strings.TrimSpace(*in.LiveURL)
	}
	if in.GithubURL != nil {
		p.GithubURL = strings.TrimSpace(*in.GithubURL)
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.Status != nil {
		p.Status = models.ProjectStatus(strings.TrimSpace(*in.Status))
	}
	if in.Order != nil {
		p.Order = *in.Order
	}
	if p.Status == "" {
		p.Status = models.ProjectStatusPublished
	}
}
