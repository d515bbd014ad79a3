package services

import (
	"context"
	"errors"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/models"
	"github.com/opsvix-api/repositories"
)

// EnquiryService handles the contact enquiry workflow
type EnquiryService struct {
	repo   *repositories.EnquiryRepository
	logger hclog.Logger
}

// NewEnquiryService creates a new enquiry service instance
func NewEnquiryService(repo *repositories.EnquiryRepository, logger hclog.Logger) *EnquiryService {
	return &EnquiryService{
		repo:   repo,
		logger: logger.Named("enquiries"),
	}
}

// Create stores a contact form submission with status new
func (s *EnquiryService) Create(ctx context.Context, req dto.CreateEnquiryRequest) (*models.Enquiry, error) {
	enquiry := models.Enquiry{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
		Status:  models.EnquiryStatusNew,
	}
	if enquiry.Name == "" || enquiry.Email == "" || enquiry.Message == "" {
		return nil, &ValidationError{Message: "Name, email, and message are required"}
	}

	if err := s.repo.Create(ctx, &enquiry); err != nil {
		return nil, err
	}

	s.logger.Info("enquiry received", "id", enquiry.ID)
	return &enquiry, nil
}

// List returns enquiries newest first; an empty status returns all of them
func (s *EnquiryService) List(ctx context.Context, status string) ([]models.Enquiry, error) {
	filter := models.EnquiryStatus(status)
	if filter != "" && !filter.Valid() {
		return nil, invalidStatusError()
	}
	return s.repo.FindAll(ctx, filter)
}

// Get returns one enquiry without changing its status
func (s *EnquiryService) Get(ctx context.Context, id string) (*models.Enquiry, error) {
	enquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Enquiry")
	}
	return &enquiry, nil
}

// SetStatus moves an enquiry to the given status and returns the result.
// The status is validated before storage is touched.
func (s *EnquiryService) SetStatus(ctx context.Context, id, status string) (*models.Enquiry, error) {
	next := models.EnquiryStatus(status)
	if !next.Valid() {
		return nil, invalidStatusError()
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, mapNotFound(err, "Enquiry")
	}

	s.logger.Debug("enquiry status updated", "id", id, "status", next)
	return s.Get(ctx, id)
}

// Delete removes an enquiry permanently
func (s *EnquiryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, "Enquiry")
	}
	s.logger.Info("enquiry deleted", "id", id)
	return nil
}

// Stats counts enquiries per status
func (s *EnquiryService) Stats(ctx context.Context) (dto.EnquiryStats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return dto.EnquiryStats{}, err
	}

	stats := dto.EnquiryStats{
		New:     counts[models.EnquiryStatusNew],
		Read:    counts[models.EnquiryStatusRead],
		Replied: counts[models.EnquiryStatusReplied],
	}
	stats.Total = stats.New + stats.Read + stats.Replied
	return stats, nil
}

// InvalidStatusMessage is the answer to a status outside the workflow
func InvalidStatusMessage() string {
	names := make([]string, 0, len(models.EnquiryStatuses))
	for _, st := range models.EnquiryStatuses {
		names = append(names, string(st))
	}
	return "Status must be one of: " + strings.Join(names, ", ")
}

func invalidStatusError() error {
	return &ValidationError{Message: InvalidStatusMessage()}
}

func mapNotFound(err error, resource string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return &NotFoundError{Resource: resource}
	}
	return err
}
