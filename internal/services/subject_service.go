package services

import (
	"context"
	"log/slog"

	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/repositories"
	"github.com/sajjaly-pro/school-service/internal/validator"
)

type subjectService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSubjectService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) SubjectService {
	return &subjectService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *subjectService) ListBySchool(ctx context.Context, schoolID uint) ([]*models.Subject, error) {
	return s.repo.Subject().ListBySchool(ctx, schoolID)
}

// Create adds a subject to a school's course list. Renames and additions do
// not rewrite stored score keys; stale keys remain readable as history.
func (s *subjectService) Create(ctx context.Context, schoolID uint, req *models.SubjectCreateRequest) (*models.Subject, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.School().GetByID(ctx, schoolID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("school")
		}
		return nil, err
	}

	subject := &models.Subject{SchoolID: schoolID, Name: req.Name}
	if err := s.repo.Subject().Create(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info("subject created", "subject_id", subject.ID, "school_id", schoolID)
	return subject, nil
}

func (s *subjectService) Update(ctx context.Context, id uint, req *models.SubjectUpdateRequest) (int64, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, err
	}

	updated, err := s.repo.Subject().Update(ctx, id, req.Name)
	if err != nil {
		return 0, err
	}
	if updated == 0 {
		return 0, NewNotFoundError("subject")
	}
	return updated, nil
}

func (s *subjectService) Delete(ctx context.Context, id uint) (int64, error) {
	deleted, err := s.repo.Subject().Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, NewNotFoundError("subject")
	}
	return deleted, nil
}
