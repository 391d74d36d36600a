package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sajjaly-pro/school-service/internal/codes"
	"github.com/sajjaly-pro/school-service/internal/events"
	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/records"
	"github.com/sajjaly-pro/school-service/internal/repositories"
	"github.com/sajjaly-pro/school-service/internal/validator"
)

type studentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewStudentService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) StudentService {
	return &studentService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *studentService) ListBySchool(ctx context.Context, schoolID uint) ([]*models.Student, error) {
	return s.repo.Student().ListBySchool(ctx, schoolID)
}

func (s *studentService) Get(ctx context.Context, id uint) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("student")
		}
		return nil, err
	}
	return student, nil
}

// Create registers a student under an existing school. Both record blobs
// start as the canonical empty map; the generated code is immutable after
// this point.
func (s *studentService) Create(ctx context.Context, schoolID uint, req *models.StudentCreateRequest) (*models.Student, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.School().GetByID(ctx, schoolID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("school")
		}
		return nil, err
	}

	student := &models.Student{
		SchoolID:        schoolID,
		FullName:        req.FullName,
		Grade:           req.Grade,
		Branch:          req.Branch,
		Room:            req.Room,
		DetailedScores:  []byte(records.EmptyJSON),
		DailyAttendance: []byte(records.EmptyJSON),
	}

	for attempt := 0; attempt < 2; attempt++ {
		code, err := codes.EnsureUnique(ctx, codes.StudentPrefix, s.repo.Student().CodeExists)
		if err != nil {
			return nil, fmt.Errorf("generate student code: %w", err)
		}
		student.StudentCode = code

		err = s.repo.Student().Create(ctx, student)
		if err == nil {
			break
		}
		if repositories.IsDuplicateError(err) && attempt == 0 {
			s.logger.Warn("student code collided on insert, regenerating", "code", code)
			continue
		}
		return nil, err
	}

	s.publish(ctx, events.StudentCreated, map[string]interface{}{
		"student_id": student.ID,
		"school_id":  schoolID,
		"code":       student.StudentCode,
	})

	s.logger.Info("student created", "student_id", student.ID, "school_id", schoolID)
	return student, nil
}

// Update rewrites the profile fields and, when present in the request, the
// embedded record blobs, as a single statement.
func (s *studentService) Update(ctx context.Context, id uint, req *models.StudentUpdateRequest) (int64, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, err
	}

	fields := map[string]interface{}{
		"full_name": req.FullName,
		"grade":     req.Grade,
		"branch":    req.Branch,
		"room":      req.Room,
	}
	if req.DetailedScores != nil {
		fields["detailed_scores"] = encodeBlob(req.DetailedScores)
	}
	if req.DailyAttendance != nil {
		fields["daily_attendance"] = encodeBlob(req.DailyAttendance)
	}

	updated, err := s.repo.Student().Update(ctx, id, fields)
	if err != nil {
		return 0, err
	}
	if updated == 0 {
		return 0, NewNotFoundError("student")
	}

	s.publish(ctx, events.StudentUpdated, map[string]interface{}{"student_id": id})
	return updated, nil
}

// UpdateRecords replaces only the embedded academic records. Absent maps are
// stored as the canonical empty map, matching the column default.
func (s *studentService) UpdateRecords(ctx context.Context, id uint, req *models.StudentRecordsRequest) (int64, error) {
	fields := map[string]interface{}{
		"detailed_scores":  encodeBlob(req.DetailedScores),
		"daily_attendance": encodeBlob(req.DailyAttendance),
	}

	updated, err := s.repo.Student().Update(ctx, id, fields)
	if err != nil {
		return 0, err
	}
	if updated == 0 {
		return 0, NewNotFoundError("student")
	}

	s.publish(ctx, events.RecordsUpdated, map[string]interface{}{"student_id": id})
	return updated, nil
}

func (s *studentService) Delete(ctx context.Context, id uint) (int64, error) {
	deleted, err := s.repo.Student().Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, NewNotFoundError("student")
	}

	s.publish(ctx, events.StudentDeleted, map[string]interface{}{"student_id": id})
	s.logger.Info("student deleted", "student_id", id)
	return deleted, nil
}

// encodeBlob serializes a client-provided record structure. Nil maps become
// the canonical empty map; the stored shape is not policed here, the codec
// degrades malformed data to empty on read.
func encodeBlob(m map[string]interface{}) string {
	if m == nil {
		return records.EmptyJSON
	}
	data, err := json.Marshal(m)
	if err != nil {
		return records.EmptyJSON
	}
	return string(data)
}

func (s *studentService) publish(ctx context.Context, eventType events.EventType, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, payload)); err != nil {
		s.logger.Warn("failed to publish audit event", "event", eventType, "error", err)
	}
}
