package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/sajjaly-pro/school-service/internal/codes"
	"github.com/sajjaly-pro/school-service/internal/events"
	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/records"
	"github.com/sajjaly-pro/school-service/internal/repositories"
	"github.com/sajjaly-pro/school-service/internal/validator"
)

type schoolService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewSchoolService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) SchoolService {
	return &schoolService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *schoolService) List(ctx context.Context) ([]*models.School, error) {
	return s.repo.School().List(ctx)
}

func (s *schoolService) Get(ctx context.Context, id uint) (*models.School, error) {
	school, err := s.repo.School().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("school")
		}
		return nil, err
	}
	return school, nil
}

// Create assigns a generated unique code before the insert. The unique index
// is the final arbiter: a duplicate-key insert (a code racing past the
// advisory check) triggers one regeneration and retry. The default subjects
// are seeded in the same transaction, so a new school never exists without
// its course list.
func (s *schoolService) Create(ctx context.Context, req *models.SchoolCreateRequest) (*models.School, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	school := &models.School{
		Name:       req.Name,
		StudyType:  req.StudyType,
		Level:      req.Level,
		GenderType: req.GenderType,
	}

	for attempt := 0; attempt < 2; attempt++ {
		code, err := codes.EnsureUnique(ctx, codes.SchoolPrefix, s.repo.School().CodeExists)
		if err != nil {
			return nil, fmt.Errorf("generate school code: %w", err)
		}
		school.Code = code

		err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
			if err := tx.School().Create(ctx, school); err != nil {
				return err
			}
			return seedDefaultSubjects(ctx, tx, school.ID)
		})
		if err == nil {
			break
		}
		if repositories.IsDuplicateError(err) && attempt == 0 {
			s.logger.Warn("school code collided on insert, regenerating", "code", code)
			continue
		}
		return nil, err
	}

	s.publish(ctx, events.SchoolCreated, map[string]interface{}{
		"school_id": school.ID,
		"code":      school.Code,
	})

	s.logger.Info("school created", "school_id", school.ID, "code", school.Code)
	return school, nil
}

func (s *schoolService) Update(ctx context.Context, id uint, req *models.SchoolUpdateRequest) (int64, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, err
	}

	updated, err := s.repo.School().Update(ctx, id, &models.School{
		Name:       req.Name,
		StudyType:  req.StudyType,
		Level:      req.Level,
		GenderType: req.GenderType,
	})
	if err != nil {
		return 0, err
	}
	if updated == 0 {
		return 0, NewNotFoundError("school")
	}

	s.publish(ctx, events.SchoolUpdated, map[string]interface{}{"school_id": id})
	return updated, nil
}

// Delete cascades to the school's students; the repository wraps the pair of
// deletes in one transaction.
func (s *schoolService) Delete(ctx context.Context, id uint) (int64, error) {
	deleted, err := s.repo.School().Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, NewNotFoundError("school")
	}

	s.publish(ctx, events.SchoolDeleted, map[string]interface{}{"school_id": id})
	s.logger.Info("school deleted", "school_id", id)
	return deleted, nil
}

// ExportRoster builds an XLSX workbook with one row per student, including
// the derived overall average.
func (s *schoolService) ExportRoster(ctx context.Context, id uint) ([]byte, string, error) {
	school, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	students, err := s.repo.Student().ListBySchool(ctx, id)
	if err != nil {
		return nil, "", err
	}
	subjects, err := s.repo.Subject().NamesBySchool(ctx, id)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Students"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"ID", "Full Name", "Student Code", "Grade", "Branch", "Room", "Overall Average"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("write header: %w", err)
		}
	}

	for row, student := range students {
		sheet1 := records.DecodeScores(student.DetailedScores)
		totals := records.TotalsAndAverages(sheet1, subjects)

		values := []interface{}{
			student.ID,
			student.FullName,
			student.StudentCode,
			student.Grade,
			student.Branch,
			student.Room,
			totals.OverallAverage,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}

	filename := fmt.Sprintf("students-%s.xlsx", school.Code)
	return buf.Bytes(), filename, nil
}

func seedDefaultSubjects(ctx context.Context, repo repositories.Repository, schoolID uint) error {
	for _, name := range models.DefaultSubjects {
		subject := &models.Subject{SchoolID: schoolID, Name: name}
		if err := repo.Subject().Create(ctx, subject); err != nil {
			return err
		}
	}
	return nil
}

func (s *schoolService) publish(ctx context.Context, eventType events.EventType, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, payload)); err != nil {
		s.logger.Warn("failed to publish audit event", "event", eventType, "error", err)
	}
}
