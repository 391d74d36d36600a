package services

import (
	"context"
	"log/slog"

	"github.com/sajjaly-pro/school-service/internal/records"
	"github.com/sajjaly-pro/school-service/internal/repositories"
)

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		logger: logger,
	}
}

// GetStudentReport computes the aggregate view over a student's embedded
// records against the school's active subject list. Decoding is total, so
// corrupt stored blobs degrade to an empty report instead of failing the
// request.
func (s *reportService) GetStudentReport(ctx context.Context, studentID uint) (*StudentReport, error) {
	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("student")
		}
		return nil, err
	}

	subjects, err := s.repo.Subject().NamesBySchool(ctx, student.SchoolID)
	if err != nil {
		return nil, err
	}

	sheet := records.DecodeScores(student.DetailedScores)
	sheet = records.EnsureSubjectEntries(sheet, subjects)

	subjectReports := make([]SubjectReport, 0, len(subjects))
	for _, name := range subjects {
		scores := sheet[name]
		latest := records.LatestNonzero(scores)
		subjectReports = append(subjectReports, SubjectReport{
			Name:   name,
			Scores: scores,
			Latest: latest,
			Result: records.Classify(latest),
		})
	}

	attendanceLog := records.DecodeAttendance(student.DailyAttendance)
	attendance := make([]AttendanceDay, 0, len(attendanceLog))
	for _, date := range records.SortedDates(attendanceLog) {
		attendance = append(attendance, AttendanceDay{
			Date:     date,
			Subjects: attendanceLog[date],
		})
	}

	return &StudentReport{
		StudentID:  student.ID,
		FullName:   student.FullName,
		Grade:      student.Grade,
		Subjects:   subjectReports,
		Totals:     records.TotalsAndAverages(sheet, subjects),
		Attendance: attendance,
	}, nil
}
