package services

import (
	"context"

	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/records"
)

// AuthService is the access gate: it verifies presented credentials and
// issues role-scoped session tokens.
type AuthService interface {
	AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (*models.AdminLoginResponse, error)
	SchoolLogin(ctx context.Context, req *models.CodeLoginRequest) (*models.SchoolLoginResponse, error)
	StudentLogin(ctx context.Context, req *models.CodeLoginRequest) (*models.StudentLoginResponse, error)
	VerifyToken(tokenString string) (*Claims, error)
}

type SchoolService interface {
	List(ctx context.Context) ([]*models.School, error)
	Get(ctx context.Context, id uint) (*models.School, error)
	Create(ctx context.Context, req *models.SchoolCreateRequest) (*models.School, error)
	Update(ctx context.Context, id uint, req *models.SchoolUpdateRequest) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	// ExportRoster renders the school's students as an XLSX workbook.
	ExportRoster(ctx context.Context, id uint) ([]byte, string, error)
}

type StudentService interface {
	ListBySchool(ctx context.Context, schoolID uint) ([]*models.Student, error)
	Get(ctx context.Context, id uint) (*models.Student, error)
	Create(ctx context.Context, schoolID uint, req *models.StudentCreateRequest) (*models.Student, error)
	Update(ctx context.Context, id uint, req *models.StudentUpdateRequest) (int64, error)
	UpdateRecords(ctx context.Context, id uint, req *models.StudentRecordsRequest) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type SubjectService interface {
	ListBySchool(ctx context.Context, schoolID uint) ([]*models.Subject, error)
	Create(ctx context.Context, schoolID uint, req *models.SubjectCreateRequest) (*models.Subject, error)
	Update(ctx context.Context, id uint, req *models.SubjectUpdateRequest) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

// SubjectReport is one row of a student report: the subject's period scores,
// the grade currently representing it, and the derived result.
type SubjectReport struct {
	Name   string               `json:"name"`
	Scores records.PeriodScores `json:"scores"`
	Latest records.LatestGrade  `json:"latest"`
	Result records.Result       `json:"result"`
}

// AttendanceDay is one dated attendance entry, most recent first in reports.
type AttendanceDay struct {
	Date     string                                 `json:"date"`
	Subjects map[string]records.AttendanceStatus `json:"subjects"`
}

// StudentReport is the on-demand aggregate view over a student's embedded
// records. It is computed per request and never persisted.
type StudentReport struct {
	StudentID  uint            `json:"student_id"`
	FullName   string          `json:"full_name"`
	Grade      string          `json:"grade"`
	Subjects   []SubjectReport `json:"subjects"`
	Totals     records.Totals  `json:"totals"`
	Attendance []AttendanceDay `json:"attendance"`
}

type ReportService interface {
	GetStudentReport(ctx context.Context, studentID uint) (*StudentReport, error)
}

// ServiceManager wires and hands out all service instances.
type ServiceManager interface {
	Auth() AuthService
	School() SchoolService
	Student() StudentService
	Subject() SubjectService
	Report() ReportService

	// Initialize performs first-boot work, today the seed admin account.
	Initialize(ctx context.Context) error
}
