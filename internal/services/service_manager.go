package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/sajjaly-pro/school-service/internal/events"
	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/repositories"
	"github.com/sajjaly-pro/school-service/internal/validator"
)

// ServiceManagerConfig holds cross-service settings.
type ServiceManagerConfig struct {
	Auth AuthConfig

	// Seed admin created at first boot when absent.
	AdminUsername string
	AdminPassword string
}

type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	config    ServiceManagerConfig

	auth    AuthService
	school  SchoolService
	student StudentService
	subject SubjectService
	report  ReportService
}

// NewServiceManager wires all services over the shared repository.
func NewServiceManager(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	publisher events.EventPublisher,
	config ServiceManagerConfig,
) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
		config:    config,

		auth:    NewAuthService(repo, logger, v, config.Auth),
		school:  NewSchoolService(repo, logger, v, publisher),
		student: NewStudentService(repo, logger, v, publisher),
		subject: NewSubjectService(repo, logger, v),
		report:  NewReportService(repo, logger),
	}
}

func (m *serviceManager) Auth() AuthService       { return m.auth }
func (m *serviceManager) School() SchoolService   { return m.school }
func (m *serviceManager) Student() StudentService { return m.student }
func (m *serviceManager) Subject() SubjectService { return m.subject }
func (m *serviceManager) Report() ReportService   { return m.report }

// Initialize creates the seed admin account if it does not exist yet.
func (m *serviceManager) Initialize(ctx context.Context) error {
	_, err := m.repo.User().GetByUsername(ctx, m.config.AdminUsername, models.RoleAdmin)
	if err == nil {
		return nil
	}
	if !repositories.IsNotFoundError(err) {
		return fmt.Errorf("check seed admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(m.config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed admin password: %w", err)
	}

	admin := &models.User{
		Username:     m.config.AdminUsername,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := m.repo.User().Create(ctx, admin); err != nil {
		return fmt.Errorf("create seed admin: %w", err)
	}

	m.logger.Info("seed admin created", "username", m.config.AdminUsername)
	return nil
}
