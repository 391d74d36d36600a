package repositories

import (
	"context"

	"github.com/sajjaly-pro/school-service/internal/models"
)

// Repository aggregates the per-entity repositories.
type Repository interface {
	User() UserRepository
	School() SchoolRepository
	Student() StudentRepository
	Subject() SubjectRepository

	// WithTransaction runs fn against a transaction-scoped Repository,
	// committing when fn returns nil and rolling back otherwise.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string, role models.UserRole) (*models.User, error)
}

type SchoolRepository interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id uint) (*models.School, error)
	GetByCode(ctx context.Context, code string) (*models.School, error)
	List(ctx context.Context) ([]*models.School, error)
	// Update applies the mutable fields and returns the number of rows hit.
	Update(ctx context.Context, id uint, school *models.School) (int64, error)
	// Delete removes the school together with its students in one
	// transaction and returns the number of school rows deleted.
	Delete(ctx context.Context, id uint) (int64, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	// GetByCode joins the owning school so login responses can carry its name.
	GetByCode(ctx context.Context, code string) (*models.Student, error)
	ListBySchool(ctx context.Context, schoolID uint) ([]*models.Student, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id uint) (*models.Subject, error)
	ListBySchool(ctx context.Context, schoolID uint) ([]*models.Subject, error)
	// NamesBySchool returns the active subject names in creation order,
	// the list aggregates are computed against.
	NamesBySchool(ctx context.Context, schoolID uint) ([]string, error)
	Update(ctx context.Context, id uint, name string) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}
