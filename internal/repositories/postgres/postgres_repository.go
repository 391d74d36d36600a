// Package postgres implements the repository interfaces on gorm. Despite the
// name the same implementation serves SQLite; the driver is selected at
// connection time and nothing here is Postgres-specific.
package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sajjaly-pro/school-service/internal/repositories"
)

// GormRepository implements the main Repository interface.
type GormRepository struct {
	db          *gorm.DB
	redisClient *redis.Client

	user    repositories.UserRepository
	school  repositories.SchoolRepository
	student repositories.StudentRepository
	subject repositories.SubjectRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewRepository creates the repository manager with all sub-repositories.
func NewRepository(config RepositoryConfig) repositories.Repository {
	return newRepository(config.DB, config.RedisClient)
}

func newRepository(db *gorm.DB, redisClient *redis.Client) *GormRepository {
	return &GormRepository{
		db:          db,
		redisClient: redisClient,
		user:        NewUserRepository(db),
		school:      NewSchoolRepository(db, redisClient),
		student:     NewStudentRepository(db, redisClient),
		subject:     NewSubjectRepository(db, redisClient),
	}
}

func (r *GormRepository) User() repositories.UserRepository       { return r.user }
func (r *GormRepository) School() repositories.SchoolRepository   { return r.school }
func (r *GormRepository) Student() repositories.StudentRepository { return r.student }
func (r *GormRepository) Subject() repositories.SubjectRepository { return r.subject }

// WithTransaction runs fn against a transaction-scoped repository. The
// transactional sub-repositories skip the cache so a rollback never leaves
// stale entries behind.
func (r *GormRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepository(tx, nil))
	})
}

func (r *GormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *GormRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}

// handleDBError wraps store errors with the failed operation while keeping
// the underlying gorm sentinels reachable through errors.Is.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}
