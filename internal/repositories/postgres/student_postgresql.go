package postgres

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sajjaly-pro/school-service/internal/cache"
	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/repositories"
)

type studentRepository struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewStudentRepository(db *gorm.DB, redisClient *redis.Client) repositories.StudentRepository {
	return &studentRepository{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, cache.StudentCacheConfig.Prefix),
	}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return handleDBError(err, "create student")
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, handleDBError(err, "get student by id")
	}
	return &student, nil
}

// GetByCode serves the student login path. The owning school's name is
// attached for the login response; hits are cached by code.
func (r *studentRepository) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	var cached models.Student
	if err := r.cache.Get(ctx, codeKey(code), &cached); err == nil {
		return &cached, nil
	}

	var student models.Student
	if err := r.db.WithContext(ctx).Where("student_code = ?", code).First(&student).Error; err != nil {
		return nil, handleDBError(err, "get student by code")
	}

	var school models.School
	if err := r.db.WithContext(ctx).Select("name").First(&school, student.SchoolID).Error; err != nil {
		return nil, handleDBError(err, "get student school")
	}
	student.SchoolName = school.Name

	_ = r.cache.Set(ctx, codeKey(code), &student, cache.StudentCacheConfig.TTL)
	return &student, nil
}

func (r *studentRepository) ListBySchool(ctx context.Context, schoolID uint) ([]*models.Student, error) {
	var students []*models.Student
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("id").
		Find(&students).Error
	if err != nil {
		return nil, handleDBError(err, "list students by school")
	}
	return students, nil
}

// Update applies the given column set as a single statement and returns the
// number of rows hit. Partial updates of the record blobs go through here as
// one atomic write.
func (r *studentRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return 0, handleDBError(res.Error, "update student")
	}

	r.invalidate(ctx, id)
	return res.RowsAffected, nil
}

func (r *studentRepository) Delete(ctx context.Context, id uint) (int64, error) {
	r.invalidate(ctx, id)

	res := r.db.WithContext(ctx).Delete(&models.Student{}, id)
	if res.Error != nil {
		return 0, handleDBError(res.Error, "delete student")
	}
	return res.RowsAffected, nil
}

// CodeExists answers the advisory check of the code generator; a cached code
// entry proves existence without a store round trip.
func (r *studentRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	if hit, err := r.cache.Exists(ctx, codeKey(code)); err == nil && hit {
		return true, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("student_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, handleDBError(err, "check student code")
	}
	return count > 0, nil
}

func (r *studentRepository) invalidate(ctx context.Context, id uint) {
	var student models.Student
	if err := r.db.WithContext(ctx).Select("student_code").First(&student, id).Error; err != nil {
		return
	}
	cache.SafeDelete(ctx, r.cache, codeKey(student.StudentCode))
}
