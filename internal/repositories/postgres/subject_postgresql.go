package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sajjaly-pro/school-service/internal/cache"
	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/repositories"
)

type subjectRepository struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewSubjectRepository(db *gorm.DB, redisClient *redis.Client) repositories.SubjectRepository {
	return &subjectRepository{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, cache.SubjectCacheConfig.Prefix),
	}
}

func (r *subjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if err := r.db.WithContext(ctx).Create(subject).Error; err != nil {
		return handleDBError(err, "create subject")
	}
	cache.SafeDelete(ctx, r.cache, namesKey(subject.SchoolID))
	return nil
}

func (r *subjectRepository) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := r.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, handleDBError(err, "get subject by id")
	}
	return &subject, nil
}

func (r *subjectRepository) ListBySchool(ctx context.Context, schoolID uint) ([]*models.Subject, error) {
	var subjects []*models.Subject
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("id").
		Find(&subjects).Error
	if err != nil {
		return nil, handleDBError(err, "list subjects by school")
	}
	return subjects, nil
}

// NamesBySchool feeds every report computation, so the name list is cached
// per school and invalidated on any subject mutation.
func (r *subjectRepository) NamesBySchool(ctx context.Context, schoolID uint) ([]string, error) {
	var cached []string
	if err := r.cache.Get(ctx, namesKey(schoolID), &cached); err == nil {
		return cached, nil
	}

	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Subject{}).
		Where("school_id = ?", schoolID).
		Order("id").
		Pluck("name", &names).Error
	if err != nil {
		return nil, handleDBError(err, "list subject names")
	}

	_ = r.cache.Set(ctx, namesKey(schoolID), names, cache.SubjectCacheConfig.TTL)
	return names, nil
}

func (r *subjectRepository) Update(ctx context.Context, id uint, name string) (int64, error) {
	r.invalidate(ctx, id)

	res := r.db.WithContext(ctx).
		Model(&models.Subject{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return 0, handleDBError(res.Error, "update subject")
	}
	return res.RowsAffected, nil
}

func (r *subjectRepository) Delete(ctx context.Context, id uint) (int64, error) {
	r.invalidate(ctx, id)

	res := r.db.WithContext(ctx).Delete(&models.Subject{}, id)
	if res.Error != nil {
		return 0, handleDBError(res.Error, "delete subject")
	}
	return res.RowsAffected, nil
}

func (r *subjectRepository) invalidate(ctx context.Context, id uint) {
	var subject models.Subject
	if err := r.db.WithContext(ctx).Select("school_id").First(&subject, id).Error; err != nil {
		return
	}
	cache.SafeDelete(ctx, r.cache, namesKey(subject.SchoolID))
}

func namesKey(schoolID uint) string {
	return fmt.Sprintf("names:%d", schoolID)
}
