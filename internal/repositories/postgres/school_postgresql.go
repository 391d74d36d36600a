package postgres

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sajjaly-pro/school-service/internal/cache"
	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/repositories"
)

type schoolRepository struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewSchoolRepository(db *gorm.DB, redisClient *redis.Client) repositories.SchoolRepository {
	return &schoolRepository{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, cache.SchoolCacheConfig.Prefix),
	}
}

func (r *schoolRepository) Create(ctx context.Context, school *models.School) error {
	if err := r.db.WithContext(ctx).Create(school).Error; err != nil {
		return handleDBError(err, "create school")
	}
	return nil
}

func (r *schoolRepository) GetByID(ctx context.Context, id uint) (*models.School, error) {
	var school models.School
	if err := r.db.WithContext(ctx).First(&school, id).Error; err != nil {
		return nil, handleDBError(err, "get school by id")
	}
	return &school, nil
}

// GetByCode serves the school login path; hits are cached by code.
func (r *schoolRepository) GetByCode(ctx context.Context, code string) (*models.School, error) {
	var cached models.School
	if err := r.cache.Get(ctx, codeKey(code), &cached); err == nil {
		return &cached, nil
	}

	var school models.School
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&school).Error; err != nil {
		return nil, handleDBError(err, "get school by code")
	}

	_ = r.cache.Set(ctx, codeKey(code), &school, cache.SchoolCacheConfig.TTL)
	return &school, nil
}

func (r *schoolRepository) List(ctx context.Context) ([]*models.School, error) {
	var schools []*models.School
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&schools).Error
	if err != nil {
		return nil, handleDBError(err, "list schools")
	}
	return schools, nil
}

func (r *schoolRepository) Update(ctx context.Context, id uint, school *models.School) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.School{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":        school.Name,
			"study_type":  school.StudyType,
			"level":       school.Level,
			"gender_type": school.GenderType,
		})
	if res.Error != nil {
		return 0, handleDBError(res.Error, "update school")
	}

	r.invalidate(ctx, id)
	return res.RowsAffected, nil
}

// Delete removes the school and its students inside one transaction, so a
// failure mid-way never leaves orphaned students behind.
func (r *schoolRepository) Delete(ctx context.Context, id uint) (int64, error) {
	r.invalidate(ctx, id)

	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("school_id = ?", id).Delete(&models.Student{}).Error; err != nil {
			return err
		}
		if err := tx.Where("school_id = ?", id).Delete(&models.Subject{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.School{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, handleDBError(err, "delete school")
	}
	return deleted, nil
}

// CodeExists answers the advisory check of the code generator. A cached code
// entry proves existence without touching the store; only a cache miss falls
// through to the count.
func (r *schoolRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	if hit, err := r.cache.Exists(ctx, codeKey(code)); err == nil && hit {
		return true, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.School{}).
		Where("code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, handleDBError(err, "check school code")
	}
	return count > 0, nil
}

// invalidate drops the cached code entry for a school row about to change.
func (r *schoolRepository) invalidate(ctx context.Context, id uint) {
	var school models.School
	if err := r.db.WithContext(ctx).Select("code").First(&school, id).Error; err != nil {
		return
	}
	cache.SafeDelete(ctx, r.cache, codeKey(school.Code))
}

func codeKey(code string) string {
	return "code:" + code
}
