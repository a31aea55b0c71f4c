package postgres

import (
	"context"
	"fmt"

	"github.com/laksham-labs/assessment-portal/internal/cache"
	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type QuestionPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewQuestionPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.QuestionRepository {
	return &QuestionPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (q *QuestionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return q.db
}

// Create creates a new question and invalidates cache
func (q *QuestionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	db := q.getDB(tx)
	if err := db.WithContext(ctx).Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, q.cacheManager.Question, "list:*")
	cache.SafeInvalidatePattern(ctx, q.cacheManager.Question, "facets:*")

	return nil
}

// GetByID retrieves a question by ID with caching
func (q *QuestionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error) {
	db := q.getDB(tx)
	cacheKey := fmt.Sprintf("id:%d", id)
	var question models.Question

	err := q.cacheManager.Question.CacheOrExecute(ctx, cacheKey, &question, cache.QuestionCacheConfig.TTL, func() (interface{}, error) {
		var dbQuestion models.Question
		if err := db.WithContext(ctx).First(&dbQuestion, id).Error; err != nil {
			return nil, err
		}
		return &dbQuestion, nil
	})

	if err != nil {
		return nil, err
	}

	return &question, nil
}

func (q *QuestionPostgreSQL) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db := q.getDB(tx)
	var questions []*models.Question
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	return questions, nil
}

// Update updates a question and invalidates cache
func (q *QuestionPostgreSQL) Update(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	db := q.getDB(tx)
	if err := db.WithContext(ctx).Save(question).Error; err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}

	cache.InvalidateQuestionCache(ctx, q.cacheManager, question.ID)

	return nil
}

// Delete removes a question together with its assessment join rows
func (q *QuestionPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := q.getDB(tx)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Where("question_id = ?", id).Delete(&models.AssessmentQuestion{}).Error; err != nil {
			return fmt.Errorf("failed to delete question from assessment_questions: %w", err)
		}
		if err := tx.WithContext(ctx).Delete(&models.Question{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete question: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateQuestionCache(ctx, q.cacheManager, id)

	return nil
}

// List retrieves questions with filters and pagination
func (q *QuestionPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	db := q.getDB(tx)
	query := db.WithContext(ctx).Model(&models.Question{})

	query = q.applyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	query = query.Order("created_at DESC").Limit(limit).Offset(filters.Offset)

	var questions []*models.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

func (q *QuestionPostgreSQL) applyFilters(query *gorm.DB, filters repositories.QuestionFilters) *gorm.DB {
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.DifficultyLevel != nil {
		query = query.Where("difficulty_level = ?", *filters.DifficultyLevel)
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.ProgrammingLanguage != nil {
		query = query.Where("programming_language = ?", *filters.ProgrammingLanguage)
	}
	if filters.Search != nil && *filters.Search != "" {
		pattern := fmt.Sprintf("%%%s%%", *filters.Search)
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	return query
}

// ===== FACET LOOKUPS =====

func (q *QuestionPostgreSQL) DistinctCategories(ctx context.Context, tx *gorm.DB) ([]string, error) {
	return q.distinctColumn(ctx, tx, "category")
}

func (q *QuestionPostgreSQL) DistinctDifficultyLevels(ctx context.Context, tx *gorm.DB) ([]string, error) {
	return q.distinctColumn(ctx, tx, "difficulty_level")
}

func (q *QuestionPostgreSQL) DistinctProgrammingLanguages(ctx context.Context, tx *gorm.DB) ([]string, error) {
	return q.distinctColumn(ctx, tx, "programming_language")
}

func (q *QuestionPostgreSQL) distinctColumn(ctx context.Context, tx *gorm.DB, column string) ([]string, error) {
	db := q.getDB(tx)
	cacheKey := fmt.Sprintf("facets:%s", column)
	var values []string

	err := q.cacheManager.Question.CacheOrExecute(ctx, cacheKey, &values, cache.QuestionCacheConfig.TTL, func() (interface{}, error) {
		var dbValues []string
		err := db.WithContext(ctx).
			Model(&models.Question{}).
			Where("is_active = ?", true).
			Where(column + " IS NOT NULL AND " + column + " != ''").
			Distinct().
			Order(column + " ASC").
			Pluck(column, &dbValues).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get distinct %s: %w", column, err)
		}
		return &dbValues, nil
	})

	if err != nil {
		return nil, err
	}

	return values, nil
}
