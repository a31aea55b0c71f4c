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

type AssessmentPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewAssessmentPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (a *AssessmentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}

// Create persists a new assessment together with its question rows
// (associations are saved by GORM) and invalidates affected cache entries.
func (a *AssessmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error {
	db := a.getDB(tx)
	if err := db.WithContext(ctx).Create(assessment).Error; err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, a.cacheManager.Assessment, fmt.Sprintf("creator:%d:*", assessment.CreatorID))
	cache.SafeInvalidatePattern(ctx, a.cacheManager.Assessment, "list:*")

	return nil
}

// GetByID retrieves an assessment by ID with caching
func (a *AssessmentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var assessment models.Assessment

	err := a.cacheManager.Assessment.CacheOrExecute(ctx, cacheKey, &assessment, cache.AssessmentCacheConfig.TTL, func() (interface{}, error) {
		var dbAssessment models.Assessment
		err := a.getDB(tx).WithContext(ctx).First(&dbAssessment, id).Error
		if err != nil {
			return nil, err
		}
		return &dbAssessment, nil
	})

	if err != nil {
		return nil, err
	}

	return &assessment, nil
}

// GetByIDWithQuestions retrieves an assessment with its ordered question rows
func (a *AssessmentPostgreSQL) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error) {
	cacheKey := fmt.Sprintf("details:%d", id)
	var assessment models.Assessment

	err := a.cacheManager.Assessment.CacheOrExecute(ctx, cacheKey, &assessment, cache.AssessmentCacheConfig.TTL, func() (interface{}, error) {
		var dbAssessment models.Assessment
		err := a.getDB(tx).WithContext(ctx).
			Preload("Questions", func(db *gorm.DB) *gorm.DB {
				return db.Order("assessment_questions.\"order\" ASC")
			}).
			Preload("Questions.Question").
			First(&dbAssessment, id).Error
		if err != nil {
			return nil, err
		}

		dbAssessment.QuestionCount = len(dbAssessment.Questions)
		return &dbAssessment, nil
	})

	if err != nil {
		return nil, err
	}

	return &assessment, nil
}

// GetByShareableLink resolves the public link to its assessment, questions
// preloaded in order. Not cached: link resolution precedes attempt writes.
func (a *AssessmentPostgreSQL) GetByShareableLink(ctx context.Context, tx *gorm.DB, link string) (*models.Assessment, error) {
	var assessment models.Assessment
	err := a.getDB(tx).WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("assessment_questions.\"order\" ASC")
		}).
		Preload("Questions.Question").
		Where("shareable_link = ?", link).
		First(&assessment).Error
	if err != nil {
		return nil, err
	}

	assessment.QuestionCount = len(assessment.Questions)
	return &assessment, nil
}

// Update writes the scalar columns of an assessment and invalidates cache.
// Question rows are managed separately through AssessmentQuestionRepository.
func (a *AssessmentPostgreSQL) Update(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error {
	db := a.getDB(tx)
	if err := db.WithContext(ctx).Model(&models.Assessment{}).Where("id = ?", assessment.ID).Updates(map[string]interface{}{
		"title":                assessment.Title,
		"shareable_link":       assessment.ShareableLink,
		"description":          assessment.Description,
		"kind":                 assessment.Kind,
		"programming_language": assessment.ProgrammingLanguage,
		"difficulty_level":     assessment.DifficultyLevel,
		"total_duration":       assessment.TotalDuration,
		"max_score":            assessment.MaxScore,
		"is_template":          assessment.IsTemplate,
		"is_active":            assessment.IsActive,
		"updated_at":           assessment.UpdatedAt,
	}).Error; err != nil {
		return fmt.Errorf("failed to update assessment: %w", err)
	}

	cache.InvalidateAssessmentCache(ctx, a.cacheManager, assessment.ID, assessment.CreatorID)

	return nil
}

// Delete hard deletes an assessment and its question rows
func (a *AssessmentPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := a.getDB(tx)

	var assessment models.Assessment
	if err := db.WithContext(ctx).Select("id, creator_id").First(&assessment, id).Error; err != nil {
		return err
	}

	if err := db.WithContext(ctx).
		Where("assessment_id = ?", id).
		Delete(&models.AssessmentQuestion{}).Error; err != nil {
		return fmt.Errorf("failed to delete assessment questions: %w", err)
	}

	if err := db.WithContext(ctx).Delete(&models.Assessment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	cache.InvalidateAssessmentCache(ctx, a.cacheManager, id, assessment.CreatorID)

	return nil
}

// List retrieves assessments with filters and pagination
func (a *AssessmentPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error) {
	query := a.getDB(tx).WithContext(ctx).Model(&models.Assessment{})

	query = a.helpers.ApplyAssessmentFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = a.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var assessments []*models.Assessment
	err := query.Preload("Questions").Find(&assessments).Error
	if err != nil {
		return nil, 0, err
	}

	for _, assessment := range assessments {
		assessment.QuestionCount = len(assessment.Questions)
	}

	return assessments, total, nil
}

// ExistsByShareableLink checks link uniqueness before assigning a new one
func (a *AssessmentPostgreSQL) ExistsByShareableLink(ctx context.Context, tx *gorm.DB, link string) (bool, error) {
	var count int64
	err := a.getDB(tx).WithContext(ctx).
		Model(&models.Assessment{}).
		Where("shareable_link = ?", link).
		Count(&count).Error

	return count > 0, err
}

// GetStats retrieves attempt and question statistics for an assessment
func (a *AssessmentPostgreSQL) GetStats(ctx context.Context, tx *gorm.DB, id uint) (*repositories.AssessmentStats, error) {
	db := a.getDB(tx)
	stats := &repositories.AssessmentStats{}

	totalAttempts, err := a.helpers.CountAttempts(ctx, id)
	if err != nil {
		return nil, err
	}

	completedAttempts, err := a.helpers.CountAttemptsByStatus(ctx, id, models.AttemptCompleted)
	if err != nil {
		return nil, err
	}

	expiredAttempts, err := a.helpers.CountAttemptsByStatus(ctx, id, models.AttemptExpired)
	if err != nil {
		return nil, err
	}

	var avgScore float64
	if completedAttempts > 0 {
		db.WithContext(ctx).
			Model(&models.AssessmentAttempt{}).
			Select("COALESCE(AVG(total_score), 0)").
			Where("assessment_id = ? AND status = ? AND total_score IS NOT NULL", id, models.AttemptCompleted).
			Row().
			Scan(&avgScore)
	}

	var questionCount, maxScore int64
	db.WithContext(ctx).
		Model(&models.AssessmentQuestion{}).
		Select("COUNT(*), COALESCE(SUM(points), 0)").
		Where("assessment_id = ?", id).
		Row().
		Scan(&questionCount, &maxScore)

	stats.TotalAttempts = int(totalAttempts)
	stats.CompletedAttempts = int(completedAttempts)
	stats.ExpiredAttempts = int(expiredAttempts)
	stats.AverageScore = avgScore
	stats.QuestionCount = int(questionCount)
	stats.MaxScore = int(maxScore)

	return stats, nil
}
