package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (a *AttemptPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}

func (a *AttemptPostgreSQL) Create(ctx context.Context, tx *gorm.DB, attempt *models.AssessmentAttempt) error {
	db := a.getDB(tx)
	return db.WithContext(ctx).Create(attempt).Error
}

func (a *AttemptPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.AssessmentAttempt, error) {
	db := a.getDB(tx)
	var attempt models.AssessmentAttempt
	if err := db.WithContext(ctx).Preload("Assessment").First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a *AttemptPostgreSQL) GetByIDWithAnswers(ctx context.Context, tx *gorm.DB, id uint) (*models.AssessmentAttempt, error) {
	db := a.getDB(tx)
	var attempt models.AssessmentAttempt
	if err := db.WithContext(ctx).
		Preload("Assessment").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("assessment_answers.question_id ASC")
		}).
		First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a *AttemptPostgreSQL) Update(ctx context.Context, tx *gorm.DB, attempt *models.AssessmentAttempt) error {
	db := a.getDB(tx)
	return db.WithContext(ctx).Save(attempt).Error
}

func (a *AttemptPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.AttemptFilters) ([]*models.AssessmentAttempt, int64, error) {
	db := a.getDB(tx)
	var attempts []*models.AssessmentAttempt
	var total int64

	query := db.WithContext(ctx).Model(&models.AssessmentAttempt{})
	query = a.helpers.ApplyAttemptFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = a.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Preload("Assessment").Find(&attempts).Error; err != nil {
		return nil, 0, err
	}

	return attempts, total, nil
}

func (a *AttemptPostgreSQL) GetByAssessment(ctx context.Context, tx *gorm.DB, assessmentID uint, filters repositories.AttemptFilters) ([]*models.AssessmentAttempt, int64, error) {
	filters.AssessmentID = &assessmentID
	return a.List(ctx, tx, filters)
}

// GetRecentByCreator lists the newest attempts across all assessments owned
// by a creator.
func (a *AttemptPostgreSQL) GetRecentByCreator(ctx context.Context, tx *gorm.DB, creatorID uint, limit int) ([]*models.AssessmentAttempt, error) {
	db := a.getDB(tx)
	var attempts []*models.AssessmentAttempt
	err := db.WithContext(ctx).
		Joins("JOIN assessments ON assessments.id = assessment_attempts.assessment_id").
		Where("assessments.creator_id = ?", creatorID).
		Order("assessment_attempts.started_at DESC").
		Limit(limit).
		Preload("Assessment").
		Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent attempts: %w", err)
	}
	return attempts, nil
}

// GetExpiredCandidates finds in_progress attempts whose allotted time,
// taken from the owning assessment, ran out before now minus grace.
func (a *AttemptPostgreSQL) GetExpiredCandidates(ctx context.Context, tx *gorm.DB, grace time.Duration, limit int) ([]*models.AssessmentAttempt, error) {
	db := a.getDB(tx)
	var attempts []*models.AssessmentAttempt
	cutoff := time.Now().Add(-grace)
	err := db.WithContext(ctx).
		Joins("JOIN assessments ON assessments.id = assessment_attempts.assessment_id").
		Where("assessment_attempts.status = ?", models.AttemptInProgress).
		Where("assessment_attempts.started_at + (assessments.total_duration * interval '1 minute') < ?", cutoff).
		Limit(limit).
		Preload("Assessment").
		Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get expired attempts: %w", err)
	}
	return attempts, nil
}
