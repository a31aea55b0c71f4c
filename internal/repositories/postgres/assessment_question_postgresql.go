package postgres

import (
	"context"
	"fmt"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"gorm.io/gorm"
)

type AssessmentQuestionPostgreSQL struct {
	db *gorm.DB
}

func NewAssessmentQuestionPostgreSQL(db *gorm.DB) repositories.AssessmentQuestionRepository {
	return &AssessmentQuestionPostgreSQL{db: db}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (aq *AssessmentQuestionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return aq.db
}

// CreateBatch inserts the full set of question rows for an assessment
func (aq *AssessmentQuestionPostgreSQL) CreateBatch(ctx context.Context, tx *gorm.DB, questions []models.AssessmentQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	db := aq.getDB(tx)
	if err := db.WithContext(ctx).Create(&questions).Error; err != nil {
		return fmt.Errorf("failed to create assessment questions: %w", err)
	}
	return nil
}

// GetByAssessment returns the question rows for an assessment in order
func (aq *AssessmentQuestionPostgreSQL) GetByAssessment(ctx context.Context, tx *gorm.DB, assessmentID uint) ([]*models.AssessmentQuestion, error) {
	db := aq.getDB(tx)
	var rows []*models.AssessmentQuestion
	err := db.WithContext(ctx).
		Preload("Question").
		Where("assessment_id = ?", assessmentID).
		Order("\"order\" ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment questions: %w", err)
	}
	return rows, nil
}

// GetByAssessmentAndQuestion finds the join row carrying the points and
// duration overrides for one question of an assessment.
func (aq *AssessmentQuestionPostgreSQL) GetByAssessmentAndQuestion(ctx context.Context, tx *gorm.DB, assessmentID, questionID uint) (*models.AssessmentQuestion, error) {
	db := aq.getDB(tx)
	var row models.AssessmentQuestion
	err := db.WithContext(ctx).
		Preload("Question").
		Where("assessment_id = ? AND question_id = ?", assessmentID, questionID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteByAssessment removes all question rows of an assessment, used when
// an update replaces the question set wholesale.
func (aq *AssessmentQuestionPostgreSQL) DeleteByAssessment(ctx context.Context, tx *gorm.DB, assessmentID uint) error {
	db := aq.getDB(tx)
	if err := db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Delete(&models.AssessmentQuestion{}).Error; err != nil {
		return fmt.Errorf("failed to delete assessment questions: %w", err)
	}
	return nil
}
