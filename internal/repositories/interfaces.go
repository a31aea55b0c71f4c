package repositories

import (
	"context"
	"time"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type AssessmentFilters struct {
	CreatorID  *uint      `json:"creator_id"`
	IsTemplate *bool      `json:"is_template"`
	IsActive   *bool      `json:"is_active"`
	DateFrom   *time.Time `json:"date_from"`
	DateTo     *time.Time `json:"date_to"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
	SortBy     string     `json:"sort_by"`    // "created_at", "title"
	SortOrder  string     `json:"sort_order"` // "asc", "desc"
}

type AttemptFilters struct {
	Status         *models.AttemptStatus `json:"status"`
	AssessmentID   *uint                 `json:"assessment_id"`
	CandidateEmail *string               `json:"candidate_email"`
	DateFrom       *time.Time            `json:"date_from"`
	DateTo         *time.Time            `json:"date_to"`
	Limit          int                   `json:"limit"`
	Offset         int                   `json:"offset"`
	SortBy         string                `json:"sort_by"`
	SortOrder      string                `json:"sort_order"`
}

// ===== SHARED STATISTICS STRUCTS =====

type AssessmentStats struct {
	TotalAttempts     int     `json:"total_attempts"`
	CompletedAttempts int     `json:"completed_attempts"`
	ExpiredAttempts   int     `json:"expired_attempts"`
	AverageScore      float64 `json:"average_score"`
	QuestionCount     int     `json:"question_count"`
	MaxScore          int     `json:"max_score"`
}

// ===== ASSESSMENT DOMAIN =====

type AssessmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error)
	GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error)
	GetByShareableLink(ctx context.Context, tx *gorm.DB, link string) (*models.Assessment, error)
	Update(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	List(ctx context.Context, tx *gorm.DB, filters AssessmentFilters) ([]*models.Assessment, int64, error)

	ExistsByShareableLink(ctx context.Context, tx *gorm.DB, link string) (bool, error)
	GetStats(ctx context.Context, tx *gorm.DB, id uint) (*AssessmentStats, error)
}

type AssessmentQuestionRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, questions []models.AssessmentQuestion) error
	GetByAssessment(ctx context.Context, tx *gorm.DB, assessmentID uint) ([]*models.AssessmentQuestion, error)
	GetByAssessmentAndQuestion(ctx context.Context, tx *gorm.DB, assessmentID, questionID uint) (*models.AssessmentQuestion, error)
	DeleteByAssessment(ctx context.Context, tx *gorm.DB, assessmentID uint) error
}

// ===== ATTEMPT DOMAIN =====

type AttemptRepository interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *models.AssessmentAttempt) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.AssessmentAttempt, error)
	GetByIDWithAnswers(ctx context.Context, tx *gorm.DB, id uint) (*models.AssessmentAttempt, error)
	Update(ctx context.Context, tx *gorm.DB, attempt *models.AssessmentAttempt) error

	List(ctx context.Context, tx *gorm.DB, filters AttemptFilters) ([]*models.AssessmentAttempt, int64, error)
	GetRecentByCreator(ctx context.Context, tx *gorm.DB, creatorID uint, limit int) ([]*models.AssessmentAttempt, error)
	GetByAssessment(ctx context.Context, tx *gorm.DB, assessmentID uint, filters AttemptFilters) ([]*models.AssessmentAttempt, int64, error)

	// GetExpiredCandidates returns in_progress attempts whose deadline
	// (started_at + assessment total_duration + grace) has passed.
	GetExpiredCandidates(ctx context.Context, tx *gorm.DB, grace time.Duration, limit int) ([]*models.AssessmentAttempt, error)
}

type AnswerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, answer *models.AssessmentAnswer) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.AssessmentAnswer, error)
	GetByAttemptAndQuestion(ctx context.Context, tx *gorm.DB, attemptID, questionID uint) (*models.AssessmentAnswer, error)
	GetByAttempt(ctx context.Context, tx *gorm.DB, attemptID uint) ([]models.AssessmentAnswer, error)
	Update(ctx context.Context, tx *gorm.DB, answer *models.AssessmentAnswer) error
}
