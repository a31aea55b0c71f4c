package repositories

import (
	"context"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"gorm.io/gorm"
)

type QuestionFilters struct {
	DifficultyLevel     *models.DifficultyLevel `json:"difficulty_level"`
	Category            *string                 `json:"category"`
	ProgrammingLanguage *string                 `json:"programming_language"`
	Search              *string                 `json:"search"` // ILIKE over title and description
	IsActive            *bool                   `json:"is_active"`
	Limit               int                     `json:"limit"`
	Offset              int                     `json:"offset"`
}

// QuestionRepository covers the question catalog and its facet lookups.
type QuestionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, question *models.Question) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Question, error)
	Update(ctx context.Context, tx *gorm.DB, question *models.Question) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	List(ctx context.Context, tx *gorm.DB, filters QuestionFilters) ([]*models.Question, int64, error)

	// Facet lookups over active questions.
	DistinctCategories(ctx context.Context, tx *gorm.DB) ([]string, error)
	DistinctDifficultyLevels(ctx context.Context, tx *gorm.DB) ([]string, error)
	DistinctProgrammingLanguages(ctx context.Context, tx *gorm.DB) ([]string, error)
}
