package repositories

import (
	"context"
	"time"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"gorm.io/gorm"
)

type CandidateFilters struct {
	Search *string `json:"search"` // name or email
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error

	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

type CandidateRepository interface {
	Create(ctx context.Context, tx *gorm.DB, candidate *models.Candidate) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Candidate, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Candidate, error)
	Update(ctx context.Context, tx *gorm.DB, candidate *models.Candidate) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	List(ctx context.Context, tx *gorm.DB, filters CandidateFilters) ([]*models.Candidate, int64, error)
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

// VerificationTokenRepository stores hashed email verification tokens with a
// TTL; expired rows are purged by the background sweeper.
type VerificationTokenRepository interface {
	Create(ctx context.Context, tx *gorm.DB, token *models.VerificationToken) error
	GetByHash(ctx context.Context, tx *gorm.DB, tokenHash string) (*models.VerificationToken, error)
	MarkConsumed(ctx context.Context, tx *gorm.DB, id uint, when time.Time) error
	DeleteExpired(ctx context.Context, tx *gorm.DB, before time.Time) (int64, error)
}
