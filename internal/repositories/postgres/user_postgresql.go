package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"gorm.io/gorm"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u *UserPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return u.db
}

func (u *UserPostgreSQL) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := u.getDB(tx)
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	db := u.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	db := u.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := u.getDB(tx)
	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (u *UserPostgreSQL) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	db := u.getDB(tx)
	var count int64
	err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// ===== VERIFICATION TOKENS =====

type VerificationTokenPostgreSQL struct {
	db *gorm.DB
}

func NewVerificationTokenPostgreSQL(db *gorm.DB) repositories.VerificationTokenRepository {
	return &VerificationTokenPostgreSQL{db: db}
}

func (v *VerificationTokenPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return v.db
}

func (v *VerificationTokenPostgreSQL) Create(ctx context.Context, tx *gorm.DB, token *models.VerificationToken) error {
	db := v.getDB(tx)
	if err := db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}
	return nil
}

func (v *VerificationTokenPostgreSQL) GetByHash(ctx context.Context, tx *gorm.DB, tokenHash string) (*models.VerificationToken, error) {
	db := v.getDB(tx)
	var token models.VerificationToken
	if err := db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (v *VerificationTokenPostgreSQL) MarkConsumed(ctx context.Context, tx *gorm.DB, id uint, when time.Time) error {
	db := v.getDB(tx)
	return db.WithContext(ctx).
		Model(&models.VerificationToken{}).
		Where("id = ?", id).
		Update("consumed_at", when).Error
}

// DeleteExpired purges tokens past their TTL, returning the rows removed.
func (v *VerificationTokenPostgreSQL) DeleteExpired(ctx context.Context, tx *gorm.DB, before time.Time) (int64, error) {
	db := v.getDB(tx)
	result := db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&models.VerificationToken{})
	return result.RowsAffected, result.Error
}
