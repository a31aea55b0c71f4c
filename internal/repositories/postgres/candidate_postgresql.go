package postgres

import (
	"context"
	"fmt"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"gorm.io/gorm"
)

type CandidatePostgreSQL struct {
	db *gorm.DB
}

func NewCandidatePostgreSQL(db *gorm.DB) repositories.CandidateRepository {
	return &CandidatePostgreSQL{db: db}
}

func (c *CandidatePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return c.db
}

func (c *CandidatePostgreSQL) Create(ctx context.Context, tx *gorm.DB, candidate *models.Candidate) error {
	db := c.getDB(tx)
	if err := db.WithContext(ctx).Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

func (c *CandidatePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Candidate, error) {
	db := c.getDB(tx)
	var candidate models.Candidate
	if err := db.WithContext(ctx).First(&candidate, id).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (c *CandidatePostgreSQL) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Candidate, error) {
	db := c.getDB(tx)
	var candidate models.Candidate
	if err := db.WithContext(ctx).Where("email = ?", email).First(&candidate).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (c *CandidatePostgreSQL) Update(ctx context.Context, tx *gorm.DB, candidate *models.Candidate) error {
	db := c.getDB(tx)
	if err := db.WithContext(ctx).Save(candidate).Error; err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	return nil
}

func (c *CandidatePostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := c.getDB(tx)
	return db.WithContext(ctx).Delete(&models.Candidate{}, id).Error
}

func (c *CandidatePostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.CandidateFilters) ([]*models.Candidate, int64, error) {
	db := c.getDB(tx)
	query := db.WithContext(ctx).Model(&models.Candidate{})

	if filters.Search != nil && *filters.Search != "" {
		pattern := fmt.Sprintf("%%%s%%", *filters.Search)
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var candidates []*models.Candidate
	if err := query.Order("id DESC").Find(&candidates).Error; err != nil {
		return nil, 0, err
	}

	return candidates, total, nil
}

func (c *CandidatePostgreSQL) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	db := c.getDB(tx)
	var count int64
	err := db.WithContext(ctx).
		Model(&models.Candidate{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}
