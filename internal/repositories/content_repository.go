package repositories

import (
	"context"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"gorm.io/gorm"
)

type ContentFilters struct {
	Category *string `json:"category"`
	Language *string `json:"language"`
	IsActive *bool   `json:"is_active"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
}

type ContentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, content *models.Content) error
	GetByKey(ctx context.Context, tx *gorm.DB, key string) (*models.Content, error)
	Update(ctx context.Context, tx *gorm.DB, content *models.Content) error

	List(ctx context.Context, tx *gorm.DB, filters ContentFilters) ([]*models.Content, int64, error)
}

type PageRepository interface {
	Create(ctx context.Context, tx *gorm.DB, page *models.Page) error
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*models.Page, error)
	GetBySlugWithSections(ctx context.Context, tx *gorm.DB, slug string) (*models.Page, error)
	Update(ctx context.Context, tx *gorm.DB, page *models.Page) error

	ReplaceSections(ctx context.Context, tx *gorm.DB, pageID uint, sections []models.Section) error
}
