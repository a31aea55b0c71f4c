package postgres

import (
	"context"
	"fmt"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"gorm.io/gorm"
)

type ContentPostgreSQL struct {
	db *gorm.DB
}

func NewContentPostgreSQL(db *gorm.DB) repositories.ContentRepository {
	return &ContentPostgreSQL{db: db}
}

func (c *ContentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return c.db
}

func (c *ContentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, content *models.Content) error {
	db := c.getDB(tx)
	if err := db.WithContext(ctx).Create(content).Error; err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}
	return nil
}

func (c *ContentPostgreSQL) GetByKey(ctx context.Context, tx *gorm.DB, key string) (*models.Content, error) {
	db := c.getDB(tx)
	var content models.Content
	if err := db.WithContext(ctx).Where("key = ?", key).First(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (c *ContentPostgreSQL) Update(ctx context.Context, tx *gorm.DB, content *models.Content) error {
	db := c.getDB(tx)
	if err := db.WithContext(ctx).Save(content).Error; err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}
	return nil
}

func (c *ContentPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.ContentFilters) ([]*models.Content, int64, error) {
	db := c.getDB(tx)
	query := db.WithContext(ctx).Model(&models.Content{})

	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.Language != nil {
		query = query.Where("language = ?", *filters.Language)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
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

	var contents []*models.Content
	if err := query.Order("key ASC").Find(&contents).Error; err != nil {
		return nil, 0, err
	}

	return contents, total, nil
}

// ===== PAGES =====

type PagePostgreSQL struct {
	db *gorm.DB
}

func NewPagePostgreSQL(db *gorm.DB) repositories.PageRepository {
	return &PagePostgreSQL{db: db}
}

func (p *PagePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return p.db
}

func (p *PagePostgreSQL) Create(ctx context.Context, tx *gorm.DB, page *models.Page) error {
	db := p.getDB(tx)
	if err := db.WithContext(ctx).Create(page).Error; err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	return nil
}

func (p *PagePostgreSQL) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*models.Page, error) {
	db := p.getDB(tx)
	var page models.Page
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (p *PagePostgreSQL) GetBySlugWithSections(ctx context.Context, tx *gorm.DB, slug string) (*models.Page, error) {
	db := p.getDB(tx)
	var page models.Page
	err := db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sections.\"order\" ASC")
		}).
		Where("slug = ?", slug).
		First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (p *PagePostgreSQL) Update(ctx context.Context, tx *gorm.DB, page *models.Page) error {
	db := p.getDB(tx)
	if err := db.WithContext(ctx).Save(page).Error; err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}
	return nil
}

// ReplaceSections swaps the full section set of a page in one pass.
func (p *PagePostgreSQL) ReplaceSections(ctx context.Context, tx *gorm.DB, pageID uint, sections []models.Section) error {
	db := p.getDB(tx)
	if err := db.WithContext(ctx).Where("page_id = ?", pageID).Delete(&models.Section{}).Error; err != nil {
		return fmt.Errorf("failed to delete page sections: %w", err)
	}
	if len(sections) == 0 {
		return nil
	}
	for i := range sections {
		sections[i].PageID = pageID
	}
	if err := db.WithContext(ctx).Create(&sections).Error; err != nil {
		return fmt.Errorf("failed to create page sections: %w", err)
	}
	return nil
}
