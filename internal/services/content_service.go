package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"github.com/laksham-labs/assessment-portal/internal/validator"
	"gorm.io/gorm"
)

type contentService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewContentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) ContentService {
	return &contentService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

// ===== KEYED CONTENT =====

func (s *contentService) CreateContent(ctx context.Context, req *CreateContentRequest) (*models.Content, error) {
	s.logger.Info("Creating content", "key", req.Key)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	content := &models.Content{
		Key:         req.Key,
		Title:       req.Title,
		Content:     req.Content,
		ContentType: req.ContentType,
		Category:    req.Category,
		Language:    req.Language,
		IsActive:    true,
	}
	if content.ContentType == "" {
		content.ContentType = "markdown"
	}
	if content.Language == "" {
		content.Language = "en"
	}

	if err := s.repo.Content().Create(ctx, nil, content); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to create content: %w", err)
	}

	return content, nil
}

func (s *contentService) GetContent(ctx context.Context, key string) (*models.Content, error) {
	content, err := s.repo.Content().GetByKey(ctx, nil, key)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return content, nil
}

func (s *contentService) UpdateContent(ctx context.Context, key string, req *UpdateContentRequest) (*models.Content, error) {
	s.logger.Info("Updating content", "key", key)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	content, err := s.GetContent(ctx, key)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Content != nil {
		content.Content = *req.Content
	}
	if req.ContentType != nil {
		content.ContentType = *req.ContentType
	}
	if req.Category != nil {
		content.Category = *req.Category
	}
	if req.IsActive != nil {
		content.IsActive = *req.IsActive
	}
	content.UpdatedAt = time.Now()

	if err := s.repo.Content().Update(ctx, nil, content); err != nil {
		return nil, fmt.Errorf("failed to update content: %w", err)
	}

	return content, nil
}

func (s *contentService) ListContent(ctx context.Context, filters repositories.ContentFilters) ([]*models.Content, int64, error) {
	contents, total, err := s.repo.Content().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list content: %w", err)
	}
	return contents, total, nil
}

// ===== PAGES =====

func (s *contentService) CreatePage(ctx context.Context, req *CreatePageRequest) (*PageResponse, error) {
	s.logger.Info("Creating page", "slug", req.Slug)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	page := &models.Page{
		Slug:           req.Slug,
		Title:          req.Title,
		Description:    req.Description,
		Content:        req.Content,
		PageType:       req.PageType,
		Language:       req.Language,
		IsPublished:    req.IsPublished,
		SeoTitle:       req.SeoTitle,
		SeoDescription: req.SeoDescription,
	}
	if page.PageType == "" {
		page.PageType = "page"
	}
	if page.Language == "" {
		page.Language = "en"
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Page().Create(ctx, nil, page); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return ErrDuplicateKey
			}
			return fmt.Errorf("failed to create page: %w", err)
		}

		if len(req.Sections) > 0 {
			sections := buildSections(page.ID, req.Sections)
			if err := txRepo.Page().ReplaceSections(ctx, nil, page.ID, sections); err != nil {
				return fmt.Errorf("failed to create sections: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetPage(ctx, req.Slug)
}

func (s *contentService) GetPage(ctx context.Context, slug string) (*PageResponse, error) {
	page, err := s.repo.Page().GetBySlugWithSections(ctx, nil, slug)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return &PageResponse{Page: page}, nil
}

func (s *contentService) UpdatePage(ctx context.Context, slug string, req *UpdatePageRequest) (*PageResponse, error) {
	s.logger.Info("Updating page", "slug", slug)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	page, err := s.repo.Page().GetBySlug(ctx, nil, slug)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if req.Title != nil {
			page.Title = *req.Title
		}
		if req.Description != nil {
			page.Description = req.Description
		}
		if req.Content != nil {
			page.Content = req.Content
		}
		if req.IsPublished != nil {
			page.IsPublished = *req.IsPublished
		}
		if req.SeoTitle != nil {
			page.SeoTitle = req.SeoTitle
		}
		if req.SeoDescription != nil {
			page.SeoDescription = req.SeoDescription
		}
		page.UpdatedAt = time.Now()

		if err := txRepo.Page().Update(ctx, nil, page); err != nil {
			return fmt.Errorf("failed to update page: %w", err)
		}

		if req.Sections != nil {
			sections := buildSections(page.ID, req.Sections)
			if err := txRepo.Page().ReplaceSections(ctx, nil, page.ID, sections); err != nil {
				return fmt.Errorf("failed to replace sections: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetPage(ctx, slug)
}

func buildSections(pageID uint, reqs []validator.PageSectionRequest) []models.Section {
	sections := make([]models.Section, len(reqs))
	for i, sec := range reqs {
		sections[i] = models.Section{
			PageID:      pageID,
			SectionKey:  sec.SectionKey,
			Title:       sec.Title,
			Content:     sec.Content,
			ContentType: sec.ContentType,
			Order:       sec.Order,
			IsActive:    true,
		}
		if sections[i].ContentType == "" {
			sections[i].ContentType = "markdown"
		}
	}
	return sections
}
