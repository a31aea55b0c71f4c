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

type assessmentService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAssessmentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) AssessmentService {
	return &assessmentService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *assessmentService) Create(ctx context.Context, req *CreateAssessmentRequest, creatorID uint) (*AssessmentResponse, error) {
	s.logger.Info("Creating assessment", "creator_id", creatorID, "title", req.Title)

	// Validate request with business rules
	if errors := s.validator.GetBusinessValidator().ValidateAssessmentCreate(req); len(errors) > 0 {
		return nil, errors
	}

	// Every referenced question must exist before anything is persisted
	questions, err := s.resolveQuestions(ctx, req.Questions)
	if err != nil {
		return nil, err
	}

	link, err := s.generateShareableLink(ctx)
	if err != nil {
		return nil, err
	}

	var assessment *models.Assessment
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		assessment = &models.Assessment{
			Title:               req.Title,
			Description:         req.Description,
			CreatorID:           creatorID,
			ShareableLink:       link,
			Kind:                req.Kind,
			ProgrammingLanguage: req.ProgrammingLanguage,
			DifficultyLevel:     req.DifficultyLevel,
			IsTemplate:          req.IsTemplate,
			IsActive:            true,
		}
		if assessment.Kind == "" {
			assessment.Kind = models.KindStandard
		}

		if err := txRepo.Assessment().Create(ctx, nil, assessment); err != nil {
			return fmt.Errorf("failed to create assessment: %w", err)
		}

		joins := buildQuestionJoins(assessment.ID, req.Questions, questions)
		if err := txRepo.AssessmentQuestion().CreateBatch(ctx, nil, joins); err != nil {
			return fmt.Errorf("failed to attach questions: %w", err)
		}

		assessment.Questions = joins
		assessment.RecomputeAggregates()

		if err := txRepo.Assessment().Update(ctx, nil, assessment); err != nil {
			return fmt.Errorf("failed to store aggregates: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Assessment created successfully", "assessment_id", assessment.ID, "shareable_link", assessment.ShareableLink)

	return s.GetByIDWithDetails(ctx, assessment.ID, creatorID)
}

func (s *assessmentService) GetByID(ctx context.Context, id uint, userID uint) (*AssessmentResponse, error) {
	assessment, err := s.getOwned(ctx, id, userID, false)
	if err != nil {
		return nil, err
	}

	return s.buildAssessmentResponse(assessment), nil
}

func (s *assessmentService) GetByIDWithDetails(ctx context.Context, id uint, userID uint) (*AssessmentResponse, error) {
	assessment, err := s.getOwned(ctx, id, userID, true)
	if err != nil {
		return nil, err
	}

	return s.buildAssessmentResponse(assessment), nil
}

func (s *assessmentService) Update(ctx context.Context, id uint, req *UpdateAssessmentRequest, userID uint) (*AssessmentResponse, error) {
	s.logger.Info("Updating assessment", "assessment_id", id, "user_id", userID)

	if errors := s.validator.GetBusinessValidator().ValidateAssessmentUpdate(req); len(errors) > 0 {
		return nil, errors
	}

	assessment, err := s.getOwned(ctx, id, userID, true)
	if err != nil {
		return nil, err
	}

	var questions map[uint]*models.Question
	if req.Questions != nil {
		questions, err = s.resolveQuestions(ctx, req.Questions)
		if err != nil {
			return nil, err
		}
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		applyAssessmentUpdates(assessment, req)

		if req.Questions != nil {
			if err := txRepo.AssessmentQuestion().DeleteByAssessment(ctx, nil, id); err != nil {
				return fmt.Errorf("failed to clear question list: %w", err)
			}

			joins := buildQuestionJoins(id, req.Questions, questions)
			if err := txRepo.AssessmentQuestion().CreateBatch(ctx, nil, joins); err != nil {
				return fmt.Errorf("failed to attach questions: %w", err)
			}
			assessment.Questions = joins
		}

		assessment.RecomputeAggregates()
		assessment.UpdatedAt = time.Now()

		if err := txRepo.Assessment().Update(ctx, nil, assessment); err != nil {
			return fmt.Errorf("failed to update assessment: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Assessment updated successfully", "assessment_id", id)

	return s.GetByIDWithDetails(ctx, id, userID)
}

func (s *assessmentService) Delete(ctx context.Context, id uint, userID uint) error {
	s.logger.Info("Deleting assessment", "assessment_id", id, "user_id", userID)

	if _, err := s.getOwned(ctx, id, userID, false); err != nil {
		return err
	}

	if err := s.repo.Assessment().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	s.logger.Info("Assessment deleted successfully", "assessment_id", id)
	return nil
}

// ===== LIST OPERATIONS =====

func (s *assessmentService) List(ctx context.Context, filters repositories.AssessmentFilters, userID uint) (*AssessmentListResponse, error) {
	// Creators only ever see their own assessments
	filters.CreatorID = &userID

	assessments, total, err := s.repo.Assessment().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	response := &AssessmentListResponse{
		Assessments: make([]*AssessmentResponse, len(assessments)),
		Total:       total,
		Page:        (filters.Offset / max(filters.Limit, 1)) + 1,
		Size:        filters.Limit,
	}

	for i, assessment := range assessments {
		response.Assessments[i] = s.buildAssessmentResponse(assessment)
	}

	return response, nil
}

// ===== COMPOSITION OPERATIONS =====

func (s *assessmentService) Copy(ctx context.Context, id uint, userID uint) (*AssessmentResponse, error) {
	s.logger.Info("Copying assessment", "assessment_id", id, "user_id", userID)

	source, err := s.getOwned(ctx, id, userID, true)
	if err != nil {
		return nil, err
	}

	link, err := s.generateShareableLink(ctx)
	if err != nil {
		return nil, err
	}

	var copy *models.Assessment
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		copy = &models.Assessment{
			Title:               source.Title + " (Copy)",
			Description:         source.Description,
			CreatorID:           userID,
			ShareableLink:       link,
			Kind:                source.Kind,
			ProgrammingLanguage: source.ProgrammingLanguage,
			DifficultyLevel:     source.DifficultyLevel,
			TotalDuration:       source.TotalDuration,
			MaxScore:            source.MaxScore,
			IsTemplate:          false,
			IsActive:            true,
		}

		if err := txRepo.Assessment().Create(ctx, nil, copy); err != nil {
			return fmt.Errorf("failed to create copy: %w", err)
		}

		joins := make([]models.AssessmentQuestion, len(source.Questions))
		for i, aq := range source.Questions {
			joins[i] = models.AssessmentQuestion{
				AssessmentID:   copy.ID,
				QuestionID:     aq.QuestionID,
				Order:          aq.Order,
				Points:         aq.Points,
				CustomDuration: aq.CustomDuration,
			}
		}
		if len(joins) > 0 {
			if err := txRepo.AssessmentQuestion().CreateBatch(ctx, nil, joins); err != nil {
				return fmt.Errorf("failed to copy question list: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Assessment copied successfully", "source_id", id, "copy_id", copy.ID)

	return s.GetByIDWithDetails(ctx, copy.ID, userID)
}

func (s *assessmentService) RegenerateLink(ctx context.Context, id uint, userID uint) (*AssessmentResponse, error) {
	s.logger.Info("Regenerating shareable link", "assessment_id", id, "user_id", userID)

	assessment, err := s.getOwned(ctx, id, userID, false)
	if err != nil {
		return nil, err
	}

	link, err := s.generateShareableLink(ctx)
	if err != nil {
		return nil, err
	}

	assessment.ShareableLink = link
	assessment.UpdatedAt = time.Now()

	if err := s.repo.Assessment().Update(ctx, nil, assessment); err != nil {
		return nil, fmt.Errorf("failed to store new link: %w", err)
	}

	return s.GetByIDWithDetails(ctx, id, userID)
}

// ===== PUBLIC SURFACE =====

func (s *assessmentService) GetByShareableLink(ctx context.Context, link string) (*PublicAssessmentView, error) {
	assessment, err := s.repo.Assessment().GetByShareableLink(ctx, nil, link)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to resolve shareable link: %w", err)
	}

	if !assessment.IsActive {
		return nil, ErrAssessmentNotActive
	}

	return buildPublicView(assessment), nil
}

// ===== STATISTICS =====

func (s *assessmentService) GetStats(ctx context.Context, id uint, userID uint) (*repositories.AssessmentStats, error) {
	if _, err := s.getOwned(ctx, id, userID, false); err != nil {
		return nil, err
	}

	stats, err := s.repo.Assessment().GetStats(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment stats: %w", err)
	}

	return stats, nil
}
