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

type candidateService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCandidateService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) CandidateService {
	return &candidateService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *candidateService) Create(ctx context.Context, req *CreateCandidateRequest) (*models.Candidate, error) {
	s.logger.Info("Creating candidate", "email", req.Email)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Candidate().ExistsByEmail(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	candidate := &models.Candidate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	if err := s.repo.Candidate().Create(ctx, nil, candidate); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	s.logger.Info("Candidate created successfully", "candidate_id", candidate.ID)
	return candidate, nil
}

func (s *candidateService) GetByID(ctx context.Context, id uint) (*models.Candidate, error) {
	candidate, err := s.repo.Candidate().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return candidate, nil
}

func (s *candidateService) Update(ctx context.Context, id uint, req *UpdateCandidateRequest) (*models.Candidate, error) {
	s.logger.Info("Updating candidate", "candidate_id", id)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	candidate, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != candidate.Email {
		exists, err := s.repo.Candidate().ExistsByEmail(ctx, nil, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, ErrDuplicateEmail
		}
		candidate.Email = *req.Email
	}

	if req.FirstName != nil {
		candidate.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		candidate.LastName = *req.LastName
	}
	candidate.UpdatedAt = time.Now()

	if err := s.repo.Candidate().Update(ctx, nil, candidate); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update candidate: %w", err)
	}

	s.logger.Info("Candidate updated successfully", "candidate_id", id)
	return candidate, nil
}

func (s *candidateService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting candidate", "candidate_id", id)

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Candidate().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}

	s.logger.Info("Candidate deleted successfully", "candidate_id", id)
	return nil
}

func (s *candidateService) List(ctx context.Context, filters repositories.CandidateFilters) (*CandidateListResponse, error) {
	candidates, total, err := s.repo.Candidate().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	return &CandidateListResponse{
		Candidates: candidates,
		Total:      total,
		Page:       (filters.Offset / max(filters.Limit, 1)) + 1,
		Size:       filters.Limit,
	}, nil
}
