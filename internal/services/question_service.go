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

type questionService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuestionService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) QuestionService {
	return &questionService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *questionService) Create(ctx context.Context, req *CreateQuestionRequest) (*QuestionResponse, error) {
	s.logger.Info("Creating question", "title", req.Title)

	if errors := s.validator.GetBusinessValidator().ValidateQuestionCreate(req); len(errors) > 0 {
		return nil, errors
	}

	rubric, err := marshalRubric(req.Rubric)
	if err != nil {
		return nil, err
	}
	tags, err := marshalTags(req.Tags)
	if err != nil {
		return nil, err
	}

	question := &models.Question{
		Title:               req.Title,
		Description:         req.Description,
		BuggySnippet:        req.BuggySnippet,
		WhatWrong:           req.WhatWrong,
		FixOutline:          req.FixOutline,
		Solution:            req.Solution,
		Rubric:              rubric,
		DifficultyLevel:     req.DifficultyLevel,
		Category:            req.Category,
		EstimatedDuration:   req.EstimatedDuration,
		ProgrammingLanguage: req.ProgrammingLanguage,
		Tags:                tags,
		IsActive:            true,
	}

	if err := s.repo.Question().Create(ctx, nil, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.logger.Info("Question created successfully", "question_id", question.ID)

	return &QuestionResponse{Question: question}, nil
}

func (s *questionService) GetByID(ctx context.Context, id uint) (*QuestionResponse, error) {
	question, err := s.repo.Question().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return &QuestionResponse{Question: question}, nil
}

func (s *questionService) Update(ctx context.Context, id uint, req *UpdateQuestionRequest) (*QuestionResponse, error) {
	s.logger.Info("Updating question", "question_id", id)

	if errors := s.validator.GetBusinessValidator().ValidateQuestionUpdate(req); len(errors) > 0 {
		return nil, errors
	}

	question, err := s.repo.Question().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	if err := applyQuestionUpdates(question, req); err != nil {
		return nil, err
	}
	question.UpdatedAt = time.Now()

	if err := s.repo.Question().Update(ctx, nil, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	s.logger.Info("Question updated successfully", "question_id", id)

	return &QuestionResponse{Question: question}, nil
}

func (s *questionService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting question", "question_id", id)

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Question().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	s.logger.Info("Question deleted successfully", "question_id", id)
	return nil
}

// ===== LIST OPERATIONS =====

func (s *questionService) List(ctx context.Context, filters repositories.QuestionFilters) (*QuestionListResponse, error) {
	questions, total, err := s.repo.Question().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	response := &QuestionListResponse{
		Questions: make([]*QuestionResponse, len(questions)),
		Total:     total,
		Page:      (filters.Offset / max(filters.Limit, 1)) + 1,
		Size:      filters.Limit,
	}
	for i, question := range questions {
		response.Questions[i] = &QuestionResponse{Question: question}
	}

	return response, nil
}

func (s *questionService) GetFacets(ctx context.Context) (*QuestionFacets, error) {
	categories, err := s.repo.Question().DistinctCategories(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	levels, err := s.repo.Question().DistinctDifficultyLevels(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get difficulty levels: %w", err)
	}

	languages, err := s.repo.Question().DistinctProgrammingLanguages(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get programming languages: %w", err)
	}

	return &QuestionFacets{
		Categories:           categories,
		DifficultyLevels:     levels,
		ProgrammingLanguages: languages,
	}, nil
}
