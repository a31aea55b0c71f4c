package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sort"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"github.com/laksham-labs/assessment-portal/internal/validator"
)

const (
	shareableLinkPrefix = "assessment-"
	shareableLinkBytes  = 16
	linkGenerationTries = 5
)

// generateShareableLink produces an unguessable link token and retries on
// the unlikely event of a collision.
func (s *assessmentService) generateShareableLink(ctx context.Context) (string, error) {
	for i := 0; i < linkGenerationTries; i++ {
		buf := make([]byte, shareableLinkBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate link token: %w", err)
		}

		link := shareableLinkPrefix + base64.RawURLEncoding.EncodeToString(buf)

		exists, err := s.repo.Assessment().ExistsByShareableLink(ctx, nil, link)
		if err != nil {
			return "", fmt.Errorf("failed to check link uniqueness: %w", err)
		}
		if !exists {
			return link, nil
		}

		s.logger.Warn("Shareable link collision, retrying", "attempt", i+1)
	}

	return "", fmt.Errorf("failed to generate a unique shareable link after %d tries", linkGenerationTries)
}

// resolveQuestions loads every referenced question and fails if any is
// missing or retired, so an assessment never references dangling or
// inactive question IDs.
func (s *assessmentService) resolveQuestions(ctx context.Context, reqs []AssessmentQuestionRequest) (map[uint]*models.Question, error) {
	ids := make([]uint, len(reqs))
	for i, q := range reqs {
		ids[i] = q.QuestionID
	}

	questions, err := s.repo.Question().GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	byID := make(map[uint]*models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var inactive validator.ValidationErrors
	for i, req := range reqs {
		q, ok := byID[req.QuestionID]
		if !ok {
			return nil, fmt.Errorf("question %d: %w", req.QuestionID, ErrQuestionNotFound)
		}
		if !q.IsActive {
			inactive = append(inactive, validator.ValidationError{
				Field:   fmt.Sprintf("questions[%d].question_id", i),
				Message: "question is not active",
				Value:   req.QuestionID,
				Rule:    "business_logic",
			})
		}
	}
	if len(inactive) > 0 {
		return nil, inactive
	}

	return byID, nil
}

// buildQuestionJoins materializes join rows ordered by their position.
// Omitted points fall back to the standard weight of 10.
func buildQuestionJoins(assessmentID uint, reqs []AssessmentQuestionRequest, questions map[uint]*models.Question) []models.AssessmentQuestion {
	joins := make([]models.AssessmentQuestion, len(reqs))
	for i, req := range reqs {
		points := req.Points
		if points == 0 {
			points = models.DefaultQuestionPoints
		}
		joins[i] = models.AssessmentQuestion{
			AssessmentID:   assessmentID,
			QuestionID:     req.QuestionID,
			Order:          req.Order,
			Points:         points,
			CustomDuration: req.CustomDuration,
		}
		if q, ok := questions[req.QuestionID]; ok {
			joins[i].Question = *q
		}
	}

	sort.Slice(joins, func(a, b int) bool { return joins[a].Order < joins[b].Order })

	return joins
}

// applyAssessmentUpdates merges non-nil request fields into the row.
func applyAssessmentUpdates(assessment *models.Assessment, req *UpdateAssessmentRequest) {
	if req.Title != nil {
		assessment.Title = *req.Title
	}
	if req.Description != nil {
		assessment.Description = req.Description
	}
	if req.Kind != nil {
		assessment.Kind = *req.Kind
	}
	if req.ProgrammingLanguage != nil {
		assessment.ProgrammingLanguage = *req.ProgrammingLanguage
	}
	if req.DifficultyLevel != nil {
		assessment.DifficultyLevel = *req.DifficultyLevel
	}
	if req.IsTemplate != nil {
		assessment.IsTemplate = *req.IsTemplate
	}
	if req.IsActive != nil {
		assessment.IsActive = *req.IsActive
	}
}

// getOwned loads an assessment and enforces creator ownership.
func (s *assessmentService) getOwned(ctx context.Context, id uint, userID uint, withQuestions bool) (*models.Assessment, error) {
	var (
		assessment *models.Assessment
		err        error
	)

	if withQuestions {
		assessment, err = s.repo.Assessment().GetByIDWithQuestions(ctx, nil, id)
	} else {
		assessment, err = s.repo.Assessment().GetByID(ctx, nil, id)
	}
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	if assessment.CreatorID != userID {
		return nil, NewPermissionError(userID, id, "assessment", "access", "not the creator")
	}

	return assessment, nil
}

func (s *assessmentService) buildAssessmentResponse(assessment *models.Assessment) *AssessmentResponse {
	return &AssessmentResponse{
		Assessment: assessment,
		ShareURL:   "/assessment/" + assessment.ShareableLink,
	}
}

// buildPublicView strips solution material out of an ordered question list.
func buildPublicView(assessment *models.Assessment) *PublicAssessmentView {
	view := &PublicAssessmentView{
		ID:                  assessment.ID,
		Title:               assessment.Title,
		Description:         assessment.Description,
		Kind:                assessment.Kind,
		ProgrammingLanguage: assessment.ProgrammingLanguage,
		DifficultyLevel:     assessment.DifficultyLevel,
		TotalDuration:       assessment.TotalDuration,
		MaxScore:            assessment.MaxScore,
		QuestionCount:       len(assessment.Questions),
		Questions:           make([]PublicQuestionView, len(assessment.Questions)),
	}

	for i, aq := range assessment.Questions {
		view.Questions[i] = PublicQuestionView{
			QuestionID:      aq.QuestionID,
			Order:           aq.Order,
			Points:          aq.Points,
			DurationMinutes: aq.EffectiveDuration(),
			Title:           aq.Question.Title,
			Description:     aq.Question.Description,
			BuggySnippet:    aq.Question.BuggySnippet,
			DifficultyLevel: aq.Question.DifficultyLevel,
			Category:        aq.Question.Category,
		}
	}

	return view
}
