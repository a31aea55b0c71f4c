package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/laksham-labs/assessment-portal/internal/events"
	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"github.com/laksham-labs/assessment-portal/internal/validator"
	"gorm.io/gorm"
)

type attemptService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.Publisher
	grace     time.Duration
}

func NewAttemptService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.Publisher, grace time.Duration) AttemptService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &attemptService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		publisher: publisher,
		grace:     grace,
	}
}

// ===== TAKER OPERATIONS =====

func (s *attemptService) Start(ctx context.Context, link string, req *StartAttemptRequest) (*AttemptResponse, error) {
	s.logger.Info("Starting attempt", "candidate_email", req.CandidateEmail)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

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

	// MaxScore is snapshotted so later edits to the assessment do not
	// change the scale of attempts already underway.
	attempt := &models.AssessmentAttempt{
		AssessmentID:   assessment.ID,
		CandidateEmail: req.CandidateEmail,
		CandidateName:  req.CandidateName,
		Status:         models.AttemptInProgress,
		StartedAt:      time.Now(),
		MaxScore:       assessment.MaxScore,
	}

	if err := s.repo.Attempt().Create(ctx, nil, attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	if err := s.publisher.PublishAttemptStarted(ctx, attempt); err != nil {
		s.logger.Warn("Failed to publish attempt started event", "attempt_id", attempt.ID, "error", err)
	}

	s.logger.Info("Attempt started", "attempt_id", attempt.ID, "assessment_id", assessment.ID)

	attempt.Assessment = *assessment
	return s.buildAttemptResponse(attempt, assessment.TotalDuration), nil
}

func (s *attemptService) SubmitAnswer(ctx context.Context, attemptID uint, req *SubmitAnswerRequest) (*models.AssessmentAnswer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	attempt, err := s.getAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	if err := s.requireActive(ctx, attempt); err != nil {
		return nil, err
	}

	if _, err := s.repo.Question().GetByID(ctx, nil, req.QuestionID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	// The per-answer score ceiling comes from the question's points within
	// this assessment, not from the question itself.
	join, err := s.repo.AssessmentQuestion().GetByAssessmentAndQuestion(ctx, nil, attempt.AssessmentID, req.QuestionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, validator.ValidationErrors{{
				Field:   "question_id",
				Message: "question is not part of this assessment",
				Value:   req.QuestionID,
				Rule:    "business_logic",
			}}
		}
		return nil, fmt.Errorf("failed to check question membership: %w", err)
	}

	var answer *models.AssessmentAnswer
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		existing, err := txRepo.Answer().GetByAttemptAndQuestion(ctx, nil, attemptID, req.QuestionID)
		switch {
		case err == nil:
			// Resubmission replaces the previous answer
			existing.AnswerText = req.AnswerText
			existing.MaxScore = join.Points
			existing.SubmittedAt = time.Now()
			if err := txRepo.Answer().Update(ctx, nil, existing); err != nil {
				return fmt.Errorf("failed to update answer: %w", err)
			}
			answer = existing
		case repositories.IsNotFoundError(err):
			answer = &models.AssessmentAnswer{
				AttemptID:   attemptID,
				QuestionID:  req.QuestionID,
				AnswerText:  req.AnswerText,
				MaxScore:    join.Points,
				SubmittedAt: time.Now(),
			}
			if err := txRepo.Answer().Create(ctx, nil, answer); err != nil {
				return fmt.Errorf("failed to create answer: %w", err)
			}
		default:
			return fmt.Errorf("failed to look up answer: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Answer submitted", "attempt_id", attemptID, "question_id", req.QuestionID)
	return answer, nil
}

func (s *attemptService) Complete(ctx context.Context, attemptID uint) (*AttemptResponse, error) {
	s.logger.Info("Completing attempt", "attempt_id", attemptID)

	attempt, err := s.getAttemptWithAnswers(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	if err := s.requireActive(ctx, attempt); err != nil {
		return nil, err
	}

	now := time.Now()
	attempt.Status = models.AttemptCompleted
	attempt.CompletedAt = &now
	attempt.TotalScore = sumScores(attempt.Answers)

	if err := s.repo.Attempt().Update(ctx, nil, attempt); err != nil {
		return nil, fmt.Errorf("failed to complete attempt: %w", err)
	}

	if err := s.publisher.PublishAttemptCompleted(ctx, attempt); err != nil {
		s.logger.Warn("Failed to publish attempt completed event", "attempt_id", attempt.ID, "error", err)
	}

	s.logger.Info("Attempt completed", "attempt_id", attemptID)

	return s.buildAttemptResponse(attempt, attempt.Assessment.TotalDuration), nil
}

func (s *attemptService) GetForTaker(ctx context.Context, attemptID uint) (*AttemptResponse, error) {
	attempt, err := s.getAttemptWithAnswers(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	// A taker may poll an expired attempt before the sweeper catches it
	if attempt.Status == models.AttemptInProgress && s.pastDeadline(attempt) {
		if err := s.expireAttempt(ctx, attempt); err != nil {
			return nil, err
		}
	}

	return s.buildAttemptResponse(attempt, attempt.Assessment.TotalDuration), nil
}

// ===== REVIEWER OPERATIONS =====

func (s *attemptService) GetByID(ctx context.Context, id uint, userID uint) (*AttemptResponse, error) {
	attempt, err := s.getAttemptWithAnswers(ctx, id)
	if err != nil {
		return nil, err
	}

	if attempt.Assessment.CreatorID != userID {
		return nil, NewPermissionError(userID, id, "attempt", "access", "not the assessment creator")
	}

	return s.buildAttemptResponse(attempt, attempt.Assessment.TotalDuration), nil
}

func (s *attemptService) List(ctx context.Context, filters repositories.AttemptFilters, userID uint) (*AttemptListResponse, error) {
	attempts, total, err := s.repo.Attempt().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	return s.buildAttemptListResponse(attempts, total, filters), nil
}

func (s *attemptService) GetByAssessment(ctx context.Context, assessmentID uint, filters repositories.AttemptFilters, userID uint) (*AttemptListResponse, error) {
	assessment, err := s.repo.Assessment().GetByID(ctx, nil, assessmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if assessment.CreatorID != userID {
		return nil, NewPermissionError(userID, assessmentID, "assessment", "view_attempts", "not the creator")
	}

	filters.AssessmentID = &assessmentID
	attempts, total, err := s.repo.Attempt().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	return s.buildAttemptListResponse(attempts, total, filters), nil
}

func (s *attemptService) GetRecent(ctx context.Context, userID uint, limit int) ([]*AttemptResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	attempts, err := s.repo.Attempt().GetRecentByCreator(ctx, nil, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent attempts: %w", err)
	}

	responses := make([]*AttemptResponse, len(attempts))
	for i, attempt := range attempts {
		responses[i] = &AttemptResponse{AssessmentAttempt: attempt}
	}
	return responses, nil
}

func (s *attemptService) ScoreAnswer(ctx context.Context, attemptID, answerID uint, req *ScoreAnswerRequest, userID uint) (*models.AssessmentAnswer, error) {
	s.logger.Info("Scoring answer", "attempt_id", attemptID, "answer_id", answerID, "user_id", userID)

	attempt, err := s.getAttemptWithAnswers(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Assessment.CreatorID != userID {
		return nil, NewPermissionError(userID, attemptID, "attempt", "score", "not the assessment creator")
	}

	answer, err := s.repo.Answer().GetByID(ctx, nil, answerID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}
	if answer.AttemptID != attemptID {
		return nil, ErrAnswerNotFound
	}

	if errs := s.validator.GetBusinessValidator().ValidateScoreAnswer(req, answer.MaxScore); len(errs) > 0 {
		return nil, errs
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		score := req.Score
		answer.Score = &score
		answer.Feedback = req.Feedback
		if err := txRepo.Answer().Update(ctx, nil, answer); err != nil {
			return fmt.Errorf("failed to store score: %w", err)
		}

		// Keep the attempt total in sync with its scored answers
		answers, err := txRepo.Answer().GetByAttempt(ctx, nil, attemptID)
		if err != nil {
			return fmt.Errorf("failed to reload answers: %w", err)
		}
		attempt.TotalScore = sumScores(answers)

		if err := txRepo.Attempt().Update(ctx, nil, attempt); err != nil {
			return fmt.Errorf("failed to update attempt total: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Answer scored", "answer_id", answerID, "score", req.Score)
	return answer, nil
}

// ===== MAINTENANCE =====

// ExpireOverdue marks in-progress attempts past their deadline as expired.
// Called from the cron sweeper.
func (s *attemptService) ExpireOverdue(ctx context.Context) (int, error) {
	attempts, err := s.repo.Attempt().GetExpiredCandidates(ctx, nil, s.grace, 200)
	if err != nil {
		return 0, fmt.Errorf("failed to find overdue attempts: %w", err)
	}

	expired := 0
	for _, attempt := range attempts {
		if err := s.expireAttempt(ctx, attempt); err != nil {
			s.logger.Error("Failed to expire attempt", "attempt_id", attempt.ID, "error", err)
			continue
		}
		expired++
	}

	if expired > 0 {
		s.logger.Info("Expired overdue attempts", "count", expired)
	}

	return expired, nil
}
