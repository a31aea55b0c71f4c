package services

import (
	"context"
	"fmt"
	"time"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
)

func (s *attemptService) getAttempt(ctx context.Context, id uint) (*models.AssessmentAttempt, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return attempt, nil
}

func (s *attemptService) getAttemptWithAnswers(ctx context.Context, id uint) (*models.AssessmentAttempt, error) {
	attempt, err := s.repo.Attempt().GetByIDWithAnswers(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return attempt, nil
}

// requireActive rejects writes against attempts that are finished or have
// run out the clock. Overdue attempts are expired on the spot rather than
// waiting for the sweeper.
func (s *attemptService) requireActive(ctx context.Context, attempt *models.AssessmentAttempt) error {
	switch attempt.Status {
	case models.AttemptCompleted:
		return ErrAttemptAlreadySubmitted
	case models.AttemptExpired:
		return ErrAttemptNotActive
	}

	if s.pastDeadline(attempt) {
		if err := s.expireAttempt(ctx, attempt); err != nil {
			return err
		}
		return ErrAttemptNotActive
	}

	return nil
}

func (s *attemptService) pastDeadline(attempt *models.AssessmentAttempt) bool {
	duration := attempt.Assessment.TotalDuration
	if duration <= 0 {
		return false
	}
	return time.Now().After(attempt.Deadline(duration, s.grace))
}

func (s *attemptService) expireAttempt(ctx context.Context, attempt *models.AssessmentAttempt) error {
	attempt.Status = models.AttemptExpired

	if err := s.repo.Attempt().Update(ctx, nil, attempt); err != nil {
		return fmt.Errorf("failed to expire attempt: %w", err)
	}

	if err := s.publisher.PublishAttemptExpired(ctx, attempt); err != nil {
		s.logger.Warn("Failed to publish attempt expired event", "attempt_id", attempt.ID, "error", err)
	}

	return nil
}

// sumScores totals the scored answers. Unscored answers contribute nothing;
// nil is returned only when no answer has a score yet.
func sumScores(answers []models.AssessmentAnswer) *int {
	total := 0
	scored := false
	for i := range answers {
		if answers[i].Score != nil {
			total += *answers[i].Score
			scored = true
		}
	}
	if !scored {
		return nil
	}
	return &total
}

func (s *attemptService) buildAttemptResponse(attempt *models.AssessmentAttempt, totalDuration int) *AttemptResponse {
	resp := &AttemptResponse{AssessmentAttempt: attempt}

	if attempt.Status == models.AttemptInProgress && totalDuration > 0 {
		remaining := int(time.Until(attempt.Deadline(totalDuration, 0)).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		resp.TimeRemainingSeconds = &remaining
	}

	return resp
}

func (s *attemptService) buildAttemptListResponse(attempts []*models.AssessmentAttempt, total int64, filters repositories.AttemptFilters) *AttemptListResponse {
	resp := &AttemptListResponse{
		Attempts: make([]*AttemptResponse, len(attempts)),
		Total:    total,
		Page:     (filters.Offset / max(filters.Limit, 1)) + 1,
		Size:     filters.Limit,
	}
	for i, attempt := range attempts {
		resp.Attempts[i] = &AttemptResponse{AssessmentAttempt: attempt}
	}
	return resp
}
