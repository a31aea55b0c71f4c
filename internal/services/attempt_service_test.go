package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"github.com/laksham-labs/assessment-portal/internal/validator"
)

// attemptFixture seeds one active assessment with two questions (10 and 5
// points) reachable through "assessment-test-link".
type attemptFixture struct {
	repo       *fakeRepository
	attempts   AttemptService
	assessment *models.Assessment
	q1, q2     *models.Question
}

func newAttemptFixture(t *testing.T) *attemptFixture {
	t.Helper()
	ctx := context.Background()

	repo := newFakeRepository()
	q1 := seedQuestion(repo, "Off by one", 15)
	q2 := seedQuestion(repo, "Nil deref", 20)

	assessment := &models.Assessment{
		Title:         "Backend screening",
		CreatorID:     7,
		ShareableLink: "assessment-test-link",
		Kind:          models.KindStandard,
		TotalDuration: 35,
		MaxScore:      15,
		IsActive:      true,
	}
	if err := repo.Assessment().Create(ctx, nil, assessment); err != nil {
		t.Fatalf("seed assessment: %v", err)
	}
	joins := []models.AssessmentQuestion{
		{AssessmentID: assessment.ID, QuestionID: q1.ID, Order: 1, Points: 10},
		{AssessmentID: assessment.ID, QuestionID: q2.ID, Order: 2, Points: 5},
	}
	if err := repo.AssessmentQuestion().CreateBatch(ctx, nil, joins); err != nil {
		t.Fatalf("seed joins: %v", err)
	}

	return &attemptFixture{
		repo:       repo,
		attempts:   NewAttemptService(repo, nil, testLogger(), validator.New(), nil, 0),
		assessment: assessment,
		q1:         q1,
		q2:         q2,
	}
}

func (fx *attemptFixture) start(t *testing.T) *AttemptResponse {
	t.Helper()
	attempt, err := fx.attempts.Start(context.Background(), "assessment-test-link", &StartAttemptRequest{
		CandidateEmail: "jo@example.com",
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return attempt
}

func TestAttemptService_Start(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()

	attempt := fx.start(t)

	if attempt.Status != models.AttemptInProgress {
		t.Errorf("Status = %q, want in_progress", attempt.Status)
	}
	if attempt.MaxScore != 15 {
		t.Errorf("MaxScore = %d, want snapshot of 15", attempt.MaxScore)
	}
	if attempt.TimeRemainingSeconds == nil || *attempt.TimeRemainingSeconds <= 0 {
		t.Error("expected a positive time remaining for a fresh attempt")
	}

	t.Run("unknown link", func(t *testing.T) {
		_, err := fx.attempts.Start(ctx, "assessment-bogus", &StartAttemptRequest{CandidateEmail: "jo@example.com"})
		if !errors.Is(err, ErrAssessmentNotFound) {
			t.Fatalf("expected ErrAssessmentNotFound, got %v", err)
		}
	})

	t.Run("deactivated assessment", func(t *testing.T) {
		fx.repo.assessments[fx.assessment.ID].IsActive = false
		defer func() { fx.repo.assessments[fx.assessment.ID].IsActive = true }()

		_, err := fx.attempts.Start(ctx, "assessment-test-link", &StartAttemptRequest{CandidateEmail: "jo@example.com"})
		if !errors.Is(err, ErrAssessmentNotActive) {
			t.Fatalf("expected ErrAssessmentNotActive, got %v", err)
		}
	})

	t.Run("max score snapshot survives later edits", func(t *testing.T) {
		started := fx.start(t)

		fx.repo.assessments[fx.assessment.ID].MaxScore = 100
		defer func() { fx.repo.assessments[fx.assessment.ID].MaxScore = 15 }()

		reloaded, err := fx.attempts.GetForTaker(ctx, started.ID)
		if err != nil {
			t.Fatalf("GetForTaker failed: %v", err)
		}
		if reloaded.MaxScore != 15 {
			t.Errorf("MaxScore = %d after edit, want snapshotted 15", reloaded.MaxScore)
		}
	})
}

func TestAttemptService_SubmitAnswer(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()
	attempt := fx.start(t)

	answer, err := fx.attempts.SubmitAnswer(ctx, attempt.ID, &SubmitAnswerRequest{
		QuestionID: fx.q1.ID,
		AnswerText: "the loop runs once too often",
	})
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}
	if answer.MaxScore != 10 {
		t.Errorf("answer MaxScore = %d, want the join row's 10 points", answer.MaxScore)
	}

	t.Run("resubmission replaces the answer", func(t *testing.T) {
		replaced, err := fx.attempts.SubmitAnswer(ctx, attempt.ID, &SubmitAnswerRequest{
			QuestionID: fx.q1.ID,
			AnswerText: "off by one in the loop bound",
		})
		if err != nil {
			t.Fatalf("SubmitAnswer failed: %v", err)
		}
		if replaced.ID != answer.ID {
			t.Errorf("resubmission created a new row (%d != %d)", replaced.ID, answer.ID)
		}
		if replaced.AnswerText != "off by one in the loop bound" {
			t.Errorf("AnswerText not replaced: %q", replaced.AnswerText)
		}
		if len(fx.repo.answers) != 1 {
			t.Errorf("expected 1 stored answer, found %d", len(fx.repo.answers))
		}
	})

	t.Run("question outside the assessment", func(t *testing.T) {
		stray := seedQuestion(fx.repo, "Unrelated", 10)
		_, err := fx.attempts.SubmitAnswer(ctx, attempt.ID, &SubmitAnswerRequest{
			QuestionID: stray.ID,
			AnswerText: "should not land",
		})
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected validation errors, got %v", err)
		}
		if len(verrs) != 1 || verrs[0].Field != "question_id" {
			t.Fatalf("unexpected validation errors: %+v", verrs)
		}
	})

	t.Run("unknown question", func(t *testing.T) {
		_, err := fx.attempts.SubmitAnswer(ctx, attempt.ID, &SubmitAnswerRequest{
			QuestionID: 9999,
			AnswerText: "should not land",
		})
		if !errors.Is(err, ErrQuestionNotFound) {
			t.Fatalf("expected ErrQuestionNotFound, got %v", err)
		}
	})

	t.Run("unknown attempt", func(t *testing.T) {
		_, err := fx.attempts.SubmitAnswer(ctx, 9999, &SubmitAnswerRequest{
			QuestionID: fx.q1.ID,
			AnswerText: "x",
		})
		if !errors.Is(err, ErrAttemptNotFound) {
			t.Fatalf("expected ErrAttemptNotFound, got %v", err)
		}
	})
}

func TestAttemptService_Complete(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()
	attempt := fx.start(t)

	if _, err := fx.attempts.SubmitAnswer(ctx, attempt.ID, &SubmitAnswerRequest{
		QuestionID: fx.q1.ID,
		AnswerText: "the loop runs once too often",
	}); err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}

	completed, err := fx.attempts.Complete(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if completed.Status != models.AttemptCompleted {
		t.Errorf("Status = %q, want completed", completed.Status)
	}
	if completed.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}
	if completed.TotalScore != nil {
		t.Errorf("TotalScore = %v before any scoring, want nil", *completed.TotalScore)
	}

	t.Run("double submit", func(t *testing.T) {
		if _, err := fx.attempts.Complete(ctx, attempt.ID); !errors.Is(err, ErrAttemptAlreadySubmitted) {
			t.Fatalf("expected ErrAttemptAlreadySubmitted, got %v", err)
		}
	})

	t.Run("answers after completion are rejected", func(t *testing.T) {
		_, err := fx.attempts.SubmitAnswer(ctx, attempt.ID, &SubmitAnswerRequest{
			QuestionID: fx.q2.ID,
			AnswerText: "too late",
		})
		if !errors.Is(err, ErrAttemptAlreadySubmitted) {
			t.Fatalf("expected ErrAttemptAlreadySubmitted, got %v", err)
		}
	})
}

func TestAttemptService_ScoreAnswer(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()
	attempt := fx.start(t)

	answer, err := fx.attempts.SubmitAnswer(ctx, attempt.ID, &SubmitAnswerRequest{
		QuestionID: fx.q1.ID,
		AnswerText: "the loop runs once too often",
	})
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}
	if _, err := fx.attempts.Complete(ctx, attempt.ID); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	t.Run("score lands and attempt total follows", func(t *testing.T) {
		scored, err := fx.attempts.ScoreAnswer(ctx, attempt.ID, answer.ID, &ScoreAnswerRequest{Score: 8}, 7)
		if err != nil {
			t.Fatalf("ScoreAnswer failed: %v", err)
		}
		if scored.Score == nil || *scored.Score != 8 {
			t.Fatalf("Score = %v, want 8", scored.Score)
		}

		stored := fx.repo.attempts[attempt.ID]
		if stored.TotalScore == nil || *stored.TotalScore != 8 {
			t.Errorf("attempt TotalScore = %v, want 8", stored.TotalScore)
		}
	})

	t.Run("score above the answer ceiling is rejected", func(t *testing.T) {
		_, err := fx.attempts.ScoreAnswer(ctx, attempt.ID, answer.ID, &ScoreAnswerRequest{Score: 11}, 7)
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected validation errors, got %v", err)
		}
	})

	t.Run("only the creator may score", func(t *testing.T) {
		var permErr *PermissionError
		_, err := fx.attempts.ScoreAnswer(ctx, attempt.ID, answer.ID, &ScoreAnswerRequest{Score: 5}, 8)
		if !errors.As(err, &permErr) {
			t.Fatalf("expected PermissionError, got %v", err)
		}
	})

	t.Run("answer of another attempt", func(t *testing.T) {
		other := fx.start(t)
		otherAnswer, err := fx.attempts.SubmitAnswer(ctx, other.ID, &SubmitAnswerRequest{
			QuestionID: fx.q1.ID,
			AnswerText: "different run",
		})
		if err != nil {
			t.Fatalf("SubmitAnswer failed: %v", err)
		}
		if _, err := fx.attempts.ScoreAnswer(ctx, attempt.ID, otherAnswer.ID, &ScoreAnswerRequest{Score: 1}, 7); !errors.Is(err, ErrAnswerNotFound) {
			t.Fatalf("expected ErrAnswerNotFound, got %v", err)
		}
	})
}

func TestAttemptService_Expiry(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()

	overdue := fx.start(t)
	fx.repo.attempts[overdue.ID].StartedAt = time.Now().Add(-2 * time.Hour)

	t.Run("writes against an overdue attempt expire it", func(t *testing.T) {
		_, err := fx.attempts.SubmitAnswer(ctx, overdue.ID, &SubmitAnswerRequest{
			QuestionID: fx.q1.ID,
			AnswerText: "too late",
		})
		if !errors.Is(err, ErrAttemptNotActive) {
			t.Fatalf("expected ErrAttemptNotActive, got %v", err)
		}
		if fx.repo.attempts[overdue.ID].Status != models.AttemptExpired {
			t.Errorf("Status = %q, want expired", fx.repo.attempts[overdue.ID].Status)
		}
	})

	t.Run("sweeper expires the rest", func(t *testing.T) {
		second := fx.start(t)
		fx.repo.attempts[second.ID].StartedAt = time.Now().Add(-2 * time.Hour)
		fresh := fx.start(t)

		count, err := fx.attempts.ExpireOverdue(ctx)
		if err != nil {
			t.Fatalf("ExpireOverdue failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expired %d attempts, want 1", count)
		}
		if fx.repo.attempts[fresh.ID].Status != models.AttemptInProgress {
			t.Error("fresh attempt must stay in progress")
		}
	})

	t.Run("completing an overdue attempt expires it instead", func(t *testing.T) {
		overdue := fx.start(t)
		fx.repo.attempts[overdue.ID].StartedAt = time.Now().Add(-2 * time.Hour)

		if _, err := fx.attempts.Complete(ctx, overdue.ID); !errors.Is(err, ErrAttemptNotActive) {
			t.Fatalf("expected ErrAttemptNotActive, got %v", err)
		}
		if fx.repo.attempts[overdue.ID].Status != models.AttemptExpired {
			t.Errorf("Status = %q, want expired", fx.repo.attempts[overdue.ID].Status)
		}
	})

	t.Run("taker polling an overdue attempt sees expired", func(t *testing.T) {
		late := fx.start(t)
		fx.repo.attempts[late.ID].StartedAt = time.Now().Add(-2 * time.Hour)

		resp, err := fx.attempts.GetForTaker(ctx, late.ID)
		if err != nil {
			t.Fatalf("GetForTaker failed: %v", err)
		}
		if resp.Status != models.AttemptExpired {
			t.Errorf("Status = %q, want expired", resp.Status)
		}
	})
}

func TestAttemptService_ReviewerAccess(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()
	attempt := fx.start(t)

	if _, err := fx.attempts.GetByID(ctx, attempt.ID, 7); err != nil {
		t.Fatalf("creator should see the attempt: %v", err)
	}

	var permErr *PermissionError
	if _, err := fx.attempts.GetByID(ctx, attempt.ID, 8); !errors.As(err, &permErr) {
		t.Fatalf("expected PermissionError for foreign user, got %v", err)
	}

	list, err := fx.attempts.GetByAssessment(ctx, fx.assessment.ID, repositories.AttemptFilters{Limit: 20}, 7)
	if err != nil {
		t.Fatalf("GetByAssessment failed: %v", err)
	}
	if list.Total != 1 {
		t.Errorf("Total = %d, want 1", list.Total)
	}

	if _, err := fx.attempts.GetByAssessment(ctx, fx.assessment.ID, repositories.AttemptFilters{Limit: 20}, 8); !errors.As(err, &permErr) {
		t.Fatalf("expected PermissionError, got %v", err)
	}
}
