package events

import (
	"time"

	"github.com/laksham-labs/assessment-portal/internal/models"
)

// Event names carried in message metadata.
const (
	AttemptStartedEvent   = "attempt.started"
	AttemptCompletedEvent = "attempt.completed"
	AttemptExpiredEvent   = "attempt.expired"
)

// AttemptEvent is the payload published for attempt lifecycle changes.
type AttemptEvent struct {
	Event          string               `json:"event"`
	AttemptID      uint                 `json:"attempt_id"`
	AssessmentID   uint                 `json:"assessment_id"`
	CandidateEmail string               `json:"candidate_email"`
	Status         models.AttemptStatus `json:"status"`
	TotalScore     *int                 `json:"total_score,omitempty"`
	MaxScore       int                  `json:"max_score"`
	OccurredAt     time.Time            `json:"occurred_at"`
}

// NewAttemptEvent builds the payload from an attempt row.
func NewAttemptEvent(event string, attempt *models.AssessmentAttempt) *AttemptEvent {
	return &AttemptEvent{
		Event:          event,
		AttemptID:      attempt.ID,
		AssessmentID:   attempt.AssessmentID,
		CandidateEmail: attempt.CandidateEmail,
		Status:         attempt.Status,
		TotalScore:     attempt.TotalScore,
		MaxScore:       attempt.MaxScore,
		OccurredAt:     time.Now().UTC(),
	}
}
