package models

import (
	"time"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
	AttemptExpired    AttemptStatus = "expired"
)

// AssessmentAttempt is one candidate's run through an assessment. Takers are
// anonymous holders of the shareable link, so the attempt is keyed by email
// rather than a user account. MaxScore is snapshotted at start time so later
// edits to the assessment do not reshape scores already in flight.
type AssessmentAttempt struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	AssessmentID uint `json:"assessment_id" gorm:"not null;index"`

	CandidateEmail string  `json:"candidate_email" gorm:"not null;index;size:255" validate:"required,email"`
	CandidateName  *string `json:"candidate_name" gorm:"size:200"`

	Status      AttemptStatus `json:"status" gorm:"default:in_progress;index"`
	StartedAt   time.Time     `json:"started_at" gorm:"not null"`
	CompletedAt *time.Time    `json:"completed_at"`

	TotalScore *int `json:"total_score"`
	MaxScore   int  `json:"max_score" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Assessment Assessment         `json:"-" gorm:"foreignKey:AssessmentID"`
	Answers    []AssessmentAnswer `json:"answers" gorm:"foreignKey:AttemptID"`
}

func (AssessmentAttempt) TableName() string {
	return "assessment_attempts"
}

func (a *AssessmentAttempt) IsActive() bool {
	return a.Status == AttemptInProgress
}

// Deadline is the instant after which the attempt counts as expired.
// totalDuration is the assessment's duration in minutes; grace absorbs
// clock skew and last-second submits.
func (a *AssessmentAttempt) Deadline(totalDuration int, grace time.Duration) time.Time {
	return a.StartedAt.Add(time.Duration(totalDuration)*time.Minute + grace)
}

// AssessmentAnswer is the candidate's write-up for one question of an
// attempt. One row per (attempt, question); resubmission overwrites.
// MaxScore mirrors the AssessmentQuestion.Points of the matching join row.
type AssessmentAnswer struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	AttemptID  uint `json:"attempt_id" gorm:"not null;index;uniqueIndex:idx_attempt_question"`
	QuestionID uint `json:"question_id" gorm:"not null;index;uniqueIndex:idx_attempt_question"`

	AnswerText string `json:"answer_text" gorm:"type:text;not null"`

	Score    *int    `json:"score"`
	MaxScore int     `json:"max_score" gorm:"not null"`
	Feedback *string `json:"feedback" gorm:"type:text"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Attempt  AssessmentAttempt `json:"-" gorm:"foreignKey:AttemptID"`
	Question Question          `json:"-" gorm:"foreignKey:QuestionID"`
}

func (AssessmentAnswer) TableName() string {
	return "assessment_answers"
}
