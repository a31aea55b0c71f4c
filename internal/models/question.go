package models

import (
	"time"

	"gorm.io/datatypes"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// Question is a bug-fix exercise: the candidate reads a buggy snippet and
// explains what is wrong and how to fix it. Solution and Rubric are the
// grader-facing half and must never reach a candidate response.
type Question struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description string `json:"description" gorm:"type:text;not null" validate:"required"`

	BuggySnippet string  `json:"buggy_snippet" gorm:"type:text;not null" validate:"required"`
	WhatWrong    string  `json:"what_wrong" gorm:"type:text"`
	FixOutline   string  `json:"fix_outline" gorm:"type:text"`
	Solution     *string `json:"solution,omitempty" gorm:"type:text"`

	// Rubric is a JSONB list of {criterion, points} grading guidance.
	Rubric datatypes.JSON `json:"rubric,omitempty" gorm:"type:jsonb"`

	DifficultyLevel     DifficultyLevel `json:"difficulty_level" gorm:"default:medium;index" validate:"omitempty,oneof=easy medium hard"`
	Category            string          `json:"category" gorm:"size:100;index"`
	EstimatedDuration   int             `json:"estimated_duration" gorm:"not null" validate:"required,min=1,max=180"` // minutes
	ProgrammingLanguage *string         `json:"programming_language" gorm:"size:50;index"`
	Tags                datatypes.JSON  `json:"tags" gorm:"type:jsonb"` // []string

	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}

// Sanitized returns a copy safe to show a candidate taking an assessment.
func (q Question) Sanitized() Question {
	q.Solution = nil
	q.Rubric = nil
	q.WhatWrong = ""
	q.FixOutline = ""
	return q
}

// RubricCriterion is the element schema of Question.Rubric.
type RubricCriterion struct {
	Criterion string `json:"criterion"`
	Points    int    `json:"points"`
}

// DefaultQuestionPoints is the weight a question carries in an assessment
// when the request does not set one.
const DefaultQuestionPoints = 10

// AssessmentQuestion links a question into an assessment with per-assessment
// overrides. CustomDuration, when set, replaces the question's estimated
// duration in the assessment total.
type AssessmentQuestion struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	AssessmentID uint `json:"assessment_id" gorm:"not null;index;uniqueIndex:idx_assessment_question"`
	QuestionID   uint `json:"question_id" gorm:"not null;index;uniqueIndex:idx_assessment_question"`

	Order          int  `json:"order" gorm:"not null"`
	Points         int  `json:"points" gorm:"not null;default:10" validate:"min=1,max=100"`
	CustomDuration *int `json:"custom_duration" validate:"omitempty,min=1,max=180"` // minutes

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Question Question `json:"question" gorm:"foreignKey:QuestionID"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

// EffectiveDuration is the minutes this question contributes to the
// assessment total.
func (aq *AssessmentQuestion) EffectiveDuration() int {
	if aq.CustomDuration != nil {
		return *aq.CustomDuration
	}
	return aq.Question.EstimatedDuration
}
