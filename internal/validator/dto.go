package validator

import (
	"github.com/laksham-labs/assessment-portal/internal/models"
)

// AssessmentCreateRequest represents the request structure for creating assessments
type AssessmentCreateRequest struct {
	Title               string                      `json:"title" validate:"required,assessment_title"`
	Description         *string                     `json:"description" validate:"omitempty,max=2000"`
	Kind                models.AssessmentKind       `json:"kind" validate:"omitempty,assessment_kind"`
	ProgrammingLanguage string                      `json:"programming_language" validate:"omitempty,max=50"`
	DifficultyLevel     string                      `json:"difficulty_level" validate:"omitempty,oneof=easy medium hard mixed"`
	IsTemplate          bool                        `json:"is_template"`
	Questions           []AssessmentQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

// AssessmentUpdateRequest represents the request structure for updating assessments
type AssessmentUpdateRequest struct {
	Title               *string                     `json:"title" validate:"omitempty,assessment_title"`
	Description         *string                     `json:"description" validate:"omitempty,max=2000"`
	Kind                *models.AssessmentKind      `json:"kind" validate:"omitempty,assessment_kind"`
	ProgrammingLanguage *string                     `json:"programming_language" validate:"omitempty,max=50"`
	DifficultyLevel     *string                     `json:"difficulty_level" validate:"omitempty,oneof=easy medium hard mixed"`
	IsTemplate          *bool                       `json:"is_template"`
	IsActive            *bool                       `json:"is_active"`
	Questions           []AssessmentQuestionRequest `json:"questions" validate:"omitempty,min=1,dive"`
}

// AssessmentQuestionRequest represents attaching a question to an assessment
type AssessmentQuestionRequest struct {
	QuestionID     uint `json:"question_id" validate:"required"`
	Order          int  `json:"order" validate:"required,min=1"`
	Points         int  `json:"points" validate:"omitempty,points_range"`
	CustomDuration *int `json:"custom_duration" validate:"omitempty,min=1,max=180"`
}

// QuestionCreateRequest represents the request structure for creating questions
type QuestionCreateRequest struct {
	Title               string                   `json:"title" validate:"required,min=1,max=200"`
	Description         string                   `json:"description" validate:"required,min=1"`
	BuggySnippet        string                   `json:"buggy_snippet" validate:"required,min=1"`
	WhatWrong           string                   `json:"what_wrong" validate:"required,min=1"`
	FixOutline          string                   `json:"fix_outline" validate:"required,min=1"`
	Solution            *string                  `json:"solution"`
	Rubric              []models.RubricCriterion `json:"rubric" validate:"omitempty,dive"`
	DifficultyLevel     models.DifficultyLevel   `json:"difficulty_level" validate:"required,difficulty_level"`
	Category            string                   `json:"category" validate:"required,min=1,max=100"`
	EstimatedDuration   int                      `json:"estimated_duration" validate:"required,min=1,max=180"`
	ProgrammingLanguage *string                  `json:"programming_language" validate:"omitempty,max=50"`
	Tags                []string                 `json:"tags" validate:"omitempty,max=10,dive,max=50"`
}

// QuestionUpdateRequest represents the request structure for updating questions
type QuestionUpdateRequest struct {
	Title               *string                  `json:"title" validate:"omitempty,min=1,max=200"`
	Description         *string                  `json:"description" validate:"omitempty,min=1"`
	BuggySnippet        *string                  `json:"buggy_snippet" validate:"omitempty,min=1"`
	WhatWrong           *string                  `json:"what_wrong" validate:"omitempty,min=1"`
	FixOutline          *string                  `json:"fix_outline" validate:"omitempty,min=1"`
	Solution            *string                  `json:"solution"`
	Rubric              []models.RubricCriterion `json:"rubric" validate:"omitempty,dive"`
	DifficultyLevel     *models.DifficultyLevel  `json:"difficulty_level" validate:"omitempty,difficulty_level"`
	Category            *string                  `json:"category" validate:"omitempty,min=1,max=100"`
	EstimatedDuration   *int                     `json:"estimated_duration" validate:"omitempty,min=1,max=180"`
	ProgrammingLanguage *string                  `json:"programming_language" validate:"omitempty,max=50"`
	Tags                []string                 `json:"tags" validate:"omitempty,max=10,dive,max=50"`
	IsActive            *bool                    `json:"is_active"`
}

// CandidateCreateRequest represents the request structure for creating candidates
type CandidateCreateRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
}

// CandidateUpdateRequest represents the request structure for updating candidates
type CandidateUpdateRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
}

// SignupRequest represents the request structure for account registration
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
}

// LoginRequest represents the request structure for credential login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AttemptStartRequest represents the request structure for starting an attempt
type AttemptStartRequest struct {
	CandidateEmail string  `json:"candidate_email" validate:"required,email,max=255"`
	CandidateName  *string `json:"candidate_name" validate:"omitempty,max=200"`
}

// SubmitAnswerRequest represents the request structure for submitting an answer
type SubmitAnswerRequest struct {
	QuestionID uint   `json:"question_id" validate:"required"`
	AnswerText string `json:"answer_text" validate:"required,min=1"`
}

// ScoreAnswerRequest represents the request structure for scoring an answer
type ScoreAnswerRequest struct {
	Score    int     `json:"score" validate:"min=0"`
	Feedback *string `json:"feedback" validate:"omitempty,max=2000"`
}

// ContentCreateRequest represents the request structure for creating CMS content
type ContentCreateRequest struct {
	Key         string `json:"key" validate:"required,min=1,max=100"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Content     string `json:"content" validate:"required"`
	ContentType string `json:"content_type" validate:"omitempty,oneof=markdown html text"`
	Category    string `json:"category" validate:"omitempty,max=100"`
	Language    string `json:"language" validate:"omitempty,max=10"`
}

// ContentUpdateRequest represents the request structure for updating CMS content
type ContentUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content     *string `json:"content"`
	ContentType *string `json:"content_type" validate:"omitempty,oneof=markdown html text"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	IsActive    *bool   `json:"is_active"`
}

// PageCreateRequest represents the request structure for creating CMS pages
type PageCreateRequest struct {
	Slug           string               `json:"slug" validate:"required,min=1,max=100"`
	Title          string               `json:"title" validate:"required,min=1,max=200"`
	Description    *string              `json:"description" validate:"omitempty,max=500"`
	Content        *string              `json:"content"`
	PageType       string               `json:"page_type" validate:"omitempty,max=50"`
	Language       string               `json:"language" validate:"omitempty,max=10"`
	IsPublished    bool                 `json:"is_published"`
	SeoTitle       *string              `json:"seo_title" validate:"omitempty,max=200"`
	SeoDescription *string              `json:"seo_description" validate:"omitempty,max=500"`
	Sections       []PageSectionRequest `json:"sections" validate:"omitempty,dive"`
}

// PageUpdateRequest represents the request structure for updating CMS pages
type PageUpdateRequest struct {
	Title          *string              `json:"title" validate:"omitempty,min=1,max=200"`
	Description    *string              `json:"description" validate:"omitempty,max=500"`
	Content        *string              `json:"content"`
	IsPublished    *bool                `json:"is_published"`
	SeoTitle       *string              `json:"seo_title" validate:"omitempty,max=200"`
	SeoDescription *string              `json:"seo_description" validate:"omitempty,max=500"`
	Sections       []PageSectionRequest `json:"sections" validate:"omitempty,dive"`
}

// PageSectionRequest represents a section within a page payload
type PageSectionRequest struct {
	SectionKey  string  `json:"section_key" validate:"required,min=1,max=100"`
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Content     string  `json:"content" validate:"required"`
	ContentType string  `json:"content_type" validate:"omitempty,oneof=markdown html text"`
	Order       int     `json:"order" validate:"min=0"`
}
