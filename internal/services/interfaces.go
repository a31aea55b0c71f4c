package services

import (
	"context"
	"time"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"github.com/laksham-labs/assessment-portal/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateAssessmentRequest = validator.AssessmentCreateRequest
type UpdateAssessmentRequest = validator.AssessmentUpdateRequest
type AssessmentQuestionRequest = validator.AssessmentQuestionRequest

type CreateQuestionRequest = validator.QuestionCreateRequest
type UpdateQuestionRequest = validator.QuestionUpdateRequest

type CreateCandidateRequest = validator.CandidateCreateRequest
type UpdateCandidateRequest = validator.CandidateUpdateRequest

type SignupRequest = validator.SignupRequest
type LoginRequest = validator.LoginRequest

type StartAttemptRequest = validator.AttemptStartRequest
type SubmitAnswerRequest = validator.SubmitAnswerRequest
type ScoreAnswerRequest = validator.ScoreAnswerRequest

type CreateContentRequest = validator.ContentCreateRequest
type UpdateContentRequest = validator.ContentUpdateRequest
type CreatePageRequest = validator.PageCreateRequest
type UpdatePageRequest = validator.PageUpdateRequest

type AssessmentResponse struct {
	*models.Assessment
	ShareURL string `json:"share_url,omitempty"`
}

type AssessmentListResponse struct {
	Assessments []*AssessmentResponse `json:"assessments"`
	Total       int64                 `json:"total"`
	Page        int                   `json:"page"`
	Size        int                   `json:"size"`
}

type QuestionResponse struct {
	*models.Question
	UsageCount int `json:"usage_count,omitempty"`
}

type QuestionListResponse struct {
	Questions []*QuestionResponse `json:"questions"`
	Total     int64               `json:"total"`
	Page      int                 `json:"page"`
	Size      int                 `json:"size"`
}

// QuestionFacets lists the distinct values candidates can filter the
// question catalog by.
type QuestionFacets struct {
	Categories           []string `json:"categories"`
	DifficultyLevels     []string `json:"difficulty_levels"`
	ProgrammingLanguages []string `json:"programming_languages"`
}

type CandidateListResponse struct {
	Candidates []*models.Candidate `json:"candidates"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Size       int                 `json:"size"`
}

// PublicQuestionView is a question as shown to an anonymous taker. Solution
// material is stripped before it leaves the service layer.
type PublicQuestionView struct {
	QuestionID      uint                   `json:"question_id"`
	Order           int                    `json:"order"`
	Points          int                    `json:"points"`
	DurationMinutes int                    `json:"duration_minutes"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	BuggySnippet    string                 `json:"buggy_snippet"`
	DifficultyLevel models.DifficultyLevel `json:"difficulty_level"`
	Category        string                 `json:"category"`
}

// PublicAssessmentView is the shareable-link rendering of an assessment.
type PublicAssessmentView struct {
	ID                  uint                  `json:"id"`
	Title               string                `json:"title"`
	Description         *string               `json:"description"`
	Kind                models.AssessmentKind `json:"kind"`
	ProgrammingLanguage string                `json:"programming_language,omitempty"`
	DifficultyLevel     string                `json:"difficulty_level,omitempty"`
	TotalDuration       int                   `json:"total_duration"`
	MaxScore            int                   `json:"max_score"`
	QuestionCount       int                   `json:"question_count"`
	Questions           []PublicQuestionView  `json:"questions"`
}

type AttemptResponse struct {
	*models.AssessmentAttempt
	TimeRemainingSeconds *int `json:"time_remaining_seconds,omitempty"`
}

type AttemptListResponse struct {
	Attempts []*AttemptResponse `json:"attempts"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	Size     int                `json:"size"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *models.User `json:"user"`
}

type PageResponse struct {
	*models.Page
}

// ExportResult is a generated spreadsheet ready to stream to the client.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ===== SERVICE INTERFACES =====

type AssessmentService interface {
	// Core CRUD operations
	Create(ctx context.Context, req *CreateAssessmentRequest, creatorID uint) (*AssessmentResponse, error)
	GetByID(ctx context.Context, id uint, userID uint) (*AssessmentResponse, error)
	GetByIDWithDetails(ctx context.Context, id uint, userID uint) (*AssessmentResponse, error)
	Update(ctx context.Context, id uint, req *UpdateAssessmentRequest, userID uint) (*AssessmentResponse, error)
	Delete(ctx context.Context, id uint, userID uint) error

	// List operations
	List(ctx context.Context, filters repositories.AssessmentFilters, userID uint) (*AssessmentListResponse, error)

	// Composition operations
	Copy(ctx context.Context, id uint, userID uint) (*AssessmentResponse, error)
	RegenerateLink(ctx context.Context, id uint, userID uint) (*AssessmentResponse, error)

	// Public shareable-link surface
	GetByShareableLink(ctx context.Context, link string) (*PublicAssessmentView, error)

	// Statistics
	GetStats(ctx context.Context, id uint, userID uint) (*repositories.AssessmentStats, error)
}

type QuestionService interface {
	// Core CRUD operations
	Create(ctx context.Context, req *CreateQuestionRequest) (*QuestionResponse, error)
	GetByID(ctx context.Context, id uint) (*QuestionResponse, error)
	Update(ctx context.Context, id uint, req *UpdateQuestionRequest) (*QuestionResponse, error)
	Delete(ctx context.Context, id uint) error

	// List operations
	List(ctx context.Context, filters repositories.QuestionFilters) (*QuestionListResponse, error)
	GetFacets(ctx context.Context) (*QuestionFacets, error)
}

type AttemptService interface {
	// Anonymous taker operations, addressed by shareable link
	Start(ctx context.Context, link string, req *StartAttemptRequest) (*AttemptResponse, error)
	SubmitAnswer(ctx context.Context, attemptID uint, req *SubmitAnswerRequest) (*models.AssessmentAnswer, error)
	Complete(ctx context.Context, attemptID uint) (*AttemptResponse, error)
	GetForTaker(ctx context.Context, attemptID uint) (*AttemptResponse, error)

	// Reviewer operations
	GetByID(ctx context.Context, id uint, userID uint) (*AttemptResponse, error)
	List(ctx context.Context, filters repositories.AttemptFilters, userID uint) (*AttemptListResponse, error)
	GetByAssessment(ctx context.Context, assessmentID uint, filters repositories.AttemptFilters, userID uint) (*AttemptListResponse, error)
	GetRecent(ctx context.Context, userID uint, limit int) ([]*AttemptResponse, error)
	ScoreAnswer(ctx context.Context, attemptID, answerID uint, req *ScoreAnswerRequest, userID uint) (*models.AssessmentAnswer, error)

	// Maintenance
	ExpireOverdue(ctx context.Context) (int, error)
}

type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uint) (*models.User, error)
	ResendVerification(ctx context.Context, email string) error
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type CandidateService interface {
	Create(ctx context.Context, req *CreateCandidateRequest) (*models.Candidate, error)
	GetByID(ctx context.Context, id uint) (*models.Candidate, error)
	Update(ctx context.Context, id uint, req *UpdateCandidateRequest) (*models.Candidate, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.CandidateFilters) (*CandidateListResponse, error)
}

type ContentService interface {
	// Keyed content blocks
	CreateContent(ctx context.Context, req *CreateContentRequest) (*models.Content, error)
	GetContent(ctx context.Context, key string) (*models.Content, error)
	UpdateContent(ctx context.Context, key string, req *UpdateContentRequest) (*models.Content, error)
	ListContent(ctx context.Context, filters repositories.ContentFilters) ([]*models.Content, int64, error)

	// Pages with ordered sections
	CreatePage(ctx context.Context, req *CreatePageRequest) (*PageResponse, error)
	GetPage(ctx context.Context, slug string) (*PageResponse, error)
	UpdatePage(ctx context.Context, slug string, req *UpdatePageRequest) (*PageResponse, error)
}

type ReportService interface {
	ExportAttempts(ctx context.Context, assessmentID uint, userID uint) (*ExportResult, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Assessment() AssessmentService
	Question() QuestionService
	Attempt() AttemptService
	Auth() AuthService
	Candidate() CandidateService
	Content() ContentService
	Report() ReportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
