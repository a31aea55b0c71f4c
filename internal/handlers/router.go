package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/laksham-labs/assessment-portal/internal/config"
	"github.com/laksham-labs/assessment-portal/internal/services"
	"github.com/laksham-labs/assessment-portal/internal/utils"
	"github.com/laksham-labs/assessment-portal/internal/validator"
)

type HandlerManager struct {
	assessmentHandler *AssessmentHandler
	questionHandler   *QuestionHandler
	attemptHandler    *AttemptHandler
	authHandler       *AuthHandler
	candidateHandler  *CandidateHandler
	contentHandler    *ContentHandler
	serviceManager    services.ServiceManager
	jwtConfig         config.JWTConfig
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
	cfg *config.Config,
) *HandlerManager {
	return &HandlerManager{
		assessmentHandler: NewAssessmentHandler(serviceManager.Assessment(), serviceManager.Report(), validator, logger),
		questionHandler:   NewQuestionHandler(serviceManager.Question(), validator, logger),
		attemptHandler:    NewAttemptHandler(serviceManager.Attempt(), validator, logger),
		authHandler:       NewAuthHandler(serviceManager.Auth(), validator, logger),
		candidateHandler:  NewCandidateHandler(serviceManager.Candidate(), validator, logger),
		contentHandler:    NewContentHandler(serviceManager.Content(), validator, logger),
		serviceManager:    serviceManager,
		jwtConfig:         cfg.JWT,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	// Public routes: anonymous takers and pre-auth flows
	{
		// Shareable link resolution and the attempt lifecycle
		shared := v1.Group("/shared")
		{
			shared.GET("/:link", hm.assessmentHandler.GetSharedAssessment)
			shared.POST("/:link/attempts", hm.attemptHandler.StartAttempt)
		}

		attempts := v1.Group("/attempts")
		{
			attempts.GET("/:id", hm.attemptHandler.GetAttemptForTaker)
			attempts.POST("/:id/answers", hm.attemptHandler.SubmitAnswer)
			attempts.POST("/:id/complete", hm.attemptHandler.CompleteAttempt)
		}

		auth := v1.Group("/auth")
		{
			auth.POST("/signup", hm.authHandler.Signup)
			auth.GET("/verify", hm.authHandler.VerifyEmail)
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/resend-verification", hm.authHandler.ResendVerification)
		}

		// Published site content
		v1.GET("/pages/:slug", hm.contentHandler.GetPage)
		v1.GET("/content/:key", hm.contentHandler.GetContent)
	}

	// Authenticated routes
	authed := v1.Group("")
	authed.Use(JWTAuthMiddleware(hm.jwtConfig))
	{
		authed.GET("/auth/me", hm.authHandler.GetCurrentUser)

		assessments := authed.Group("/assessments")
		{
			assessments.POST("", hm.assessmentHandler.CreateAssessment)
			assessments.GET("", hm.assessmentHandler.ListAssessments)
			assessments.GET("/:id", hm.assessmentHandler.GetAssessment)
			assessments.GET("/:id/details", hm.assessmentHandler.GetAssessmentWithDetails)
			assessments.PUT("/:id", hm.assessmentHandler.UpdateAssessment)
			assessments.DELETE("/:id", hm.assessmentHandler.DeleteAssessment)
			assessments.POST("/:id/copy", hm.assessmentHandler.CopyAssessment)
			assessments.POST("/:id/regenerate-link", hm.assessmentHandler.RegenerateLink)
			assessments.GET("/:id/stats", hm.assessmentHandler.GetAssessmentStats)
			assessments.GET("/:id/attempts", hm.attemptHandler.GetAttemptsByAssessment)
			assessments.GET("/:id/attempts/export", hm.assessmentHandler.ExportAttempts)
		}

		questions := authed.Group("/questions")
		{
			questions.POST("", hm.questionHandler.CreateQuestion)
			questions.GET("", hm.questionHandler.ListQuestions)
			questions.GET("/facets", hm.questionHandler.GetQuestionFacets)
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
		}

		candidates := authed.Group("/candidates")
		{
			candidates.POST("", hm.candidateHandler.CreateCandidate)
			candidates.GET("", hm.candidateHandler.ListCandidates)
			candidates.GET("/:id", hm.candidateHandler.GetCandidate)
			candidates.PUT("/:id", hm.candidateHandler.UpdateCandidate)
			candidates.DELETE("/:id", hm.candidateHandler.DeleteCandidate)
		}

		// Reviewer access to attempts and manual scoring
		review := authed.Group("/review/attempts")
		{
			review.GET("", hm.attemptHandler.ListAttempts)
			review.GET("/recent", hm.attemptHandler.GetRecentAttempts)
			review.GET("/:id", hm.attemptHandler.GetAttempt)
			review.PUT("/:id/answers/:answer_id/score", hm.attemptHandler.ScoreAnswer)
		}

		// Content administration
		content := authed.Group("/content")
		{
			content.POST("", hm.contentHandler.CreateContent)
			content.GET("", hm.contentHandler.ListContent)
			content.PUT("/:key", hm.contentHandler.UpdateContent)
		}
		pages := authed.Group("/pages")
		{
			pages.POST("", hm.contentHandler.CreatePage)
			pages.PUT("/:slug", hm.contentHandler.UpdatePage)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := hm.serviceManager.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "assessment-portal",
				"error":   err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "assessment-portal",
		})
	})
}
