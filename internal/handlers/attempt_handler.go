package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"github.com/laksham-labs/assessment-portal/internal/services"
	"github.com/laksham-labs/assessment-portal/internal/utils"
	"github.com/laksham-labs/assessment-portal/internal/validator"
)

type AttemptHandler struct {
	BaseHandler
	attemptService services.AttemptService
	validator      *validator.Validator
}

func NewAttemptHandler(attemptService services.AttemptService, validator *validator.Validator, logger utils.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		attemptService: attemptService,
		validator:      validator,
	}
}

// ===== PUBLIC TAKER ENDPOINTS =====

// StartAttempt begins an anonymous attempt through a shareable link
// @Summary Start attempt
// @Tags public
// @Accept json
// @Produce json
// @Param link path string true "Shareable link"
// @Param attempt body services.StartAttemptRequest true "Candidate identity"
// @Success 201 {object} services.AttemptResponse
// @Failure 404 {object} ErrorResponse
// @Router /shared/{link}/attempts [post]
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	link := c.Param("link")

	var req services.StartAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	attempt, err := h.attemptService.Start(c.Request.Context(), link, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attempt)
}

// SubmitAnswer stores or replaces the answer for one question
// @Summary Submit answer
// @Tags public
// @Accept json
// @Produce json
// @Param id path uint true "Attempt ID"
// @Param answer body services.SubmitAnswerRequest true "Answer payload"
// @Success 200 {object} models.AssessmentAnswer
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{id}/answers [post]
func (h *AttemptHandler) SubmitAnswer(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	answer, err := h.attemptService.SubmitAnswer(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

// CompleteAttempt finalizes an attempt
// @Summary Complete attempt
// @Tags public
// @Produce json
// @Param id path uint true "Attempt ID"
// @Success 200 {object} services.AttemptResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /attempts/{id}/complete [post]
func (h *AttemptHandler) CompleteAttempt(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	attempt, err := h.attemptService.Complete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempt)
}

// GetAttemptForTaker returns an attempt to its anonymous taker
// @Summary Get attempt (taker view)
// @Tags public
// @Produce json
// @Param id path uint true "Attempt ID"
// @Success 200 {object} services.AttemptResponse
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{id} [get]
func (h *AttemptHandler) GetAttemptForTaker(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	attempt, err := h.attemptService.GetForTaker(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempt)
}

// ===== REVIEWER ENDPOINTS =====

// GetAttempt returns an attempt with answers to the assessment creator
// @Summary Get attempt (reviewer view)
// @Tags attempts
// @Produce json
// @Param id path uint true "Attempt ID"
// @Success 200 {object} services.AttemptResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /review/attempts/{id} [get]
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	attempt, err := h.attemptService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempt)
}

// ListAttempts lists attempts across the caller's assessments
// @Summary List attempts
// @Tags attempts
// @Produce json
// @Param status query string false "Attempt status"
// @Param candidate_email query string false "Candidate email"
// @Success 200 {object} services.AttemptListResponse
// @Router /review/attempts [get]
func (h *AttemptHandler) ListAttempts(c *gin.Context) {
	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	filters := parseAttemptFilters(c)

	attempts, err := h.attemptService.List(c.Request.Context(), filters, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempts)
}

// GetAttemptsByAssessment lists attempts for one assessment
// @Summary List attempts by assessment
// @Tags attempts
// @Produce json
// @Param id path uint true "Assessment ID"
// @Success 200 {object} services.AttemptListResponse
// @Failure 403 {object} ErrorResponse
// @Router /assessments/{id}/attempts [get]
func (h *AttemptHandler) GetAttemptsByAssessment(c *gin.Context) {
	assessmentID := h.parseIDParam(c, "id")
	if assessmentID == 0 {
		return
	}

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	filters := parseAttemptFilters(c)

	attempts, err := h.attemptService.GetByAssessment(c.Request.Context(), assessmentID, filters, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempts)
}

// GetRecentAttempts lists the newest attempts across the caller's assessments
// @Summary Recent attempts
// @Tags attempts
// @Produce json
// @Param limit query int false "Maximum rows" default(10)
// @Success 200 {array} services.AttemptResponse
// @Router /review/attempts/recent [get]
func (h *AttemptHandler) GetRecentAttempts(c *gin.Context) {
	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	limit := parseIntQuery(c, "limit", 10)

	attempts, err := h.attemptService.GetRecent(c.Request.Context(), userID, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempts)
}

// ScoreAnswer records a manual score and feedback for an answer
// @Summary Score answer
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path uint true "Attempt ID"
// @Param answer_id path uint true "Answer ID"
// @Param score body services.ScoreAnswerRequest true "Score payload"
// @Success 200 {object} models.AssessmentAnswer
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /review/attempts/{id}/answers/{answer_id}/score [put]
func (h *AttemptHandler) ScoreAnswer(c *gin.Context) {
	attemptID := h.parseIDParam(c, "id")
	if attemptID == 0 {
		return
	}
	answerID := h.parseIDParam(c, "answer_id")
	if answerID == 0 {
		return
	}

	var req services.ScoreAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	answer, err := h.attemptService.ScoreAnswer(c.Request.Context(), attemptID, answerID, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

func parseAttemptFilters(c *gin.Context) repositories.AttemptFilters {
	filters := repositories.AttemptFilters{
		Limit:     parseIntQuery(c, "limit", 20),
		Offset:    parseIntQuery(c, "offset", 0),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if raw := c.Query("status"); raw != "" {
		status := models.AttemptStatus(raw)
		filters.Status = &status
	}
	if email := c.Query("candidate_email"); email != "" {
		filters.CandidateEmail = &email
	}

	return filters
}
