package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"github.com/laksham-labs/assessment-portal/internal/services"
	"github.com/laksham-labs/assessment-portal/internal/utils"
	"github.com/laksham-labs/assessment-portal/internal/validator"
)

type CandidateHandler struct {
	BaseHandler
	candidateService services.CandidateService
	validator        *validator.Validator
}

func NewCandidateHandler(candidateService services.CandidateService, validator *validator.Validator, logger utils.Logger) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler:      NewBaseHandler(logger),
		candidateService: candidateService,
		validator:        validator,
	}
}

// CreateCandidate registers a candidate profile
// @Summary Create candidate
// @Tags candidates
// @Accept json
// @Produce json
// @Param candidate body services.CreateCandidateRequest true "Candidate payload"
// @Success 201 {object} models.Candidate
// @Failure 409 {object} ErrorResponse
// @Router /candidates [post]
func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	var req services.CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	candidate, err := h.candidateService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, candidate)
}

// GetCandidate returns one candidate profile
// @Summary Get candidate
// @Tags candidates
// @Produce json
// @Param id path uint true "Candidate ID"
// @Success 200 {object} models.Candidate
// @Failure 404 {object} ErrorResponse
// @Router /candidates/{id} [get]
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	candidate, err := h.candidateService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

// UpdateCandidate applies a partial update to a candidate profile
// @Summary Update candidate
// @Tags candidates
// @Accept json
// @Produce json
// @Param id path uint true "Candidate ID"
// @Param candidate body services.UpdateCandidateRequest true "Fields to change"
// @Success 200 {object} models.Candidate
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /candidates/{id} [put]
func (h *CandidateHandler) UpdateCandidate(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	candidate, err := h.candidateService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

// DeleteCandidate removes a candidate profile
// @Summary Delete candidate
// @Tags candidates
// @Param id path uint true "Candidate ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /candidates/{id} [delete]
func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.candidateService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListCandidates lists candidate profiles
// @Summary List candidates
// @Tags candidates
// @Produce json
// @Param search query string false "Match in name or email"
// @Success 200 {object} services.CandidateListResponse
// @Router /candidates [get]
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	filters := repositories.CandidateFilters{
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if search := c.Query("search"); search != "" {
		filters.Search = &search
	}

	candidates, err := h.candidateService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidates)
}
