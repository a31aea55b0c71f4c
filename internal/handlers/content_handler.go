package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"github.com/laksham-labs/assessment-portal/internal/services"
	"github.com/laksham-labs/assessment-portal/internal/utils"
	"github.com/laksham-labs/assessment-portal/internal/validator"
)

type ContentHandler struct {
	BaseHandler
	contentService services.ContentService
	validator      *validator.Validator
}

func NewContentHandler(contentService services.ContentService, validator *validator.Validator, logger utils.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    NewBaseHandler(logger),
		contentService: contentService,
		validator:      validator,
	}
}

// ===== KEYED CONTENT BLOCKS =====

// CreateContent stores a keyed content block
// @Summary Create content
// @Tags content
// @Accept json
// @Produce json
// @Param content body services.CreateContentRequest true "Content payload"
// @Success 201 {object} models.Content
// @Failure 409 {object} ErrorResponse
// @Router /content [post]
func (h *ContentHandler) CreateContent(c *gin.Context) {
	var req services.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	content, err := h.contentService.CreateContent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, content)
}

// GetContent returns one content block by key
// @Summary Get content
// @Tags content
// @Produce json
// @Param key path string true "Content key"
// @Success 200 {object} models.Content
// @Failure 404 {object} ErrorResponse
// @Router /content/{key} [get]
func (h *ContentHandler) GetContent(c *gin.Context) {
	key := c.Param("key")

	content, err := h.contentService.GetContent(c.Request.Context(), key)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, content)
}

// UpdateContent applies a partial update to a content block
// @Summary Update content
// @Tags content
// @Accept json
// @Produce json
// @Param key path string true "Content key"
// @Param content body services.UpdateContentRequest true "Fields to change"
// @Success 200 {object} models.Content
// @Failure 404 {object} ErrorResponse
// @Router /content/{key} [put]
func (h *ContentHandler) UpdateContent(c *gin.Context) {
	key := c.Param("key")

	var req services.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	content, err := h.contentService.UpdateContent(c.Request.Context(), key, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, content)
}

// ListContent lists content blocks with filters
// @Summary List content
// @Tags content
// @Produce json
// @Param category query string false "Category"
// @Param language query string false "Language code"
// @Success 200 {object} SuccessResponse
// @Router /content [get]
func (h *ContentHandler) ListContent(c *gin.Context) {
	filters := repositories.ContentFilters{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}
	if language := c.Query("language"); language != "" {
		filters.Language = &language
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true"
		filters.IsActive = &active
	}

	content, total, err := h.contentService.ListContent(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content": content,
		"total":   total,
	})
}

// ===== PAGES =====

// CreatePage stores a page with its ordered sections
// @Summary Create page
// @Tags content
// @Accept json
// @Produce json
// @Param page body services.CreatePageRequest true "Page payload"
// @Success 201 {object} services.PageResponse
// @Failure 409 {object} ErrorResponse
// @Router /pages [post]
func (h *ContentHandler) CreatePage(c *gin.Context) {
	var req services.CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	page, err := h.contentService.CreatePage(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, page)
}

// GetPage returns a page and its sections by slug
// @Summary Get page
// @Tags content
// @Produce json
// @Param slug path string true "Page slug"
// @Success 200 {object} services.PageResponse
// @Failure 404 {object} ErrorResponse
// @Router /pages/{slug} [get]
func (h *ContentHandler) GetPage(c *gin.Context) {
	slug := c.Param("slug")

	page, err := h.contentService.GetPage(c.Request.Context(), slug)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// UpdatePage applies a partial update to a page, optionally replacing its sections
// @Summary Update page
// @Tags content
// @Accept json
// @Produce json
// @Param slug path string true "Page slug"
// @Param page body services.UpdatePageRequest true "Fields to change"
// @Success 200 {object} services.PageResponse
// @Failure 404 {object} ErrorResponse
// @Router /pages/{slug} [put]
func (h *ContentHandler) UpdatePage(c *gin.Context) {
	slug := c.Param("slug")

	var req services.UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	page, err := h.contentService.UpdatePage(c.Request.Context(), slug, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
