package api

import (
	"net/http"

	"github.com/blog-personal-api/internal/models"
	"github.com/blog-personal-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TagHandler handles tag and category endpoints
type TagHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(services *service.Services, log zerolog.Logger) *TagHandler {
	return &TagHandler{
		services: services,
		log:      log.With().Str("handler", "tag").Logger(),
	}
}

// List handles GET /api/etiquetas
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.services.Tags.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// Get handles GET /api/etiquetas/:id
func (h *TagHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tag, err := h.services.Tags.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// Create handles POST /api/etiquetas
func (h *TagHandler) Create(c *gin.Context) {
	var in models.TagInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	tag, err := h.services.Tags.Create(c.Request.Context(), principal(c), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// Update handles PUT /api/etiquetas/:id
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in models.TagInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	tag, err := h.services.Tags.Update(c.Request.Context(), principal(c), id, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// Delete handles DELETE /api/etiquetas/:id
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Tags.Delete(c.Request.Context(), principal(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategories handles GET /api/categorias
func (h *TagHandler) ListCategories(c *gin.Context) {
	categories, err := h.services.Categories.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
