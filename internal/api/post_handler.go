package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/blog-personal-api/internal/metrics"
	"github.com/blog-personal-api/internal/models"
	"github.com/blog-personal-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PostHandler handles post endpoints
type PostHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// List handles GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.services.Posts.List(c.Request.Context(), principal(c), c.Query("search"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// MyPosts handles GET /api/posts/my-posts
func (h *PostHandler) MyPosts(c *gin.Context) {
	var status *models.PostStatus
	if raw := c.Query("estadoId"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody("estadoId must be an integer"))
			return
		}
		s := models.PostStatus(n)
		status = &s
	}

	posts, err := h.services.Posts.MyPosts(c.Request.Context(), principal(c), status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetByID handles GET /api/posts/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.services.Posts.GetByID(c.Request.Context(), principal(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetBySlug handles GET /api/posts/slug/:slug
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.services.Posts.GetBySlug(c.Request.Context(), principal(c), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Create handles POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var in models.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	post, err := h.services.Posts.Create(c.Request.Context(), principal(c), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/posts/%d", post.ID))
	c.JSON(http.StatusCreated, post)
}

// Update handles PUT /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in models.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	post, err := h.services.Posts.Update(c.Request.Context(), principal(c), id, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Posts.Delete(c.Request.Context(), principal(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// IncrementViews handles POST /api/posts/:id/views
func (h *PostHandler) IncrementViews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Posts.IncrementViews(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	metrics.PostViewed()
	c.JSON(http.StatusOK, true)
}
