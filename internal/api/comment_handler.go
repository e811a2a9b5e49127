package api

import (
	"net/http"

	"github.com/blog-personal-api/internal/models"
	"github.com/blog-personal-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListForPost handles GET /api/comments/post/:postId
func (h *CommentHandler) ListForPost(c *gin.Context) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	tree, err := h.services.Comments.ListForPost(c.Request.Context(), postID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

// Create handles POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var in models.CommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	comment, err := h.services.Comments.Create(c.Request.Context(), principal(c), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
