package models

import (
	"time"
)

// Comment represents a comment on a post. ParentID links a reply to the
// comment it answers.
type Comment struct {
	ID        int64         `json:"id" db:"id"`
	PostID    int64         `json:"postId" db:"post_id"`
	AuthorID  int64         `json:"autorId" db:"author_id"`
	Body      string        `json:"contenido" db:"body"`
	Status    CommentStatus `json:"estadoId" db:"status_id"`
	ParentID  *int64        `json:"comentarioPadreId" db:"parent_id"`
	CreatedAt time.Time     `json:"fechaCreacion" db:"created_at"`
}

// CommentView is a comment as returned to clients, with its direct replies
type CommentView struct {
	ID         int64          `json:"id"`
	PostID     int64          `json:"postId"`
	AuthorID   int64          `json:"autorId"`
	AuthorName string         `json:"autorNombre"`
	Body       string         `json:"contenido"`
	Status     CommentStatus  `json:"estadoId"`
	CreatedAt  time.Time      `json:"fechaCreacion"`
	ParentID   *int64         `json:"comentarioPadreId"`
	Replies    []*CommentView `json:"respuestas"`
}

// CommentInput is the request body for creating a comment
type CommentInput struct {
	PostID   int64  `json:"postId" binding:"required"`
	Body     string `json:"contenido" binding:"required"`
	ParentID *int64 `json:"comentarioPadreId"`
}

// MaxCommentLength is the maximum allowed characters in a comment body
const MaxCommentLength = 2000
