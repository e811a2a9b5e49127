package models

import (
	"time"
)

// Post represents a blog post with its joined display fields
type Post struct {
	ID            int64      `json:"id" db:"id"`
	Title         string     `json:"titulo" db:"title"`
	Slug          string     `json:"slug" db:"slug"`
	Body          string     `json:"contenido" db:"body"`
	Summary       *string    `json:"resumen" db:"summary"`
	AuthorID      int64      `json:"autorId" db:"author_id"`
	AuthorName    string     `json:"autorNombre" db:"-"`
	Status        PostStatus `json:"estadoId" db:"status_id"`
	StatusName    string     `json:"estado" db:"-"`
	LanguageID    int        `json:"idiomaId" db:"language_id"`
	LanguageName  string     `json:"idioma" db:"-"`
	AllowComments bool       `json:"permitirComentarios" db:"allow_comments"`
	CreatedAt     time.Time  `json:"fechaCreacion" db:"created_at"`
	PublishedAt   *time.Time `json:"fechaPublicacion" db:"published_at"`
	Views         int64      `json:"vistas" db:"views"`
	CommentCount  int        `json:"comentariosCount" db:"-"`
	Categories    []string   `json:"categorias" db:"-"`
	Tags          []Tag      `json:"etiquetas" db:"-"`
	CategoryIDs   []int64    `json:"-" db:"-"`
	TagIDs        []int64    `json:"-" db:"-"`
}

// PostInput is the request body for creating or updating a post
type PostInput struct {
	Title         string     `json:"titulo" binding:"required"`
	Body          string     `json:"contenido" binding:"required"`
	Summary       *string    `json:"resumen"`
	LanguageID    int        `json:"idiomaId" binding:"required"`
	Status        PostStatus `json:"estadoId"`
	AllowComments *bool      `json:"permitirComentarios"`
	PublishedAt   *time.Time `json:"fechaPublicacion"`
	CategoryIDs   []int64    `json:"categoriaIds"`
	TagIDs        []int64    `json:"etiquetaIds"`
}

// CommentsAllowed resolves the optional flag; comments are allowed unless
// the client explicitly disables them.
func (in *PostInput) CommentsAllowed() bool {
	return in.AllowComments == nil || *in.AllowComments
}

// PostFilter narrows a post listing
type PostFilter struct {
	// Statuses restricts results to these states; nil means no restriction.
	Statuses []PostStatus
	// Search is matched case-insensitively against title, body and summary.
	Search string
}
