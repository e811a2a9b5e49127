package models

// Tag is a free-form label attached to posts
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"nombre" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

// TagInput is the body for creating or updating a tag. ID is only
// meaningful on update, where it must match the path.
type TagInput struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre" binding:"required"`
}

// Category groups posts by topic
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"nombre" db:"name"`
	Slug string `json:"slug" db:"slug"`
}
