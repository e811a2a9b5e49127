package models

// Role identifies a user's role. Values match the seeded roles table and
// are part of the API contract.
type Role int

const (
	RoleAdmin   Role = 1
	RoleAuthor  Role = 2
	RoleUser    Role = 3
	RoleVisitor Role = 4
)

var roleNames = map[Role]string{
	RoleAdmin:   "Administrador",
	RoleAuthor:  "Autor",
	RoleUser:    "Usuario",
	RoleVisitor: "Visitante",
}

// Valid reports whether r is one of the seeded roles
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Name returns the seeded display name of the role
func (r Role) Name() string {
	return roleNames[r]
}

// CanAuthor reports whether the role may create and manage posts
func (r Role) CanAuthor() bool {
	return r == RoleAuthor || r == RoleAdmin
}

// PostStatus is the publication state of a post
type PostStatus int

const (
	PostDraft     PostStatus = 1
	PostPublished PostStatus = 2
	PostArchived  PostStatus = 3
	PostPrivate   PostStatus = 4
)

var postStatusNames = map[PostStatus]string{
	PostDraft:     "Borrador",
	PostPublished: "Publicado",
	PostArchived:  "Archivado",
	PostPrivate:   "Privado",
}

// AllPostStatuses lists every post status in id order
var AllPostStatuses = []PostStatus{PostDraft, PostPublished, PostArchived, PostPrivate}

func (s PostStatus) Valid() bool {
	_, ok := postStatusNames[s]
	return ok
}

func (s PostStatus) Name() string {
	return postStatusNames[s]
}

// CommentStatus is the moderation state of a comment
type CommentStatus int

const (
	CommentPending  CommentStatus = 1
	CommentApproved CommentStatus = 2
	CommentRejected CommentStatus = 3
)

var commentStatusNames = map[CommentStatus]string{
	CommentPending:  "Pendiente",
	CommentApproved: "Aprobado",
	CommentRejected: "Rechazado",
}

func (s CommentStatus) Valid() bool {
	_, ok := commentStatusNames[s]
	return ok
}

func (s CommentStatus) Name() string {
	return commentStatusNames[s]
}
