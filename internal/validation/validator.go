package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/blog-personal-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 100
	MinPasswordLength = 6
	MaxTitleLength    = 255
	MaxSummaryLength  = 500
	MaxTagNameLength  = 100
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateRegister validates a registration request
func ValidateRegister(req *models.RegisterRequest) []ValidationError {
	var errors []ValidationError

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: req.Email})
	}

	username := strings.TrimSpace(req.Username)
	switch n := utf8.RuneCountInString(username); {
	case n == 0:
		errors = append(errors, ValidationError{Field: "nombreUsuario", Message: "nombreUsuario is required"})
	case n < MinUsernameLength:
		errors = append(errors, ValidationError{
			Field:   "nombreUsuario",
			Message: fmt.Sprintf("nombreUsuario must be at least %d characters", MinUsernameLength),
			Value:   req.Username,
		})
	case n > MaxUsernameLength:
		errors = append(errors, ValidationError{
			Field:   "nombreUsuario",
			Message: fmt.Sprintf("nombreUsuario must be at most %d characters", MaxUsernameLength),
		})
	}

	if req.Password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	} else if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		errors = append(errors, ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		})
	}

	return errors
}

// ValidatePost validates a post create or update request. A zero status is
// allowed and resolved by the caller.
func ValidatePost(in *models.PostInput) []ValidationError {
	var errors []ValidationError

	title := strings.TrimSpace(in.Title)
	if title == "" {
		errors = append(errors, ValidationError{Field: "titulo", Message: "titulo is required"})
	} else if utf8.RuneCountInString(title) > MaxTitleLength {
		errors = append(errors, ValidationError{
			Field:   "titulo",
			Message: fmt.Sprintf("titulo must be at most %d characters", MaxTitleLength),
		})
	}

	if strings.TrimSpace(in.Body) == "" {
		errors = append(errors, ValidationError{Field: "contenido", Message: "contenido is required"})
	}

	if in.Summary != nil && utf8.RuneCountInString(*in.Summary) > MaxSummaryLength {
		errors = append(errors, ValidationError{
			Field:   "resumen",
			Message: fmt.Sprintf("resumen must be at most %d characters", MaxSummaryLength),
		})
	}

	if in.LanguageID <= 0 {
		errors = append(errors, ValidationError{Field: "idiomaId", Message: "idiomaId is required", Value: in.LanguageID})
	}

	if in.Status != 0 && !in.Status.Valid() {
		errors = append(errors, ValidationError{
			Field:   "estadoId",
			Message: "invalid status, must be one of: 1 (Borrador), 2 (Publicado), 3 (Archivado), 4 (Privado)",
			Value:   int(in.Status),
		})
	}

	for _, id := range in.CategoryIDs {
		if id <= 0 {
			errors = append(errors, ValidationError{Field: "categoriaIds", Message: "category ids must be positive", Value: id})
			break
		}
	}
	for _, id := range in.TagIDs {
		if id <= 0 {
			errors = append(errors, ValidationError{Field: "etiquetaIds", Message: "tag ids must be positive", Value: id})
			break
		}
	}

	return errors
}

// ValidateComment validates a new comment
func ValidateComment(in *models.CommentInput) []ValidationError {
	var errors []ValidationError

	if in.PostID <= 0 {
		errors = append(errors, ValidationError{Field: "postId", Message: "postId is required", Value: in.PostID})
	}

	if strings.TrimSpace(in.Body) == "" {
		errors = append(errors, ValidationError{Field: "contenido", Message: "contenido is required"})
	} else if utf8.RuneCountInString(in.Body) > models.MaxCommentLength {
		errors = append(errors, ValidationError{
			Field:   "contenido",
			Message: fmt.Sprintf("contenido exceeds maximum length of %d", models.MaxCommentLength),
		})
	}

	if in.ParentID != nil && *in.ParentID <= 0 {
		errors = append(errors, ValidationError{Field: "comentarioPadreId", Message: "invalid parent comment id", Value: *in.ParentID})
	}

	return errors
}

// ValidateTag validates a tag create or update request
func ValidateTag(in *models.TagInput) []ValidationError {
	var errors []ValidationError

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errors = append(errors, ValidationError{Field: "nombre", Message: "nombre is required"})
	} else if utf8.RuneCountInString(name) > MaxTagNameLength {
		errors = append(errors, ValidationError{
			Field:   "nombre",
			Message: fmt.Sprintf("nombre must be at most %d characters", MaxTagNameLength),
		})
	}

	return errors
}
