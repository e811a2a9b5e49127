package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/blog-personal-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const genericErrorMessage = "an unexpected error occurred"

func errorBody(message string) gin.H {
	return gin.H{
		"message":   message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
}

// respondError maps a service error to its status code and logs it at the
// matching level. Unknown errors are hidden behind a generic 500.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Rejected invalid request")
		body := errorBody(err.Error())
		body["errors"] = validationErr.Errors
		c.JSON(http.StatusBadRequest, body)

	case errors.Is(err, service.ErrInvalidCredentials):
		log.Warn().Str("path", c.Request.URL.Path).Msg("Invalid credentials")
		c.JSON(http.StatusUnauthorized, errorBody(err.Error()))

	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrBadArgument):
		log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Rejected request")
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))

	case errors.Is(err, service.ErrDefaultRoleNotFound):
		log.Error().Err(err).Bool("critical", true).Msg("Default role missing from database")
		c.JSON(http.StatusInternalServerError, errorBody(genericErrorMessage))

	case errors.Is(err, service.ErrNotFound):
		log.Info().Str("path", c.Request.URL.Path).Msg("Resource not found")
		c.JSON(http.StatusNotFound, errorBody(err.Error()))

	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrCommentsDisabled):
		log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Forbidden")
		c.JSON(http.StatusForbidden, errorBody(err.Error()))

	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, errorBody(genericErrorMessage))
	}
}

// badRequest answers 400 for a body that could not be bound
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody("invalid request body: "+err.Error()))
}
