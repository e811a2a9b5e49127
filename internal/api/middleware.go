package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/blog-personal-api/internal/auth"
	"github.com/blog-personal-api/internal/service"
	"github.com/gin-gonic/gin"
)

// authenticate resolves an optional bearer token into the request
// principal. A missing or unparseable token leaves the caller anonymous.
func authenticate(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.Anonymous
		if raw, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if parsed, err := authSvc.Authenticate(raw); err == nil {
				p = parsed
			}
		}
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// requireAuth rejects anonymous callers with 401
func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !principal(c).Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("authentication required"))
			return
		}
		c.Next()
	}
}

// requireAuthor rejects callers without the Author or Admin role with 403
func requireAuthor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !principal(c).IsAuthor() {
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody(service.ErrForbidden.Error()))
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func principal(c *gin.Context) auth.Principal {
	return auth.PrincipalFrom(c.Request.Context())
}

// pathID parses a numeric path parameter, answering 400 when it is not one
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorBody(name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}
