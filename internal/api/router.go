package api

import (
	"context"
	"net/http"
	"time"

	"github.com/blog-personal-api/internal/config"
	"github.com/blog-personal-api/internal/metrics"
	"github.com/blog-personal-api/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const serviceName = "blog-personal-api"

// HealthCheck reports whether a backing dependency is reachable
type HealthCheck func(ctx context.Context) error

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger, health HealthCheck) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metrics.Middleware())
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	// Handlers
	postHandler := NewPostHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	tagHandler := NewTagHandler(services, log)
	authHandler := NewAuthHandler(services, log)

	router.GET("/health", healthHandler(health, log))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(authenticate(services.Auth))
	{
		posts := api.Group("/posts")
		{
			posts.GET("", postHandler.List)
			posts.GET("/my-posts", requireAuth(), postHandler.MyPosts)
			posts.GET("/slug/:slug", postHandler.GetBySlug)
			posts.GET("/:id", postHandler.GetByID)
			posts.POST("", requireAuth(), requireAuthor(), postHandler.Create)
			posts.PUT("/:id", requireAuth(), requireAuthor(), postHandler.Update)
			posts.DELETE("/:id", requireAuth(), requireAuthor(), postHandler.Delete)
			posts.POST("/:id/views", postHandler.IncrementViews)
		}

		comments := api.Group("/comments")
		{
			comments.GET("/post/:postId", commentHandler.ListForPost)
			comments.POST("", requireAuth(), commentHandler.Create)
		}

		tags := api.Group("/etiquetas")
		{
			tags.GET("", tagHandler.List)
			tags.GET("/:id", tagHandler.Get)
			tags.POST("", requireAuth(), requireAuthor(), tagHandler.Create)
			tags.PUT("/:id", requireAuth(), requireAuthor(), tagHandler.Update)
			tags.DELETE("/:id", requireAuth(), requireAuthor(), tagHandler.Delete)
		}

		api.GET("/categorias", tagHandler.ListCategories)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}
	}

	return router
}

// corsConfig allows the configured front-end origins. With none configured
// any origin is accepted, without credentials.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Location"},
		MaxAge:        300 * time.Second,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// healthHandler returns the health status, including database reachability
func healthHandler(health HealthCheck, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, database := http.StatusOK, "up"
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health(ctx); err != nil {
				log.Error().Err(err).Msg("Health check failed")
				status, database = http.StatusServiceUnavailable, "down"
			}
		}

		healthStatus := "healthy"
		if status != http.StatusOK {
			healthStatus = "unhealthy"
		}
		c.JSON(status, gin.H{
			"status":    healthStatus,
			"database":  database,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   serviceName,
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody(genericErrorMessage))
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}
