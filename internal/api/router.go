package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/breachxpress-api/internal/config"
	"github.com/breachxpress-api/internal/models"
	"github.com/breachxpress-api/internal/repository"
	"github.com/breachxpress-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// EvidenceStore is the upload side of the evidence collaborator as the
// intake handler sees it
type EvidenceStore interface {
	Save(filename string, size int64, r io.Reader) (string, error)
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, operators repository.OperatorRepository, evidence EvidenceStore, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	articleHandler := NewArticleHandler(services, log)
	submissionHandler := NewSubmissionHandler(services, evidence, cfg, log)
	siteHandler := NewSiteHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)

	// Stored evidence blobs, addressed by the opaque references kept on
	// submissions and articles
	router.Static("/media/evidence", cfg.Evidence.Dir)

	// API v1
	v1 := router.Group("/v1")
	{
		articles := v1.Group("/articles")
		{
			articles.GET("", articleHandler.ListPublished)
			articles.GET("/featured", articleHandler.GetFeatured)
			articles.GET("/recent", articleHandler.GetRecent)
			articles.GET("/:slug", articleHandler.GetBySlug)
			articles.GET("/:slug/related", articleHandler.GetRelated)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", articleHandler.ListTags)
			tags.GET("/:slug/articles", articleHandler.ListByTag)
		}

		v1.POST("/submissions", submissionHandler.Create)
		v1.POST("/contact", siteHandler.SubmitContact)

		v1.GET("/site", siteHandler.GetChrome)
		v1.GET("/home", siteHandler.GetHome)
		v1.GET("/about", siteHandler.GetAbout)
		v1.GET("/quote", siteHandler.GetQuote)

		admin := v1.Group("/admin")
		admin.Use(operatorAuth(operators, log))
		{
			admin.GET("/submissions", submissionHandler.List)
			admin.GET("/submissions/:slug", submissionHandler.Get)
			admin.POST("/submissions/:slug/promote", submissionHandler.Promote)

			admin.POST("/articles", articleHandler.Create)
			admin.PUT("/articles/:slug", articleHandler.Update)

			admin.POST("/tags", articleHandler.CreateTag)
			admin.DELETE("/tags/:slug", articleHandler.DeleteTag)

			admin.GET("/contacts", siteHandler.ListContacts)
			admin.PUT("/site/metadata", siteHandler.UpsertMetadata)
			admin.PUT("/site/nav-links", siteHandler.UpsertNavLink)
			admin.DELETE("/site/nav-links/:id", siteHandler.DeleteNavLink)
			admin.PUT("/site/footer-sections", siteHandler.UpsertFooterSection)
			admin.PUT("/site/hero", siteHandler.UpsertHero)
			admin.PUT("/site/home-sections", siteHandler.UpsertHomeSection)
			admin.POST("/site/quotes", siteHandler.CreateQuote)
			admin.PUT("/site/about", siteHandler.UpsertAbout)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "breachxpress-api",
	})
}

// operatorAuth guards the admin surface with basic auth against the
// operators table
func operatorAuth(operators repository.OperatorRepository, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c)
			return
		}

		op, err := operators.GetByUsername(c.Request.Context(), username)
		if err != nil {
			log.Error().Err(err).Msg("Operator lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if op == nil {
			unauthorized(c)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)) != nil {
			unauthorized(c)
			return
		}

		c.Set("operator", op.Username)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="operators"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
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

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// respondError maps domain errors onto HTTP statuses
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var validationErrs models.ValidationErrors
	var promotionErr *models.PromotionError

	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": validationErrs})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "slug already taken"})
	case errors.As(err, &promotionErr):
		log.Error().Err(err).Str("submission", promotionErr.SubmissionSlug).Msg("Promotion failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "promotion failed, submission remains retryable",
			"submission": promotionErr.SubmissionSlug,
		})
	default:
		log.Error().Err(err).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
