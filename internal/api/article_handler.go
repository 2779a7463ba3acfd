package api

import (
	"net/http"
	"strconv"

	"github.com/breachxpress-api/internal/models"
	"github.com/breachxpress-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles the public article read surface and the operator
// article/tag endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// ListPublished handles GET /v1/articles
func (h *ArticleHandler) ListPublished(c *gin.Context) {
	filter := models.ArticleFilter{
		Category: c.Query("category"),
		Limit:    intQuery(c, "per_page", 10),
	}
	page := intQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}
	filter.Offset = (page - 1) * filter.Limit

	articles, err := h.services.Article.ListPublished(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"page":     page,
		"per_page": filter.Limit,
	})
}

// GetFeatured handles GET /v1/articles/featured
func (h *ArticleHandler) GetFeatured(c *gin.Context) {
	article, err := h.services.Article.Featured(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// GetRecent handles GET /v1/articles/recent
func (h *ArticleHandler) GetRecent(c *gin.Context) {
	articles, err := h.services.Article.ListPublished(c.Request.Context(), models.ArticleFilter{
		Limit: intQuery(c, "limit", 3),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// GetBySlug handles GET /v1/articles/:slug
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	article, err := h.services.Article.GetPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"article":      article,
		"reading_time": article.ReadingTime(),
	})
}

// GetRelated handles GET /v1/articles/:slug/related
func (h *ArticleHandler) GetRelated(c *gin.Context) {
	related, err := h.services.Article.Related(c.Request.Context(), c.Param("slug"), intQuery(c, "limit", 3))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": related})
}

// ListTags handles GET /v1/tags
func (h *ArticleHandler) ListTags(c *gin.Context) {
	tags, err := h.services.Article.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// ListByTag handles GET /v1/tags/:slug/articles
func (h *ArticleHandler) ListByTag(c *gin.Context) {
	filter := models.ArticleFilter{
		TagSlug: c.Param("slug"),
		Limit:   intQuery(c, "per_page", 10),
	}
	page := intQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}
	filter.Offset = (page - 1) * filter.Limit

	articles, err := h.services.Article.ListPublished(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tag":      c.Param("slug"),
		"articles": articles,
		"page":     page,
	})
}

// Create handles POST /v1/admin/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	article, err := h.services.Article.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().Str("slug", article.Slug).Str("operator", c.GetString("operator")).Msg("Article created")
	c.JSON(http.StatusCreated, article)
}

// Update handles PUT /v1/admin/articles/:slug
func (h *ArticleHandler) Update(c *gin.Context) {
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	article, err := h.services.Article.Update(c.Request.Context(), c.Param("slug"), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// CreateTag handles POST /v1/admin/tags
func (h *ArticleHandler) CreateTag(c *gin.Context) {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	tag, err := h.services.Article.CreateTag(c.Request.Context(), in.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// DeleteTag handles DELETE /v1/admin/tags/:slug
func (h *ArticleHandler) DeleteTag(c *gin.Context) {
	if err := h.services.Article.DeleteTag(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// intQuery parses an integer query parameter with a fallback
func intQuery(c *gin.Context, name string, fallback int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
