package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/breachxpress-api/internal/config"
	"github.com/breachxpress-api/internal/models"
	"github.com/breachxpress-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SubmissionHandler handles story intake and the operator promotion surface
type SubmissionHandler struct {
	services *service.Services
	evidence EvidenceStore
	cfg      *config.Config
	log      zerolog.Logger
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(services *service.Services, evidence EvidenceStore, cfg *config.Config, log zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		services: services,
		evidence: evidence,
		cfg:      cfg,
		log:      log.With().Str("handler", "submission").Logger(),
	}
}

// Create handles POST /v1/submissions. The payload is multipart: text fields
// plus an optional evidence file, which is stored before the submission is
// validated and persisted.
func (h *SubmissionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	in := &models.SubmissionInput{
		Title:           c.PostForm("title"),
		Summary:         c.PostForm("summary"),
		Story:           c.PostForm("story"),
		Category:        c.PostForm("category"),
		MetaDescription: c.PostForm("meta_description"),
	}
	if tags := c.PostForm("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				in.TagSlugs = append(in.TagSlugs, t)
			}
		}
	}
	if in.Category == "" {
		in.Category = "user_submitted"
	}

	file, header, err := c.Request.FormFile("evidence")
	switch {
	case err == nil:
		defer file.Close()
		ref, err := h.evidence.Save(header.Filename, header.Size, file)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		in.Evidence = ref
	case errors.Is(err, http.ErrMissingFile):
		// evidence is optional
	default:
		h.log.Warn().Err(err).Msg("Malformed multipart body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed multipart body"})
		return
	}

	sub, err := h.services.Submission.Submit(ctx, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().Str("slug", sub.Slug).Bool("evidence", sub.Evidence != "").Msg("Submission received")
	c.JSON(http.StatusAccepted, gin.H{
		"slug":    sub.Slug,
		"status":  sub.PromotionStatus,
		"message": "Your story has been received",
	})
}

// Promote handles POST /v1/admin/submissions/:slug/promote
func (h *SubmissionHandler) Promote(c *gin.Context) {
	article, err := h.services.Submission.Promote(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().Str("submission", c.Param("slug")).Str("article", article.Slug).
		Str("operator", c.GetString("operator")).Msg("Submission promoted")
	c.JSON(http.StatusOK, gin.H{
		"article": article,
		"message": "Submission promoted",
	})
}

// Get handles GET /v1/admin/submissions/:slug
func (h *SubmissionHandler) Get(c *gin.Context) {
	sub, err := h.services.Submission.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// List handles GET /v1/admin/submissions
func (h *SubmissionHandler) List(c *gin.Context) {
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", 10)

	subs, err := h.services.Submission.List(c.Request.Context(), perPage, (page-1)*perPage)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"submissions": subs,
		"page":        page,
		"per_page":    perPage,
	})
}
