package api

import (
	"net/http"

	"github.com/breachxpress-api/internal/models"
	"github.com/breachxpress-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SiteHandler handles site content and contact endpoints
type SiteHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(services *service.Services, log zerolog.Logger) *SiteHandler {
	return &SiteHandler{
		services: services,
		log:      log.With().Str("handler", "site").Logger(),
	}
}

// GetChrome handles GET /v1/site
func (h *SiteHandler) GetChrome(c *gin.Context) {
	chrome, err := h.services.Site.Chrome(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, chrome)
}

// GetHome handles GET /v1/home
func (h *SiteHandler) GetHome(c *gin.Context) {
	home, err := h.services.Site.Home(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, home)
}

// GetAbout handles GET /v1/about
func (h *SiteHandler) GetAbout(c *gin.Context) {
	about, err := h.services.Site.About(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, about)
}

// GetQuote handles GET /v1/quote
func (h *SiteHandler) GetQuote(c *gin.Context) {
	quote, err := h.services.Site.Quote(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// SubmitContact handles POST /v1/contact
func (h *SiteHandler) SubmitContact(c *gin.Context) {
	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	if err := h.services.Site.SubmitContact(c.Request.Context(), &contact); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Your message has been received"})
}

// ListContacts handles GET /v1/admin/contacts
func (h *SiteHandler) ListContacts(c *gin.Context) {
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", 10)

	contacts, err := h.services.Site.ListContacts(c.Request.Context(), perPage, (page-1)*perPage)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "page": page})
}

// UpsertMetadata handles PUT /v1/admin/site/metadata
func (h *SiteHandler) UpsertMetadata(c *gin.Context) {
	var m models.SiteMetadata
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if err := h.services.Site.UpsertMetadata(c.Request.Context(), &m); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// UpsertNavLink handles PUT /v1/admin/site/nav-links
func (h *SiteHandler) UpsertNavLink(c *gin.Context) {
	var link models.NavigationLink
	if err := c.ShouldBindJSON(&link); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if err := h.services.Site.UpsertNavLink(c.Request.Context(), &link); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// DeleteNavLink handles DELETE /v1/admin/site/nav-links/:id
func (h *SiteHandler) DeleteNavLink(c *gin.Context) {
	if err := h.services.Site.DeleteNavLink(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpsertFooterSection handles PUT /v1/admin/site/footer-sections
func (h *SiteHandler) UpsertFooterSection(c *gin.Context) {
	var section models.FooterSection
	if err := c.ShouldBindJSON(&section); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if err := h.services.Site.UpsertFooterSection(c.Request.Context(), &section); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

// UpsertHero handles PUT /v1/admin/site/hero
func (h *SiteHandler) UpsertHero(c *gin.Context) {
	var hero models.HeroSection
	if err := c.ShouldBindJSON(&hero); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if err := h.services.Site.UpsertHero(c.Request.Context(), &hero); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, hero)
}

// UpsertHomeSection handles PUT /v1/admin/site/home-sections
func (h *SiteHandler) UpsertHomeSection(c *gin.Context) {
	var section models.HomeSection
	if err := c.ShouldBindJSON(&section); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if err := h.services.Site.UpsertHomeSection(c.Request.Context(), &section); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

// CreateQuote handles POST /v1/admin/site/quotes
func (h *SiteHandler) CreateQuote(c *gin.Context) {
	var quote models.Quote
	if err := c.ShouldBindJSON(&quote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if err := h.services.Site.CreateQuote(c.Request.Context(), &quote); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

// UpsertAbout handles PUT /v1/admin/site/about
func (h *SiteHandler) UpsertAbout(c *gin.Context) {
	var about models.AboutPage
	if err := c.ShouldBindJSON(&about); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if err := h.services.Site.UpsertAbout(c.Request.Context(), &about); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, about)
}
