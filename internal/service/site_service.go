package service

import (
	"context"
	"fmt"
	"time"

	"github.com/breachxpress-api/internal/models"
	"github.com/breachxpress-api/internal/repository"
	"github.com/breachxpress-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// siteService is the concrete implementation of SiteService
type siteService struct {
	repos *repository.Repositories
	log   zerolog.Logger
	now   func() time.Time
}

// newSiteService creates a new SiteService
func newSiteService(repos *repository.Repositories, log zerolog.Logger) *siteService {
	return &siteService{
		repos: repos,
		log:   log.With().Str("service", "site").Logger(),
		now:   time.Now,
	}
}

// Chrome assembles the metadata, active navigation, and footer sections
// every page needs
func (s *siteService) Chrome(ctx context.Context) (*models.SiteChrome, error) {
	metadata, err := s.repos.Site.GetMetadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("load site metadata: %w", err)
	}
	navLinks, err := s.repos.Site.ListNavLinks(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("load navigation: %w", err)
	}
	footer, err := s.repos.Site.ListFooterSections(ctx)
	if err != nil {
		return nil, fmt.Errorf("load footer: %w", err)
	}
	return &models.SiteChrome{
		Metadata:       metadata,
		NavLinks:       navLinks,
		FooterSections: footer,
	}, nil
}

// Home assembles the homepage: hero, content sections, recent and featured
// published articles
func (s *siteService) Home(ctx context.Context) (*models.HomePage, error) {
	hero, err := s.repos.Site.GetHero(ctx)
	if err != nil {
		return nil, fmt.Errorf("load hero: %w", err)
	}
	sections, err := s.repos.Site.ListHomeSections(ctx)
	if err != nil {
		return nil, fmt.Errorf("load home sections: %w", err)
	}
	recent, err := s.repos.Article.ListPublished(ctx, models.ArticleFilter{Limit: 3})
	if err != nil {
		return nil, fmt.Errorf("load recent articles: %w", err)
	}
	featured, err := s.repos.Article.ListPublished(ctx, models.ArticleFilter{Featured: true, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("load featured article: %w", err)
	}

	page := &models.HomePage{
		Hero:           hero,
		Sections:       sections,
		RecentArticles: recent,
	}
	if len(featured) > 0 {
		page.FeaturedArticle = featured[0]
	}
	return page, nil
}

// About retrieves the about page copy
func (s *siteService) About(ctx context.Context) (*models.AboutPage, error) {
	about, err := s.repos.Site.GetAbout(ctx)
	if err != nil {
		return nil, err
	}
	if about == nil {
		return nil, models.ErrNotFound
	}
	return about, nil
}

// Quote retrieves the current quote
func (s *siteService) Quote(ctx context.Context) (*models.Quote, error) {
	quote, err := s.repos.Site.GetQuote(ctx)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, models.ErrNotFound
	}
	return quote, nil
}

// SubmitContact validates and stores a contact message
func (s *siteService) SubmitContact(ctx context.Context, contact *models.Contact) error {
	if errs := validation.ValidateContact(contact); len(errs) > 0 {
		return errs
	}

	contact.ID = uuid.New().String()
	contact.SubmittedAt = s.now()

	if err := s.repos.Contact.Create(ctx, contact); err != nil {
		return fmt.Errorf("store contact: %w", err)
	}
	s.log.Info().Str("email", contact.Email).Str("subject", contact.Subject).Msg("Contact message stored")
	return nil
}

// ListContacts retrieves contact messages for operator review
func (s *siteService) ListContacts(ctx context.Context, limit, offset int) ([]*models.Contact, error) {
	return s.repos.Contact.List(ctx, limit, offset)
}

// UpsertMetadata writes site-wide metadata
func (s *siteService) UpsertMetadata(ctx context.Context, m *models.SiteMetadata) error {
	return s.repos.Site.UpsertMetadata(ctx, m)
}

// UpsertNavLink writes one navigation link, assigning an id if absent
func (s *siteService) UpsertNavLink(ctx context.Context, link *models.NavigationLink) error {
	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	return s.repos.Site.UpsertNavLink(ctx, link)
}

// DeleteNavLink removes one navigation link
func (s *siteService) DeleteNavLink(ctx context.Context, id string) error {
	return s.repos.Site.DeleteNavLink(ctx, id)
}

// UpsertFooterSection writes one footer section, assigning an id if absent
func (s *siteService) UpsertFooterSection(ctx context.Context, section *models.FooterSection) error {
	if section.ID == "" {
		section.ID = uuid.New().String()
	}
	return s.repos.Site.UpsertFooterSection(ctx, section)
}

// UpsertHero writes the homepage hero block
func (s *siteService) UpsertHero(ctx context.Context, hero *models.HeroSection) error {
	return s.repos.Site.UpsertHero(ctx, hero)
}

// UpsertHomeSection validates the section type and writes the block
func (s *siteService) UpsertHomeSection(ctx context.Context, section *models.HomeSection) error {
	if !models.ValidHomeSectionTypes[section.SectionType] {
		return models.ValidationErrors{{
			Field:   "section_type",
			Message: "invalid section type, must be one of: mission, expose, truth, community",
			Value:   section.SectionType,
		}}
	}
	if section.ID == "" {
		section.ID = uuid.New().String()
	}
	return s.repos.Site.UpsertHomeSection(ctx, section)
}

// CreateQuote stores a new quote
func (s *siteService) CreateQuote(ctx context.Context, quote *models.Quote) error {
	if quote.Text == "" {
		return models.ValidationErrors{{Field: "text", Message: "text is required"}}
	}
	quote.ID = uuid.New().String()
	quote.CreatedAt = s.now()
	return s.repos.Site.CreateQuote(ctx, quote)
}

// UpsertAbout writes the about page copy
func (s *siteService) UpsertAbout(ctx context.Context, about *models.AboutPage) error {
	return s.repos.Site.UpsertAbout(ctx, about)
}
