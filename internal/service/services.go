package service

import (
	"context"

	"github.com/breachxpress-api/internal/models"
	"github.com/breachxpress-api/internal/repository"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for article operations: the public
// read surface plus operator CRUD
type ArticleService interface {
	Create(ctx context.Context, in *models.ArticleInput) (*models.Article, error)
	Update(ctx context.Context, slug string, in *models.ArticleInput) (*models.Article, error)
	GetPublished(ctx context.Context, slug string) (*models.Article, error)
	ListPublished(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	Featured(ctx context.Context) (*models.Article, error)
	Related(ctx context.Context, slug string, limit int) ([]*models.Article, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	CreateTag(ctx context.Context, name string) (*models.Tag, error)
	DeleteTag(ctx context.Context, slug string) error
}

// SubmissionService defines the interface for story intake and promotion
type SubmissionService interface {
	Submit(ctx context.Context, in *models.SubmissionInput) (*models.Submission, error)
	Promote(ctx context.Context, slug string) (*models.Article, error)
	Get(ctx context.Context, slug string) (*models.Submission, error)
	List(ctx context.Context, limit, offset int) ([]*models.Submission, error)
}

// SiteService defines the interface for site content and contact messages
type SiteService interface {
	Chrome(ctx context.Context) (*models.SiteChrome, error)
	Home(ctx context.Context) (*models.HomePage, error)
	About(ctx context.Context) (*models.AboutPage, error)
	Quote(ctx context.Context) (*models.Quote, error)
	SubmitContact(ctx context.Context, contact *models.Contact) error
	ListContacts(ctx context.Context, limit, offset int) ([]*models.Contact, error)
	UpsertMetadata(ctx context.Context, m *models.SiteMetadata) error
	UpsertNavLink(ctx context.Context, link *models.NavigationLink) error
	DeleteNavLink(ctx context.Context, id string) error
	UpsertFooterSection(ctx context.Context, section *models.FooterSection) error
	UpsertHero(ctx context.Context, hero *models.HeroSection) error
	UpsertHomeSection(ctx context.Context, section *models.HomeSection) error
	CreateQuote(ctx context.Context, quote *models.Quote) error
	UpsertAbout(ctx context.Context, about *models.AboutPage) error
}

// EvidenceChecker verifies that a stored evidence reference still resolves
// to a blob. Promotion refuses dangling references.
type EvidenceChecker interface {
	Exists(ref string) bool
}

// Services holds all service interfaces
type Services struct {
	Article    ArticleService
	Submission SubmissionService
	Site       SiteService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, evidence EvidenceChecker, log zerolog.Logger) *Services {
	return &Services{
		Article:    newArticleService(repos, log),
		Submission: newSubmissionService(repos, evidence, log),
		Site:       newSiteService(repos, log),
	}
}
