package repository

import (
	"context"
	"errors"

	"github.com/breachxpress-api/internal/database"
	"github.com/breachxpress-api/internal/models"
	"github.com/lib/pq"
)

// ArticleRepository defines the interface for article data operations.
// Slug and published_at are write-once: Update never touches them.
type ArticleRepository interface {
	CreateWithTags(ctx context.Context, article *models.Article, tagIDs []string) error
	Update(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	ListPublished(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	ListRelated(ctx context.Context, articleID string, limit int) ([]*models.Article, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// SubmissionRepository defines the interface for submission data operations.
// Promote is the single-transaction promotion write: article insert, tag-link
// copy, and the promoted marker on the submission commit or roll back as one.
type SubmissionRepository interface {
	CreateWithTags(ctx context.Context, sub *models.Submission, tagIDs []string) error
	GetBySlug(ctx context.Context, slug string) (*models.Submission, error)
	List(ctx context.Context, limit, offset int) ([]*models.Submission, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	SetPromotionStatus(ctx context.Context, id string, status models.PromotionStatus) error
	Promote(ctx context.Context, submissionID string, article *models.Article, tagIDs []string) error
	Count(ctx context.Context) (int, error)
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	List(ctx context.Context) ([]models.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tag, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]models.Tag, error)
	Delete(ctx context.Context, slug string) error
}

// SiteRepository defines the interface for site content (metadata, navigation,
// footer, hero, home sections, quotes, about page)
type SiteRepository interface {
	GetMetadata(ctx context.Context) (*models.SiteMetadata, error)
	UpsertMetadata(ctx context.Context, m *models.SiteMetadata) error
	ListNavLinks(ctx context.Context, activeOnly bool) ([]models.NavigationLink, error)
	UpsertNavLink(ctx context.Context, link *models.NavigationLink) error
	DeleteNavLink(ctx context.Context, id string) error
	ListFooterSections(ctx context.Context) ([]models.FooterSection, error)
	UpsertFooterSection(ctx context.Context, section *models.FooterSection) error
	GetHero(ctx context.Context) (*models.HeroSection, error)
	UpsertHero(ctx context.Context, hero *models.HeroSection) error
	ListHomeSections(ctx context.Context) ([]models.HomeSection, error)
	UpsertHomeSection(ctx context.Context, section *models.HomeSection) error
	GetQuote(ctx context.Context) (*models.Quote, error)
	CreateQuote(ctx context.Context, quote *models.Quote) error
	GetAbout(ctx context.Context) (*models.AboutPage, error)
	UpsertAbout(ctx context.Context, about *models.AboutPage) error
}

// ContactRepository defines the interface for contact message operations
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	List(ctx context.Context, limit, offset int) ([]*models.Contact, error)
	Count(ctx context.Context) (int, error)
}

// OperatorRepository defines the interface for operator account operations
type OperatorRepository interface {
	Create(ctx context.Context, op *models.Operator) error
	GetByUsername(ctx context.Context, username string) (*models.Operator, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article    ArticleRepository
	Submission SubmissionRepository
	Tag        TagRepository
	Site       SiteRepository
	Contact    ContactRepository
	Operator   OperatorRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:    NewArticleRepo(db),
		Submission: NewSubmissionRepo(db),
		Tag:        NewTagRepo(db),
		Site:       NewSiteRepo(db),
		Contact:    NewContactRepo(db),
		Operator:   NewOperatorRepo(db),
	}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally on a specific constraint name.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
