package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/breachxpress-api/internal/models"
	"github.com/breachxpress-api/internal/repository"
	"github.com/breachxpress-api/internal/slug"
	"github.com/breachxpress-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxSlugRetries bounds how often a write is retried after the unique index
// rejects a candidate slug that passed the advisory pre-check
const maxSlugRetries = 3

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repos *repository.Repositories
	log   zerolog.Logger
	now   func() time.Time
}

// newArticleService creates a new ArticleService
func newArticleService(repos *repository.Repositories, log zerolog.Logger) *articleService {
	return &articleService{
		repos: repos,
		log:   log.With().Str("service", "article").Logger(),
		now:   time.Now,
	}
}

// Create builds an operator-authored article: slug allocated against the
// article collection, published_at stamped once at creation.
func (s *articleService) Create(ctx context.Context, in *models.ArticleInput) (*models.Article, error) {
	if errs := validation.ValidateArticleInput(in); len(errs) > 0 {
		return nil, errs
	}

	tags, err := s.repos.Tag.GetBySlugs(ctx, in.TagSlugs)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}

	article := &models.Article{
		ID:              uuid.New().String(),
		Title:           in.Title,
		Summary:         in.Summary,
		Body:            in.Body,
		Evidence:        in.Evidence,
		Category:        in.Category,
		Author:          in.Author,
		MetaDescription: in.MetaDescription,
		Published:       in.Published,
		IsFeatured:      in.IsFeatured,
		Tags:            tags,
		PublishedAt:     s.now(),
	}

	allocator := slug.NewAllocator(s.repos.Article.SlugExists, s.now)
	if err := s.createWithSlugRetry(ctx, allocator, article, tagIDs(tags)); err != nil {
		return nil, err
	}

	s.log.Info().Str("slug", article.Slug).Str("title", article.Title).Msg("Article created")
	return article, nil
}

// createWithSlugRetry allocates a slug and attempts the insert, re-deriving
// the slug when the unique index catches a race that the advisory membership
// check missed.
func (s *articleService) createWithSlugRetry(ctx context.Context, allocator *slug.Allocator, article *models.Article, tagIDs []string) error {
	for attempt := 0; attempt < maxSlugRetries; attempt++ {
		candidate, err := allocator.Allocate(ctx, article.Title)
		if err != nil {
			return fmt.Errorf("allocate slug: %w", err)
		}
		article.Slug = candidate

		err = s.repos.Article.CreateWithTags(ctx, article, tagIDs)
		if err == nil {
			return nil
		}
		if !errors.Is(err, models.ErrSlugTaken) {
			return fmt.Errorf("create article: %w", err)
		}
		s.log.Warn().Str("slug", candidate).Msg("Slug lost write race, re-deriving")
	}
	return fmt.Errorf("create article: %w", slug.ErrExhausted)
}

// Update edits an article's mutable fields. The slug in the URL stays the
// slug of the record: slug and published_at never change.
func (s *articleService) Update(ctx context.Context, slugStr string, in *models.ArticleInput) (*models.Article, error) {
	if errs := validation.ValidateArticleInput(in); len(errs) > 0 {
		return nil, errs
	}

	article, err := s.repos.Article.GetBySlug(ctx, slugStr)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, models.ErrNotFound
	}

	article.Title = in.Title
	article.Summary = in.Summary
	article.Body = in.Body
	article.Evidence = in.Evidence
	article.Category = in.Category
	article.Author = in.Author
	article.MetaDescription = in.MetaDescription
	article.Published = in.Published
	article.IsFeatured = in.IsFeatured

	if err := s.repos.Article.Update(ctx, article); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	s.log.Info().Str("slug", article.Slug).Msg("Article updated")
	return article, nil
}

// GetPublished retrieves one published article by slug. Unpublished records
// are indistinguishable from absent ones on the public surface.
func (s *articleService) GetPublished(ctx context.Context, slugStr string) (*models.Article, error) {
	article, err := s.repos.Article.GetBySlug(ctx, slugStr)
	if err != nil {
		return nil, err
	}
	if article == nil || !article.Published {
		return nil, models.ErrNotFound
	}
	return article, nil
}

// ListPublished retrieves published articles, newest first
func (s *articleService) ListPublished(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	return s.repos.Article.ListPublished(ctx, filter)
}

// Featured retrieves the most recent featured published article, if any
func (s *articleService) Featured(ctx context.Context) (*models.Article, error) {
	articles, err := s.repos.Article.ListPublished(ctx, models.ArticleFilter{Featured: true, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, nil
	}
	return articles[0], nil
}

// Related retrieves published articles sharing a tag with the given one,
// falling back to the most recent articles when nothing overlaps
func (s *articleService) Related(ctx context.Context, slugStr string, limit int) ([]*models.Article, error) {
	article, err := s.GetPublished(ctx, slugStr)
	if err != nil {
		return nil, err
	}

	related, err := s.repos.Article.ListRelated(ctx, article.ID, limit)
	if err != nil {
		return nil, err
	}
	if len(related) > 0 {
		return related, nil
	}

	recent, err := s.repos.Article.ListPublished(ctx, models.ArticleFilter{Limit: limit + 1})
	if err != nil {
		return nil, err
	}
	fallback := make([]*models.Article, 0, limit)
	for _, a := range recent {
		if a.Slug != slugStr && len(fallback) < limit {
			fallback = append(fallback, a)
		}
	}
	return fallback, nil
}

// ListTags retrieves all tags
func (s *articleService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.repos.Tag.List(ctx)
}

// CreateTag creates a tag with a slugified name. Tag slugs carry no
// timestamp suffix: a name collision is an operator error, not a race to
// absorb.
func (s *articleService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	base := slug.Make(name)
	if base == "" {
		return nil, models.ValidationErrors{{Field: "name", Message: "name is required"}}
	}

	tag := &models.Tag{ID: uuid.New().String(), Slug: base, Name: name}
	if err := s.repos.Tag.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag by slug
func (s *articleService) DeleteTag(ctx context.Context, slugStr string) error {
	return s.repos.Tag.Delete(ctx, slugStr)
}

// tagIDs extracts the id column of a tag set
func tagIDs(tags []models.Tag) []string {
	ids := make([]string, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}
