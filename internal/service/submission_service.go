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

// submissionService is the concrete implementation of SubmissionService
type submissionService struct {
	repos    *repository.Repositories
	evidence EvidenceChecker
	log      zerolog.Logger
	now      func() time.Time
}

// newSubmissionService creates a new SubmissionService
func newSubmissionService(repos *repository.Repositories, evidence EvidenceChecker, log zerolog.Logger) *submissionService {
	return &submissionService{
		repos:    repos,
		evidence: evidence,
		log:      log.With().Str("service", "submission").Logger(),
		now:      time.Now,
	}
}

// Submit validates and stores a new story tip. The slug is allocated against
// the submission collection only; a later promotion allocates a fresh one for
// the article namespace.
func (s *submissionService) Submit(ctx context.Context, in *models.SubmissionInput) (*models.Submission, error) {
	if errs := validation.ValidateSubmission(in); len(errs) > 0 {
		return nil, errs
	}

	tags, err := s.repos.Tag.GetBySlugs(ctx, in.TagSlugs)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}

	sub := &models.Submission{
		ID:              uuid.New().String(),
		Title:           in.Title,
		Summary:         in.Summary,
		Story:           in.Story,
		Evidence:        in.Evidence,
		Category:        in.Category,
		MetaDescription: in.MetaDescription,
		Tags:            tags,
		PromotionStatus: models.PromotionPending,
		CreatedAt:       s.now(),
	}

	allocator := slug.NewAllocator(s.repos.Submission.SlugExists, s.now)
	for attempt := 0; attempt < maxSlugRetries; attempt++ {
		candidate, err := allocator.Allocate(ctx, sub.Title)
		if err != nil {
			return nil, fmt.Errorf("allocate slug: %w", err)
		}
		sub.Slug = candidate

		err = s.repos.Submission.CreateWithTags(ctx, sub, tagIDs(tags))
		if err == nil {
			s.log.Info().Str("slug", sub.Slug).Str("category", sub.Category).Msg("Submission stored")
			return sub, nil
		}
		if !errors.Is(err, models.ErrSlugTaken) {
			return nil, fmt.Errorf("store submission: %w", err)
		}
		s.log.Warn().Str("slug", candidate).Msg("Slug lost write race, re-deriving")
	}
	return nil, fmt.Errorf("store submission: %w", slug.ErrExhausted)
}

// Promote converts a stored submission into a published article.
//
// The derived article copies title, summary, story (as body), evidence
// reference, category, tags and meta description; the byline is forced to
// Anonymous, published to true, featured to false, and the slug is allocated
// fresh against the article namespace. Article insert, tag copy, and the
// promoted marker commit in one transaction, so a failure leaves no article
// and the submission retryable.
//
// Promote is idempotent: a submission already promoted returns its existing
// article instead of creating another.
func (s *submissionService) Promote(ctx context.Context, slugStr string) (*models.Article, error) {
	sub, err := s.repos.Submission.GetBySlug(ctx, slugStr)
	if err != nil {
		return nil, fmt.Errorf("load submission: %w", err)
	}
	if sub == nil {
		return nil, models.ErrNotFound
	}

	if sub.PromotionStatus == models.PromotionPromoted {
		article, err := s.repos.Article.GetByID(ctx, sub.ArticleID)
		if err != nil {
			return nil, fmt.Errorf("load promoted article: %w", err)
		}
		if article == nil {
			return nil, &models.PromotionError{SubmissionSlug: sub.Slug,
				Err: fmt.Errorf("promoted marker points at missing article %s", sub.ArticleID)}
		}
		s.log.Info().Str("submission", sub.Slug).Str("article", article.Slug).
			Msg("Submission already promoted, returning existing article")
		return article, nil
	}

	if !s.evidence.Exists(sub.Evidence) {
		return nil, s.failPromotion(ctx, sub,
			fmt.Errorf("evidence reference %q does not resolve", sub.Evidence))
	}

	allocator := slug.NewAllocator(s.repos.Article.SlugExists, s.now)
	ids := tagIDs(sub.Tags)

	for attempt := 0; attempt < maxSlugRetries; attempt++ {
		candidate, err := allocator.Allocate(ctx, sub.Title)
		if err != nil {
			return nil, s.failPromotion(ctx, sub, fmt.Errorf("allocate slug: %w", err))
		}

		article := &models.Article{
			ID:              uuid.New().String(),
			Slug:            candidate,
			Title:           sub.Title,
			Summary:         sub.Summary,
			Body:            sub.Story,
			Evidence:        sub.Evidence,
			Category:        sub.Category,
			Author:          models.AnonymousAuthor,
			MetaDescription: sub.MetaDescription,
			Published:       true,
			IsFeatured:      false,
			Tags:            sub.Tags,
			PublishedAt:     s.now(),
		}

		err = s.repos.Submission.Promote(ctx, sub.ID, article, ids)
		if err == nil {
			s.log.Info().Str("submission", sub.Slug).Str("article", article.Slug).
				Int("tags", len(ids)).Msg("Submission promoted")
			return article, nil
		}
		if errors.Is(err, models.ErrNotFound) {
			return s.resolveLostRace(ctx, sub, err)
		}
		if !errors.Is(err, models.ErrSlugTaken) {
			return nil, s.failPromotion(ctx, sub, err)
		}
		s.log.Warn().Str("slug", candidate).Msg("Article slug lost write race, re-deriving")
	}
	return nil, s.failPromotion(ctx, sub, slug.ErrExhausted)
}

// resolveLostRace handles a promotion write whose status guard found the
// submission no longer promotable: a concurrent promotion won between our
// read and our write. The submission is re-read without marking anything;
// if the winner's article is visible, return it, matching the idempotent
// re-promote path.
func (s *submissionService) resolveLostRace(ctx context.Context, sub *models.Submission, cause error) (*models.Article, error) {
	fresh, err := s.repos.Submission.GetBySlug(ctx, sub.Slug)
	if err == nil && fresh != nil && fresh.PromotionStatus == models.PromotionPromoted {
		article, aerr := s.repos.Article.GetByID(ctx, fresh.ArticleID)
		if aerr == nil && article != nil {
			s.log.Info().Str("submission", sub.Slug).Str("article", article.Slug).
				Msg("Lost promotion race, returning existing article")
			return article, nil
		}
	}
	s.log.Error().Err(cause).Str("submission", sub.Slug).Msg("Promotion failed")
	return nil, &models.PromotionError{SubmissionSlug: sub.Slug, Err: cause}
}

// failPromotion marks the submission retryable and wraps the cause. The mark
// is best effort: the promotion transaction already rolled back, so even if
// the mark fails the submission is still pending and retryable. The status
// guard inside SetPromotionStatus refuses to touch a promoted submission, so
// a mark racing a concurrent successful promotion leaves the terminal state
// intact; that no-op surfaces as ErrNotFound and is not worth logging.
func (s *submissionService) failPromotion(ctx context.Context, sub *models.Submission, cause error) error {
	if err := s.repos.Submission.SetPromotionStatus(ctx, sub.ID, models.PromotionFailed); err != nil &&
		!errors.Is(err, models.ErrNotFound) {
		s.log.Error().Err(err).Str("submission", sub.Slug).Msg("Failed to record promotion failure")
	}
	s.log.Error().Err(cause).Str("submission", sub.Slug).Msg("Promotion failed")
	return &models.PromotionError{SubmissionSlug: sub.Slug, Err: cause}
}

// Get retrieves one submission by slug
func (s *submissionService) Get(ctx context.Context, slugStr string) (*models.Submission, error) {
	sub, err := s.repos.Submission.GetBySlug(ctx, slugStr)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, models.ErrNotFound
	}
	return sub, nil
}

// List retrieves submissions newest first, for operator review
func (s *submissionService) List(ctx context.Context, limit, offset int) ([]*models.Submission, error) {
	return s.repos.Submission.List(ctx, limit, offset)
}
