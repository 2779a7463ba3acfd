package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/breachxpress-api/internal/mocks"
	"github.com/breachxpress-api/internal/models"
	"github.com/breachxpress-api/internal/repository"
	"github.com/breachxpress-api/internal/service"
	"github.com/rs/zerolog"
)

func newTestArticleService(repos *repository.Repositories) service.ArticleService {
	return service.NewArticleServiceWithClock(repos, zerolog.Nop(),
		steppedClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
}

func TestArticleCreate_AllocatesSlugAndStampsPublishedAt(t *testing.T) {
	repos, artRepo, _ := mocks.NewMockRepositories()
	seedTags(t, repos)
	svc := newTestArticleService(repos)

	article, err := svc.Create(context.Background(), &models.ArticleInput{
		Title:     "Procurement Fraud Uncovered",
		Summary:   "An audit trail that leads somewhere ugly.",
		Body:      "Full write-up.",
		Category:  "investigative",
		Author:    "Desk",
		Published: true,
		TagSlugs:  []string{"corruption"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if article.Slug != "procurement-fraud-uncovered-20240301100002" {
		t.Errorf("Unexpected slug %s", article.Slug)
	}
	if article.PublishedAt.IsZero() {
		t.Error("PublishedAt must be stamped at creation")
	}
	if len(article.Tags) != 1 || article.Tags[0].Slug != "corruption" {
		t.Errorf("Expected tag corruption, got %v", article.Tags)
	}
	if artRepo.SlugToArticle[article.Slug] == nil {
		t.Error("Article should be stored under its slug")
	}
}

func TestArticleUpdate_KeepsSlugAndPublishedAt(t *testing.T) {
	repos, artRepo, _ := mocks.NewMockRepositories()
	svc := newTestArticleService(repos)

	publishedAt := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	existing := &models.Article{
		ID:          "a-1",
		Slug:        "old-title-20240115080000",
		Title:       "Old Title",
		Summary:     "s",
		Body:        "b",
		Category:    "other",
		Author:      "Desk",
		Published:   true,
		PublishedAt: publishedAt,
	}
	artRepo.Articles[existing.ID] = existing
	artRepo.SlugToArticle[existing.Slug] = existing

	updated, err := svc.Update(context.Background(), existing.Slug, &models.ArticleInput{
		Title:    "New Title",
		Summary:  "updated summary",
		Body:     "updated body",
		Category: "corruption",
		Author:   "Desk",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Slug != existing.Slug {
		t.Errorf("Slug must not change on update, got %s", updated.Slug)
	}
	if !updated.PublishedAt.Equal(publishedAt) {
		t.Errorf("PublishedAt must not change on update, got %v", updated.PublishedAt)
	}
	if updated.Title != "New Title" {
		t.Errorf("Title not updated, got %s", updated.Title)
	}
}

func TestArticleUpdate_UnknownSlug(t *testing.T) {
	repos, _, _ := mocks.NewMockRepositories()
	svc := newTestArticleService(repos)

	_, err := svc.Update(context.Background(), "nope", &models.ArticleInput{
		Title: "t", Summary: "s", Body: "b", Category: "other", Author: "a",
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetPublished_HidesUnpublished(t *testing.T) {
	repos, artRepo, _ := mocks.NewMockRepositories()
	svc := newTestArticleService(repos)

	draft := &models.Article{ID: "a-1", Slug: "draft-20240115080000", Title: "Draft", Published: false}
	artRepo.Articles[draft.ID] = draft
	artRepo.SlugToArticle[draft.Slug] = draft

	_, err := svc.GetPublished(context.Background(), draft.Slug)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Unpublished article must look absent, got %v", err)
	}
}

func TestFeatured_EmptyWhenNoneFlagged(t *testing.T) {
	repos, artRepo, _ := mocks.NewMockRepositories()
	svc := newTestArticleService(repos)

	a := &models.Article{ID: "a-1", Slug: "s-1", Title: "t", Published: true}
	artRepo.Articles[a.ID] = a
	artRepo.SlugToArticle[a.Slug] = a

	featured, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatalf("Featured failed: %v", err)
	}
	if featured != nil {
		t.Errorf("Expected no featured article, got %s", featured.Slug)
	}
}

func TestRelated_FallsBackToRecent(t *testing.T) {
	repos, artRepo, _ := mocks.NewMockRepositories()
	svc := newTestArticleService(repos)

	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	subject := &models.Article{ID: "a-1", Slug: "subject", Title: "t", Published: true, PublishedAt: base}
	other := &models.Article{ID: "a-2", Slug: "other", Title: "t", Published: true, PublishedAt: base.Add(time.Hour)}
	for _, a := range []*models.Article{subject, other} {
		artRepo.Articles[a.ID] = a
		artRepo.SlugToArticle[a.Slug] = a
	}

	related, err := svc.Related(context.Background(), "subject", 3)
	if err != nil {
		t.Fatalf("Related failed: %v", err)
	}
	if len(related) != 1 || related[0].Slug != "other" {
		t.Errorf("Expected fallback to [other], got %v", related)
	}
}

func TestCreateTag_PlainSlugNoTimestamp(t *testing.T) {
	repos, _, _ := mocks.NewMockRepositories()
	svc := newTestArticleService(repos)

	tag, err := svc.CreateTag(context.Background(), "Public Records")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if tag.Slug != "public-records" {
		t.Errorf("Expected slug public-records, got %s", tag.Slug)
	}

	_, err = svc.CreateTag(context.Background(), "Public Records")
	if !errors.Is(err, models.ErrSlugTaken) {
		t.Fatalf("Duplicate tag name must collide, got %v", err)
	}
}

func TestCreateTag_EmptyName(t *testing.T) {
	repos, _, _ := mocks.NewMockRepositories()
	svc := newTestArticleService(repos)

	_, err := svc.CreateTag(context.Background(), "  !!  ")
	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %v", err)
	}
}
