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

func newTestSiteService(repos *repository.Repositories) service.SiteService {
	return service.NewSiteServiceWithClock(repos, zerolog.Nop(),
		func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) })
}

func TestChrome_OnlyActiveNavLinks(t *testing.T) {
	repos, _, _ := mocks.NewMockRepositories()
	site := repos.Site.(*mocks.MockSiteRepository)
	site.Metadata = &models.SiteMetadata{SiteName: "BreachXpress"}
	site.NavLinks = []models.NavigationLink{
		{ID: "n-1", Title: "Home", URL: "/", IsActive: true},
		{ID: "n-2", Title: "Hidden", URL: "/old", IsActive: false},
	}
	svc := newTestSiteService(repos)

	chrome, err := svc.Chrome(context.Background())
	if err != nil {
		t.Fatalf("Chrome failed: %v", err)
	}
	if chrome.Metadata.SiteName != "BreachXpress" {
		t.Errorf("Unexpected metadata: %+v", chrome.Metadata)
	}
	if len(chrome.NavLinks) != 1 || chrome.NavLinks[0].ID != "n-1" {
		t.Errorf("Inactive links must be dropped, got %+v", chrome.NavLinks)
	}
}

func TestHome_AssemblesRecentAndFeatured(t *testing.T) {
	repos, artRepo, _ := mocks.NewMockRepositories()
	site := repos.Site.(*mocks.MockSiteRepository)
	site.Hero = &models.HeroSection{Title: "Expose the truth"}
	svc := newTestSiteService(repos)

	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, a := range []*models.Article{
		{ID: "a-1", Slug: "one", Published: true, PublishedAt: base},
		{ID: "a-2", Slug: "two", Published: true, IsFeatured: true, PublishedAt: base.Add(time.Hour)},
		{ID: "a-3", Slug: "three", Published: true, PublishedAt: base.Add(2 * time.Hour)},
		{ID: "a-4", Slug: "four", Published: true, PublishedAt: base.Add(3 * time.Hour)},
	} {
		artRepo.Articles[a.ID] = a
		artRepo.SlugToArticle[a.Slug] = a
	}

	home, err := svc.Home(context.Background())
	if err != nil {
		t.Fatalf("Home failed: %v", err)
	}
	if home.Hero == nil || home.Hero.Title != "Expose the truth" {
		t.Errorf("Unexpected hero: %+v", home.Hero)
	}
	if len(home.RecentArticles) != 3 {
		t.Errorf("Expected 3 recent articles, got %d", len(home.RecentArticles))
	}
	if home.RecentArticles[0].Slug != "four" {
		t.Errorf("Recent articles must be newest first, got %s", home.RecentArticles[0].Slug)
	}
	if home.FeaturedArticle == nil || home.FeaturedArticle.Slug != "two" {
		t.Errorf("Unexpected featured article: %+v", home.FeaturedArticle)
	}
}

func TestAbout_NotConfigured(t *testing.T) {
	repos, _, _ := mocks.NewMockRepositories()
	svc := newTestSiteService(repos)

	_, err := svc.About(context.Background())
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestSubmitContact_StampsIDAndTime(t *testing.T) {
	repos, _, _ := mocks.NewMockRepositories()
	contacts := repos.Contact.(*mocks.MockContactRepository)
	svc := newTestSiteService(repos)

	contact := &models.Contact{
		Name:    "Jordan",
		Email:   "jordan@example.com",
		Subject: "Tip follow-up",
		Message: "Please get in touch.",
	}
	if err := svc.SubmitContact(context.Background(), contact); err != nil {
		t.Fatalf("SubmitContact failed: %v", err)
	}

	if len(contacts.Contacts) != 1 {
		t.Fatalf("Expected 1 stored contact, got %d", len(contacts.Contacts))
	}
	if contact.ID == "" {
		t.Error("Contact must get an id")
	}
	if contact.SubmittedAt.IsZero() {
		t.Error("Contact must get a submission time")
	}
}

func TestSubmitContact_RejectsBadEmail(t *testing.T) {
	repos, _, _ := mocks.NewMockRepositories()
	svc := newTestSiteService(repos)

	err := svc.SubmitContact(context.Background(), &models.Contact{
		Email:   "not-an-email",
		Subject: "s",
		Message: "m",
	})
	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %v", err)
	}
}

func TestUpsertHomeSection_RejectsUnknownType(t *testing.T) {
	repos, _, _ := mocks.NewMockRepositories()
	svc := newTestSiteService(repos)

	err := svc.UpsertHomeSection(context.Background(), &models.HomeSection{
		SectionType: "advertising",
		Title:       "t",
	})
	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %v", err)
	}

	if err := svc.UpsertHomeSection(context.Background(), &models.HomeSection{
		SectionType: "mission",
		Title:       "Our mission",
	}); err != nil {
		t.Fatalf("Valid section type rejected: %v", err)
	}
}
