package mocks

import (
	"context"

	"github.com/breachxpress-api/internal/models"
	"github.com/breachxpress-api/internal/service"
)

// MockArticleService is a mock implementation of ArticleService
type MockArticleService struct {
	Articles   map[string]*models.Article // by slug
	Tags       []models.Tag
	CreateFunc func(ctx context.Context, in *models.ArticleInput) (*models.Article, error)
	UpdateFunc func(ctx context.Context, slug string, in *models.ArticleInput) (*models.Article, error)
}

// Verify interface compliance
var _ service.ArticleService = (*MockArticleService)(nil)

func NewMockArticleService() *MockArticleService {
	return &MockArticleService{Articles: make(map[string]*models.Article)}
}

func (m *MockArticleService) Create(ctx context.Context, in *models.ArticleInput) (*models.Article, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	article := &models.Article{Slug: "test-article", Title: in.Title}
	m.Articles[article.Slug] = article
	return article, nil
}

func (m *MockArticleService) Update(ctx context.Context, slug string, in *models.ArticleInput) (*models.Article, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, slug, in)
	}
	article, ok := m.Articles[slug]
	if !ok {
		return nil, models.ErrNotFound
	}
	article.Title = in.Title
	return article, nil
}

func (m *MockArticleService) GetPublished(ctx context.Context, slug string) (*models.Article, error) {
	article, ok := m.Articles[slug]
	if !ok || !article.Published {
		return nil, models.ErrNotFound
	}
	return article, nil
}

func (m *MockArticleService) ListPublished(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	out := []*models.Article{}
	for _, a := range m.Articles {
		if !a.Published {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		if filter.Featured && !a.IsFeatured {
			continue
		}
		if filter.TagSlug != "" && !hasTagSlug(a, filter.TagSlug) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *MockArticleService) Featured(ctx context.Context) (*models.Article, error) {
	for _, a := range m.Articles {
		if a.Published && a.IsFeatured {
			return a, nil
		}
	}
	return nil, nil
}

func (m *MockArticleService) Related(ctx context.Context, slug string, limit int) ([]*models.Article, error) {
	if _, ok := m.Articles[slug]; !ok {
		return nil, models.ErrNotFound
	}
	return []*models.Article{}, nil
}

func (m *MockArticleService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return m.Tags, nil
}

func (m *MockArticleService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	tag := models.Tag{ID: "tag-id", Slug: name, Name: name}
	m.Tags = append(m.Tags, tag)
	return &tag, nil
}

func (m *MockArticleService) DeleteTag(ctx context.Context, slug string) error {
	for i, t := range m.Tags {
		if t.Slug == slug {
			m.Tags = append(m.Tags[:i], m.Tags[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

// MockSubmissionService is a mock implementation of SubmissionService
type MockSubmissionService struct {
	Submissions map[string]*models.Submission // by slug
	SubmitFunc  func(ctx context.Context, in *models.SubmissionInput) (*models.Submission, error)
	PromoteFunc func(ctx context.Context, slug string) (*models.Article, error)
}

var _ service.SubmissionService = (*MockSubmissionService)(nil)

func NewMockSubmissionService() *MockSubmissionService {
	return &MockSubmissionService{Submissions: make(map[string]*models.Submission)}
}

func (m *MockSubmissionService) Submit(ctx context.Context, in *models.SubmissionInput) (*models.Submission, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, in)
	}
	sub := &models.Submission{
		Slug:            "test-submission",
		Title:           in.Title,
		PromotionStatus: models.PromotionPending,
	}
	m.Submissions[sub.Slug] = sub
	return sub, nil
}

func (m *MockSubmissionService) Promote(ctx context.Context, slug string) (*models.Article, error) {
	if m.PromoteFunc != nil {
		return m.PromoteFunc(ctx, slug)
	}
	sub, ok := m.Submissions[slug]
	if !ok {
		return nil, models.ErrNotFound
	}
	sub.PromotionStatus = models.PromotionPromoted
	return &models.Article{Slug: slug + "-promoted", Title: sub.Title, Published: true}, nil
}

func (m *MockSubmissionService) Get(ctx context.Context, slug string) (*models.Submission, error) {
	sub, ok := m.Submissions[slug]
	if !ok {
		return nil, models.ErrNotFound
	}
	return sub, nil
}

func (m *MockSubmissionService) List(ctx context.Context, limit, offset int) ([]*models.Submission, error) {
	out := []*models.Submission{}
	for _, s := range m.Submissions {
		out = append(out, s)
	}
	return out, nil
}

// MockSiteService is a mock implementation of SiteService
type MockSiteService struct {
	ChromeData *models.SiteChrome
	HomeData   *models.HomePage
	AboutData  *models.AboutPage
	QuoteData  *models.Quote
	Contacts   []*models.Contact
}

var _ service.SiteService = (*MockSiteService)(nil)

func NewMockSiteService() *MockSiteService {
	return &MockSiteService{}
}

func (m *MockSiteService) Chrome(ctx context.Context) (*models.SiteChrome, error) {
	if m.ChromeData == nil {
		return &models.SiteChrome{}, nil
	}
	return m.ChromeData, nil
}

func (m *MockSiteService) Home(ctx context.Context) (*models.HomePage, error) {
	if m.HomeData == nil {
		return &models.HomePage{}, nil
	}
	return m.HomeData, nil
}

func (m *MockSiteService) About(ctx context.Context) (*models.AboutPage, error) {
	if m.AboutData == nil {
		return nil, models.ErrNotFound
	}
	return m.AboutData, nil
}

func (m *MockSiteService) Quote(ctx context.Context) (*models.Quote, error) {
	if m.QuoteData == nil {
		return nil, models.ErrNotFound
	}
	return m.QuoteData, nil
}

func (m *MockSiteService) SubmitContact(ctx context.Context, contact *models.Contact) error {
	m.Contacts = append(m.Contacts, contact)
	return nil
}

func (m *MockSiteService) ListContacts(ctx context.Context, limit, offset int) ([]*models.Contact, error) {
	return m.Contacts, nil
}

func (m *MockSiteService) UpsertMetadata(ctx context.Context, md *models.SiteMetadata) error {
	if m.ChromeData == nil {
		m.ChromeData = &models.SiteChrome{}
	}
	m.ChromeData.Metadata = md
	return nil
}

func (m *MockSiteService) UpsertNavLink(ctx context.Context, link *models.NavigationLink) error {
	if m.ChromeData == nil {
		m.ChromeData = &models.SiteChrome{}
	}
	m.ChromeData.NavLinks = append(m.ChromeData.NavLinks, *link)
	return nil
}

func (m *MockSiteService) DeleteNavLink(ctx context.Context, id string) error {
	return nil
}

func (m *MockSiteService) UpsertFooterSection(ctx context.Context, section *models.FooterSection) error {
	if m.ChromeData == nil {
		m.ChromeData = &models.SiteChrome{}
	}
	m.ChromeData.FooterSections = append(m.ChromeData.FooterSections, *section)
	return nil
}

func (m *MockSiteService) UpsertHero(ctx context.Context, hero *models.HeroSection) error {
	if m.HomeData == nil {
		m.HomeData = &models.HomePage{}
	}
	m.HomeData.Hero = hero
	return nil
}

func (m *MockSiteService) UpsertHomeSection(ctx context.Context, section *models.HomeSection) error {
	if m.HomeData == nil {
		m.HomeData = &models.HomePage{}
	}
	m.HomeData.Sections = append(m.HomeData.Sections, *section)
	return nil
}

func (m *MockSiteService) CreateQuote(ctx context.Context, quote *models.Quote) error {
	m.QuoteData = quote
	return nil
}

func (m *MockSiteService) UpsertAbout(ctx context.Context, about *models.AboutPage) error {
	m.AboutData = about
	return nil
}
