package mocks

import (
	"context"
	"sort"

	"github.com/breachxpress-api/internal/models"
	"github.com/breachxpress-api/internal/repository"
)

// MockArticleRepository is an in-memory implementation of ArticleRepository
type MockArticleRepository struct {
	Articles      map[string]*models.Article // by ID
	SlugToArticle map[string]*models.Article
	TagLinks      map[string][]string // article ID -> tag IDs
	InsertError   error
	UpdateCalls   []*models.Article
}

// Verify interface compliance
var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles:      make(map[string]*models.Article),
		SlugToArticle: make(map[string]*models.Article),
		TagLinks:      make(map[string][]string),
	}
}

func (m *MockArticleRepository) CreateWithTags(ctx context.Context, article *models.Article, tagIDs []string) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	if _, taken := m.SlugToArticle[article.Slug]; taken {
		return models.ErrSlugTaken
	}
	m.Articles[article.ID] = article
	m.SlugToArticle[article.Slug] = article
	m.TagLinks[article.ID] = tagIDs
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	if _, ok := m.Articles[article.ID]; !ok {
		return models.ErrNotFound
	}
	m.UpdateCalls = append(m.UpdateCalls, article)
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return m.Articles[id], nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return m.SlugToArticle[slug], nil
}

func (m *MockArticleRepository) ListPublished(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	var out []*models.Article
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
	sort.Slice(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	if filter.Offset < len(out) {
		out = out[filter.Offset:]
	} else {
		out = nil
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockArticleRepository) ListRelated(ctx context.Context, articleID string, limit int) ([]*models.Article, error) {
	source, ok := m.Articles[articleID]
	if !ok {
		return nil, nil
	}
	var out []*models.Article
	for _, a := range m.Articles {
		if a.ID == articleID || !a.Published {
			continue
		}
		for _, t := range source.Tags {
			if hasTagSlug(a, t.Slug) {
				out = append(out, a)
				break
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, exists := m.SlugToArticle[slug]
	return exists, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Articles), nil
}

func hasTagSlug(a *models.Article, slug string) bool {
	for _, t := range a.Tags {
		if t.Slug == slug {
			return true
		}
	}
	return false
}

// MockSubmissionRepository is an in-memory implementation of
// SubmissionRepository. Promote mirrors the production transaction: on a
// forced error nothing is applied, articles included.
type MockSubmissionRepository struct {
	Submissions  map[string]*models.Submission // by ID
	SlugToSub    map[string]*models.Submission
	TagLinks     map[string][]string
	Articles     *MockArticleRepository // promotion target
	InsertError  error
	PromoteError error
	PromoteCalls int
}

var _ repository.SubmissionRepository = (*MockSubmissionRepository)(nil)

func NewMockSubmissionRepository(articles *MockArticleRepository) *MockSubmissionRepository {
	return &MockSubmissionRepository{
		Submissions: make(map[string]*models.Submission),
		SlugToSub:   make(map[string]*models.Submission),
		TagLinks:    make(map[string][]string),
		Articles:    articles,
	}
}

func (m *MockSubmissionRepository) CreateWithTags(ctx context.Context, sub *models.Submission, tagIDs []string) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	if _, taken := m.SlugToSub[sub.Slug]; taken {
		return models.ErrSlugTaken
	}
	m.Submissions[sub.ID] = sub
	m.SlugToSub[sub.Slug] = sub
	m.TagLinks[sub.ID] = tagIDs
	return nil
}

func (m *MockSubmissionRepository) GetBySlug(ctx context.Context, slug string) (*models.Submission, error) {
	return m.SlugToSub[slug], nil
}

func (m *MockSubmissionRepository) List(ctx context.Context, limit, offset int) ([]*models.Submission, error) {
	var out []*models.Submission
	for _, s := range m.Submissions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockSubmissionRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, exists := m.SlugToSub[slug]
	return exists, nil
}

// SetPromotionStatus mirrors the production guard: promoted is terminal and
// is never overwritten.
func (m *MockSubmissionRepository) SetPromotionStatus(ctx context.Context, id string, status models.PromotionStatus) error {
	sub, ok := m.Submissions[id]
	if !ok || sub.PromotionStatus == models.PromotionPromoted {
		return models.ErrNotFound
	}
	sub.PromotionStatus = status
	return nil
}

func (m *MockSubmissionRepository) Promote(ctx context.Context, submissionID string, article *models.Article, tagIDs []string) error {
	m.PromoteCalls++
	if m.PromoteError != nil {
		return m.PromoteError
	}
	sub, ok := m.Submissions[submissionID]
	if !ok || !sub.Promotable() {
		return models.ErrNotFound
	}
	if err := m.Articles.CreateWithTags(ctx, article, tagIDs); err != nil {
		return err
	}
	sub.PromotionStatus = models.PromotionPromoted
	sub.ArticleID = article.ID
	return nil
}

func (m *MockSubmissionRepository) Count(ctx context.Context) (int, error) {
	return len(m.Submissions), nil
}

// MockTagRepository is an in-memory implementation of TagRepository
type MockTagRepository struct {
	Tags map[string]*models.Tag // by slug
}

var _ repository.TagRepository = (*MockTagRepository)(nil)

func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{Tags: make(map[string]*models.Tag)}
}

func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if _, taken := m.Tags[tag.Slug]; taken {
		return models.ErrSlugTaken
	}
	m.Tags[tag.Slug] = tag
	return nil
}

func (m *MockTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	out := []models.Tag{}
	for _, t := range m.Tags {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockTagRepository) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	return m.Tags[slug], nil
}

func (m *MockTagRepository) GetBySlugs(ctx context.Context, slugs []string) ([]models.Tag, error) {
	out := []models.Tag{}
	for _, s := range slugs {
		if t, ok := m.Tags[s]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *MockTagRepository) Delete(ctx context.Context, slug string) error {
	if _, ok := m.Tags[slug]; !ok {
		return models.ErrNotFound
	}
	delete(m.Tags, slug)
	return nil
}

// MockContactRepository is an in-memory implementation of ContactRepository
type MockContactRepository struct {
	Contacts []*models.Contact
}

var _ repository.ContactRepository = (*MockContactRepository)(nil)

func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{}
}

func (m *MockContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	m.Contacts = append(m.Contacts, contact)
	return nil
}

func (m *MockContactRepository) List(ctx context.Context, limit, offset int) ([]*models.Contact, error) {
	return m.Contacts, nil
}

func (m *MockContactRepository) Count(ctx context.Context) (int, error) {
	return len(m.Contacts), nil
}

// MockOperatorRepository is an in-memory implementation of OperatorRepository
type MockOperatorRepository struct {
	Operators map[string]*models.Operator // by username
}

var _ repository.OperatorRepository = (*MockOperatorRepository)(nil)

func NewMockOperatorRepository() *MockOperatorRepository {
	return &MockOperatorRepository{Operators: make(map[string]*models.Operator)}
}

func (m *MockOperatorRepository) Create(ctx context.Context, op *models.Operator) error {
	m.Operators[op.Username] = op
	return nil
}

func (m *MockOperatorRepository) GetByUsername(ctx context.Context, username string) (*models.Operator, error) {
	return m.Operators[username], nil
}

func (m *MockOperatorRepository) Count(ctx context.Context) (int, error) {
	return len(m.Operators), nil
}

// MockSiteRepository is an in-memory implementation of SiteRepository
type MockSiteRepository struct {
	Metadata       *models.SiteMetadata
	NavLinks       []models.NavigationLink
	FooterSections []models.FooterSection
	Hero           *models.HeroSection
	HomeSections   map[string]*models.HomeSection // by section type
	Quotes         []*models.Quote
	AboutPage      *models.AboutPage
}

var _ repository.SiteRepository = (*MockSiteRepository)(nil)

func NewMockSiteRepository() *MockSiteRepository {
	return &MockSiteRepository{HomeSections: make(map[string]*models.HomeSection)}
}

func (m *MockSiteRepository) GetMetadata(ctx context.Context) (*models.SiteMetadata, error) {
	return m.Metadata, nil
}

func (m *MockSiteRepository) UpsertMetadata(ctx context.Context, md *models.SiteMetadata) error {
	m.Metadata = md
	return nil
}

func (m *MockSiteRepository) ListNavLinks(ctx context.Context, activeOnly bool) ([]models.NavigationLink, error) {
	if !activeOnly {
		return m.NavLinks, nil
	}
	out := []models.NavigationLink{}
	for _, l := range m.NavLinks {
		if l.IsActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *MockSiteRepository) UpsertNavLink(ctx context.Context, link *models.NavigationLink) error {
	for i, l := range m.NavLinks {
		if l.ID == link.ID {
			m.NavLinks[i] = *link
			return nil
		}
	}
	m.NavLinks = append(m.NavLinks, *link)
	return nil
}

func (m *MockSiteRepository) DeleteNavLink(ctx context.Context, id string) error {
	for i, l := range m.NavLinks {
		if l.ID == id {
			m.NavLinks = append(m.NavLinks[:i], m.NavLinks[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (m *MockSiteRepository) ListFooterSections(ctx context.Context) ([]models.FooterSection, error) {
	return m.FooterSections, nil
}

func (m *MockSiteRepository) UpsertFooterSection(ctx context.Context, section *models.FooterSection) error {
	for i, s := range m.FooterSections {
		if s.ID == section.ID {
			m.FooterSections[i] = *section
			return nil
		}
	}
	m.FooterSections = append(m.FooterSections, *section)
	return nil
}

func (m *MockSiteRepository) GetHero(ctx context.Context) (*models.HeroSection, error) {
	return m.Hero, nil
}

func (m *MockSiteRepository) UpsertHero(ctx context.Context, hero *models.HeroSection) error {
	m.Hero = hero
	return nil
}

func (m *MockSiteRepository) ListHomeSections(ctx context.Context) ([]models.HomeSection, error) {
	out := []models.HomeSection{}
	for _, s := range m.HomeSections {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SectionType < out[j].SectionType })
	return out, nil
}

func (m *MockSiteRepository) UpsertHomeSection(ctx context.Context, section *models.HomeSection) error {
	m.HomeSections[section.SectionType] = section
	return nil
}

func (m *MockSiteRepository) GetQuote(ctx context.Context) (*models.Quote, error) {
	if len(m.Quotes) == 0 {
		return nil, nil
	}
	return m.Quotes[len(m.Quotes)-1], nil
}

func (m *MockSiteRepository) CreateQuote(ctx context.Context, quote *models.Quote) error {
	m.Quotes = append(m.Quotes, quote)
	return nil
}

func (m *MockSiteRepository) GetAbout(ctx context.Context) (*models.AboutPage, error) {
	return m.AboutPage, nil
}

func (m *MockSiteRepository) UpsertAbout(ctx context.Context, about *models.AboutPage) error {
	m.AboutPage = about
	return nil
}

// NewMockRepositories bundles fresh mocks into a repository.Repositories
func NewMockRepositories() (*repository.Repositories, *MockArticleRepository, *MockSubmissionRepository) {
	articles := NewMockArticleRepository()
	submissions := NewMockSubmissionRepository(articles)
	return &repository.Repositories{
		Article:    articles,
		Submission: submissions,
		Tag:        NewMockTagRepository(),
		Site:       NewMockSiteRepository(),
		Contact:    NewMockContactRepository(),
		Operator:   NewMockOperatorRepository(),
	}, articles, submissions
}
