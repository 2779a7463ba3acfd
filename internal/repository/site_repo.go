package repository

import (
	"context"
	"database/sql"

	"github.com/breachxpress-api/internal/database"
	"github.com/breachxpress-api/internal/models"
	"github.com/lib/pq"
)

// siteRepo is the concrete implementation of SiteRepository. The single-row
// tables (metadata, hero, about) are keyed on a fixed id of 1.
type siteRepo struct {
	db *database.DB
}

// NewSiteRepo creates a new site content repository
func NewSiteRepo(db *database.DB) SiteRepository {
	return &siteRepo{db: db}
}

// GetMetadata retrieves the site-wide metadata row
func (r *siteRepo) GetMetadata(ctx context.Context) (*models.SiteMetadata, error) {
	var m models.SiteMetadata
	err := r.db.QueryRowContext(ctx, `
		SELECT site_name, footer_tagline, footer_text, contact_email, contact_phone,
			contact_address, facebook_url, twitter_url, instagram_url, linkedin_url
		FROM site_metadata WHERE id = 1
	`).Scan(
		&m.SiteName, &m.FooterTagline, &m.FooterText, &m.ContactEmail, &m.ContactPhone,
		&m.ContactAddress, &m.FacebookURL, &m.TwitterURL, &m.InstagramURL, &m.LinkedinURL,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpsertMetadata writes the site-wide metadata row
func (r *siteRepo) UpsertMetadata(ctx context.Context, m *models.SiteMetadata) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO site_metadata (id, site_name, footer_tagline, footer_text, contact_email,
			contact_phone, contact_address, facebook_url, twitter_url, instagram_url, linkedin_url)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			site_name = EXCLUDED.site_name, footer_tagline = EXCLUDED.footer_tagline,
			footer_text = EXCLUDED.footer_text, contact_email = EXCLUDED.contact_email,
			contact_phone = EXCLUDED.contact_phone, contact_address = EXCLUDED.contact_address,
			facebook_url = EXCLUDED.facebook_url, twitter_url = EXCLUDED.twitter_url,
			instagram_url = EXCLUDED.instagram_url, linkedin_url = EXCLUDED.linkedin_url
	`, m.SiteName, m.FooterTagline, m.FooterText, m.ContactEmail, m.ContactPhone,
		m.ContactAddress, m.FacebookURL, m.TwitterURL, m.InstagramURL, m.LinkedinURL)
	return err
}

// ListNavLinks retrieves navigation links in display order
func (r *siteRepo) ListNavLinks(ctx context.Context, activeOnly bool) ([]models.NavigationLink, error) {
	query := "SELECT id, title, url, position, is_active FROM navigation_links"
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY position"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []models.NavigationLink{}
	for rows.Next() {
		var l models.NavigationLink
		if err := rows.Scan(&l.ID, &l.Title, &l.URL, &l.Position, &l.IsActive); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// UpsertNavLink writes one navigation link
func (r *siteRepo) UpsertNavLink(ctx context.Context, link *models.NavigationLink) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO navigation_links (id, title, url, position, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, url = EXCLUDED.url,
			position = EXCLUDED.position, is_active = EXCLUDED.is_active
	`, link.ID, link.Title, link.URL, link.Position, link.IsActive)
	return err
}

// DeleteNavLink removes one navigation link
func (r *siteRepo) DeleteNavLink(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM navigation_links WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListFooterSections retrieves footer sections in display order
func (r *siteRepo) ListFooterSections(ctx context.Context) ([]models.FooterSection, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, content, position FROM footer_sections ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []models.FooterSection{}
	for rows.Next() {
		var s models.FooterSection
		if err := rows.Scan(&s.ID, &s.Title, &s.Content, &s.Position); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// UpsertFooterSection writes one footer section
func (r *siteRepo) UpsertFooterSection(ctx context.Context, section *models.FooterSection) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO footer_sections (id, title, content, position)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, content = EXCLUDED.content, position = EXCLUDED.position
	`, section.ID, section.Title, section.Content, section.Position)
	return err
}

// GetHero retrieves the homepage hero block
func (r *siteRepo) GetHero(ctx context.Context) (*models.HeroSection, error) {
	var h models.HeroSection
	err := r.db.QueryRowContext(ctx,
		"SELECT title, description, cta_text, cta_link FROM hero_section WHERE id = 1",
	).Scan(&h.Title, &h.Description, &h.CTAText, &h.CTALink)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// UpsertHero writes the homepage hero block
func (r *siteRepo) UpsertHero(ctx context.Context, hero *models.HeroSection) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO hero_section (id, title, description, cta_text, cta_link)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, description = EXCLUDED.description,
			cta_text = EXCLUDED.cta_text, cta_link = EXCLUDED.cta_link
	`, hero.Title, hero.Description, hero.CTAText, hero.CTALink)
	return err
}

// ListHomeSections retrieves all homepage content blocks
func (r *siteRepo) ListHomeSections(ctx context.Context) ([]models.HomeSection, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, section_type, title, description, cta_text, cta_link
		FROM home_sections ORDER BY section_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []models.HomeSection{}
	for rows.Next() {
		var s models.HomeSection
		var ctaText, ctaLink sql.NullString
		if err := rows.Scan(&s.ID, &s.SectionType, &s.Title, &s.Description, &ctaText, &ctaLink); err != nil {
			return nil, err
		}
		s.CTAText = ctaText.String
		s.CTALink = ctaLink.String
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// UpsertHomeSection writes one homepage content block, keyed by section type
func (r *siteRepo) UpsertHomeSection(ctx context.Context, section *models.HomeSection) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO home_sections (id, section_type, title, description, cta_text, cta_link)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (section_type) DO UPDATE SET
			title = EXCLUDED.title, description = EXCLUDED.description,
			cta_text = EXCLUDED.cta_text, cta_link = EXCLUDED.cta_link
	`, section.ID, section.SectionType, section.Title, section.Description,
		nullString(section.CTAText), nullString(section.CTALink))
	return err
}

// GetQuote retrieves the most recent quote
func (r *siteRepo) GetQuote(ctx context.Context) (*models.Quote, error) {
	var q models.Quote
	var author sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, text, author, created_at FROM quotes ORDER BY created_at DESC LIMIT 1",
	).Scan(&q.ID, &q.Text, &author, &q.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	q.Author = author.String
	return &q, nil
}

// CreateQuote inserts a new quote
func (r *siteRepo) CreateQuote(ctx context.Context, quote *models.Quote) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO quotes (id, text, author, created_at) VALUES ($1, $2, $3, $4)",
		quote.ID, quote.Text, nullString(quote.Author), quote.CreatedAt,
	)
	return err
}

// GetAbout retrieves the about page copy
func (r *siteRepo) GetAbout(ctx context.Context) (*models.AboutPage, error) {
	var a models.AboutPage
	var steps pq.StringArray
	err := r.db.QueryRowContext(ctx, `
		SELECT intro_paragraph, mission_statement, second_paragraph, process_steps, movement_paragraph
		FROM about_page WHERE id = 1
	`).Scan(&a.IntroParagraph, &a.MissionStatement, &a.SecondParagraph, &steps, &a.MovementParagraph)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.ProcessSteps = []string(steps)
	return &a, nil
}

// UpsertAbout writes the about page copy
func (r *siteRepo) UpsertAbout(ctx context.Context, about *models.AboutPage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO about_page (id, intro_paragraph, mission_statement, second_paragraph,
			process_steps, movement_paragraph)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			intro_paragraph = EXCLUDED.intro_paragraph,
			mission_statement = EXCLUDED.mission_statement,
			second_paragraph = EXCLUDED.second_paragraph,
			process_steps = EXCLUDED.process_steps,
			movement_paragraph = EXCLUDED.movement_paragraph
	`, about.IntroParagraph, about.MissionStatement, about.SecondParagraph,
		pq.Array(about.ProcessSteps), about.MovementParagraph)
	return err
}
