package models

import (
	"time"
)

// SiteMetadata holds site-wide name, contact details, and social links.
// A single row; upserted by operators.
type SiteMetadata struct {
	SiteName       string `json:"site_name" db:"site_name"`
	FooterTagline  string `json:"footer_tagline" db:"footer_tagline"`
	FooterText     string `json:"footer_text" db:"footer_text"`
	ContactEmail   string `json:"contact_email" db:"contact_email"`
	ContactPhone   string `json:"contact_phone" db:"contact_phone"`
	ContactAddress string `json:"contact_address" db:"contact_address"`
	FacebookURL    string `json:"facebook_url" db:"facebook_url"`
	TwitterURL     string `json:"twitter_url" db:"twitter_url"`
	InstagramURL   string `json:"instagram_url" db:"instagram_url"`
	LinkedinURL    string `json:"linkedin_url" db:"linkedin_url"`
}

// NavigationLink is one entry in the navbar / slide menu, ordered by Position
type NavigationLink struct {
	ID       string `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	URL      string `json:"url" db:"url"`
	Position int    `json:"position" db:"position"`
	IsActive bool   `json:"is_active" db:"is_active"`
}

// FooterSection is one titled block in the footer, ordered by Position
type FooterSection struct {
	ID       string `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Content  string `json:"content" db:"content"`
	Position int    `json:"position" db:"position"`
}

// HeroSection is the homepage hero block. Single row.
type HeroSection struct {
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	CTAText     string `json:"cta_text" db:"cta_text"`
	CTALink     string `json:"cta_link" db:"cta_link"`
}

// ValidHomeSectionTypes are the homepage content slots; one row per type
var ValidHomeSectionTypes = map[string]bool{
	"mission":   true,
	"expose":    true,
	"truth":     true,
	"community": true,
}

// HomeSection is one homepage content block, keyed by SectionType
type HomeSection struct {
	ID          string `json:"id" db:"id"`
	SectionType string `json:"section_type" db:"section_type"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	CTAText     string `json:"cta_text,omitempty" db:"cta_text"`
	CTALink     string `json:"cta_link,omitempty" db:"cta_link"`
}

// Quote is an inspirational quote shown on the exposes page
type Quote struct {
	ID        string    `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Author    string    `json:"author,omitempty" db:"author"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SiteChrome bundles the pieces every page needs: metadata, active
// navigation, and footer sections
type SiteChrome struct {
	Metadata       *SiteMetadata    `json:"metadata"`
	NavLinks       []NavigationLink `json:"nav_links"`
	FooterSections []FooterSection  `json:"footer_sections"`
}

// HomePage bundles the homepage content: hero, content sections, and the
// recent/featured articles
type HomePage struct {
	Hero            *HeroSection  `json:"hero"`
	Sections        []HomeSection `json:"sections"`
	RecentArticles  []*Article    `json:"recent_articles"`
	FeaturedArticle *Article      `json:"featured_article,omitempty"`
}

// AboutPage holds the about page copy. Single row.
type AboutPage struct {
	IntroParagraph    string `json:"intro_paragraph" db:"intro_paragraph"`
	MissionStatement  string `json:"mission_statement" db:"mission_statement"`
	SecondParagraph   string `json:"second_paragraph" db:"second_paragraph"`
	ProcessSteps      []string `json:"process_steps"`
	MovementParagraph string `json:"movement_paragraph" db:"movement_paragraph"`
}
