package models

import (
	"fmt"
	"strings"
	"time"
)

// Article represents a published expose, publicly addressable by slug.
// Slug and PublishedAt are assigned once at creation and never updated.
type Article struct {
	ID              string    `json:"id" db:"id"`
	Slug            string    `json:"slug" db:"slug"`
	Title           string    `json:"title" db:"title"`
	Summary         string    `json:"summary" db:"summary"`
	Body            string    `json:"body" db:"body"`
	Evidence        string    `json:"evidence,omitempty" db:"evidence"`
	Category        string    `json:"category" db:"category"`
	Author          string    `json:"author" db:"author"`
	MetaDescription string    `json:"meta_description,omitempty" db:"meta_description"`
	Published       bool      `json:"published" db:"published"`
	IsFeatured      bool      `json:"is_featured" db:"is_featured"`
	Tags            []Tag     `json:"tags"`
	PublishedAt     time.Time `json:"published_at" db:"published_at"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// ValidCategories defines allowed categories for articles and submissions
var ValidCategories = map[string]bool{
	"user_submitted": true,
	"corruption":     true,
	"investigative":  true,
	"justice":        true,
	"other":          true,
}

// AnonymousAuthor is the byline forced onto articles produced by promotion
const AnonymousAuthor = "Anonymous"

// ArticleInput is the operator-facing payload for creating or updating an
// article. Slug and published_at are deliberately absent: both are assigned
// at creation time and immutable afterwards.
type ArticleInput struct {
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	Body            string   `json:"body"`
	Evidence        string   `json:"evidence,omitempty"`
	Category        string   `json:"category"`
	Author          string   `json:"author"`
	MetaDescription string   `json:"meta_description,omitempty"`
	Published       bool     `json:"published"`
	IsFeatured      bool     `json:"is_featured"`
	TagSlugs        []string `json:"tags,omitempty"`
}

// ArticleFilter narrows public article listings. Zero values mean "no
// constraint"; Limit of 0 falls back to the repository default page size.
type ArticleFilter struct {
	Category string
	TagSlug  string
	Featured bool
	Limit    int
	Offset   int
}

// ReadingTime estimates reading time from the body word count at 200 wpm.
func (a *Article) ReadingTime() string {
	minutes := (len(strings.Fields(a.Body)) + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
