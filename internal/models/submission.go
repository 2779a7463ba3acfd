package models

import (
	"time"
)

// PromotionStatus represents where a submission sits in the promotion lifecycle
type PromotionStatus string

const (
	// PromotionPending means the submission has not produced an article yet
	PromotionPending PromotionStatus = "pending"
	// PromotionPromoted is terminal: the submission has a published article
	PromotionPromoted PromotionStatus = "promoted"
	// PromotionFailed means the last promotion attempt errored; retryable
	PromotionFailed PromotionStatus = "promotion_failed"
)

// Submission represents a visitor-submitted story tip awaiting review.
// Its slug is unique among submissions only; articles are a separate
// namespace. CreatedAt is immutable after insert.
type Submission struct {
	ID              string          `json:"id" db:"id"`
	Slug            string          `json:"slug" db:"slug"`
	Title           string          `json:"title" db:"title"`
	Summary         string          `json:"summary" db:"summary"`
	Story           string          `json:"story" db:"story"`
	Evidence        string          `json:"evidence,omitempty" db:"evidence"`
	Category        string          `json:"category" db:"category"`
	MetaDescription string          `json:"meta_description,omitempty" db:"meta_description"`
	Tags            []Tag           `json:"tags"`
	PromotionStatus PromotionStatus `json:"promotion_status" db:"promotion_status"`
	ArticleID       string          `json:"article_id,omitempty" db:"article_id"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// Promotable reports whether a promotion attempt is allowed from the
// submission's current status. Promoted is terminal; a failed attempt
// may be retried.
func (s *Submission) Promotable() bool {
	return s.PromotionStatus == PromotionPending || s.PromotionStatus == PromotionFailed
}

// SubmissionInput is the intake payload for a new story tip. Evidence is the
// opaque reference returned by the evidence store, not raw file content.
type SubmissionInput struct {
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	Story           string   `json:"story"`
	Evidence        string   `json:"evidence,omitempty"`
	Category        string   `json:"category"`
	MetaDescription string   `json:"meta_description,omitempty"`
	TagSlugs        []string `json:"tags,omitempty"`
}
