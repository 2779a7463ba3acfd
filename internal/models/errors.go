package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates the requested record does not exist (or, for the
// public read surface, is not published).
var ErrNotFound = errors.New("record not found")

// ErrSlugTaken indicates the storage layer rejected a write because the
// candidate slug already exists in the target collection. The allocator's
// pre-check is advisory; the unique index is the authority, and callers
// recover by re-deriving a slug and retrying the write.
var ErrSlugTaken = errors.New("slug already taken")

// FieldError is a single field-level validation failure
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationErrors aggregates field errors for one input payload. It is
// produced before any storage write; a payload that fails validation is
// never partially applied.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Field + ": " + e.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// PromotionError wraps any failure during submission-to-article conversion.
// The wrapped article is guaranteed absent: the promotion transaction rolled
// back, and the submission stays retryable.
type PromotionError struct {
	SubmissionSlug string
	Err            error
}

func (e *PromotionError) Error() string {
	return fmt.Sprintf("promotion of submission %q failed: %v", e.SubmissionSlug, e.Err)
}

func (e *PromotionError) Unwrap() error {
	return e.Err
}
