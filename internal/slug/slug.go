// Package slug derives URL-safe identifiers for articles and submissions.
//
// A slug is the slugified title plus a second-precision timestamp suffix,
// e.g. "city-hall-leak-20240301100000". Uniqueness is scoped per collection:
// an article and a submission may carry the same slug without conflict.
package slug

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// StampLayout formats the timestamp suffix to second precision
const StampLayout = "20060102150405"

// maxAttempts bounds the allocation loop. Collisions require another record
// with the same base token in the same second, so one retry almost always
// resolves; the bound exists so a stuck clock cannot spin forever.
const maxAttempts = 10

// ErrExhausted is returned when allocation retries run out. Treated as a
// storage fault by callers.
var ErrExhausted = errors.New("slug allocation attempts exhausted")

// ExistsFunc is a membership test over existing slugs in one collection
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Make normalizes a free-text title into the base slug token: lower-case,
// runs of non-alphanumerics collapsed to single hyphens, ends trimmed.
// A whitespace-only title yields ""; callers reject empty titles upstream.
func Make(title string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Allocator produces slugs unique within one collection at the moment of the
// membership check. The check is advisory: two concurrent allocations can
// pass it with the same candidate, so the collection's unique index remains
// the authority and writers retry on a unique-constraint violation.
type Allocator struct {
	exists ExistsFunc
	now    func() time.Time
}

// NewAllocator creates an allocator over one collection's membership test.
// now may be nil, in which case the wall clock is used.
func NewAllocator(exists ExistsFunc, now func() time.Time) *Allocator {
	if now == nil {
		now = time.Now
	}
	return &Allocator{exists: exists, now: now}
}

// Allocate returns base(title) + "-" + timestamp, re-sampling the clock on a
// collision so the retried candidate differs in its suffix, never its base.
func (a *Allocator) Allocate(ctx context.Context, title string) (string, error) {
	base := Make(title)
	var last string
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := fmt.Sprintf("%s-%s", base, a.now().UTC().Format(StampLayout))
		if candidate == last {
			// Clock has not advanced past the colliding second yet; this
			// candidate is known taken, skip the membership round-trip.
			continue
		}
		last = candidate

		taken, err := a.exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("slug membership check: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrExhausted
}
