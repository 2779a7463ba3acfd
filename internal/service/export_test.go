package service

import (
	"time"

	"github.com/breachxpress-api/internal/repository"
	"github.com/rs/zerolog"
)

// Constructors with an injectable clock, exposed to the external test
// package so it can assert on timestamp-bearing slugs and stamps.

func NewArticleServiceWithClock(repos *repository.Repositories, log zerolog.Logger, now func() time.Time) ArticleService {
	s := newArticleService(repos, log)
	s.now = now
	return s
}

func NewSubmissionServiceWithClock(repos *repository.Repositories, evidence EvidenceChecker, log zerolog.Logger, now func() time.Time) SubmissionService {
	s := newSubmissionService(repos, evidence, log)
	s.now = now
	return s
}

func NewSiteServiceWithClock(repos *repository.Repositories, log zerolog.Logger, now func() time.Time) SiteService {
	s := newSiteService(repos, log)
	s.now = now
	return s
}
