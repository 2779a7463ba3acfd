package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/breachxpress-api/internal/database"
	"github.com/breachxpress-api/internal/models"
)

// submissionRepo is the concrete implementation of SubmissionRepository
type submissionRepo struct {
	db *database.DB
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(db *database.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

const submissionColumns = `id, slug, title, summary, story, evidence, category,
	meta_description, promotion_status, article_id, created_at`

// CreateWithTags inserts a submission and its tag links in one transaction.
// Returns models.ErrSlugTaken on a slug unique violation.
func (r *submissionRepo) CreateWithTags(ctx context.Context, sub *models.Submission, tagIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO submissions (id, slug, title, summary, story, evidence, category,
			meta_description, promotion_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.ExecContext(ctx, query,
		sub.ID, sub.Slug, sub.Title, sub.Summary, sub.Story,
		nullString(sub.Evidence), sub.Category, nullString(sub.MetaDescription),
		sub.PromotionStatus, sub.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "submissions_slug_key") {
			return models.ErrSlugTaken
		}
		return err
	}

	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO submission_tags (submission_id, tag_id) VALUES ($1, $2)",
			sub.ID, tagID,
		)
		if err != nil {
			return fmt.Errorf("link tag %s: %w", tagID, err)
		}
	}

	return tx.Commit()
}

// GetBySlug retrieves a submission by slug, tags included
func (r *submissionRepo) GetBySlug(ctx context.Context, slug string) (*models.Submission, error) {
	query := fmt.Sprintf("SELECT %s FROM submissions WHERE slug = $1", submissionColumns)

	sub, err := scanSubmission(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if sub.Tags, err = r.tagsFor(ctx, sub.ID); err != nil {
		return nil, err
	}
	return sub, nil
}

// List retrieves submissions newest first, for operator review
func (r *submissionRepo) List(ctx context.Context, limit, offset int) ([]*models.Submission, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	query := fmt.Sprintf(
		"SELECT %s FROM submissions ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		submissionColumns,
	)
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, sub := range subs {
		if sub.Tags, err = r.tagsFor(ctx, sub.ID); err != nil {
			return nil, err
		}
	}
	return subs, nil
}

// SlugExists checks if a submission with the given slug exists
func (r *submissionRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM submissions WHERE slug = $1)", slug).Scan(&exists)
	return exists, err
}

// SetPromotionStatus records a status transition on its own, outside any
// promotion transaction. Used to mark promotion_failed after a rollback.
// Promoted is terminal: the guard refuses to overwrite it, so a failure mark
// racing a successful promotion of the same submission is a no-op.
func (r *submissionRepo) SetPromotionStatus(ctx context.Context, id string, status models.PromotionStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE submissions SET promotion_status = $1 WHERE id = $2 AND promotion_status <> $3",
		status, id, models.PromotionPromoted)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Promote performs the whole promotion write in one transaction: insert the
// article, copy the submission's tag links onto it, and mark the submission
// promoted with a back-reference to the article. Readers can never observe an
// article without its tag set, and a failure leaves no article at all.
//
// The WHERE clause on the submission update only matches promotable statuses,
// so two concurrent promotions of the same submission cannot both commit:
// the slower one finds zero rows and the transaction rolls back.
func (r *submissionRepo) Promote(ctx context.Context, submissionID string, article *models.Article, tagIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertArticleTx(ctx, tx, article, tagIDs); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE submissions SET promotion_status = $1, article_id = $2
		WHERE id = $3 AND promotion_status IN ($4, $5)
	`, models.PromotionPromoted, article.ID, submissionID,
		models.PromotionPending, models.PromotionFailed,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("submission %s is not promotable: %w", submissionID, models.ErrNotFound)
	}

	return tx.Commit()
}

// Count returns the total number of submissions
func (r *submissionRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM submissions").Scan(&count)
	return count, err
}

// tagsFor loads the tag set of one submission
func (r *submissionRepo) tagsFor(ctx context.Context, submissionID string) ([]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.slug, t.name FROM tags t
		JOIN submission_tags st ON st.tag_id = t.id
		WHERE st.submission_id = $1 ORDER BY t.name
	`, submissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var sub models.Submission
	var evidence, meta, articleID sql.NullString

	err := row.Scan(
		&sub.ID, &sub.Slug, &sub.Title, &sub.Summary, &sub.Story,
		&evidence, &sub.Category, &meta, &sub.PromotionStatus, &articleID,
		&sub.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	sub.Evidence = evidence.String
	sub.MetaDescription = meta.String
	sub.ArticleID = articleID.String
	return &sub, nil
}
