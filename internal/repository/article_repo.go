package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/breachxpress-api/internal/database"
	"github.com/breachxpress-api/internal/models"
)

const defaultPageSize = 10

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleColumns = `id, slug, title, summary, body, evidence, category, author,
	meta_description, published, is_featured, published_at, created_at, updated_at`

// CreateWithTags inserts an article and its tag links in one transaction.
// Returns models.ErrSlugTaken on a slug unique violation so the caller can
// re-derive the slug and retry.
func (r *articleRepo) CreateWithTags(ctx context.Context, article *models.Article, tagIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertArticleTx(ctx, tx, article, tagIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// insertArticleTx writes the article row plus tag links inside an open
// transaction. Shared with the promotion write in submission_repo.go so both
// paths keep the same atomicity: no article ever becomes visible without its
// tag set.
func insertArticleTx(ctx context.Context, tx *sql.Tx, article *models.Article, tagIDs []string) error {
	query := `
		INSERT INTO articles (id, slug, title, summary, body, evidence, category, author,
			meta_description, published, is_featured, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	now := time.Now()
	_, err := tx.ExecContext(ctx, query,
		article.ID, article.Slug, article.Title, article.Summary, article.Body,
		nullString(article.Evidence), article.Category, article.Author,
		nullString(article.MetaDescription), article.Published, article.IsFeatured,
		article.PublishedAt, now, now,
	)
	if err != nil {
		if isUniqueViolation(err, "articles_slug_key") {
			return models.ErrSlugTaken
		}
		return err
	}

	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2)",
			article.ID, tagID,
		)
		if err != nil {
			return fmt.Errorf("link tag %s: %w", tagID, err)
		}
	}
	return nil
}

// Update rewrites the mutable fields of an article. Slug and published_at are
// not in the statement: both are immutable once assigned.
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE articles SET
			title = $1, summary = $2, body = $3, evidence = $4, category = $5,
			author = $6, meta_description = $7, published = $8, is_featured = $9,
			updated_at = $10
		WHERE id = $11
	`
	res, err := r.db.ExecContext(ctx, query,
		article.Title, article.Summary, article.Body, nullString(article.Evidence),
		article.Category, article.Author, nullString(article.MetaDescription),
		article.Published, article.IsFeatured, time.Now(), article.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// GetByID retrieves an article by ID, tags included
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := fmt.Sprintf("SELECT %s FROM articles WHERE id = $1", articleColumns)

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if article.Tags, err = r.tagsFor(ctx, article.ID); err != nil {
		return nil, err
	}
	return article, nil
}

// GetBySlug retrieves an article by slug, tags included
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := fmt.Sprintf("SELECT %s FROM articles WHERE slug = $1", articleColumns)

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if article.Tags, err = r.tagsFor(ctx, article.ID); err != nil {
		return nil, err
	}
	return article, nil
}

// ListPublished retrieves published articles, newest first, optionally
// narrowed by category, tag, or the featured flag
func (r *articleRepo) ListPublished(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	query := fmt.Sprintf("SELECT %s FROM articles a WHERE a.published = true", articleColumns)
	args := []interface{}{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND a.category = $%d", len(args))
	}
	if filter.TagSlug != "" {
		args = append(args, filter.TagSlug)
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM article_tags at JOIN tags t ON t.id = at.tag_id
			WHERE at.article_id = a.id AND t.slug = $%d)`, len(args))
	}
	if filter.Featured {
		query += " AND a.is_featured = true"
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY a.published_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	return r.queryArticles(ctx, query, args...)
}

// ListRelated retrieves published articles sharing at least one tag with the
// given article, excluding the article itself
func (r *articleRepo) ListRelated(ctx context.Context, articleID string, limit int) ([]*models.Article, error) {
	if limit <= 0 {
		limit = 3
	}
	query := fmt.Sprintf(`
		SELECT DISTINCT %s FROM articles a
		JOIN article_tags at ON at.article_id = a.id
		WHERE a.published = true AND a.id <> $1 AND at.tag_id IN (
			SELECT tag_id FROM article_tags WHERE article_id = $1)
		ORDER BY a.published_at DESC LIMIT $2
	`, prefixColumns("a", articleColumns))
	return r.queryArticles(ctx, query, articleID, limit)
}

// SlugExists checks if an article with the given slug exists
func (r *articleRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1)", slug).Scan(&exists)
	return exists, err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

func (r *articleRepo) queryArticles(ctx context.Context, query string, args ...interface{}) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, article := range articles {
		if article.Tags, err = r.tagsFor(ctx, article.ID); err != nil {
			return nil, err
		}
	}
	return articles, nil
}

// tagsFor loads the tag set of one article
func (r *articleRepo) tagsFor(ctx context.Context, articleID string) ([]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.slug, t.name FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		WHERE at.article_id = $1 ORDER BY t.name
	`, articleID)
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

// prefixColumns qualifies a comma-separated column list with a table alias
func prefixColumns(alias, cols string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// nullString maps "" to SQL NULL for optional text columns
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	var evidence, meta sql.NullString

	err := row.Scan(
		&article.ID, &article.Slug, &article.Title, &article.Summary, &article.Body,
		&evidence, &article.Category, &article.Author, &meta,
		&article.Published, &article.IsFeatured,
		&article.PublishedAt, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	article.Evidence = evidence.String
	article.MetaDescription = meta.String
	return &article, nil
}
