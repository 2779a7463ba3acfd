package repository

import (
	"context"
	"database/sql"

	"github.com/breachxpress-api/internal/database"
	"github.com/breachxpress-api/internal/models"
	"github.com/lib/pq"
)

// tagRepo is the concrete implementation of TagRepository
type tagRepo struct {
	db *database.DB
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *database.DB) TagRepository {
	return &tagRepo{db: db}
}

// Create inserts a new tag. Returns models.ErrSlugTaken if the slug exists.
func (r *tagRepo) Create(ctx context.Context, tag *models.Tag) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tags (id, slug, name) VALUES ($1, $2, $3)",
		tag.ID, tag.Slug, tag.Name,
	)
	if isUniqueViolation(err, "tags_slug_key") {
		return models.ErrSlugTaken
	}
	return err
}

// List retrieves all tags ordered by name
func (r *tagRepo) List(ctx context.Context) ([]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, slug, name FROM tags ORDER BY name")
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

// GetBySlug retrieves a tag by slug
func (r *tagRepo) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var t models.Tag
	err := r.db.QueryRowContext(ctx,
		"SELECT id, slug, name FROM tags WHERE slug = $1", slug,
	).Scan(&t.ID, &t.Slug, &t.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetBySlugs retrieves the tags matching the given slugs. Unknown slugs are
// silently absent from the result; callers compare lengths if they care.
func (r *tagRepo) GetBySlugs(ctx context.Context, slugs []string) ([]models.Tag, error) {
	if len(slugs) == 0 {
		return []models.Tag{}, nil
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, slug, name FROM tags WHERE slug = ANY($1) ORDER BY name",
		pq.Array(slugs),
	)
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

// Delete removes a tag by slug. Link rows go with it via ON DELETE CASCADE.
func (r *tagRepo) Delete(ctx context.Context, slug string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE slug = $1", slug)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}
