package repository

import (
	"context"
	"database/sql"

	"github.com/breachxpress-api/internal/database"
	"github.com/breachxpress-api/internal/models"
)

// contactRepo is the concrete implementation of ContactRepository
type contactRepo struct {
	db *database.DB
}

// NewContactRepo creates a new contact repository
func NewContactRepo(db *database.DB) ContactRepository {
	return &contactRepo{db: db}
}

// Create inserts a new contact message
func (r *contactRepo) Create(ctx context.Context, contact *models.Contact) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contacts (id, name, email, subject, message, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, contact.ID, nullString(contact.Name), contact.Email, contact.Subject,
		contact.Message, contact.SubmittedAt)
	return err
}

// List retrieves contact messages newest first, for operator review
func (r *contactRepo) List(ctx context.Context, limit, offset int) ([]*models.Contact, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, subject, message, submitted_at
		FROM contacts ORDER BY submitted_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		var c models.Contact
		var name sql.NullString
		if err := rows.Scan(&c.ID, &name, &c.Email, &c.Subject, &c.Message, &c.SubmittedAt); err != nil {
			return nil, err
		}
		c.Name = name.String
		contacts = append(contacts, &c)
	}
	return contacts, rows.Err()
}

// Count returns the total number of contact messages
func (r *contactRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts").Scan(&count)
	return count, err
}
