package repository

import (
	"context"
	"database/sql"

	"github.com/breachxpress-api/internal/database"
	"github.com/breachxpress-api/internal/models"
)

// operatorRepo is the concrete implementation of OperatorRepository
type operatorRepo struct {
	db *database.DB
}

// NewOperatorRepo creates a new operator repository
func NewOperatorRepo(db *database.DB) OperatorRepository {
	return &operatorRepo{db: db}
}

// Create inserts a new operator account
func (r *operatorRepo) Create(ctx context.Context, op *models.Operator) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO operators (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, op.ID, op.Username, op.PasswordHash, op.CreatedAt)
	return err
}

// GetByUsername retrieves an operator by username
func (r *operatorRepo) GetByUsername(ctx context.Context, username string) (*models.Operator, error) {
	var op models.Operator
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at FROM operators WHERE username = $1
	`, username).Scan(&op.ID, &op.Username, &op.PasswordHash, &op.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// Count returns the total number of operator accounts
func (r *operatorRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM operators").Scan(&count)
	return count, err
}
