// Package bootstrap creates the initial operator account. It is an explicit,
// idempotent startup step guarded by an existence check, invoked once from
// main after migrations run.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/breachxpress-api/internal/config"
	"github.com/breachxpress-api/internal/models"
	"github.com/breachxpress-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// EnsureOperator creates the configured operator account if no operator
// exists yet. Re-running is a no-op; it never overwrites an existing account.
func EnsureOperator(ctx context.Context, ops repository.OperatorRepository, cfg *config.BootstrapConfig, log zerolog.Logger) error {
	count, err := ops.Count(ctx)
	if err != nil {
		return fmt.Errorf("count operators: %w", err)
	}
	if count > 0 {
		log.Debug().Int("operators", count).Msg("Operator bootstrap skipped, accounts exist")
		return nil
	}

	if cfg.Password == "" {
		return fmt.Errorf("no operator exists and OPERATOR_PASSWORD is not set")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash operator password: %w", err)
	}

	op := &models.Operator{
		ID:           uuid.New().String(),
		Username:     cfg.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := ops.Create(ctx, op); err != nil {
		return fmt.Errorf("create operator: %w", err)
	}

	log.Info().Str("username", op.Username).Msg("Bootstrap operator created")
	return nil
}
