package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sidra/content-factory/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors for the given entity.
// Context cancellation and deadline errors pass through unmapped.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			field := constraintField(pgErr.TableName, pgErr.ConstraintName)
			return fmt.Errorf("%s %s: %w", entity, id, domain.NewValidationError(field, "violates "+pgErr.ConstraintName))
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrConflict)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}

// constraintField derives the API field name from a constraint named the
// way Postgres names column checks, e.g. content_cards_moderation_status_check
// on content_cards becomes moderationStatus.
func constraintField(table, constraint string) string {
	name := strings.TrimSuffix(constraint, "_check")
	if table != "" {
		name = strings.TrimPrefix(name, table+"_")
	}
	if name == "" {
		return "record"
	}

	parts := strings.Split(name, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
