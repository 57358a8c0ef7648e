package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

// translate maps driver errors onto the domain error kinds.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%w: %s: %s", domain.ErrConflict, op, pqErr.Detail)
		case "foreign_key_violation":
			return fmt.Errorf("%w: %s: %s", domain.ErrNotFound, op, pqErr.Detail)
		case "check_violation", "invalid_text_representation", "not_null_violation":
			return fmt.Errorf("%w: %s: %s", domain.ErrValidation, op, pqErr.Message)
		}
	}

	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
