package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reports whether an error is a unique-constraint
// violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullable maps an empty string to NULL on write.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deref maps a NULL column back to the empty string.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
