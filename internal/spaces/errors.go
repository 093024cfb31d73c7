package spaces

import (
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNotFound is returned when a space, criterion or tool does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for values that fail validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict is returned when an ID is already taken.
	ErrConflict = errors.New("already exists")
)

// isUniqueViolation checks if an error is a SQLite UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation checks if an error is a SQLite FOREIGN KEY failure.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
