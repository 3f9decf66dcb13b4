package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"newsroom/internal/errors"
)

// translate maps storage failures onto the domain taxonomy. Missing rows
// become NotFound and uniqueness violations become Conflict; anything else
// is wrapped and passed through.
func translate(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.NotFound(resource)
	case isDuplicateKey(err):
		return errors.Conflict(resource + " already exists")
	default:
		return fmt.Errorf("%s: %w", resource, err)
	}
}

// isDuplicateKey covers dialects whose error translator is not installed.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}
