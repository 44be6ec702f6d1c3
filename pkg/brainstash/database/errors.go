package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err is a unique-index constraint
// violation. Concurrent duplicate creations are resolved by the
// storage layer's unique indexes, so handlers translate this into a
// 409 rather than guarding with application-level locks.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// The sqlite driver does not always translate constraint errors
	// into gorm.ErrDuplicatedKey.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
