package apperrors

import (
	"errors"

	"gorm.io/gorm"
)

// WrapGorm normalizes database errors raised by gorm into the taxonomy.
// Repositories call this at their boundary so store internals never leak
// upward. Requires gorm.Config.TranslateError so driver-specific unique
// violations arrive as gorm.ErrDuplicatedKey.
func WrapGorm(err error, notFoundMsg, conflictMsg string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict(conflictMsg)
	}
	return Internal("database error", err)
}
