package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// IsNotFoundError reports whether err stems from a missing row.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err stems from a unique-constraint
// violation. The drivers translate their native duplicate-key errors to
// gorm.ErrDuplicatedKey, which makes the unique index the arbiter for
// generated codes.
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
