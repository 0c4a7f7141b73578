package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "portfolio/internal/errors"
)

// translate maps GORM sentinel errors onto the application's data-layer errors.
// The connection is opened with TranslateError so duplicate keys surface as
// gorm.ErrDuplicatedKey on every supported driver.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, apperrors.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
