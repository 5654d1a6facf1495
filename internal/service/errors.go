package service

import (
	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
)

// invalid keeps the validation details and marks them as ErrInvalidInput.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, ErrInvalidInput)
}

// translate maps constraint violations reported by the driver to ErrConflict.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errors.Mark(errors.Wrap(err, op), ErrConflict)
	}
	return errors.Wrap(err, op)
}
