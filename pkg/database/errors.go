package database

import (
	"TubeFuss.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// TranslateNotFound turns gorm.ErrRecordNotFound into a NotFoundErr naming what,
// and wraps anything else.
func TranslateNotFound(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errno.NotFoundErr.WithMessage(what + " not found")
	}
	return errors.Wrapf(err, "query %s failed", what)
}

// TranslateConflict turns a unique key violation into a ConflictErr carrying msg.
func TranslateConflict(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errno.ConflictErr.WithMessage(msg)
	}
	return errors.WithStack(err)
}
