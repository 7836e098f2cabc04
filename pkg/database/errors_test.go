package database

import (
	"errors"
	"testing"

	"TubeFuss.com/pkg/errno"
	"gorm.io/gorm"
)

func TestTranslateNotFound(t *testing.T) {
	if TranslateNotFound(nil, "Video") != nil {
		t.Error("nil must stay nil")
	}
	err := TranslateNotFound(gorm.ErrRecordNotFound, "Video")
	if !errors.Is(err, errno.NotFoundErr) {
		t.Fatalf("err = %v, want not found", err)
	}
	if got := errno.ConvertErr(err).ErrMsg; got != "Video not found" {
		t.Errorf("message = %q", got)
	}
	if errors.Is(TranslateNotFound(errors.New("boom"), "Video"), errno.NotFoundErr) {
		t.Error("other errors must not become not found")
	}
}

func TestTranslateConflict(t *testing.T) {
	err := TranslateConflict(gorm.ErrDuplicatedKey, "Username taken")
	if !errors.Is(err, errno.ConflictErr) {
		t.Fatalf("err = %v, want conflict", err)
	}
	if errors.Is(TranslateConflict(errors.New("boom"), "x"), errno.ConflictErr) {
		t.Error("other errors must not become conflicts")
	}
}
