package errno

import (
	"errors"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestConvertErr(t *testing.T) {
	t.Run("nil is success", func(t *testing.T) {
		if got := ConvertErr(nil); got.ErrCode != SuccessCode {
			t.Fatalf("got %d", got.ErrCode)
		}
	})

	t.Run("wrapped errno keeps its kind", func(t *testing.T) {
		err := pkgerrors.Wrap(NotFoundErr.WithMessage("Video not found"), "GetVideo failed")
		got := ConvertErr(err)
		if got.ErrCode != NotFoundErrCode {
			t.Fatalf("expected not found, got %d", got.ErrCode)
		}
		if got.ErrMsg != "Video not found" {
			t.Fatalf("unexpected message %q", got.ErrMsg)
		}
	})

	t.Run("plain error becomes service error", func(t *testing.T) {
		got := ConvertErr(errors.New("boom"))
		if got.ErrCode != ServiceErrCode || got.ErrMsg != "boom" {
			t.Fatalf("unexpected %+v", got)
		}
	})
}

func TestIsComparesKind(t *testing.T) {
	err := pkgerrors.WithMessage(AuthorizationErr.WithMessage("not yours"), "DeleteVideo")
	if !errors.Is(err, AuthorizationErr) {
		t.Fatal("expected authorization kind")
	}
	if errors.Is(err, AuthenticationErr) {
		t.Fatal("authorization must not match authentication")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  ErrNo
		want int
	}{
		{Success, http.StatusOK},
		{ParamErr, http.StatusBadRequest},
		{AuthenticationErr, http.StatusUnauthorized},
		{TokenInvalidErr, http.StatusUnauthorized},
		{TooManyRequestsErr, http.StatusTooManyRequests},
		{AuthorizationErr, http.StatusForbidden},
		{NotFoundErr, http.StatusNotFound},
		{ConflictErr, http.StatusConflict},
		{ServiceErr, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("%s: got %d want %d", c.err.ErrMsg, got, c.want)
		}
	}
}
