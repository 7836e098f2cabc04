package errno

import (
	"errors"
	"fmt"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const (
	SuccessCode            = 0
	ServiceErrCode         = 10001
	ParamErrCode           = 10002
	AuthenticationErrCode  = 10003
	AuthorizationErrCode   = 10004
	NotFoundErrCode        = 10005
	ConflictErrCode        = 10006
	TooManyRequestsErrCode = 10007
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

// WithMessage keeps the kind and replaces the message.
func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

func (e ErrNo) WithMessagef(format string, args ...interface{}) ErrNo {
	e.ErrMsg = fmt.Sprintf(format, args...)
	return e
}

// Is compares kinds only, so ParamErr.WithMessage("x") is still a ParamErr.
func (e ErrNo) Is(target error) bool {
	t, ok := target.(ErrNo)
	return ok && t.ErrCode == e.ErrCode
}

var (
	Success            = NewErrNo(SuccessCode, "Success")
	ServiceErr         = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	ParamErr           = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	AuthenticationErr  = NewErrNo(AuthenticationErrCode, "Unauthorized request")
	AuthorizationErr   = NewErrNo(AuthorizationErrCode, "Requested user is not the owner")
	NotFoundErr        = NewErrNo(NotFoundErrCode, "Resource not found")
	ConflictErr        = NewErrNo(ConflictErrCode, "Resource already exists")
	TooManyRequestsErr = NewErrNo(TooManyRequestsErrCode, "Too many requests")

	TokenInvalidErr = AuthenticationErr.WithMessage("Invalid or expired token")
)

// ConvertErr convert error to Errno
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}

	s := ServiceErr
	s.ErrMsg = err.Error()
	return s
}

// HTTPStatus maps an error kind to the status code written on the wire.
func HTTPStatus(e ErrNo) int {
	switch e.ErrCode {
	case SuccessCode:
		return consts.StatusOK
	case ParamErrCode:
		return consts.StatusBadRequest
	case AuthenticationErrCode:
		return consts.StatusUnauthorized
	case AuthorizationErrCode:
		return consts.StatusForbidden
	case NotFoundErrCode:
		return consts.StatusNotFound
	case ConflictErrCode:
		return consts.StatusConflict
	case TooManyRequestsErrCode:
		return consts.StatusTooManyRequests
	default:
		return consts.StatusInternalServerError
	}
}
