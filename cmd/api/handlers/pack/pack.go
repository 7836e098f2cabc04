package pack

import (
	"errors"
	"strings"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// UserKey is where the auth gate stores the resolved *model.User.
const UserKey = "user"

type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// SendResponse writes a success envelope.
func SendResponse(c *app.RequestContext, status int, data interface{}, message string) {
	if data == nil {
		data = map[string]interface{}{}
	}
	c.JSON(status, Response{StatusCode: status, Data: data, Message: message, Success: true})
}

func OK(c *app.RequestContext, data interface{}, message string) {
	SendResponse(c, consts.StatusOK, data, message)
}

// SendError maps err onto its kind and writes the failure envelope.
func SendError(c *app.RequestContext, err error) {
	e := errno.ConvertErr(err)
	status := errno.HTTPStatus(e)
	msg := e.ErrMsg
	if status == consts.StatusInternalServerError {
		_ = c.Error(err)
		msg = "Something went wrong"
	}
	c.JSON(status, ErrorResponse{StatusCode: status, Message: msg, Success: false, Errors: []string{}})
}

// BindError reports a failed BindAndValidate as a validation failure.
func BindError(c *app.RequestContext, err error) {
	var e errno.ErrNo
	if errors.As(err, &e) {
		SendError(c, err)
		return
	}
	SendError(c, errno.ParamErr.WithMessage(err.Error()))
}

// CurrentUser returns the account the auth gate attached, or nil.
func CurrentUser(c *app.RequestContext) *model.User {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}

// BearerToken reads the token from the cookie first, then from the Authorization header.
func BearerToken(c *app.RequestContext, cookie string) string {
	if v := c.Cookie(cookie); len(v) > 0 {
		return string(v)
	}
	auth := string(c.GetHeader("Authorization"))
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
