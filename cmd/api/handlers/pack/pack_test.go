package pack

import (
	"encoding/json"
	"fmt"
	"testing"

	"TubeFuss.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func TestSendError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"param", errno.ParamErr.WithMessage("All fields are required"), 400, "All fields are required"},
		{"unauthenticated", errno.TokenInvalidErr, 401, "Invalid or expired token"},
		{"forbidden", errno.AuthorizationErr, 403, "Requested user is not the owner"},
		{"not found", errno.NotFoundErr.WithMessage("Video not found"), 404, "Video not found"},
		{"conflict", errno.ConflictErr, 409, "Resource already exists"},
		{"too many", errno.TooManyRequestsErr, 429, "Too many requests"},
		{"wrapped", fmt.Errorf("load: %w", errno.NotFoundErr), 404, "Resource not found"},
		{"internal hides cause", fmt.Errorf("dial tcp: refused"), 500, "Something went wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := app.NewContext(0)
			SendError(c, tt.err)
			if c.Response.StatusCode() != tt.status {
				t.Errorf("status = %d, want %d", c.Response.StatusCode(), tt.status)
			}
			var got ErrorResponse
			if err := json.Unmarshal(c.Response.Body(), &got); err != nil {
				t.Fatal(err)
			}
			if got.Success || got.StatusCode != tt.status || got.Message != tt.message || got.Errors == nil {
				t.Errorf("body = %+v", got)
			}
		})
	}
}

func TestSendResponse(t *testing.T) {
	c := app.NewContext(0)
	OK(c, nil, "done")
	var got map[string]interface{}
	if err := json.Unmarshal(c.Response.Body(), &got); err != nil {
		t.Fatal(err)
	}
	if got["success"] != true || got["message"] != "done" || got["statusCode"] != float64(200) {
		t.Errorf("body = %v", got)
	}
	if data, ok := got["data"].(map[string]interface{}); !ok || len(data) != 0 {
		t.Errorf("data = %v, want empty object", got["data"])
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{"cookie wins", "from-cookie", "Bearer from-header", "from-cookie"},
		{"header", "", "Bearer abc", "abc"},
		{"case insensitive scheme", "", "bearer abc", "abc"},
		{"wrong scheme", "", "Basic abc", ""},
		{"nothing", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := app.NewContext(0)
			if tt.cookie != "" {
				c.Request.Header.SetCookie(AccessTokenCookie, tt.cookie)
			}
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			if got := BearerToken(c, AccessTokenCookie); got != tt.want {
				t.Errorf("BearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPageParam(t *testing.T) {
	c := app.NewContext(0)
	c.Request.SetRequestURI("/x?page=3&limit=500")
	p := PageParam(c, 100)
	if p.Page != 3 || p.Limit != 100 {
		t.Errorf("PageParam = %+v", p)
	}
}
