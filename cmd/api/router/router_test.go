package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"TubeFuss.com/cmd/api/handlers/healthcheck"
	"TubeFuss.com/cmd/api/handlers/interaction"
	"TubeFuss.com/cmd/api/handlers/pack"
	"TubeFuss.com/cmd/api/handlers/relation"
	"TubeFuss.com/cmd/api/handlers/user"
	"TubeFuss.com/cmd/api/handlers/video"
	interactionservice "TubeFuss.com/cmd/interaction/service"
	relationservice "TubeFuss.com/cmd/relation/service"
	userservice "TubeFuss.com/cmd/user/service"
	videoservice "TubeFuss.com/cmd/video/service"
	"TubeFuss.com/pkg/jwt"
	"TubeFuss.com/pkg/lock"
	"TubeFuss.com/pkg/mock"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
)

type testApp struct {
	h      *server.Hertz
	users  *userservice.UserService
	videos *videoservice.VideoService
}

func newTestApp(t *testing.T, ping healthcheck.Pinger) *testApp {
	t.Helper()
	store, media := mock.NewStore(), mock.NewStorage()
	tokens := jwt.NewTokenManager("access", time.Hour, "refresh", 24*time.Hour)
	locker := lock.NewLocalLocker()

	users := userservice.NewUserService(store, media, tokens)
	videos := videoservice.NewVideoService(store, media, mock.NewIndex())
	h := server.New()
	Register(h, &Handlers{
		Authn: users,
		User:  user.New(users, tokens, pack.CookieConfig{}, 100),
		Video: video.New(videos,
			videoservice.NewPlaylistService(store, store, store),
			videoservice.NewDashboardService(store), 100),
		Interaction: interaction.New(
			interactionservice.NewCommentService(store, store),
			interactionservice.NewTweetService(store, store),
			interactionservice.NewLikeService(store, locker), 100),
		Relation: relation.New(relationservice.NewSubscriptionService(store, store, locker), 100),
		Health:   healthcheck.New(ping),
	})
	return &testApp{h: h, users: users, videos: videos}
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

func (a *testApp) do(t *testing.T, method, url, token string, body interface{}) (int, envelope) {
	t.Helper()
	headers := []ut.Header{{Key: "Content-Type", Value: "application/json"}}
	if token != "" {
		headers = append(headers, ut.Header{Key: "Authorization", Value: "Bearer " + token})
	}
	var b *ut.Body
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		b = &ut.Body{Body: bytes.NewReader(raw), Len: len(raw)}
	}
	resp := ut.PerformRequest(a.h.Engine, method, url, b, headers...).Result()
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, url, resp.Body(), err)
	}
	return resp.StatusCode(), env
}

// login registers through the service, since the route takes multipart, then
// logs in over HTTP.
func (a *testApp) login(t *testing.T, username string) (string, string) {
	t.Helper()
	u, err := a.users.Register(context.Background(), &userservice.RegisterRequest{
		FullName: username, Username: username, Email: username + "@example.com",
		Password: "secret123", AvatarPath: "/tmp/a.png",
	})
	if err != nil {
		t.Fatal(err)
	}
	status, env := a.do(t, "POST", "/api/v1/users/login", "", map[string]string{
		"username": username, "password": "secret123",
	})
	if status != 200 {
		t.Fatalf("login %s = %d %s", username, status, env.Message)
	}
	var session struct {
		AccessToken string `json:"accessToken"`
	}
	if err = json.Unmarshal(env.Data, &session); err != nil || session.AccessToken == "" {
		t.Fatalf("login data %s: %v", env.Data, err)
	}
	return u.ID, session.AccessToken
}

func TestAuthGate(t *testing.T) {
	a := newTestApp(t, nil)
	_, token := a.login(t, "alice")

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"no token", "", 401},
		{"garbage token", "not.a.jwt", 401},
		{"valid token", token, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := a.do(t, "GET", "/api/v1/users/current-user", tt.token, nil)
			if status != tt.status || env.StatusCode != tt.status {
				t.Errorf("status = %d (%d), want %d", status, env.StatusCode, tt.status)
			}
			if env.Success != (tt.status == 200) {
				t.Errorf("success = %v", env.Success)
			}
		})
	}

	status, env := a.do(t, "POST", "/api/v1/users/login", "", map[string]string{"username": "alice", "password": "nope"})
	if status != 401 || env.Message != "Invalid user credentials" || env.Errors == nil {
		t.Errorf("bad login = %d %+v", status, env)
	}
}

func TestVideoLifecycleOverHTTP(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil)
	aliceID, alice := a.login(t, "alice")
	_, bob := a.login(t, "bob")

	v, err := a.videos.PublishVideo(ctx, aliceID, &videoservice.PublishVideoRequest{
		Title: "Launch", Description: "d", VideoPath: "/tmp/v.mp4", ThumbnailPath: "/tmp/t.png",
	})
	if err != nil {
		t.Fatal(err)
	}
	url := "/api/v1/videos/" + v.ID

	if status, _ := a.do(t, "GET", url, bob, nil); status != 404 {
		t.Errorf("draft visible to others: %d", status)
	}
	status, env := a.do(t, "PATCH", "/api/v1/videos/toggle/publish/"+v.ID, alice, nil)
	if status != 200 || string(env.Data) != `{"isPublished":true}` {
		t.Fatalf("toggle publish = %d %s", status, env.Data)
	}
	if status, _ = a.do(t, "GET", url, bob, nil); status != 200 {
		t.Errorf("published video = %d", status)
	}

	status, env = a.do(t, "POST", "/api/v1/likes/toggle/v/"+v.ID, bob, nil)
	if status != 200 || string(env.Data) != `{"isLiked":true}` {
		t.Errorf("like = %d %s", status, env.Data)
	}
	if status, _ = a.do(t, "POST", "/api/v1/comments/"+v.ID, bob, map[string]string{"content": "great"}); status != 201 {
		t.Errorf("comment = %d", status)
	}
	if status, _ = a.do(t, "POST", "/api/v1/subscriptions/c/alice", aliceID, nil); status != 401 {
		t.Errorf("raw id as token = %d", status)
	}
	if status, env = a.do(t, "POST", "/api/v1/subscriptions/c/alice", alice, nil); status != 400 {
		t.Errorf("self subscribe = %d %s", status, env.Message)
	}

	if status, env = a.do(t, "DELETE", url, bob, nil); status != 403 || env.Success {
		t.Errorf("non-owner delete = %d %+v", status, env)
	}
	if status, _ = a.do(t, "DELETE", url, alice, nil); status != 200 {
		t.Fatalf("owner delete = %d", status)
	}
	if status, _ = a.do(t, "GET", url, alice, nil); status != 404 {
		t.Errorf("deleted video = %d", status)
	}
	if status, _ = a.do(t, "GET", "/api/v1/videos/not-an-id", alice, nil); status != 400 {
		t.Errorf("malformed id = %d", status)
	}

	status, env = a.do(t, "GET", "/api/v1/likes/videos", bob, nil)
	if status != 200 || !bytes.Contains(env.Data, []byte(`"totalDocs":0`)) {
		t.Errorf("liked videos after delete = %d %s", status, env.Data)
	}
}

func TestHealthcheck(t *testing.T) {
	status, env := newTestApp(t, func(context.Context) error { return nil }).do(t, "GET", "/healthcheck", "", nil)
	if status != 200 || !bytes.Contains(env.Data, []byte(`"status":"ok"`)) {
		t.Errorf("healthy = %d %s", status, env.Data)
	}
	status, env = newTestApp(t, func(context.Context) error { return errors.New("down") }).do(t, "GET", "/healthcheck", "", nil)
	if status != 503 || !bytes.Contains(env.Data, []byte(`"store":"down"`)) {
		t.Errorf("degraded = %d %s", status, env.Data)
	}
}

func TestRequestValidation(t *testing.T) {
	a := newTestApp(t, nil)
	_, token := a.login(t, "alice")

	tests := []struct {
		name   string
		method string
		url    string
		token  string
		body   interface{}
		status int
		msg    string
	}{
		{"login without identity", "POST", "/api/v1/users/login", "", map[string]string{"password": "secret123"}, 400, "Email or username is required"},
		{"login without password", "POST", "/api/v1/users/login", "", map[string]string{"username": "alice"}, 400, "Password is required"},
		{"login by email", "POST", "/api/v1/users/login", "", map[string]string{"email": "alice@example.com", "password": "secret123"}, 200, ""},
		{"empty tweet", "POST", "/api/v1/tweets", token, map[string]string{"content": ""}, 400, "Content is required"},
		{"playlist without description", "POST", "/api/v1/playlist", token, map[string]string{"name": "mix"}, 400, "Playlist name and description are required"},
		{"password change missing new", "POST", "/api/v1/users/change-password", token, map[string]string{"oldPassword": "secret123"}, 400, "Old and new password are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := a.do(t, tt.method, tt.url, tt.token, tt.body)
			if status != tt.status {
				t.Fatalf("status = %d (%s), want %d", status, env.Message, tt.status)
			}
			if tt.msg != "" && env.Message != tt.msg {
				t.Errorf("message = %q, want %q", env.Message, tt.msg)
			}
		})
	}
}
