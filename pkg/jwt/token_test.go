package jwt

import (
	"errors"
	"testing"
	"time"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/errno"
)

func newManager() *TokenManager {
	return NewTokenManager("access-secret", time.Hour, "refresh-secret", 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newManager()
	u := &model.User{Base: model.Base{ID: "6f1c2a8e-3b4d-4c5e-9f60-718293a4b5c6"}, Username: "alice", Email: "alice@example.com"}

	token, err := m.GenerateAccessToken(u)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	claims, err := m.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != u.ID || claims.Username != "alice" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	m := newManager()
	refresh, err := m.GenerateRefreshToken("6f1c2a8e-3b4d-4c5e-9f60-718293a4b5c6")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if _, err := m.ParseAccessToken(refresh); !errors.Is(err, errno.AuthenticationErr) {
		t.Errorf("refresh token accepted as access token: %v", err)
	}
	if _, err := m.ParseRefreshToken(refresh); err != nil {
		t.Errorf("ParseRefreshToken: %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	m := newManager()
	m.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	token, err := m.GenerateRefreshToken("6f1c2a8e-3b4d-4c5e-9f60-718293a4b5c6")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	m.now = time.Now
	if _, err := m.ParseRefreshToken(token); !errors.Is(err, errno.AuthenticationErr) {
		t.Errorf("expired token accepted: %v", err)
	}
}

func TestRotatedTokensDiffer(t *testing.T) {
	m := newManager()
	a, _ := m.GenerateRefreshToken("6f1c2a8e-3b4d-4c5e-9f60-718293a4b5c6")
	b, _ := m.GenerateRefreshToken("6f1c2a8e-3b4d-4c5e-9f60-718293a4b5c6")
	if a == b {
		t.Error("two refresh tokens for the same account must differ")
	}
	if _, err := m.ParseAccessToken(""); err == nil {
		t.Error("empty token accepted")
	}
}
