package jwt

import (
	"fmt"
	"time"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/errno"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "tubefuss"

// Claims JWT声明
type Claims struct {
	UserID   string `json:"_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs access and refresh tokens with separate HMAC keys.
type TokenManager struct {
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenManager(accessSecret string, accessTTL time.Duration, refreshSecret string, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessKey:  []byte(accessSecret),
		refreshKey: []byte(refreshSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *TokenManager) AccessTTL() time.Duration {
	return m.accessTTL
}

func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

// GenerateAccessToken 生成访问令牌
func (m *TokenManager) GenerateAccessToken(u *model.User) (string, error) {
	claims := &Claims{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	}
	return m.sign(claims, m.accessKey, m.accessTTL)
}

// GenerateRefreshToken 生成刷新令牌, only the account id is carried.
func (m *TokenManager) GenerateRefreshToken(userID string) (string, error) {
	return m.sign(&Claims{UserID: userID}, m.refreshKey, m.refreshTTL)
}

func (m *TokenManager) ParseAccessToken(token string) (*Claims, error) {
	return m.parse(token, m.accessKey)
}

func (m *TokenManager) ParseRefreshToken(token string) (*Claims, error) {
	return m.parse(token, m.refreshKey)
}

func (m *TokenManager) sign(claims *Claims, key []byte, ttl time.Duration) (string, error) {
	now := m.now()
	// jti keeps two tokens issued in the same second distinct
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

func (m *TokenManager) parse(tokenString string, key []byte) (*Claims, error) {
	if tokenString == "" {
		return nil, errno.AuthenticationErr.WithMessage("Unauthorized request")
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid || claims.UserID == "" {
		return nil, errno.TokenInvalidErr
	}
	return claims, nil
}
