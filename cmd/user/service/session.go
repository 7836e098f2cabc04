package service

import (
	"context"
	"errors"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/errno"
	"TubeFuss.com/pkg/utils"
	pkgerrors "github.com/pkg/errors"
)

type LoginRequest struct {
	Username string
	Email    string
	Password string
}

// Login 校验密码并签发新的令牌对
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*Session, error) {
	username := utils.NormalizeUsername(req.Username)
	email := utils.NormalizeEmail(req.Email)
	if username == "" && email == "" {
		return nil, errno.ParamErr.WithMessage("Email or username is required")
	}
	if req.Password == "" {
		return nil, errno.ParamErr.WithMessage("Password is required")
	}

	user, err := s.store.FindByLogin(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, errno.AuthenticationErr.WithMessage("Invalid user credentials")
	}
	return s.issue(ctx, user, "")
}

// Refresh rotates the token pair when refreshToken is the one stored on the account.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, errno.AuthenticationErr
	}
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.store.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, errno.NotFoundErr) {
			return nil, errno.TokenInvalidErr.WithMessage("Invalid refresh token")
		}
		return nil, err
	}
	if user.RefreshToken != refreshToken {
		return nil, errno.TokenInvalidErr.WithMessage("Refresh token is expired or used")
	}
	session, err := s.issue(ctx, user, refreshToken)
	if err != nil {
		return nil, err
	}
	session.User = nil
	return session, nil
}

// Logout forgets the stored refresh token.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	_, err := s.store.SetRefreshToken(ctx, userID, "", "")
	return pkgerrors.WithMessage(err, "dao.SetRefreshToken failed")
}

// Authenticate resolves an access token to its account.
func (s *UserService) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := s.tokens.ParseAccessToken(accessToken)
	if err != nil {
		return nil, err
	}
	user, err := s.store.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, errno.NotFoundErr) || errors.Is(err, errno.ParamErr) {
			return nil, errno.TokenInvalidErr.WithMessage("Invalid access token")
		}
		return nil, err
	}
	return user, nil
}

// issue signs a pair and stores the refresh token. A non-empty expected makes
// the store swap conditional so a stale token loses any race.
func (s *UserService) issue(ctx context.Context, user *model.User, expected string) (*Session, error) {
	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, pkgerrors.WithMessage(err, "sign access token failed")
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, pkgerrors.WithMessage(err, "sign refresh token failed")
	}
	ok, err := s.store.SetRefreshToken(ctx, user.ID, expected, refresh)
	if err != nil {
		return nil, pkgerrors.WithMessage(err, "dao.SetRefreshToken failed")
	}
	if !ok {
		return nil, errno.TokenInvalidErr.WithMessage("Refresh token is expired or used")
	}
	user.RefreshToken = refresh
	return &Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
