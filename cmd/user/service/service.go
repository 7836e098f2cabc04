package service

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/jwt"
	"TubeFuss.com/pkg/oss"
)

// UserStore is the persistence the account operations need.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByLogin(ctx context.Context, username, email string) (*model.User, error)
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	SetRefreshToken(ctx context.Context, id, expected, token string) (bool, error)
	ReplaceMedia(ctx context.Context, id, column, url string, stale model.MediaRef) error
	ChannelProfile(ctx context.Context, username, viewerID string) (*model.ChannelProfile, error)
	WatchHistory(ctx context.Context, userID string, param database.PageParam) (*database.Page[model.WatchedVideo], error)
}

type UserService struct {
	store  UserStore
	media  oss.Storage
	tokens *jwt.TokenManager
}

func NewUserService(store UserStore, media oss.Storage, tokens *jwt.TokenManager) *UserService {
	return &UserService{store: store, media: media, tokens: tokens}
}

// Session is returned by login and refresh.
type Session struct {
	User         *model.User `json:"user,omitempty"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// discard removes media uploaded for a request that did not complete.
func (s *UserService) discard(ctx context.Context, uploads ...*oss.Upload) {
	for _, u := range uploads {
		if u == nil {
			continue
		}
		_ = s.media.Delete(ctx, u.PublicID, oss.ResourceImage)
	}
}
