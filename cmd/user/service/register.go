package service

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/errno"
	"TubeFuss.com/pkg/oss"
	"TubeFuss.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type RegisterRequest struct {
	FullName       string
	Username       string
	Email          string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

// Register 注册新用户, avatar is required and cover image optional.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	if utils.AnyBlank(req.FullName, req.Username, req.Email, req.Password) {
		return nil, errno.ParamErr.WithMessage("All fields are required")
	}
	username := utils.NormalizeUsername(req.Username)
	email := utils.NormalizeEmail(req.Email)
	if !utils.IsValidEmail(email) {
		return nil, errno.ParamErr.WithMessage("Invalid email address")
	}
	if req.AvatarPath == "" {
		return nil, errno.ParamErr.WithMessage("Avatar file is required")
	}

	exists, err := s.store.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ExistsByUsernameOrEmail failed")
	}
	if exists {
		return nil, errno.ConflictErr.WithMessage("User with email or username already exists")
	}

	hashed, err := utils.Crypt(req.Password)
	if err != nil {
		return nil, errors.WithMessage(err, "Password fail to crypt")
	}

	avatar, err := s.media.Upload(ctx, req.AvatarPath, oss.ResourceImage)
	if err != nil {
		return nil, errors.WithMessage(err, "upload avatar failed")
	}
	var cover *oss.Upload
	if req.CoverImagePath != "" {
		if cover, err = s.media.Upload(ctx, req.CoverImagePath, oss.ResourceImage); err != nil {
			s.discard(ctx, avatar)
			return nil, errors.WithMessage(err, "upload cover image failed")
		}
	}

	user := &model.User{
		Username: username,
		Email:    email,
		FullName: req.FullName,
		Password: hashed,
		Avatar:   avatar.URL,
	}
	if cover != nil {
		user.CoverImage = cover.URL
	}
	if err = s.store.CreateUser(ctx, user); err != nil {
		s.discard(ctx, avatar, cover)
		return nil, errors.WithMessage(err, "dao.CreateUser failed")
	}
	hlog.CtxInfof(ctx, "user %s registered as %s", user.ID, user.Username)
	return user, nil
}
