package service

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/errno"
	"TubeFuss.com/pkg/oss"
	"TubeFuss.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

func (s *UserService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	return s.store.FindByID(ctx, userID)
}

// ChangePassword 修改密码
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if utils.AnyBlank(oldPassword, newPassword) {
		return errno.ParamErr.WithMessage("Old and new password are required")
	}
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(oldPassword, user.Password) {
		return errno.ParamErr.WithMessage("Wrong old password")
	}
	hashed, err := utils.Crypt(newPassword)
	if err != nil {
		return errors.WithMessage(err, "Password fail to crypt")
	}
	return s.store.UpdateFields(ctx, userID, map[string]interface{}{"password": hashed})
}

func (s *UserService) UpdateAccount(ctx context.Context, userID, fullName, email string) (*model.User, error) {
	if utils.AnyBlank(fullName, email) {
		return nil, errno.ParamErr.WithMessage("All fields are required")
	}
	email = utils.NormalizeEmail(email)
	if !utils.IsValidEmail(email) {
		return nil, errno.ParamErr.WithMessage("Invalid email address")
	}
	taken, err := s.store.EmailTaken(ctx, email, userID)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.EmailTaken failed")
	}
	if taken {
		return nil, errno.ConflictErr.WithMessage("Email already in use")
	}
	if err = s.store.UpdateFields(ctx, userID, map[string]interface{}{"full_name": fullName, "email": email}); err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, userID)
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID, localPath string) (*model.User, error) {
	if localPath == "" {
		return nil, errno.ParamErr.WithMessage("Avatar file is missing")
	}
	return s.replaceImage(ctx, userID, "avatar", localPath)
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID, localPath string) (*model.User, error) {
	if localPath == "" {
		return nil, errno.ParamErr.WithMessage("Cover image file is missing")
	}
	return s.replaceImage(ctx, userID, "cover_image", localPath)
}

// replaceImage uploads the new file first; the old object is handed to the
// outbox together with the column update.
func (s *UserService) replaceImage(ctx context.Context, userID, column, localPath string) (*model.User, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	old := user.Avatar
	if column == "cover_image" {
		old = user.CoverImage
	}

	up, err := s.media.Upload(ctx, localPath, oss.ResourceImage)
	if err != nil {
		return nil, errors.WithMessagef(err, "upload %s failed", column)
	}
	stale := model.MediaRef{PublicID: oss.PublicIDFromURL(old), ResourceType: oss.ResourceImage}
	if err = s.store.ReplaceMedia(ctx, userID, column, up.URL, stale); err != nil {
		s.discard(ctx, up)
		return nil, err
	}
	hlog.CtxInfof(ctx, "user %s replaced %s", userID, column)
	return s.store.FindByID(ctx, userID)
}

func (s *UserService) ChannelProfile(ctx context.Context, username, viewerID string) (*model.ChannelProfile, error) {
	username = utils.NormalizeUsername(username)
	if username == "" {
		return nil, errno.ParamErr.WithMessage("Username is missing")
	}
	return s.store.ChannelProfile(ctx, username, viewerID)
}

func (s *UserService) WatchHistory(ctx context.Context, userID string, param database.PageParam) (*database.Page[model.WatchedVideo], error) {
	return s.store.WatchHistory(ctx, userID, param)
}
