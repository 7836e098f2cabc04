package service

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/errno"
	"TubeFuss.com/pkg/lock"
	"TubeFuss.com/pkg/metrics"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

var likeTargetNames = map[model.LikeTarget]string{
	model.LikeTargetVideo:   "Video",
	model.LikeTargetComment: "Comment",
	model.LikeTargetTweet:   "Tweet",
}

type LikeService struct {
	store  LikeStore
	locker lock.Locker
}

func NewLikeService(store LikeStore, locker lock.Locker) *LikeService {
	return &LikeService{store: store, locker: locker}
}

// ToggleLike 点赞/取消点赞, serialised per (user, target) and reporting the new state.
func (s *LikeService) ToggleLike(ctx context.Context, target model.LikeTarget, targetID, userID string) (bool, error) {
	name, ok := likeTargetNames[target]
	if !ok {
		return false, errno.ParamErr.WithMessage("Unknown like target")
	}
	if !model.ValidID(targetID) {
		return false, errno.ParamErr.WithMessagef("Invalid %s id", target)
	}

	unlock, err := s.locker.Lock(ctx, lock.ToggleKey("like", targetID, userID))
	if err != nil {
		return false, errors.WithMessage(err, "acquire like lock failed")
	}
	defer unlock()

	visible, err := s.store.TargetVisible(ctx, target, targetID, userID)
	if err != nil {
		return false, err
	}
	if !visible {
		return false, errno.NotFoundErr.WithMessagef("%s not found", name)
	}
	liked, err := s.store.ToggleLike(ctx, target, targetID, userID)
	if err != nil {
		return false, err
	}
	metrics.RecordToggle("like_"+string(target), liked)
	hlog.CtxDebugf(ctx, "user %s like %s %s -> %v", userID, target, targetID, liked)
	return liked, nil
}

func (s *LikeService) LikedVideos(ctx context.Context, userID string, param database.PageParam) (*database.Page[model.LikedVideo], error) {
	return s.store.LikedVideos(ctx, userID, param)
}
