package service

import (
	"context"
	"strings"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/errno"
	"github.com/pkg/errors"
)

type CommentService struct {
	store  CommentStore
	videos VideoFinder
}

func NewCommentService(store CommentStore, videos VideoFinder) *CommentService {
	return &CommentService{store: store, videos: videos}
}

// VideoComments 获取视频评论
func (s *CommentService) VideoComments(ctx context.Context, videoID, viewerID string, param database.PageParam) (*database.Page[model.CommentView], error) {
	if _, err := s.videos.VisibleVideo(ctx, videoID, viewerID); err != nil {
		return nil, err
	}
	return s.store.VideoComments(ctx, videoID, viewerID, param)
}

func (s *CommentService) AddComment(ctx context.Context, videoID, ownerID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errno.ParamErr.WithMessage("Comment content is required")
	}
	if _, err := s.videos.VisibleVideo(ctx, videoID, ownerID); err != nil {
		return nil, err
	}
	comment := &model.Comment{Content: content, VideoID: videoID, OwnerID: ownerID}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, errors.WithMessage(err, "dao.CreateComment failed")
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, commentID, actorID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errno.ParamErr.WithMessage("Comment content is required")
	}
	comment, err := s.owned(ctx, commentID, actorID)
	if err != nil {
		return nil, err
	}
	if err = s.store.UpdateComment(ctx, comment.ID, content); err != nil {
		return nil, err
	}
	comment.Content = content
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID, actorID string) error {
	if _, err := s.owned(ctx, commentID, actorID); err != nil {
		return err
	}
	return s.store.DeleteComment(ctx, commentID)
}

func (s *CommentService) owned(ctx context.Context, id, actorID string) (*model.Comment, error) {
	comment, err := s.store.FindComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != actorID {
		return nil, errno.AuthorizationErr.WithMessage("Requested user is not the comment owner")
	}
	return comment, nil
}
