package service

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/errno"
	"TubeFuss.com/pkg/oss"
	"TubeFuss.com/pkg/search"
	"TubeFuss.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// VideoService owns uploads and the video lifecycle. index may be nil, in
// which case text queries fall back to the store.
type VideoService struct {
	store VideoStore
	media oss.Storage
	index search.VideoIndex
}

func NewVideoService(store VideoStore, media oss.Storage, index search.VideoIndex) *VideoService {
	return &VideoService{store: store, media: media, index: index}
}

type ListVideosRequest struct {
	Query    string
	SortBy   string
	SortType string
	UserID   string
	Page     database.PageParam
}

// ListVideos 获取已发布视频列表
func (s *VideoService) ListVideos(ctx context.Context, req *ListVideosRequest) (*database.Page[model.VideoCard], error) {
	f := model.VideoFilter{
		OwnerID:  req.UserID,
		Query:    req.Query,
		SortBy:   req.SortBy,
		SortType: req.SortType,
	}
	if f.Query != "" && s.index != nil {
		ids, err := s.index.SearchIDs(ctx, f.Query)
		if err != nil {
			hlog.CtxWarnf(ctx, "video search failed, falling back to store: %v", err)
		} else {
			f.IDs = ids
		}
	}
	return s.store.ListVideos(ctx, f, req.Page)
}

type PublishVideoRequest struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// PublishVideo uploads both files and stores the video unpublished. Uploaded
// media is removed again when the insert fails.
func (s *VideoService) PublishVideo(ctx context.Context, ownerID string, req *PublishVideoRequest) (*model.Video, error) {
	if utils.AnyBlank(req.Title, req.Description) {
		return nil, errno.ParamErr.WithMessage("Title and description are required")
	}
	if req.VideoPath == "" {
		return nil, errno.ParamErr.WithMessage("Video file is required")
	}
	if req.ThumbnailPath == "" {
		return nil, errno.ParamErr.WithMessage("Thumbnail is required")
	}

	file, err := s.media.Upload(ctx, req.VideoPath, oss.ResourceVideo)
	if err != nil {
		return nil, errors.WithMessage(err, "upload video failed")
	}
	thumb, err := s.media.Upload(ctx, req.ThumbnailPath, oss.ResourceImage)
	if err != nil {
		s.discard(ctx, file, oss.ResourceVideo)
		return nil, errors.WithMessage(err, "upload thumbnail failed")
	}

	video := &model.Video{
		VideoFile:   file.URL,
		Thumbnail:   thumb.URL,
		Title:       req.Title,
		Description: req.Description,
		Duration:    file.Duration,
		OwnerID:     ownerID,
	}
	if err = s.store.CreateVideo(ctx, video); err != nil {
		s.discard(ctx, file, oss.ResourceVideo)
		s.discard(ctx, thumb, oss.ResourceImage)
		return nil, errors.WithMessage(err, "dao.CreateVideo failed")
	}
	s.reindex(ctx, video)
	hlog.CtxInfof(ctx, "video %s published by %s", video.ID, ownerID)
	return video, nil
}

// GetVideo returns the watch page and counts the view.
func (s *VideoService) GetVideo(ctx context.Context, videoID, viewerID string) (*model.VideoView, error) {
	view, err := s.store.VideoView(ctx, videoID, viewerID)
	if err != nil {
		return nil, err
	}
	if err = s.store.RecordView(ctx, videoID, viewerID); err != nil {
		return nil, errors.WithMessage(err, "dao.RecordView failed")
	}
	view.Views++
	return view, nil
}

type UpdateVideoRequest struct {
	Title         string
	Description   string
	ThumbnailPath string
}

func (s *VideoService) UpdateVideo(ctx context.Context, videoID, actorID string, req *UpdateVideoRequest) (*model.Video, error) {
	if utils.AnyBlank(req.Title, req.Description) {
		return nil, errno.ParamErr.WithMessage("Title and description are required")
	}
	video, err := s.owned(ctx, videoID, actorID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"title": req.Title, "description": req.Description}
	var stale model.MediaRef
	var thumb *oss.Upload
	if req.ThumbnailPath != "" {
		if thumb, err = s.media.Upload(ctx, req.ThumbnailPath, oss.ResourceImage); err != nil {
			return nil, errors.WithMessage(err, "upload thumbnail failed")
		}
		fields["thumbnail"] = thumb.URL
		stale = model.MediaRef{PublicID: oss.PublicIDFromURL(video.Thumbnail), ResourceType: oss.ResourceImage}
	}
	if err = s.store.UpdateVideo(ctx, video.ID, fields, stale); err != nil {
		s.discard(ctx, thumb, oss.ResourceImage)
		return nil, err
	}

	video.Title, video.Description = req.Title, req.Description
	if thumb != nil {
		video.Thumbnail = thumb.URL
	}
	s.reindex(ctx, video)
	return video, nil
}

func (s *VideoService) DeleteVideo(ctx context.Context, videoID, actorID string) error {
	video, err := s.owned(ctx, videoID, actorID)
	if err != nil {
		return err
	}
	if err = s.store.DeleteVideo(ctx, video); err != nil {
		return err
	}
	if s.index != nil {
		if err = s.index.Delete(ctx, video.ID); err != nil {
			hlog.CtxWarnf(ctx, "remove video %s from index failed: %v", video.ID, err)
		}
	}
	return nil
}

// TogglePublish flips the publish flag and reports the new value.
func (s *VideoService) TogglePublish(ctx context.Context, videoID, actorID string) (*model.Video, error) {
	video, err := s.owned(ctx, videoID, actorID)
	if err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	if err = s.store.SetPublished(ctx, video.ID, video.IsPublished); err != nil {
		return nil, err
	}
	s.reindex(ctx, video)
	return video, nil
}

// owned loads the video and checks that actorID may change it.
func (s *VideoService) owned(ctx context.Context, videoID, actorID string) (*model.Video, error) {
	video, err := s.store.FindVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != actorID {
		return nil, errno.AuthorizationErr.WithMessage("Requested user is not the video owner")
	}
	return video, nil
}

func (s *VideoService) reindex(ctx context.Context, v *model.Video) {
	if s.index == nil {
		return
	}
	err := s.index.Index(ctx, search.VideoDoc{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		OwnerID:     v.OwnerID,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
	})
	if err != nil {
		hlog.CtxWarnf(ctx, "index video %s failed: %v", v.ID, err)
	}
}

func (s *VideoService) discard(ctx context.Context, u *oss.Upload, resourceType string) {
	if u == nil {
		return
	}
	if err := s.media.Delete(ctx, u.PublicID, resourceType); err != nil {
		hlog.CtxWarnf(ctx, "discard %s %s failed: %v", resourceType, u.PublicID, err)
	}
}
