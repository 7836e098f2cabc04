package video

import (
	"context"

	"TubeFuss.com/cmd/api/handlers/pack"
	"TubeFuss.com/cmd/video/service"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// ListVideos 获取视频列表
func (h *Handler) ListVideos(ctx context.Context, c *app.RequestContext) {
	var req VideoListParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.BindError(c, err)
		return
	}
	page, err := h.videos.ListVideos(ctx, &service.ListVideosRequest{
		Query:    req.Query,
		SortBy:   req.SortBy,
		SortType: req.SortType,
		UserID:   req.UserID,
		Page:     pack.PageParam(c, h.maxLimit),
	})
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, page, "Videos fetched successfully")
}

func (h *Handler) PublishVideo(ctx context.Context, c *app.RequestContext) {
	var req VideoParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.BindError(c, err)
		return
	}
	files, err := pack.StageFiles(c, "videoFile", "thumbnail")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	defer files.Cleanup()

	video, err := h.videos.PublishVideo(ctx, pack.CurrentUser(c).ID, &service.PublishVideoRequest{
		Title:         req.Title,
		Description:   req.Description,
		VideoPath:     files["videoFile"],
		ThumbnailPath: files["thumbnail"],
	})
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusCreated, video, "Video uploaded successfully")
}

func (h *Handler) GetVideo(ctx context.Context, c *app.RequestContext) {
	video, err := h.videos.GetVideo(ctx, c.Param("videoId"), pack.CurrentUser(c).ID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, video, "Video fetched successfully")
}

func (h *Handler) UpdateVideo(ctx context.Context, c *app.RequestContext) {
	var req VideoParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.BindError(c, err)
		return
	}
	files, err := pack.StageFiles(c, "thumbnail")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	defer files.Cleanup()

	video, err := h.videos.UpdateVideo(ctx, c.Param("videoId"), pack.CurrentUser(c).ID, &service.UpdateVideoRequest{
		Title:         req.Title,
		Description:   req.Description,
		ThumbnailPath: files["thumbnail"],
	})
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, video, "Video updated successfully")
}

func (h *Handler) DeleteVideo(ctx context.Context, c *app.RequestContext) {
	if err := h.videos.DeleteVideo(ctx, c.Param("videoId"), pack.CurrentUser(c).ID); err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, nil, "Video deleted successfully")
}

func (h *Handler) TogglePublish(ctx context.Context, c *app.RequestContext) {
	video, err := h.videos.TogglePublish(ctx, c.Param("videoId"), pack.CurrentUser(c).ID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, map[string]bool{"isPublished": video.IsPublished}, "Publish status toggled")
}
