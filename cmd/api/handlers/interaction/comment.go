package interaction

import (
	"context"

	"TubeFuss.com/cmd/api/handlers/pack"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// VideoComments 获取视频评论列表
func (h *Handler) VideoComments(ctx context.Context, c *app.RequestContext) {
	page, err := h.comments.VideoComments(ctx, c.Param("videoId"), pack.CurrentUser(c).ID, pack.PageParam(c, h.maxLimit))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, page, "Comments fetched successfully")
}

func (h *Handler) AddComment(ctx context.Context, c *app.RequestContext) {
	var req ContentParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.BindError(c, err)
		return
	}
	comment, err := h.comments.AddComment(ctx, c.Param("videoId"), pack.CurrentUser(c).ID, req.Content)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusCreated, comment, "Comment added successfully")
}

func (h *Handler) UpdateComment(ctx context.Context, c *app.RequestContext) {
	var req ContentParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.BindError(c, err)
		return
	}
	comment, err := h.comments.UpdateComment(ctx, c.Param("commentId"), pack.CurrentUser(c).ID, req.Content)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, comment, "Comment updated successfully")
}

func (h *Handler) DeleteComment(ctx context.Context, c *app.RequestContext) {
	if err := h.comments.DeleteComment(ctx, c.Param("commentId"), pack.CurrentUser(c).ID); err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, nil, "Comment deleted successfully")
}
