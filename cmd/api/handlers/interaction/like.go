package interaction

import (
	"context"

	"TubeFuss.com/cmd/api/handlers/pack"
	"TubeFuss.com/cmd/model"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) ToggleVideoLike(ctx context.Context, c *app.RequestContext) {
	h.toggle(ctx, c, model.LikeTargetVideo, c.Param("videoId"))
}

func (h *Handler) ToggleCommentLike(ctx context.Context, c *app.RequestContext) {
	h.toggle(ctx, c, model.LikeTargetComment, c.Param("commentId"))
}

func (h *Handler) ToggleTweetLike(ctx context.Context, c *app.RequestContext) {
	h.toggle(ctx, c, model.LikeTargetTweet, c.Param("tweetId"))
}

func (h *Handler) toggle(ctx context.Context, c *app.RequestContext, target model.LikeTarget, id string) {
	liked, err := h.likes.ToggleLike(ctx, target, id, pack.CurrentUser(c).ID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	msg := "Like removed"
	if liked {
		msg = "Liked successfully"
	}
	pack.OK(c, map[string]bool{"isLiked": liked}, msg)
}

func (h *Handler) LikedVideos(ctx context.Context, c *app.RequestContext) {
	page, err := h.likes.LikedVideos(ctx, pack.CurrentUser(c).ID, pack.PageParam(c, h.maxLimit))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, page, "Liked videos fetched successfully")
}
