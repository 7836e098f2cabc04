package video

import (
	"context"

	"TubeFuss.com/cmd/api/handlers/pack"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) ChannelStats(ctx context.Context, c *app.RequestContext) {
	stats, err := h.dashboard.ChannelStats(ctx, pack.CurrentUser(c).ID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, stats, "Channel stats fetched successfully")
}

func (h *Handler) ChannelVideos(ctx context.Context, c *app.RequestContext) {
	page, err := h.dashboard.ChannelVideos(ctx, pack.CurrentUser(c).ID, pack.PageParam(c, h.maxLimit))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, page, "Channel videos fetched successfully")
}
