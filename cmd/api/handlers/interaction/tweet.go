package interaction

import (
	"context"

	"TubeFuss.com/cmd/api/handlers/pack"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func (h *Handler) CreateTweet(ctx context.Context, c *app.RequestContext) {
	var req ContentParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.BindError(c, err)
		return
	}
	tweet, err := h.tweets.CreateTweet(ctx, pack.CurrentUser(c).ID, req.Content)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusCreated, tweet, "Tweet created successfully")
}

func (h *Handler) UserTweets(ctx context.Context, c *app.RequestContext) {
	page, err := h.tweets.UserTweets(ctx, c.Param("username"), pack.CurrentUser(c).ID, pack.PageParam(c, h.maxLimit))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, page, "Tweets fetched successfully")
}

func (h *Handler) UpdateTweet(ctx context.Context, c *app.RequestContext) {
	var req ContentParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.BindError(c, err)
		return
	}
	tweet, err := h.tweets.UpdateTweet(ctx, c.Param("tweetId"), pack.CurrentUser(c).ID, req.Content)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, tweet, "Tweet updated successfully")
}

func (h *Handler) DeleteTweet(ctx context.Context, c *app.RequestContext) {
	if err := h.tweets.DeleteTweet(ctx, c.Param("tweetId"), pack.CurrentUser(c).ID); err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, nil, "Tweet deleted successfully")
}
