package relation

import (
	"context"

	"TubeFuss.com/cmd/api/handlers/pack"
	"TubeFuss.com/cmd/relation/service"
	"github.com/cloudwego/hertz/pkg/app"
)

type Handler struct {
	subscriptions *service.SubscriptionService
	maxLimit      int
}

func New(subscriptions *service.SubscriptionService, maxLimit int) *Handler {
	return &Handler{subscriptions: subscriptions, maxLimit: maxLimit}
}

// ToggleSubscription 订阅/取消订阅
func (h *Handler) ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	subscribed, err := h.subscriptions.ToggleSubscription(ctx, pack.CurrentUser(c).ID, c.Param("username"))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	msg := "Unsubscribed successfully"
	if subscribed {
		msg = "Subscribed successfully"
	}
	pack.OK(c, map[string]bool{"isSubscribed": subscribed}, msg)
}

func (h *Handler) SubscribedChannels(ctx context.Context, c *app.RequestContext) {
	page, err := h.subscriptions.SubscribedChannels(ctx, pack.CurrentUser(c).ID, pack.PageParam(c, h.maxLimit))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, page, "Subscribed channels fetched successfully")
}

func (h *Handler) Subscribers(ctx context.Context, c *app.RequestContext) {
	page, err := h.subscriptions.Subscribers(ctx, c.Param("username"), pack.PageParam(c, h.maxLimit))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, page, "Subscribers fetched successfully")
}
