package service

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/errno"
	"TubeFuss.com/pkg/lock"
	"TubeFuss.com/pkg/metrics"
	"TubeFuss.com/pkg/utils"
	"github.com/pkg/errors"
)

type SubscriptionStore interface {
	ToggleSubscription(ctx context.Context, subscriberID, channelID string) (bool, error)
	SubscribedChannels(ctx context.Context, subscriberID string, param database.PageParam) (*database.Page[model.SubscribedChannel], error)
	Subscribers(ctx context.Context, channelID string, param database.PageParam) (*database.Page[model.Subscriber], error)
}

type UserLookup interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type SubscriptionService struct {
	store  SubscriptionStore
	users  UserLookup
	locker lock.Locker
}

func NewSubscriptionService(store SubscriptionStore, users UserLookup, locker lock.Locker) *SubscriptionService {
	return &SubscriptionService{store: store, users: users, locker: locker}
}

// ToggleSubscription 订阅/取消订阅频道
func (s *SubscriptionService) ToggleSubscription(ctx context.Context, subscriberID, channelName string) (bool, error) {
	channel, err := s.channel(ctx, channelName)
	if err != nil {
		return false, err
	}
	if channel.ID == subscriberID {
		return false, errno.ParamErr.WithMessage("You cannot subscribe to your own channel")
	}

	unlock, err := s.locker.Lock(ctx, lock.ToggleKey("subscription", channel.ID, subscriberID))
	if err != nil {
		return false, errors.WithMessage(err, "acquire subscription lock failed")
	}
	defer unlock()

	subscribed, err := s.store.ToggleSubscription(ctx, subscriberID, channel.ID)
	if err != nil {
		return false, err
	}
	metrics.RecordToggle("subscription", subscribed)
	return subscribed, nil
}

func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID string, param database.PageParam) (*database.Page[model.SubscribedChannel], error) {
	return s.store.SubscribedChannels(ctx, subscriberID, param)
}

func (s *SubscriptionService) Subscribers(ctx context.Context, channelName string, param database.PageParam) (*database.Page[model.Subscriber], error) {
	channel, err := s.channel(ctx, channelName)
	if err != nil {
		return nil, err
	}
	return s.store.Subscribers(ctx, channel.ID, param)
}

func (s *SubscriptionService) channel(ctx context.Context, name string) (*model.User, error) {
	name = utils.NormalizeUsername(name)
	if name == "" {
		return nil, errno.ParamErr.WithMessage("Channel name is missing")
	}
	return s.users.FindByUsername(ctx, name)
}
