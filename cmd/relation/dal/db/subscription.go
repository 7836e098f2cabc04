package db

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionDao struct {
	db *gorm.DB
}

func NewSubscriptionDao(db *gorm.DB) *SubscriptionDao {
	return &SubscriptionDao{db: db}
}

// ToggleSubscription 订阅/取消订阅, returns whether subscriberID follows channelID afterwards.
func (d *SubscriptionDao) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (bool, error) {
	var subscribed bool
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
			Delete(&model.Subscription{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			subscribed = false
			return nil
		}
		sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(sub).Error; err != nil {
			return err
		}
		subscribed = true
		return nil
	})
	return subscribed, errors.Wrapf(err, "toggle subscription failed")
}

// SubscribedChannels lists the channels subscriberID follows, each with its
// latest published video.
func (d *SubscriptionDao) SubscribedChannels(ctx context.Context, subscriberID string, param database.PageParam) (*database.Page[model.SubscribedChannel], error) {
	p := database.NewPipeline("subscriptions").
		MatchID("subscriptions.subscriber_id", subscriberID).
		InnerJoin("users", "channel", "channel.id = subscriptions.channel_id").
		Project(database.OwnerColumns("channel", "channel_")...).
		Project("subscriptions.created_at AS subscribed_at").
		Sort("subscriptions.created_at", true)
	page, err := database.Paginate[model.SubscribedChannel](ctx, d.db, p, param)
	if err != nil || len(page.Docs) == 0 {
		return page, err
	}

	channelIDs := make([]string, 0, len(page.Docs))
	for _, doc := range page.Docs {
		channelIDs = append(channelIDs, doc.Channel.ID)
	}
	var latest []model.LatestVideo
	err = d.db.WithContext(ctx).Table("videos").
		Select("videos.id, videos.owner_id, videos.video_file, videos.thumbnail, videos.title, videos.duration, videos.views, videos.created_at").
		Where("videos.owner_id IN ? AND videos.is_published = ?", channelIDs, true).
		Where("videos.created_at = (SELECT MAX(lv.created_at) FROM videos AS lv WHERE lv.owner_id = videos.owner_id AND lv.is_published = ?)", true).
		Scan(&latest).Error
	if err != nil {
		return nil, errors.Wrapf(err, "query latest videos failed")
	}
	byChannel := make(map[string]*model.LatestVideo, len(latest))
	for i := range latest {
		if _, ok := byChannel[latest[i].ChannelID]; !ok {
			byChannel[latest[i].ChannelID] = &latest[i]
		}
	}
	for i := range page.Docs {
		page.Docs[i].LatestVideo = byChannel[page.Docs[i].Channel.ID]
	}
	return page, nil
}

// Subscribers lists who follows channelID, each with their own subscriber count.
func (d *SubscriptionDao) Subscribers(ctx context.Context, channelID string, param database.PageParam) (*database.Page[model.Subscriber], error) {
	p := database.NewPipeline("subscriptions").
		MatchID("subscriptions.channel_id", channelID).
		InnerJoin("users", "subscriber", "subscriber.id = subscriptions.subscriber_id").
		CountOf("subscribers_count", "subscriptions AS s2", "s2.channel_id = subscriptions.subscriber_id").
		Project(database.OwnerColumns("subscriber", "subscriber_")...).
		Project("subscriptions.created_at AS subscribed_at").
		Sort("subscriptions.created_at", true)
	return database.Paginate[model.Subscriber](ctx, d.db, p, param)
}
