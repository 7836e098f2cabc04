package db

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type DashboardDao struct {
	db *gorm.DB
}

func NewDashboardDao(db *gorm.DB) *DashboardDao {
	return &DashboardDao{db: db}
}

// ChannelStats 频道统计
func (d *DashboardDao) ChannelStats(ctx context.Context, ownerID string) (*model.ChannelStats, error) {
	q, err := database.NewPipeline("users").
		MatchID("users.id", ownerID).
		CountOf("total_videos", "videos", "videos.owner_id = users.id").
		SumOf("total_views", "videos.views", "videos", "videos.owner_id = users.id").
		CountOf("total_subscribers", "subscriptions", "subscriptions.channel_id = users.id").
		CountOf("total_likes", "likes INNER JOIN videos AS liked ON liked.id = likes.target_id", "likes.target_type = ? AND liked.owner_id = users.id", string(model.LikeTargetVideo)).
		CountOf("total_tweets", "tweets", "tweets.owner_id = users.id").
		Build(d.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	var stats []model.ChannelStats
	if err = q.Limit(1).Scan(&stats).Error; err != nil {
		return nil, errors.Wrapf(err, "query channel stats failed")
	}
	if len(stats) == 0 {
		return nil, database.TranslateNotFound(gorm.ErrRecordNotFound, "Channel")
	}
	return &stats[0], nil
}

// ChannelVideos lists every video of the owner, published or not.
func (d *DashboardDao) ChannelVideos(ctx context.Context, ownerID string, param database.PageParam) (*database.Page[model.ChannelVideo], error) {
	p := database.NewPipeline("videos").
		MatchID("videos.owner_id", ownerID).
		CountOf("likes_count", "likes", "likes.target_type = ? AND likes.target_id = videos.id", string(model.LikeTargetVideo)).
		CountOf("comments_count", "comments", "comments.video_id = videos.id").
		Project("videos.id", "videos.title", "videos.description", "videos.thumbnail", "videos.duration",
			"videos.views", "videos.is_published", "videos.created_at").
		Sort("videos.created_at", true)
	return database.Paginate[model.ChannelVideo](ctx, d.db, p, param)
}
