package db

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type TweetDao struct {
	db *gorm.DB
}

func NewTweetDao(db *gorm.DB) *TweetDao {
	return &TweetDao{db: db}
}

func (d *TweetDao) CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	return errors.Wrapf(d.db.WithContext(ctx).Create(tweet).Error, "create tweet failed")
}

func (d *TweetDao) FindTweet(ctx context.Context, id string) (*model.Tweet, error) {
	if !model.ValidID(id) {
		return nil, database.ErrInvalidID.WithMessage("Invalid tweet id")
	}
	var tweet model.Tweet
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&tweet).Error; err != nil {
		return nil, database.TranslateNotFound(err, "Tweet")
	}
	return &tweet, nil
}

func (d *TweetDao) UserTweets(ctx context.Context, ownerID, viewerID string, param database.PageParam) (*database.Page[model.TweetView], error) {
	p := database.NewPipeline("tweets").
		MatchID("tweets.owner_id", ownerID).
		Join("users", "owner", "owner.id = tweets.owner_id").
		CountOf("likes_count", "likes", "likes.target_type = ? AND likes.target_id = tweets.id", string(model.LikeTargetTweet)).
		ExistsIn("is_liked", "likes", "likes.target_type = ? AND likes.target_id = tweets.id AND likes.liked_by = ?", string(model.LikeTargetTweet), viewerID).
		Project("tweets.id", "tweets.content", "tweets.created_at", "tweets.updated_at").
		Project(database.OwnerColumns("owner", "owner_")...).
		Sort("tweets.created_at", true)
	return database.Paginate[model.TweetView](ctx, d.db, p, param)
}

func (d *TweetDao) UpdateTweet(ctx context.Context, id, content string) error {
	err := d.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", id).Update("content", content).Error
	return errors.Wrapf(err, "update tweet failed")
}

func (d *TweetDao) DeleteTweet(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", string(model.LikeTargetTweet), id).
			Delete(&model.Like{}).Error; err != nil {
			return errors.Wrapf(err, "delete tweet likes failed")
		}
		res := tx.Where("id = ?", id).Delete(&model.Tweet{})
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete tweet failed")
		}
		if res.RowsAffected == 0 {
			return database.TranslateNotFound(gorm.ErrRecordNotFound, "Tweet")
		}
		return nil
	})
}
