package db

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeDao struct {
	db *gorm.DB
}

func NewLikeDao(db *gorm.DB) *LikeDao {
	return &LikeDao{db: db}
}

// TargetVisible reports whether the liked document exists and the viewer may
// see it. Videos and comments on videos hide behind an unpublished video
// unless the viewer owns it.
func (d *LikeDao) TargetVisible(ctx context.Context, target model.LikeTarget, id, viewerID string) (bool, error) {
	q := d.db.WithContext(ctx)
	switch target {
	case model.LikeTargetVideo:
		q = q.Table("videos").
			Where("videos.id = ? AND (videos.is_published = ? OR videos.owner_id = ?)", id, true, viewerID)
	case model.LikeTargetComment:
		q = q.Table("comments").
			Joins("JOIN videos ON videos.id = comments.video_id").
			Where("comments.id = ? AND (videos.is_published = ? OR videos.owner_id = ?)", id, true, viewerID)
	case model.LikeTargetTweet:
		q = q.Table("tweets").Where("tweets.id = ?", id)
	default:
		return false, errors.Errorf("unknown like target %q", target)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "check %s target failed", target)
	}
	return count > 0, nil
}

// ToggleLike deletes the like if present, otherwise inserts it; the unique
// (target_type, target_id, liked_by) key absorbs a concurrent duplicate insert.
// Returns whether the target is liked afterwards.
func (d *LikeDao) ToggleLike(ctx context.Context, target model.LikeTarget, targetID, userID string) (bool, error) {
	var liked bool
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("target_type = ? AND target_id = ? AND liked_by = ?", string(target), targetID, userID).
			Delete(&model.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		like := &model.Like{TargetType: target, TargetID: targetID, LikedBy: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	return liked, errors.Wrapf(err, "toggle %s like failed", target)
}

// LikedVideos 获取用户点赞的视频
func (d *LikeDao) LikedVideos(ctx context.Context, userID string, param database.PageParam) (*database.Page[model.LikedVideo], error) {
	p := database.NewPipeline("likes").
		MatchID("likes.liked_by", userID).
		Match("likes.target_type = ?", string(model.LikeTargetVideo)).
		InnerJoin("videos", "v", "v.id = likes.target_id").
		Join("users", "owner", "owner.id = v.owner_id").
		Match("(v.is_published = ? OR v.owner_id = ?)", true, userID).
		Project(database.VideoCardColumns("v")...).
		Project("likes.created_at AS liked_at").
		Sort("likes.created_at", true)
	return database.Paginate[model.LikedVideo](ctx, d.db, p, param)
}
