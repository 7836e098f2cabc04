package db

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/oss"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// videoSortFields maps public sort keys onto columns.
var videoSortFields = map[string]string{
	"createdAt": "videos.created_at",
	"updatedAt": "videos.updated_at",
	"views":     "videos.views",
	"duration":  "videos.duration",
	"title":     "videos.title",
}

type VideoDao struct {
	db         *gorm.DB
	maxRetries int
}

func NewVideoDao(db *gorm.DB, maxRetries int) *VideoDao {
	return &VideoDao{db: db, maxRetries: maxRetries}
}

func (d *VideoDao) CreateVideo(ctx context.Context, video *model.Video) error {
	return errors.Wrapf(d.db.WithContext(ctx).Create(video).Error, "create video failed")
}

func (d *VideoDao) FindVideo(ctx context.Context, id string) (*model.Video, error) {
	if !model.ValidID(id) {
		return nil, database.ErrInvalidID.WithMessage("Invalid video id")
	}
	var video model.Video
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&video).Error; err != nil {
		return nil, database.TranslateNotFound(err, "Video")
	}
	return &video, nil
}

// VisibleVideo loads a video the viewer may see: published, or owned by the viewer.
func (d *VideoDao) VisibleVideo(ctx context.Context, id, viewerID string) (*model.Video, error) {
	if !model.ValidID(id) {
		return nil, database.ErrInvalidID.WithMessage("Invalid video id")
	}
	var video model.Video
	err := d.db.WithContext(ctx).
		Where("id = ? AND (is_published = ? OR owner_id = ?)", id, true, viewerID).
		First(&video).Error
	if err != nil {
		return nil, database.TranslateNotFound(err, "Video")
	}
	return &video, nil
}

// ListVideos 获取已发布视频列表
func (d *VideoDao) ListVideos(ctx context.Context, f model.VideoFilter, param database.PageParam) (*database.Page[model.VideoCard], error) {
	if f.IDs != nil && len(f.IDs) == 0 {
		return database.NewPage([]model.VideoCard{}, 0, param), nil
	}
	return database.Paginate[model.VideoCard](ctx, d.db, listPipeline(f), param)
}

func listPipeline(f model.VideoFilter) *database.Pipeline {
	p := database.NewPipeline("videos").Match("videos.is_published = ?", true)
	if f.OwnerID != "" {
		p.MatchID("videos.owner_id", f.OwnerID)
	}
	switch {
	case f.IDs != nil:
		p.Match("videos.id IN ?", f.IDs)
	case f.Query != "":
		like := "%" + f.Query + "%"
		p.Match("(videos.title LIKE ? OR videos.description LIKE ?)", like, like)
	}
	p.Join("users", "owner", "owner.id = videos.owner_id").
		Project(database.VideoCardColumns("videos")...)
	if f.IDs != nil && f.SortBy == "" {
		// keep the index's best-match-first order
		p.SortExpr("FIELD(videos.id, ?)", f.IDs)
	} else {
		p.SortBy(f.SortBy, f.SortType, videoSortFields, "videos.created_at")
	}
	return p
}

// VideoView composes the watch page of a video. Unpublished videos are only
// visible to their owner.
func (d *VideoDao) VideoView(ctx context.Context, id, viewerID string) (*model.VideoView, error) {
	q, err := database.NewPipeline("videos").
		MatchID("videos.id", id).
		Match("(videos.is_published = ? OR videos.owner_id = ?)", true, viewerID).
		Join("users", "owner", "owner.id = videos.owner_id").
		CountOf("owner_subscribers_count", "subscriptions", "subscriptions.channel_id = videos.owner_id").
		ExistsIn("owner_is_subscribed", "subscriptions", "subscriptions.channel_id = videos.owner_id AND subscriptions.subscriber_id = ?", viewerID).
		CountOf("likes_count", "likes", "likes.target_type = ? AND likes.target_id = videos.id", string(model.LikeTargetVideo)).
		ExistsIn("is_liked", "likes", "likes.target_type = ? AND likes.target_id = videos.id AND likes.liked_by = ?", string(model.LikeTargetVideo), viewerID).
		Project(database.VideoCardColumns("videos")...).
		Build(d.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	var views []model.VideoView
	if err = q.Limit(1).Scan(&views).Error; err != nil {
		return nil, errors.Wrapf(err, "query video view failed")
	}
	if len(views) == 0 {
		return nil, database.TranslateNotFound(gorm.ErrRecordNotFound, "Video")
	}
	return &views[0], nil
}

// RecordView bumps the view counter and moves the video to the front of the
// viewer's watch history.
func (d *VideoDao) RecordView(ctx context.Context, videoID, userID string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Video{}).Where("id = ?", videoID).
			UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
			return errors.Wrapf(err, "increment views failed")
		}
		if userID == "" {
			return nil
		}
		entry := &model.WatchHistory{UserID: userID, VideoID: videoID}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).Create(entry).Error
		return errors.Wrapf(err, "record watch history failed")
	})
}

// UpdateVideo applies fields; a non-empty stale ref is queued for deletion in the same transaction.
func (d *VideoDao) UpdateVideo(ctx context.Context, id string, fields map[string]interface{}, stale model.MediaRef) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Video{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return errors.Wrapf(res.Error, "update video failed")
		}
		if res.RowsAffected == 0 {
			return database.TranslateNotFound(gorm.ErrRecordNotFound, "Video")
		}
		return database.EnqueueMediaDelete(tx, d.maxRetries, stale)
	})
}

func (d *VideoDao) SetPublished(ctx context.Context, id string, published bool) error {
	err := d.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		Update("is_published", published).Error
	return errors.Wrapf(err, "toggle publish failed")
}

// DeleteVideo removes the video with every dependent row in one transaction:
// likes on its comments, its comments, likes on it, playlist entries, watch
// history entries. Its media objects are queued in the outbox.
func (d *VideoDao) DeleteVideo(ctx context.Context, video *model.Video) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&model.Comment{}).Select("id").Where("video_id = ?", video.ID)
		steps := []struct {
			what string
			run  func() error
		}{
			{"comment likes", func() error {
				return tx.Where("target_type = ? AND target_id IN (?)", string(model.LikeTargetComment), commentIDs).Delete(&model.Like{}).Error
			}},
			{"comments", func() error {
				return tx.Where("video_id = ?", video.ID).Delete(&model.Comment{}).Error
			}},
			{"video likes", func() error {
				return tx.Where("target_type = ? AND target_id = ?", string(model.LikeTargetVideo), video.ID).Delete(&model.Like{}).Error
			}},
			{"playlist entries", func() error {
				return tx.Where("video_id = ?", video.ID).Delete(&model.PlaylistVideo{}).Error
			}},
			{"watch history", func() error {
				return tx.Where("video_id = ?", video.ID).Delete(&model.WatchHistory{}).Error
			}},
		}
		for _, step := range steps {
			if err := step.run(); err != nil {
				return errors.Wrapf(err, "delete %s failed", step.what)
			}
		}

		res := tx.Where("id = ?", video.ID).Delete(&model.Video{})
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete video failed")
		}
		if res.RowsAffected == 0 {
			return database.TranslateNotFound(gorm.ErrRecordNotFound, "Video")
		}
		return database.EnqueueMediaDelete(tx, d.maxRetries,
			model.MediaRef{PublicID: oss.PublicIDFromURL(video.VideoFile), ResourceType: oss.ResourceVideo},
			model.MediaRef{PublicID: oss.PublicIDFromURL(video.Thumbnail), ResourceType: oss.ResourceImage},
		)
	})
}
