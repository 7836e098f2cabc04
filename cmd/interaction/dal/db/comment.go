package db

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentDao struct {
	db *gorm.DB
}

func NewCommentDao(db *gorm.DB) *CommentDao {
	return &CommentDao{db: db}
}

func (d *CommentDao) CreateComment(ctx context.Context, comment *model.Comment) error {
	return errors.Wrapf(d.db.WithContext(ctx).Create(comment).Error, "create comment failed")
}

func (d *CommentDao) FindComment(ctx context.Context, id string) (*model.Comment, error) {
	if !model.ValidID(id) {
		return nil, database.ErrInvalidID.WithMessage("Invalid comment id")
	}
	var comment model.Comment
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, database.TranslateNotFound(err, "Comment")
	}
	return &comment, nil
}

// VideoComments 获取视频评论列表, newest first.
func (d *CommentDao) VideoComments(ctx context.Context, videoID, viewerID string, param database.PageParam) (*database.Page[model.CommentView], error) {
	p := database.NewPipeline("comments").
		MatchID("comments.video_id", videoID).
		Join("users", "owner", "owner.id = comments.owner_id").
		CountOf("likes_count", "likes", "likes.target_type = ? AND likes.target_id = comments.id", string(model.LikeTargetComment)).
		ExistsIn("is_liked", "likes", "likes.target_type = ? AND likes.target_id = comments.id AND likes.liked_by = ?", string(model.LikeTargetComment), viewerID).
		Project("comments.id", "comments.content", "comments.created_at", "comments.updated_at").
		Project(database.OwnerColumns("owner", "owner_")...).
		Sort("comments.created_at", true)
	return database.Paginate[model.CommentView](ctx, d.db, p, param)
}

func (d *CommentDao) UpdateComment(ctx context.Context, id, content string) error {
	err := d.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("content", content).Error
	return errors.Wrapf(err, "update comment failed")
}

// DeleteComment removes the comment and the likes pointing at it.
func (d *CommentDao) DeleteComment(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", string(model.LikeTargetComment), id).
			Delete(&model.Like{}).Error; err != nil {
			return errors.Wrapf(err, "delete comment likes failed")
		}
		res := tx.Where("id = ?", id).Delete(&model.Comment{})
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete comment failed")
		}
		if res.RowsAffected == 0 {
			return database.TranslateNotFound(gorm.ErrRecordNotFound, "Comment")
		}
		return nil
	})
}
