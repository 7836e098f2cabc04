package db

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserDao struct {
	db         *gorm.DB
	maxRetries int
}

func NewUserDao(db *gorm.DB, maxRetries int) *UserDao {
	return &UserDao{db: db, maxRetries: maxRetries}
}

func (d *UserDao) CreateUser(ctx context.Context, user *model.User) error {
	err := d.db.WithContext(ctx).Create(user).Error
	return database.TranslateConflict(err, "User with email or username already exists")
}

// ExistsByUsernameOrEmail 检查用户名或邮箱是否已被占用
func (d *UserDao) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "count users failed")
	}
	return count > 0, nil
}

func (d *UserDao) FindByID(ctx context.Context, id string) (*model.User, error) {
	if !model.ValidID(id) {
		return nil, database.ErrInvalidID
	}
	var user model.User
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, database.TranslateNotFound(err, "User")
	}
	return &user, nil
}

func (d *UserDao) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := d.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, database.TranslateNotFound(err, "Channel")
	}
	return &user, nil
}

// FindByLogin matches either identifier; blank ones are ignored.
func (d *UserDao) FindByLogin(ctx context.Context, username, email string) (*model.User, error) {
	var user model.User
	err := d.db.WithContext(ctx).
		Where("(username = ? AND ? <> '') OR (email = ? AND ? <> '')", username, username, email, email).
		First(&user).Error
	if err != nil {
		return nil, database.TranslateNotFound(err, "User")
	}
	return &user, nil
}

func (d *UserDao) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "count users failed")
	}
	return count > 0, nil
}

func (d *UserDao) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	res := d.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return database.TranslateConflict(res.Error, "Email already in use")
	}
	if res.RowsAffected == 0 {
		return database.TranslateNotFound(gorm.ErrRecordNotFound, "User")
	}
	return nil
}

// SetRefreshToken stores token only if the account still holds expected, so
// two concurrent refreshes with the same token cannot both win.
func (d *UserDao) SetRefreshToken(ctx context.Context, id, expected, token string) (bool, error) {
	q := d.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id)
	if expected != "" {
		q = q.Where("refresh_token = ?", expected)
	}
	res := q.Update("refresh_token", token)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "update refresh token failed")
	}
	return res.RowsAffected > 0, nil
}

// ReplaceMedia points column at url and queues the previous object for deletion
// in the same transaction.
func (d *UserDao) ReplaceMedia(ctx context.Context, id, column, url string, stale model.MediaRef) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).Where("id = ?", id).Update(column, url)
		if res.Error != nil {
			return errors.Wrapf(res.Error, "update %s failed", column)
		}
		if res.RowsAffected == 0 {
			return database.TranslateNotFound(gorm.ErrRecordNotFound, "User")
		}
		return database.EnqueueMediaDelete(tx, d.maxRetries, stale)
	})
}

func (d *UserDao) ChannelProfile(ctx context.Context, username, viewerID string) (*model.ChannelProfile, error) {
	q, err := database.NewPipeline("users").
		Match("users.username = ?", username).
		CountOf("subscribers_count", "subscriptions", "subscriptions.channel_id = users.id").
		CountOf("channels_subscribed_to_count", "subscriptions", "subscriptions.subscriber_id = users.id").
		ExistsIn("is_subscribed", "subscriptions", "subscriptions.channel_id = users.id AND subscriptions.subscriber_id = ?", viewerID).
		Project("users.id", "users.username", "users.full_name", "users.email", "users.avatar", "users.cover_image", "users.created_at").
		Build(d.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	var profiles []model.ChannelProfile
	if err = q.Limit(1).Scan(&profiles).Error; err != nil {
		return nil, errors.Wrapf(err, "query channel profile failed")
	}
	if len(profiles) == 0 {
		return nil, database.TranslateNotFound(gorm.ErrRecordNotFound, "Channel")
	}
	return &profiles[0], nil
}

func (d *UserDao) WatchHistory(ctx context.Context, userID string, param database.PageParam) (*database.Page[model.WatchedVideo], error) {
	p := database.NewPipeline("watch_histories").
		MatchID("watch_histories.user_id", userID).
		InnerJoin("videos", "v", "v.id = watch_histories.video_id").
		Join("users", "owner", "owner.id = v.owner_id").
		Match("(v.is_published = ? OR v.owner_id = ?)", true, userID).
		Project(database.VideoCardColumns("v")...).
		Project("watch_histories.updated_at AS watched_at").
		Sort("watch_histories.updated_at", true)
	return database.Paginate[model.WatchedVideo](ctx, d.db, p, param)
}
