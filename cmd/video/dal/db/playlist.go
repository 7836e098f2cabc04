package db

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaylistDao struct {
	db *gorm.DB
}

func NewPlaylistDao(db *gorm.DB) *PlaylistDao {
	return &PlaylistDao{db: db}
}

func (d *PlaylistDao) CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	return errors.Wrapf(d.db.WithContext(ctx).Create(playlist).Error, "create playlist failed")
}

func (d *PlaylistDao) FindPlaylist(ctx context.Context, id string) (*model.Playlist, error) {
	if !model.ValidID(id) {
		return nil, database.ErrInvalidID.WithMessage("Invalid playlist id")
	}
	var playlist model.Playlist
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&playlist).Error; err != nil {
		return nil, database.TranslateNotFound(err, "Playlist")
	}
	return &playlist, nil
}

// summarise derives totals over published entries only, matching what the detail lists.
func summarise(p *database.Pipeline) *database.Pipeline {
	return p.
		CountOf("total_videos", "playlist_videos INNER JOIN videos AS pc_videos ON pc_videos.id = playlist_videos.video_id",
			"playlist_videos.playlist_id = playlists.id AND pc_videos.is_published = ?", true).
		SumOf("total_views", "pv_videos.views", "playlist_videos INNER JOIN videos AS pv_videos ON pv_videos.id = playlist_videos.video_id",
			"playlist_videos.playlist_id = playlists.id AND pv_videos.is_published = ?", true).
		Project("playlists.id", "playlists.name", "playlists.description", "playlists.created_at", "playlists.updated_at")
}

// UserPlaylists 获取用户的播放列表
func (d *PlaylistDao) UserPlaylists(ctx context.Context, ownerID string, param database.PageParam) (*database.Page[model.PlaylistSummary], error) {
	p := summarise(database.NewPipeline("playlists").MatchID("playlists.owner_id", ownerID)).
		Sort("playlists.updated_at", true)
	return database.Paginate[model.PlaylistSummary](ctx, d.db, p, param)
}

// PlaylistDetail returns the playlist with its owner and published videos in insertion order.
func (d *PlaylistDao) PlaylistDetail(ctx context.Context, id string) (*model.PlaylistDetail, error) {
	q, err := summarise(database.NewPipeline("playlists").MatchID("playlists.id", id)).
		Join("users", "owner", "owner.id = playlists.owner_id").
		Project(database.OwnerColumns("owner", "owner_")...).
		Build(d.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	var details []model.PlaylistDetail
	if err = q.Limit(1).Scan(&details).Error; err != nil {
		return nil, errors.Wrapf(err, "query playlist failed")
	}
	if len(details) == 0 {
		return nil, database.TranslateNotFound(gorm.ErrRecordNotFound, "Playlist")
	}
	detail := &details[0]

	vq, err := database.NewPipeline("playlist_videos").
		Match("playlist_videos.playlist_id = ?", id).
		InnerJoin("videos", "v", "v.id = playlist_videos.video_id").
		Join("users", "owner", "owner.id = v.owner_id").
		Match("v.is_published = ?", true).
		Project(database.VideoCardColumns("v")...).
		Sort("playlist_videos.created_at", false).
		Build(d.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	detail.Videos = make([]model.VideoCard, 0)
	if err = vq.Scan(&detail.Videos).Error; err != nil {
		return nil, errors.Wrapf(err, "query playlist videos failed")
	}
	return detail, nil
}

func (d *PlaylistDao) UpdatePlaylist(ctx context.Context, id string, fields map[string]interface{}) error {
	err := d.db.WithContext(ctx).Model(&model.Playlist{}).Where("id = ?", id).Updates(fields).Error
	return errors.Wrapf(err, "update playlist failed")
}

func (d *PlaylistDao) DeletePlaylist(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return errors.Wrapf(err, "delete playlist entries failed")
		}
		res := tx.Where("id = ?", id).Delete(&model.Playlist{})
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete playlist failed")
		}
		if res.RowsAffected == 0 {
			return database.TranslateNotFound(gorm.ErrRecordNotFound, "Playlist")
		}
		return nil
	})
}

// AddVideo is idempotent: adding a video already in the playlist is a no-op.
func (d *PlaylistDao) AddVideo(ctx context.Context, playlistID, videoID string) error {
	entry := &model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID}
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error
	if err != nil {
		return errors.Wrapf(err, "add video to playlist failed")
	}
	return errors.Wrapf(d.touch(ctx, playlistID), "touch playlist failed")
}

func (d *PlaylistDao) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	err := d.db.WithContext(ctx).Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{}).Error
	if err != nil {
		return errors.Wrapf(err, "remove video from playlist failed")
	}
	return errors.Wrapf(d.touch(ctx, playlistID), "touch playlist failed")
}

func (d *PlaylistDao) touch(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Model(&model.Playlist{}).Where("id = ?", id).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP(3)")).Error
}
