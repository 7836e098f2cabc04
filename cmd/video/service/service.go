package service

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
)

type VideoStore interface {
	CreateVideo(ctx context.Context, video *model.Video) error
	FindVideo(ctx context.Context, id string) (*model.Video, error)
	ListVideos(ctx context.Context, f model.VideoFilter, param database.PageParam) (*database.Page[model.VideoCard], error)
	VideoView(ctx context.Context, id, viewerID string) (*model.VideoView, error)
	RecordView(ctx context.Context, videoID, userID string) error
	UpdateVideo(ctx context.Context, id string, fields map[string]interface{}, stale model.MediaRef) error
	SetPublished(ctx context.Context, id string, published bool) error
	DeleteVideo(ctx context.Context, video *model.Video) error
}

type PlaylistStore interface {
	CreatePlaylist(ctx context.Context, playlist *model.Playlist) error
	FindPlaylist(ctx context.Context, id string) (*model.Playlist, error)
	UserPlaylists(ctx context.Context, ownerID string, param database.PageParam) (*database.Page[model.PlaylistSummary], error)
	PlaylistDetail(ctx context.Context, id string) (*model.PlaylistDetail, error)
	UpdatePlaylist(ctx context.Context, id string, fields map[string]interface{}) error
	DeletePlaylist(ctx context.Context, id string) error
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
}

type DashboardStore interface {
	ChannelStats(ctx context.Context, ownerID string) (*model.ChannelStats, error)
	ChannelVideos(ctx context.Context, ownerID string, param database.PageParam) (*database.Page[model.ChannelVideo], error)
}

// UserLookup resolves a channel name to its account.
type UserLookup interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}
