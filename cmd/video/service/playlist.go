package service

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/errno"
	"TubeFuss.com/pkg/utils"
	"github.com/pkg/errors"
)

type PlaylistService struct {
	store  PlaylistStore
	videos VideoStore
	users  UserLookup
}

func NewPlaylistService(store PlaylistStore, videos VideoStore, users UserLookup) *PlaylistService {
	return &PlaylistService{store: store, videos: videos, users: users}
}

func (s *PlaylistService) CreatePlaylist(ctx context.Context, ownerID, name, description string) (*model.Playlist, error) {
	if utils.AnyBlank(name, description) {
		return nil, errno.ParamErr.WithMessage("Playlist name and description are required")
	}
	playlist := &model.Playlist{Name: name, Description: description, OwnerID: ownerID}
	if err := s.store.CreatePlaylist(ctx, playlist); err != nil {
		return nil, errors.WithMessage(err, "dao.CreatePlaylist failed")
	}
	return playlist, nil
}

// UserPlaylists 获取用户的播放列表
func (s *PlaylistService) UserPlaylists(ctx context.Context, username string, param database.PageParam) (*database.Page[model.PlaylistSummary], error) {
	username = utils.NormalizeUsername(username)
	if username == "" {
		return nil, errno.ParamErr.WithMessage("Username is missing")
	}
	owner, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.store.UserPlaylists(ctx, owner.ID, param)
}

func (s *PlaylistService) GetPlaylist(ctx context.Context, id string) (*model.PlaylistDetail, error) {
	return s.store.PlaylistDetail(ctx, id)
}

func (s *PlaylistService) UpdatePlaylist(ctx context.Context, id, actorID, name, description string) (*model.Playlist, error) {
	if utils.AnyBlank(name, description) {
		return nil, errno.ParamErr.WithMessage("Playlist name and description are required")
	}
	playlist, err := s.owned(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{"name": name, "description": description}
	if err = s.store.UpdatePlaylist(ctx, id, fields); err != nil {
		return nil, err
	}
	playlist.Name, playlist.Description = name, description
	return playlist, nil
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, id, actorID string) error {
	if _, err := s.owned(ctx, id, actorID); err != nil {
		return err
	}
	return s.store.DeletePlaylist(ctx, id)
}

func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, actorID string) (*model.PlaylistDetail, error) {
	if err := s.checkEntry(ctx, playlistID, videoID, actorID); err != nil {
		return nil, err
	}
	if err := s.store.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.store.PlaylistDetail(ctx, playlistID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, actorID string) (*model.PlaylistDetail, error) {
	if err := s.checkEntry(ctx, playlistID, videoID, actorID); err != nil {
		return nil, err
	}
	if err := s.store.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.store.PlaylistDetail(ctx, playlistID)
}

func (s *PlaylistService) checkEntry(ctx context.Context, playlistID, videoID, actorID string) error {
	if _, err := s.owned(ctx, playlistID, actorID); err != nil {
		return err
	}
	_, err := s.videos.FindVideo(ctx, videoID)
	return err
}

func (s *PlaylistService) owned(ctx context.Context, id, actorID string) (*model.Playlist, error) {
	playlist, err := s.store.FindPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != actorID {
		return nil, errno.AuthorizationErr.WithMessage("Only the playlist owner can change it")
	}
	return playlist, nil
}
