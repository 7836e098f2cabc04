package mock

import (
	"context"
	"time"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
)

func (s *Store) CreatePlaylist(_ context.Context, playlist *model.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&playlist.Base)
	s.playlists[playlist.ID] = *playlist
	return nil
}

func (s *Store) FindPlaylist(_ context.Context, id string) (*model.Playlist, error) {
	if !model.ValidID(id) {
		return nil, invalidID("playlist")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.playlists[id]
	if !ok {
		return nil, notFound("Playlist")
	}
	return &p, nil
}

func (s *Store) summary(p model.Playlist) model.PlaylistSummary {
	sum := model.PlaylistSummary{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, it := range s.playlistItems[p.ID] {
		v, ok := s.videos[it.VideoID]
		if !ok || !v.IsPublished {
			continue
		}
		sum.TotalVideos++
		sum.TotalViews += v.Views
	}
	return sum
}

func (s *Store) UserPlaylists(_ context.Context, ownerID string, param database.PageParam) (*database.Page[model.PlaylistSummary], error) {
	if !model.ValidID(ownerID) {
		return nil, invalidID("user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.PlaylistSummary
	for _, p := range s.playlists {
		if p.OwnerID == ownerID {
			out = append(out, s.summary(p))
		}
	}
	newestFirst(out, func(p model.PlaylistSummary) time.Time { return p.UpdatedAt })
	return database.SlicePage(out, param), nil
}

func (s *Store) PlaylistDetail(_ context.Context, id string) (*model.PlaylistDetail, error) {
	if !model.ValidID(id) {
		return nil, invalidID("playlist")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.playlists[id]
	if !ok {
		return nil, notFound("Playlist")
	}
	detail := &model.PlaylistDetail{
		PlaylistSummary: s.summary(p),
		Owner:           s.owner(p.OwnerID),
		Videos:          make([]model.VideoCard, 0),
	}
	for _, it := range s.playlistItems[id] {
		if v, ok := s.videos[it.VideoID]; ok && v.IsPublished {
			detail.Videos = append(detail.Videos, s.card(v))
		}
	}
	return detail, nil
}

func (s *Store) UpdatePlaylist(_ context.Context, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.playlists[id]
	if !ok {
		return notFound("Playlist")
	}
	if v, ok := fields["name"].(string); ok {
		p.Name = v
	}
	if v, ok := fields["description"].(string); ok {
		p.Description = v
	}
	p.UpdatedAt = s.tick()
	s.playlists[id] = p
	return nil
}

func (s *Store) DeletePlaylist(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.playlists[id]; !ok {
		return notFound("Playlist")
	}
	delete(s.playlistItems, id)
	delete(s.playlists, id)
	return nil
}

func (s *Store) AddVideo(_ context.Context, playlistID, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.playlistItems[playlistID] {
		if it.VideoID == videoID {
			return nil
		}
	}
	s.playlistItems[playlistID] = append(s.playlistItems[playlistID],
		model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID, CreatedAt: s.tick()})
	return nil
}

func (s *Store) RemoveVideo(_ context.Context, playlistID, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.playlistItems[playlistID]
	for i, it := range items {
		if it.VideoID == videoID {
			s.playlistItems[playlistID] = append(items[:i:i], items[i+1:]...)
			break
		}
	}
	return nil
}
