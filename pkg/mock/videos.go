package mock

import (
	"context"
	"sort"
	"strings"
	"time"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/oss"
)

func (s *Store) CreateVideo(_ context.Context, video *model.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&video.Base)
	s.videos[video.ID] = *video
	return nil
}

func (s *Store) FindVideo(_ context.Context, id string) (*model.Video, error) {
	if !model.ValidID(id) {
		return nil, invalidID("video")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, notFound("Video")
	}
	return &v, nil
}

func (s *Store) VisibleVideo(_ context.Context, id, viewerID string) (*model.Video, error) {
	if !model.ValidID(id) {
		return nil, invalidID("video")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok || (!v.IsPublished && v.OwnerID != viewerID) {
		return nil, notFound("Video")
	}
	return &v, nil
}

var videoSortKeys = map[string]func(a, b model.Video) bool{
	"createdAt": func(a, b model.Video) bool { return a.CreatedAt.Before(b.CreatedAt) },
	"updatedAt": func(a, b model.Video) bool { return a.UpdatedAt.Before(b.UpdatedAt) },
	"views":     func(a, b model.Video) bool { return a.Views < b.Views },
	"duration":  func(a, b model.Video) bool { return a.Duration < b.Duration },
	"title":     func(a, b model.Video) bool { return a.Title < b.Title },
}

func (s *Store) ListVideos(_ context.Context, f model.VideoFilter, param database.PageParam) (*database.Page[model.VideoCard], error) {
	if f.OwnerID != "" && !model.ValidID(f.OwnerID) {
		return nil, invalidID("user")
	}
	var ids map[string]int
	if f.IDs != nil {
		ids = make(map[string]int, len(f.IDs))
		for i, id := range f.IDs {
			ids[id] = i + 1
		}
	}
	field := f.SortBy
	if field == "" {
		field, f.SortType = "createdAt", "desc"
	}
	less, ok := videoSortKeys[field]
	if !ok {
		return nil, database.ErrInvalidSort.WithMessagef("Cannot sort by %s", field)
	}
	if ids != nil && f.SortBy == "" {
		// search hits keep the index order, best match first
		less, f.SortType = func(a, b model.Video) bool { return ids[a.ID] < ids[b.ID] }, "asc"
	}
	query := strings.ToLower(f.Query)

	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []model.Video
	for _, v := range s.videos {
		switch {
		case !v.IsPublished:
		case f.OwnerID != "" && v.OwnerID != f.OwnerID:
		case ids != nil && ids[v.ID] == 0:
		case ids == nil && query != "" &&
			!strings.Contains(strings.ToLower(v.Title), query) &&
			!strings.Contains(strings.ToLower(v.Description), query):
		default:
			matched = append(matched, v)
		}
	}
	asc := strings.EqualFold(f.SortType, "asc")
	sort.SliceStable(matched, func(i, j int) bool {
		if asc {
			return less(matched[i], matched[j])
		}
		return less(matched[j], matched[i])
	})
	cards := make([]model.VideoCard, 0, len(matched))
	for _, v := range matched {
		cards = append(cards, s.card(v))
	}
	return database.SlicePage(cards, param), nil
}

func (s *Store) VideoView(_ context.Context, id, viewerID string) (*model.VideoView, error) {
	if !model.ValidID(id) {
		return nil, invalidID("video")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok || (!v.IsPublished && v.OwnerID != viewerID) {
		return nil, notFound("Video")
	}
	owner := s.owner(v.OwnerID)
	_, subscribed := s.subscriptions[subKey(viewerID, v.OwnerID)]
	return &model.VideoView{
		ID:          v.ID,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Title:       v.Title,
		Description: v.Description,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		Owner: model.OwnerDetail{
			ID:               owner.ID,
			Username:         owner.Username,
			FullName:         owner.FullName,
			Avatar:           owner.Avatar,
			SubscribersCount: s.subscriberCount(v.OwnerID),
			IsSubscribed:     subscribed,
		},
		LikesCount: s.countLikes(model.LikeTargetVideo, v.ID),
		IsLiked:    s.liked(model.LikeTargetVideo, v.ID, viewerID),
	}, nil
}

func (s *Store) RecordView(_ context.Context, videoID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[videoID]
	if !ok {
		return nil
	}
	v.Views++
	s.videos[videoID] = v
	if userID == "" {
		return nil
	}
	if s.history[userID] == nil {
		s.history[userID] = make(map[string]model.WatchHistory)
	}
	now := s.tick()
	h, seen := s.history[userID][videoID]
	if !seen {
		h = model.WatchHistory{UserID: userID, VideoID: videoID, CreatedAt: now}
	}
	h.UpdatedAt = now
	s.history[userID][videoID] = h
	return nil
}

func (s *Store) UpdateVideo(_ context.Context, id string, fields map[string]interface{}, stale model.MediaRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return notFound("Video")
	}
	for k, val := range fields {
		str, _ := val.(string)
		switch k {
		case "title":
			v.Title = str
		case "description":
			v.Description = str
		case "thumbnail":
			v.Thumbnail = str
		}
	}
	v.UpdatedAt = s.tick()
	s.videos[id] = v
	s.enqueue(stale)
	return nil
}

func (s *Store) SetPublished(_ context.Context, id string, published bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return notFound("Video")
	}
	v.IsPublished = published
	v.UpdatedAt = s.tick()
	s.videos[id] = v
	return nil
}

func (s *Store) DeleteVideo(_ context.Context, video *model.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[video.ID]; !ok {
		return notFound("Video")
	}
	for id, c := range s.comments {
		if c.VideoID == video.ID {
			s.dropLikes(model.LikeTargetComment, id)
			delete(s.comments, id)
		}
	}
	s.dropLikes(model.LikeTargetVideo, video.ID)
	for pid, items := range s.playlistItems {
		kept := items[:0]
		for _, it := range items {
			if it.VideoID != video.ID {
				kept = append(kept, it)
			}
		}
		s.playlistItems[pid] = kept
	}
	for _, h := range s.history {
		delete(h, video.ID)
	}
	delete(s.videos, video.ID)
	s.enqueue(
		model.MediaRef{PublicID: oss.PublicIDFromURL(video.VideoFile), ResourceType: oss.ResourceVideo},
		model.MediaRef{PublicID: oss.PublicIDFromURL(video.Thumbnail), ResourceType: oss.ResourceImage},
	)
	return nil
}

func (s *Store) dropLikes(target model.LikeTarget, id string) {
	for k, l := range s.likes {
		if l.TargetType == target && l.TargetID == id {
			delete(s.likes, k)
		}
	}
}

func (s *Store) ChannelStats(_ context.Context, ownerID string) (*model.ChannelStats, error) {
	if !model.ValidID(ownerID) {
		return nil, invalidID("user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[ownerID]; !ok {
		return nil, notFound("Channel")
	}
	stats := &model.ChannelStats{TotalSubscribers: s.subscriberCount(ownerID)}
	for _, v := range s.videos {
		if v.OwnerID == ownerID {
			stats.TotalVideos++
			stats.TotalViews += v.Views
			stats.TotalLikes += s.countLikes(model.LikeTargetVideo, v.ID)
		}
	}
	for _, t := range s.tweets {
		if t.OwnerID == ownerID {
			stats.TotalTweets++
		}
	}
	return stats, nil
}

func (s *Store) ChannelVideos(_ context.Context, ownerID string, param database.PageParam) (*database.Page[model.ChannelVideo], error) {
	if !model.ValidID(ownerID) {
		return nil, invalidID("user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ChannelVideo
	for _, v := range s.videos {
		if v.OwnerID != ownerID {
			continue
		}
		cv := model.ChannelVideo{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			Thumbnail:   v.Thumbnail,
			Duration:    v.Duration,
			Views:       v.Views,
			IsPublished: v.IsPublished,
			CreatedAt:   v.CreatedAt,
			LikesCount:  s.countLikes(model.LikeTargetVideo, v.ID),
		}
		for _, c := range s.comments {
			if c.VideoID == v.ID {
				cv.CommentsCount++
			}
		}
		out = append(out, cv)
	}
	newestFirst(out, func(v model.ChannelVideo) time.Time { return v.CreatedAt })
	return database.SlicePage(out, param), nil
}
