package mock

import (
	"context"
	"time"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
)

func (s *Store) CreateComment(_ context.Context, comment *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&comment.Base)
	s.comments[comment.ID] = *comment
	return nil
}

func (s *Store) FindComment(_ context.Context, id string) (*model.Comment, error) {
	if !model.ValidID(id) {
		return nil, invalidID("comment")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, notFound("Comment")
	}
	return &c, nil
}

func (s *Store) VideoComments(_ context.Context, videoID, viewerID string, param database.PageParam) (*database.Page[model.CommentView], error) {
	if !model.ValidID(videoID) {
		return nil, invalidID("video")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.CommentView
	for _, c := range s.comments {
		if c.VideoID != videoID {
			continue
		}
		out = append(out, model.CommentView{
			ID:         c.ID,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
			Owner:      s.owner(c.OwnerID),
			LikesCount: s.countLikes(model.LikeTargetComment, c.ID),
			IsLiked:    s.liked(model.LikeTargetComment, c.ID, viewerID),
		})
	}
	newestFirst(out, func(c model.CommentView) time.Time { return c.CreatedAt })
	return database.SlicePage(out, param), nil
}

func (s *Store) UpdateComment(_ context.Context, id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return notFound("Comment")
	}
	c.Content, c.UpdatedAt = content, s.tick()
	s.comments[id] = c
	return nil
}

func (s *Store) DeleteComment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return notFound("Comment")
	}
	s.dropLikes(model.LikeTargetComment, id)
	delete(s.comments, id)
	return nil
}

func (s *Store) CreateTweet(_ context.Context, tweet *model.Tweet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&tweet.Base)
	s.tweets[tweet.ID] = *tweet
	return nil
}

func (s *Store) FindTweet(_ context.Context, id string) (*model.Tweet, error) {
	if !model.ValidID(id) {
		return nil, invalidID("tweet")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tweets[id]
	if !ok {
		return nil, notFound("Tweet")
	}
	return &t, nil
}

func (s *Store) UserTweets(_ context.Context, ownerID, viewerID string, param database.PageParam) (*database.Page[model.TweetView], error) {
	if !model.ValidID(ownerID) {
		return nil, invalidID("user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.TweetView
	for _, t := range s.tweets {
		if t.OwnerID != ownerID {
			continue
		}
		out = append(out, model.TweetView{
			ID:         t.ID,
			Content:    t.Content,
			CreatedAt:  t.CreatedAt,
			UpdatedAt:  t.UpdatedAt,
			Owner:      s.owner(t.OwnerID),
			LikesCount: s.countLikes(model.LikeTargetTweet, t.ID),
			IsLiked:    s.liked(model.LikeTargetTweet, t.ID, viewerID),
		})
	}
	newestFirst(out, func(t model.TweetView) time.Time { return t.CreatedAt })
	return database.SlicePage(out, param), nil
}

func (s *Store) UpdateTweet(_ context.Context, id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tweets[id]
	if !ok {
		return notFound("Tweet")
	}
	t.Content, t.UpdatedAt = content, s.tick()
	s.tweets[id] = t
	return nil
}

func (s *Store) DeleteTweet(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tweets[id]; !ok {
		return notFound("Tweet")
	}
	s.dropLikes(model.LikeTargetTweet, id)
	delete(s.tweets, id)
	return nil
}

func (s *Store) TargetVisible(_ context.Context, target model.LikeTarget, id, viewerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch target {
	case model.LikeTargetVideo:
		v, ok := s.videos[id]
		return ok && (v.IsPublished || v.OwnerID == viewerID), nil
	case model.LikeTargetComment:
		c, ok := s.comments[id]
		if !ok {
			return false, nil
		}
		v, ok := s.videos[c.VideoID]
		return ok && (v.IsPublished || v.OwnerID == viewerID), nil
	case model.LikeTargetTweet:
		_, ok := s.tweets[id]
		return ok, nil
	}
	return false, nil
}

func (s *Store) ToggleLike(_ context.Context, target model.LikeTarget, targetID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := likeKey(target, targetID, userID)
	if _, ok := s.likes[key]; ok {
		delete(s.likes, key)
		return false, nil
	}
	like := model.Like{TargetType: target, TargetID: targetID, LikedBy: userID}
	s.stamp(&like.Base)
	s.likes[key] = like
	return true, nil
}

// HasLike reports whether the like row exists.
func (s *Store) HasLike(target model.LikeTarget, targetID, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liked(target, targetID, userID)
}

func (s *Store) LikedVideos(_ context.Context, userID string, param database.PageParam) (*database.Page[model.LikedVideo], error) {
	if !model.ValidID(userID) {
		return nil, invalidID("user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.LikedVideo
	for _, l := range s.likes {
		if l.LikedBy != userID || l.TargetType != model.LikeTargetVideo {
			continue
		}
		v, ok := s.videos[l.TargetID]
		if !ok || (!v.IsPublished && v.OwnerID != userID) {
			continue
		}
		out = append(out, model.LikedVideo{VideoCard: s.card(v), LikedAt: l.CreatedAt})
	}
	newestFirst(out, func(v model.LikedVideo) time.Time { return v.LikedAt })
	return database.SlicePage(out, param), nil
}

func (s *Store) ToggleSubscription(_ context.Context, subscriberID, channelID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := subKey(subscriberID, channelID)
	if _, ok := s.subscriptions[key]; ok {
		delete(s.subscriptions, key)
		return false, nil
	}
	sub := model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	s.stamp(&sub.Base)
	s.subscriptions[key] = sub
	return true, nil
}

func (s *Store) SubscribedChannels(_ context.Context, subscriberID string, param database.PageParam) (*database.Page[model.SubscribedChannel], error) {
	if !model.ValidID(subscriberID) {
		return nil, invalidID("user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.SubscribedChannel
	for _, sub := range s.subscriptions {
		if sub.SubscriberID != subscriberID {
			continue
		}
		out = append(out, model.SubscribedChannel{
			Channel:      s.owner(sub.ChannelID),
			SubscribedAt: sub.CreatedAt,
			LatestVideo:  s.latestVideo(sub.ChannelID),
		})
	}
	newestFirst(out, func(c model.SubscribedChannel) time.Time { return c.SubscribedAt })
	return database.SlicePage(out, param), nil
}

func (s *Store) latestVideo(channelID string) *model.LatestVideo {
	var latest *model.LatestVideo
	for _, v := range s.videos {
		if v.OwnerID != channelID || !v.IsPublished {
			continue
		}
		if latest == nil || v.CreatedAt.After(latest.CreatedAt) {
			latest = &model.LatestVideo{
				ID:        v.ID,
				ChannelID: v.OwnerID,
				VideoFile: v.VideoFile,
				Thumbnail: v.Thumbnail,
				Title:     v.Title,
				Duration:  v.Duration,
				Views:     v.Views,
				CreatedAt: v.CreatedAt,
			}
		}
	}
	return latest
}

func (s *Store) Subscribers(_ context.Context, channelID string, param database.PageParam) (*database.Page[model.Subscriber], error) {
	if !model.ValidID(channelID) {
		return nil, invalidID("user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Subscriber
	for _, sub := range s.subscriptions {
		if sub.ChannelID != channelID {
			continue
		}
		out = append(out, model.Subscriber{
			Subscriber:       s.owner(sub.SubscriberID),
			SubscribersCount: s.subscriberCount(sub.SubscriberID),
			SubscribedAt:     sub.CreatedAt,
		})
	}
	newestFirst(out, func(v model.Subscriber) time.Time { return v.SubscribedAt })
	return database.SlicePage(out, param), nil
}
