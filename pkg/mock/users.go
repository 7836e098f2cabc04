package mock

import (
	"context"
	"time"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/errno"
)

func (s *Store) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return errno.ConflictErr.WithMessage("User with email or username already exists")
		}
	}
	s.stamp(&user.Base)
	s.users[user.ID] = *user
	return nil
}

func (s *Store) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) FindByID(_ context.Context, id string) (*model.User, error) {
	if !model.ValidID(id) {
		return nil, database.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, notFound("User")
	}
	return &u, nil
}

func (s *Store) FindByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, notFound("Channel")
}

func (s *Store) FindByLogin(_ context.Context, username, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return &u, nil
		}
	}
	return nil, notFound("User")
}

func (s *Store) EmailTaken(_ context.Context, email, exceptID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email && u.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) UpdateFields(_ context.Context, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return notFound("User")
	}
	for k, v := range fields {
		str, _ := v.(string)
		switch k {
		case "full_name":
			u.FullName = str
		case "email":
			u.Email = str
		case "password":
			u.Password = str
		case "avatar":
			u.Avatar = str
		case "cover_image":
			u.CoverImage = str
		}
	}
	u.UpdatedAt = s.tick()
	s.users[id] = u
	return nil
}

func (s *Store) SetRefreshToken(_ context.Context, id, expected, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok || (expected != "" && u.RefreshToken != expected) {
		return false, nil
	}
	u.RefreshToken = token
	s.users[id] = u
	return true, nil
}

func (s *Store) ReplaceMedia(ctx context.Context, id, column, url string, stale model.MediaRef) error {
	if err := s.UpdateFields(ctx, id, map[string]interface{}{column: url}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enqueue(stale)
	return nil
}

func (s *Store) ChannelProfile(_ context.Context, username, viewerID string) (*model.ChannelProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username != username {
			continue
		}
		p := &model.ChannelProfile{
			ID:               u.ID,
			Username:         u.Username,
			FullName:         u.FullName,
			Email:            u.Email,
			Avatar:           u.Avatar,
			CoverImage:       u.CoverImage,
			CreatedAt:        u.CreatedAt,
			SubscribersCount: s.subscriberCount(u.ID),
		}
		for _, sub := range s.subscriptions {
			if sub.SubscriberID == u.ID {
				p.ChannelsSubscribedToCount++
			}
		}
		_, p.IsSubscribed = s.subscriptions[subKey(viewerID, u.ID)]
		return p, nil
	}
	return nil, notFound("Channel")
}

func (s *Store) WatchHistory(_ context.Context, userID string, param database.PageParam) (*database.Page[model.WatchedVideo], error) {
	if !model.ValidID(userID) {
		return nil, invalidID("user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.WatchedVideo
	for videoID, h := range s.history[userID] {
		v, ok := s.videos[videoID]
		if !ok || (!v.IsPublished && v.OwnerID != userID) {
			continue
		}
		out = append(out, model.WatchedVideo{VideoCard: s.card(v), WatchedAt: h.UpdatedAt})
	}
	newestFirst(out, func(w model.WatchedVideo) time.Time { return w.WatchedAt })
	return database.SlicePage(out, param), nil
}
