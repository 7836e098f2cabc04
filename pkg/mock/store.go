// Package mock holds in-memory stand-ins for the store, the media host and the
// search index, used by service and router tests.
package mock

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/errno"
	"github.com/google/uuid"
)

// Store keeps every table in maps guarded by one mutex. It satisfies the
// store interfaces of all service packages.
type Store struct {
	mu sync.Mutex

	clock time.Time

	users         map[string]model.User
	videos        map[string]model.Video
	comments      map[string]model.Comment
	tweets        map[string]model.Tweet
	likes         map[string]model.Like
	playlists     map[string]model.Playlist
	playlistItems map[string][]model.PlaylistVideo
	subscriptions map[string]model.Subscription
	history       map[string]map[string]model.WatchHistory
	outbox        map[string]model.OutboxEvent

	MaxRetries int
}

func NewStore() *Store {
	return &Store{
		clock:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:         make(map[string]model.User),
		videos:        make(map[string]model.Video),
		comments:      make(map[string]model.Comment),
		tweets:        make(map[string]model.Tweet),
		likes:         make(map[string]model.Like),
		playlists:     make(map[string]model.Playlist),
		playlistItems: make(map[string][]model.PlaylistVideo),
		subscriptions: make(map[string]model.Subscription),
		history:       make(map[string]map[string]model.WatchHistory),
		outbox:        make(map[string]model.OutboxEvent),
		MaxRetries:    3,
	}
}

// tick advances the fake clock so every write gets a distinct timestamp.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *Store) stamp(b *model.Base) {
	now := s.tick()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt, b.UpdatedAt = now, now
}

func notFound(what string) error {
	return errno.NotFoundErr.WithMessage(what + " not found")
}

func invalidID(what string) error {
	return database.ErrInvalidID.WithMessage("Invalid " + what + " id")
}

func (s *Store) owner(id string) model.OwnerSummary {
	u := s.users[id]
	return model.OwnerSummary{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}
}

func (s *Store) countLikes(target model.LikeTarget, id string) (n int64) {
	for _, l := range s.likes {
		if l.TargetType == target && l.TargetID == id {
			n++
		}
	}
	return n
}

func (s *Store) liked(target model.LikeTarget, id, userID string) bool {
	_, ok := s.likes[likeKey(target, id, userID)]
	return ok
}

func likeKey(target model.LikeTarget, id, userID string) string {
	return string(target) + "|" + id + "|" + userID
}

func subKey(subscriberID, channelID string) string {
	return subscriberID + "|" + channelID
}

func (s *Store) subscriberCount(channelID string) (n int64) {
	for _, sub := range s.subscriptions {
		if sub.ChannelID == channelID {
			n++
		}
	}
	return n
}

func (s *Store) card(v model.Video) model.VideoCard {
	return model.VideoCard{
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
		Owner:       s.owner(v.OwnerID),
	}
}

func (s *Store) enqueue(refs ...model.MediaRef) {
	for _, ref := range refs {
		if ref.PublicID == "" {
			continue
		}
		payload, _ := json.Marshal(ref)
		ev := model.OutboxEvent{
			Kind:       model.OutboxKindMediaDelete,
			Payload:    string(payload),
			Status:     model.OutboxStatusPending,
			MaxRetries: s.MaxRetries,
		}
		s.stamp(&ev.Base)
		s.outbox[ev.ID] = ev
	}
}

// newestFirst sorts by the timestamp returned from at, newest first.
func newestFirst[T any](items []T, at func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool { return at(items[i]).After(at(items[j])) })
}

// Counts reports the number of rows per table, for cascade assertions.
func (s *Store) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := 0
	for _, list := range s.playlistItems {
		items += len(list)
	}
	watched := 0
	for _, h := range s.history {
		watched += len(h)
	}
	return map[string]int{
		"users":           len(s.users),
		"videos":          len(s.videos),
		"comments":        len(s.comments),
		"tweets":          len(s.tweets),
		"likes":           len(s.likes),
		"playlists":       len(s.playlists),
		"playlist_videos": items,
		"subscriptions":   len(s.subscriptions),
		"watch_histories": watched,
		"outbox_events":   len(s.outbox),
	}
}
