package service

import (
	"context"
	"errors"
	"testing"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/errno"
	"TubeFuss.com/pkg/mock"
)

var firstPage = database.PageParam{Page: 1, Limit: 10}

func seedUser(t *testing.T, store *mock.Store, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@example.com", FullName: username, Avatar: "http://media.local/image/a.png"}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func publish(t *testing.T, s *VideoService, ownerID, title string) *model.Video {
	t.Helper()
	ctx := context.Background()
	v, err := s.PublishVideo(ctx, ownerID, &PublishVideoRequest{
		Title:         title,
		Description:   "about " + title,
		VideoPath:     "/tmp/clip.mp4",
		ThumbnailPath: "/tmp/thumb.jpg",
	})
	if err != nil {
		t.Fatalf("PublishVideo: %v", err)
	}
	if _, err = s.TogglePublish(ctx, v.ID, ownerID); err != nil {
		t.Fatalf("TogglePublish: %v", err)
	}
	return v
}

func TestPublishVideo(t *testing.T) {
	ctx := context.Background()
	store, media := mock.NewStore(), mock.NewStorage()
	s := NewVideoService(store, media, nil)
	owner := seedUser(t, store, "alice")

	v, err := s.PublishVideo(ctx, owner.ID, &PublishVideoRequest{
		Title: "First", Description: "d", VideoPath: "/tmp/v.mp4", ThumbnailPath: "/tmp/t.png",
	})
	if err != nil {
		t.Fatalf("PublishVideo: %v", err)
	}
	if v.IsPublished || v.Duration != media.Duration {
		t.Errorf("published=%v duration=%v", v.IsPublished, v.Duration)
	}

	// a draft is only visible to its owner
	if _, err := s.GetVideo(ctx, v.ID, ""); !errors.Is(err, errno.NotFoundErr) {
		t.Errorf("anonymous GetVideo err = %v", err)
	}
	view, err := s.GetVideo(ctx, v.ID, owner.ID)
	if err != nil || view.Views != 1 {
		t.Fatalf("owner GetVideo = %+v, %v", view, err)
	}

	t.Run("missing thumbnail", func(t *testing.T) {
		_, err := s.PublishVideo(ctx, owner.ID, &PublishVideoRequest{Title: "x", Description: "y", VideoPath: "/tmp/v.mp4"})
		if !errors.Is(err, errno.ParamErr) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("upload failure keeps nothing", func(t *testing.T) {
		before := media.Len()
		media.FailUpload = true
		defer func() { media.FailUpload = false }()
		if _, err := s.PublishVideo(ctx, owner.ID, &PublishVideoRequest{
			Title: "x", Description: "y", VideoPath: "/tmp/v.mp4", ThumbnailPath: "/tmp/t.png",
		}); err == nil {
			t.Fatal("expected error")
		}
		if media.Len() != before || store.Counts()["videos"] != 1 {
			t.Errorf("objects=%d videos=%d", media.Len(), store.Counts()["videos"])
		}
	})
}

func TestOwnerOnlyChanges(t *testing.T) {
	ctx := context.Background()
	store := mock.NewStore()
	s := NewVideoService(store, mock.NewStorage(), nil)
	owner := seedUser(t, store, "alice")
	other := seedUser(t, store, "bob")
	v := publish(t, s, owner.ID, "Mine")

	if _, err := s.UpdateVideo(ctx, v.ID, other.ID, &UpdateVideoRequest{Title: "t", Description: "d"}); !errors.Is(err, errno.AuthorizationErr) {
		t.Errorf("UpdateVideo err = %v", err)
	}
	if _, err := s.TogglePublish(ctx, v.ID, other.ID); !errors.Is(err, errno.AuthorizationErr) {
		t.Errorf("TogglePublish err = %v", err)
	}
	if err := s.DeleteVideo(ctx, v.ID, other.ID); !errors.Is(err, errno.AuthorizationErr) {
		t.Errorf("DeleteVideo err = %v", err)
	}
	if err := s.DeleteVideo(ctx, "not-an-id", owner.ID); !errors.Is(err, errno.ParamErr) {
		t.Errorf("malformed id err = %v", err)
	}

	updated, err := s.UpdateVideo(ctx, v.ID, owner.ID, &UpdateVideoRequest{Title: "Renamed", Description: "d", ThumbnailPath: "/tmp/n.png"})
	if err != nil {
		t.Fatalf("UpdateVideo: %v", err)
	}
	if updated.Title != "Renamed" || updated.Thumbnail == v.Thumbnail {
		t.Errorf("UpdateVideo = %+v", updated)
	}
	if n := len(store.Outbox()); n != 1 {
		t.Errorf("old thumbnail not queued, outbox=%d", n)
	}
}

func TestDeleteVideoCascades(t *testing.T) {
	ctx := context.Background()
	store, index := mock.NewStore(), mock.NewIndex()
	s := NewVideoService(store, mock.NewStorage(), index)
	playlists := NewPlaylistService(store, store, store)
	owner := seedUser(t, store, "alice")
	fan := seedUser(t, store, "bob")
	v := publish(t, s, owner.ID, "Doomed")

	c := &model.Comment{Content: "nice", VideoID: v.ID, OwnerID: fan.ID}
	if err := store.CreateComment(ctx, c); err != nil {
		t.Fatal(err)
	}
	if _, err := store.ToggleLike(ctx, model.LikeTargetVideo, v.ID, fan.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.ToggleLike(ctx, model.LikeTargetComment, c.ID, owner.ID); err != nil {
		t.Fatal(err)
	}
	p, err := playlists.CreatePlaylist(ctx, fan.ID, "faves", "d")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = playlists.AddVideo(ctx, p.ID, v.ID, fan.ID); err != nil {
		t.Fatal(err)
	}
	if _, err = s.GetVideo(ctx, v.ID, fan.ID); err != nil {
		t.Fatal(err)
	}

	if err = s.DeleteVideo(ctx, v.ID, owner.ID); err != nil {
		t.Fatalf("DeleteVideo: %v", err)
	}
	counts := store.Counts()
	for _, table := range []string{"videos", "comments", "likes", "playlist_videos", "watch_histories"} {
		if counts[table] != 0 {
			t.Errorf("%s left %d rows", table, counts[table])
		}
	}
	if counts["outbox_events"] != 2 {
		t.Errorf("outbox = %d, want video file and thumbnail", counts["outbox_events"])
	}
	if _, err = s.GetVideo(ctx, v.ID, owner.ID); !errors.Is(err, errno.NotFoundErr) {
		t.Errorf("GetVideo after delete err = %v", err)
	}
	if ids, _ := index.SearchIDs(ctx, "doomed"); len(ids) != 0 {
		t.Errorf("index still has %v", ids)
	}
}

func TestListVideosSearch(t *testing.T) {
	ctx := context.Background()
	store, index := mock.NewStore(), mock.NewIndex()
	s := NewVideoService(store, mock.NewStorage(), index)
	owner := seedUser(t, store, "alice")
	cats := publish(t, s, owner.ID, "Cats compilation")
	publish(t, s, owner.ID, "Dogs compilation")
	if _, err := s.PublishVideo(ctx, owner.ID, &PublishVideoRequest{
		Title: "Cats draft", Description: "d", VideoPath: "/tmp/v.mp4", ThumbnailPath: "/tmp/t.png",
	}); err != nil {
		t.Fatal(err)
	}

	list := func(query string) []model.VideoCard {
		t.Helper()
		page, err := s.ListVideos(ctx, &ListVideosRequest{Query: query, Page: firstPage})
		if err != nil {
			t.Fatalf("ListVideos(%q): %v", query, err)
		}
		return page.Docs
	}

	if got := list("cats"); len(got) != 1 || got[0].ID != cats.ID {
		t.Errorf("search = %+v", got)
	}
	if got := list(""); len(got) != 2 {
		t.Errorf("unfiltered = %d, want published only", len(got))
	}

	// results come from the index while it answers
	_ = index.Delete(ctx, cats.ID)
	if got := list("cats"); len(got) != 0 {
		t.Errorf("index miss still matched %+v", got)
	}
	index.Err = errors.New("cluster down")
	if got := list("cats"); len(got) != 1 {
		t.Errorf("fallback = %+v", got)
	}

	if _, err := s.ListVideos(ctx, &ListVideosRequest{SortBy: "owner", Page: firstPage}); !errors.Is(err, errno.ParamErr) {
		t.Errorf("bad sort err = %v", err)
	}
}

func TestPlaylists(t *testing.T) {
	ctx := context.Background()
	store := mock.NewStore()
	videos := NewVideoService(store, mock.NewStorage(), nil)
	s := NewPlaylistService(store, store, store)
	owner := seedUser(t, store, "alice")
	other := seedUser(t, store, "bob")
	v := publish(t, videos, owner.ID, "Song")

	p, err := s.CreatePlaylist(ctx, owner.ID, "mix", "road trip")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	if _, err = s.AddVideo(ctx, p.ID, v.ID, other.ID); !errors.Is(err, errno.AuthorizationErr) {
		t.Errorf("non-owner AddVideo err = %v", err)
	}
	detail, err := s.AddVideo(ctx, p.ID, v.ID, owner.ID)
	if err != nil || len(detail.Videos) != 1 || detail.TotalVideos != 1 {
		t.Fatalf("AddVideo = %+v, %v", detail, err)
	}
	if detail, err = s.AddVideo(ctx, p.ID, v.ID, owner.ID); err != nil || detail.TotalVideos != 1 {
		t.Errorf("duplicate add = %+v, %v", detail, err)
	}

	hidden := publish(t, videos, owner.ID, "B-side")
	if detail, err = s.AddVideo(ctx, p.ID, hidden.ID, owner.ID); err != nil {
		t.Fatalf("AddVideo: %v", err)
	}
	if _, err = videos.TogglePublish(ctx, hidden.ID, owner.ID); err != nil {
		t.Fatalf("TogglePublish: %v", err)
	}
	if detail, err = s.GetPlaylist(ctx, p.ID); err != nil || detail.TotalVideos != int64(len(detail.Videos)) || len(detail.Videos) != 1 {
		t.Errorf("totals disagree with listed videos: %+v, %v", detail, err)
	}
	if _, err = s.RemoveVideo(ctx, p.ID, hidden.ID, owner.ID); err != nil {
		t.Fatalf("RemoveVideo: %v", err)
	}

	page, err := s.UserPlaylists(ctx, "ALICE", firstPage)
	if err != nil || page.TotalDocs != 1 {
		t.Errorf("UserPlaylists = %+v, %v", page, err)
	}
	if _, err = s.UserPlaylists(ctx, "nobody", firstPage); !errors.Is(err, errno.NotFoundErr) {
		t.Errorf("unknown channel err = %v", err)
	}

	if _, err = s.UpdatePlaylist(ctx, p.ID, other.ID, "x", "y"); !errors.Is(err, errno.AuthorizationErr) {
		t.Errorf("non-owner update err = %v", err)
	}
	if detail, err = s.RemoveVideo(ctx, p.ID, v.ID, owner.ID); err != nil || len(detail.Videos) != 0 {
		t.Errorf("RemoveVideo = %+v, %v", detail, err)
	}
	if err = s.DeletePlaylist(ctx, p.ID, owner.ID); err != nil {
		t.Fatalf("DeletePlaylist: %v", err)
	}
	if _, err = s.GetPlaylist(ctx, p.ID); !errors.Is(err, errno.NotFoundErr) {
		t.Errorf("GetPlaylist after delete err = %v", err)
	}
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	store := mock.NewStore()
	videos := NewVideoService(store, mock.NewStorage(), nil)
	s := NewDashboardService(store)
	owner := seedUser(t, store, "alice")
	fan := seedUser(t, store, "bob")
	v := publish(t, videos, owner.ID, "Hit")
	if _, err := videos.PublishVideo(ctx, owner.ID, &PublishVideoRequest{
		Title: "Draft", Description: "d", VideoPath: "/tmp/v.mp4", ThumbnailPath: "/tmp/t.png",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.ToggleLike(ctx, model.LikeTargetVideo, v.ID, fan.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.ToggleSubscription(ctx, fan.ID, owner.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := videos.GetVideo(ctx, v.ID, fan.ID); err != nil {
		t.Fatal(err)
	}

	stats, err := s.ChannelStats(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ChannelStats: %v", err)
	}
	want := model.ChannelStats{TotalVideos: 2, TotalViews: 1, TotalSubscribers: 1, TotalLikes: 1}
	if *stats != want {
		t.Errorf("ChannelStats = %+v, want %+v", *stats, want)
	}
	page, err := s.ChannelVideos(ctx, owner.ID, firstPage)
	if err != nil || page.TotalDocs != 2 {
		t.Errorf("ChannelVideos = %+v, %v", page, err)
	}
}
