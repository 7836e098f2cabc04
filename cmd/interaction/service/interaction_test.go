package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/errno"
	"TubeFuss.com/pkg/lock"
	"TubeFuss.com/pkg/mock"
	"github.com/google/uuid"
)

var firstPage = database.PageParam{Page: 1, Limit: 10}

type fixture struct {
	store *mock.Store
	owner *model.User
	fan   *model.User
	video *model.Video
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{store: mock.NewStore()}
	for _, name := range []string{"alice", "bob"} {
		u := &model.User{Username: name, Email: name + "@example.com", FullName: name}
		if err := f.store.CreateUser(ctx, u); err != nil {
			t.Fatal(err)
		}
		if f.owner == nil {
			f.owner = u
		} else {
			f.fan = u
		}
	}
	f.video = &model.Video{Title: "clip", Description: "d", OwnerID: f.owner.ID, IsPublished: true}
	if err := f.store.CreateVideo(ctx, f.video); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestComments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := NewCommentService(f.store, f.store)

	if _, err := s.AddComment(ctx, f.video.ID, f.fan.ID, "   "); !errors.Is(err, errno.ParamErr) {
		t.Errorf("blank comment err = %v", err)
	}
	if _, err := s.AddComment(ctx, uuid.NewString(), f.fan.ID, "hi"); !errors.Is(err, errno.NotFoundErr) {
		t.Errorf("missing video err = %v", err)
	}
	c, err := s.AddComment(ctx, f.video.ID, f.fan.ID, " first! ")
	if err != nil || c.Content != "first!" {
		t.Fatalf("AddComment = %+v, %v", c, err)
	}

	if _, err = s.UpdateComment(ctx, c.ID, f.owner.ID, "edited"); !errors.Is(err, errno.AuthorizationErr) {
		t.Errorf("non-owner update err = %v", err)
	}
	if c, err = s.UpdateComment(ctx, c.ID, f.fan.ID, "edited"); err != nil || c.Content != "edited" {
		t.Errorf("UpdateComment = %+v, %v", c, err)
	}

	page, err := s.VideoComments(ctx, f.video.ID, f.owner.ID, firstPage)
	if err != nil || page.TotalDocs != 1 || page.Docs[0].Owner.Username != "bob" {
		t.Fatalf("VideoComments = %+v, %v", page, err)
	}

	if err = s.DeleteComment(ctx, c.ID, f.owner.ID); !errors.Is(err, errno.AuthorizationErr) {
		t.Errorf("non-owner delete err = %v", err)
	}
	if err = s.DeleteComment(ctx, c.ID, f.fan.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if err = s.DeleteComment(ctx, c.ID, f.fan.ID); !errors.Is(err, errno.NotFoundErr) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestTweets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := NewTweetService(f.store, f.store)

	tw, err := s.CreateTweet(ctx, f.owner.ID, "hello world")
	if err != nil {
		t.Fatalf("CreateTweet: %v", err)
	}
	page, err := s.UserTweets(ctx, "Alice", f.fan.ID, firstPage)
	if err != nil || page.TotalDocs != 1 {
		t.Fatalf("UserTweets = %+v, %v", page, err)
	}
	if _, err = s.UserTweets(ctx, "ghost", "", firstPage); !errors.Is(err, errno.NotFoundErr) {
		t.Errorf("unknown channel err = %v", err)
	}
	if _, err = s.UpdateTweet(ctx, tw.ID, f.fan.ID, "hijack"); !errors.Is(err, errno.AuthorizationErr) {
		t.Errorf("non-owner update err = %v", err)
	}
	if err = s.DeleteTweet(ctx, tw.ID, f.owner.ID); err != nil {
		t.Fatalf("DeleteTweet: %v", err)
	}
	if f.store.Counts()["tweets"] != 0 {
		t.Error("tweet not deleted")
	}
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := NewLikeService(f.store, lock.NewLocalLocker())

	t.Run("twice restores state", func(t *testing.T) {
		liked, err := s.ToggleLike(ctx, model.LikeTargetVideo, f.video.ID, f.fan.ID)
		if err != nil || !liked {
			t.Fatalf("first toggle = %v, %v", liked, err)
		}
		page, err := s.LikedVideos(ctx, f.fan.ID, firstPage)
		if err != nil || page.TotalDocs != 1 {
			t.Fatalf("LikedVideos = %+v, %v", page, err)
		}
		liked, err = s.ToggleLike(ctx, model.LikeTargetVideo, f.video.ID, f.fan.ID)
		if err != nil || liked {
			t.Fatalf("second toggle = %v, %v", liked, err)
		}
		if f.store.HasLike(model.LikeTargetVideo, f.video.ID, f.fan.ID) {
			t.Error("like row left behind")
		}
	})

	t.Run("rejects bad targets", func(t *testing.T) {
		if _, err := s.ToggleLike(ctx, model.LikeTarget("playlist"), f.video.ID, f.fan.ID); !errors.Is(err, errno.ParamErr) {
			t.Errorf("unknown target err = %v", err)
		}
		if _, err := s.ToggleLike(ctx, model.LikeTargetTweet, "42", f.fan.ID); !errors.Is(err, errno.ParamErr) {
			t.Errorf("malformed id err = %v", err)
		}
		_, err := s.ToggleLike(ctx, model.LikeTargetComment, uuid.NewString(), f.fan.ID)
		if !errors.Is(err, errno.NotFoundErr) || errno.ConvertErr(err).ErrMsg != "Comment not found" {
			t.Errorf("missing comment err = %v", err)
		}
	})

	t.Run("concurrent toggles stay consistent", func(t *testing.T) {
		const n = 20
		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			likes int
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				liked, err := s.ToggleLike(ctx, model.LikeTargetVideo, f.video.ID, f.owner.ID)
				if err != nil {
					t.Errorf("ToggleLike: %v", err)
					return
				}
				if liked {
					mu.Lock()
					likes++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		if likes != n/2 {
			t.Errorf("liked %d times out of %d", likes, n)
		}
		if f.store.HasLike(model.LikeTargetVideo, f.video.ID, f.owner.ID) {
			t.Error("even number of toggles left a like")
		}
	})
}

func TestDraftVideoHiddenFromOthers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	draft := &model.Video{Title: "draft", Description: "d", OwnerID: f.owner.ID}
	if err := f.store.CreateVideo(ctx, draft); err != nil {
		t.Fatal(err)
	}
	comments := NewCommentService(f.store, f.store)
	likes := NewLikeService(f.store, lock.NewLocalLocker())

	own, err := comments.AddComment(ctx, draft.ID, f.owner.ID, "note to self")
	if err != nil {
		t.Fatalf("owner AddComment: %v", err)
	}

	t.Run("add comment", func(t *testing.T) {
		if _, err := comments.AddComment(ctx, draft.ID, f.fan.ID, "hi"); !errors.Is(err, errno.NotFoundErr) {
			t.Errorf("err = %v, want not found", err)
		}
	})

	t.Run("list comments", func(t *testing.T) {
		if _, err := comments.VideoComments(ctx, draft.ID, f.fan.ID, firstPage); !errors.Is(err, errno.NotFoundErr) {
			t.Errorf("err = %v, want not found", err)
		}
		page, err := comments.VideoComments(ctx, draft.ID, f.owner.ID, firstPage)
		if err != nil || page.TotalDocs != 1 {
			t.Errorf("owner VideoComments = %+v, %v", page, err)
		}
	})

	t.Run("like video", func(t *testing.T) {
		if _, err := likes.ToggleLike(ctx, model.LikeTargetVideo, draft.ID, f.fan.ID); !errors.Is(err, errno.NotFoundErr) {
			t.Errorf("err = %v, want not found", err)
		}
		if liked, err := likes.ToggleLike(ctx, model.LikeTargetVideo, draft.ID, f.owner.ID); err != nil || !liked {
			t.Errorf("owner like = %v, %v", liked, err)
		}
	})

	t.Run("like comment on draft", func(t *testing.T) {
		if _, err := likes.ToggleLike(ctx, model.LikeTargetComment, own.ID, f.fan.ID); !errors.Is(err, errno.NotFoundErr) {
			t.Errorf("err = %v, want not found", err)
		}
		if f.store.HasLike(model.LikeTargetComment, own.ID, f.fan.ID) {
			t.Error("like stored on hidden comment")
		}
	})
}
