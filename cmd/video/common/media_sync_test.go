package common

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/mock"
	"TubeFuss.com/pkg/mq"
	"TubeFuss.com/pkg/oss"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*mq.MediaDeleteEvent
	err    error
}

func (p *recordingPublisher) PublishMediaDelete(_ context.Context, event *mq.MediaDeleteEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

// deletedVideo stores a video with two real objects and deletes it, leaving two
// pending outbox rows.
func deletedVideo(t *testing.T, store *mock.Store, media *mock.Storage) {
	t.Helper()
	ctx := context.Background()
	file, err := media.Upload(ctx, "/tmp/clip.mp4", oss.ResourceVideo)
	if err != nil {
		t.Fatal(err)
	}
	thumb, err := media.Upload(ctx, "/tmp/thumb.png", oss.ResourceImage)
	if err != nil {
		t.Fatal(err)
	}
	v := &model.Video{VideoFile: file.URL, Thumbnail: thumb.URL, Title: "t", Description: "d"}
	if err = store.CreateVideo(ctx, v); err != nil {
		t.Fatal(err)
	}
	if err = store.DeleteVideo(ctx, v); err != nil {
		t.Fatal(err)
	}
}

func statuses(store *mock.Store) map[string]int {
	out := map[string]int{}
	for _, ev := range store.Outbox() {
		out[ev.Status]++
	}
	return out
}

func TestSyncOnceInline(t *testing.T) {
	ctx := context.Background()
	store, media := mock.NewStore(), mock.NewStorage()
	deletedVideo(t, store, media)
	s := NewMediaSyncService(store, media, nil, time.Second, 10)

	n, err := s.SyncOnce(ctx)
	if err != nil || n != 2 {
		t.Fatalf("SyncOnce = %d, %v", n, err)
	}
	if media.Len() != 0 {
		t.Errorf("%d objects left on the media host", media.Len())
	}
	if got := statuses(store); got[model.OutboxStatusCompleted] != 2 {
		t.Errorf("statuses = %v", got)
	}
	if n, _ = s.SyncOnce(ctx); n != 0 {
		t.Errorf("completed rows fetched again: %d", n)
	}
}

func TestSyncOnceGivesUp(t *testing.T) {
	ctx := context.Background()
	store, media := mock.NewStore(), mock.NewStorage()
	deletedVideo(t, store, media)
	media.FailDelete = true
	s := NewMediaSyncService(store, media, nil, time.Second, 10)

	for i := 0; i < store.MaxRetries; i++ {
		if _, err := s.SyncOnce(ctx); err != nil {
			t.Fatalf("SyncOnce: %v", err)
		}
	}
	got := statuses(store)
	if got[model.OutboxStatusFailed] != 2 {
		t.Errorf("statuses = %v", got)
	}
	for _, ev := range store.Outbox() {
		if ev.RetryCount != store.MaxRetries || ev.LastError == "" {
			t.Errorf("row %s retry=%d lastError=%q", ev.ID, ev.RetryCount, ev.LastError)
		}
	}
	if media.Len() != 2 {
		t.Errorf("objects = %d", media.Len())
	}
}

func TestSyncOnceWithPublisher(t *testing.T) {
	ctx := context.Background()
	store, media := mock.NewStore(), mock.NewStorage()
	deletedVideo(t, store, media)

	t.Run("publish failure goes back to pending", func(t *testing.T) {
		pub := &recordingPublisher{err: errors.New("broker down")}
		s := NewMediaSyncService(store, media, pub, time.Second, 10)
		if _, err := s.SyncOnce(ctx); err != nil {
			t.Fatal(err)
		}
		if got := statuses(store); got[model.OutboxStatusPending] != 2 {
			t.Errorf("statuses = %v", got)
		}
	})

	t.Run("consumer completes rows", func(t *testing.T) {
		pub := &recordingPublisher{}
		s := NewMediaSyncService(store, media, pub, time.Second, 10)
		if _, err := s.SyncOnce(ctx); err != nil {
			t.Fatal(err)
		}
		if len(pub.events) != 2 || media.Len() != 2 {
			t.Fatalf("published %d, objects %d", len(pub.events), media.Len())
		}
		if got := statuses(store); got[model.OutboxStatusDispatched] != 2 {
			t.Errorf("statuses = %v", got)
		}
		for _, ev := range pub.events {
			if err := s.HandleMediaDelete(ctx, ev); err != nil {
				t.Fatalf("HandleMediaDelete: %v", err)
			}
		}
		if got := statuses(store); got[model.OutboxStatusCompleted] != 2 || media.Len() != 0 {
			t.Errorf("statuses = %v objects = %d", got, media.Len())
		}
	})
}

// snapshotStore serves rows fetched earlier, like a second relay that read
// the table just before the first one claimed them.
type snapshotStore struct {
	*mock.Store
	due []model.OutboxEvent
}

func (s snapshotStore) FetchDue(context.Context, int, time.Time) ([]model.OutboxEvent, error) {
	return s.due, nil
}

func TestSyncOnceSkipsClaimedRows(t *testing.T) {
	ctx := context.Background()
	store, media := mock.NewStore(), mock.NewStorage()
	deletedVideo(t, store, media)
	due, err := store.FetchDue(ctx, 10, time.Now())
	if err != nil || len(due) != 2 {
		t.Fatalf("FetchDue = %d, %v", len(due), err)
	}

	first := &recordingPublisher{}
	if n, err := NewMediaSyncService(store, media, first, time.Second, 10).SyncOnce(ctx); err != nil || n != 2 {
		t.Fatalf("first relay SyncOnce = %d, %v", n, err)
	}

	second := &recordingPublisher{}
	n, err := NewMediaSyncService(snapshotStore{Store: store, due: due}, media, second, time.Second, 10).SyncOnce(ctx)
	if err != nil || n != 0 {
		t.Errorf("second relay SyncOnce = %d, %v", n, err)
	}
	if len(first.events) != 2 || len(second.events) != 0 {
		t.Errorf("published first=%d second=%d", len(first.events), len(second.events))
	}
}

func TestRunStop(t *testing.T) {
	store, media := mock.NewStore(), mock.NewStorage()
	deletedVideo(t, store, media)
	s := NewMediaSyncService(store, media, nil, time.Hour, 10)
	s.Run()
	s.Stop()
	if media.Len() != 0 {
		t.Errorf("replay on start left %d objects", media.Len())
	}
}
