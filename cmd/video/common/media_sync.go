package common

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/metrics"
	"TubeFuss.com/pkg/mq"
	"TubeFuss.com/pkg/oss"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// OutboxStore is the slice of the outbox table the relay works on.
type OutboxStore interface {
	FetchDue(ctx context.Context, limit int, staleBefore time.Time) ([]model.OutboxEvent, error)
	MarkDispatched(ctx context.Context, ev *model.OutboxEvent) (bool, error)
	MarkCompleted(ctx context.Context, id string) error
	MarkRetry(ctx context.Context, id, lastError string) (string, error)
}

// MediaSyncService drains media.delete outbox rows. With a publisher the rows
// go to the queue and the consumer side calls HandleMediaDelete; without one
// the media is deleted inline.
type MediaSyncService struct {
	store     OutboxStore
	media     oss.Storage
	publisher mq.MediaEventPublisher

	interval   time.Duration
	batchSize  int
	staleAfter time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMediaSyncService(store OutboxStore, media oss.Storage, publisher mq.MediaEventPublisher, interval time.Duration, batchSize int) *MediaSyncService {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &MediaSyncService{
		store:      store,
		media:      media,
		publisher:  publisher,
		interval:   interval,
		batchSize:  batchSize,
		staleAfter: 5 * interval,
		ctx:        ctx,
		cancel:     cancel,
	}
}

var _ mq.MediaDeleteHandler = (*MediaSyncService)(nil)

// Run replays whatever a previous process left behind, then polls.
func (s *MediaSyncService) Run() {
	if _, err := s.SyncOnce(s.ctx); err != nil {
		hlog.Errorf("media sync replay failed: %v", err)
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				hlog.Info("Ok,停止同步[media]")
				return
			case <-ticker.C:
				if _, err := s.SyncOnce(s.ctx); err != nil {
					hlog.Errorf("media sync failed: %v", err)
				}
			}
		}
	}()
}

func (s *MediaSyncService) Stop() {
	s.cancel()
	s.wg.Wait()
}

// SyncOnce handles one batch of due rows and returns how many it claimed.
// A row another relay claimed since the fetch is skipped.
func (s *MediaSyncService) SyncOnce(ctx context.Context) (int, error) {
	events, err := s.store.FetchDue(ctx, s.batchSize, time.Now().Add(-s.staleAfter))
	if err != nil {
		return 0, err
	}
	claimed := 0
	for i := range events {
		ev := &events[i]
		if ev.Kind != model.OutboxKindMediaDelete {
			continue
		}
		ok, err := s.store.MarkDispatched(ctx, ev)
		if err != nil {
			hlog.CtxErrorf(ctx, "claim outbox event %s failed: %v", ev.ID, err)
			continue
		}
		if !ok {
			continue
		}
		claimed++
		var ref model.MediaRef
		if err := json.Unmarshal([]byte(ev.Payload), &ref); err != nil {
			s.retry(ctx, ev.ID, errors.Wrap(err, "bad payload"))
			continue
		}
		event := &mq.MediaDeleteEvent{
			EventID:      ev.ID,
			PublicID:     ref.PublicID,
			ResourceType: ref.ResourceType,
			Timestamp:    time.Now().Unix(),
		}
		if s.publisher == nil {
			_ = s.HandleMediaDelete(ctx, event)
			continue
		}
		if err := s.publisher.PublishMediaDelete(ctx, event); err != nil {
			s.retry(ctx, ev.ID, err)
			continue
		}
		metrics.RecordOutbox(ev.Kind, model.OutboxStatusDispatched)
	}
	return claimed, nil
}

// HandleMediaDelete deletes the remote object and closes the outbox row.
func (s *MediaSyncService) HandleMediaDelete(ctx context.Context, event *mq.MediaDeleteEvent) error {
	if err := s.media.Delete(ctx, event.PublicID, event.ResourceType); err != nil {
		s.retry(ctx, event.EventID, err)
		return err
	}
	if err := s.store.MarkCompleted(ctx, event.EventID); err != nil {
		return err
	}
	metrics.RecordOutbox(model.OutboxKindMediaDelete, model.OutboxStatusCompleted)
	return nil
}

func (s *MediaSyncService) retry(ctx context.Context, id string, cause error) {
	status, err := s.store.MarkRetry(ctx, id, cause.Error())
	if err != nil {
		hlog.CtxErrorf(ctx, "mark outbox event %s for retry failed: %v", id, err)
		return
	}
	metrics.RecordOutbox(model.OutboxKindMediaDelete, status)
	if status == model.OutboxStatusFailed {
		hlog.CtxErrorf(ctx, "outbox event %s gave up: %v", id, cause)
		return
	}
	hlog.CtxWarnf(ctx, "outbox event %s will be retried: %v", id, cause)
}
