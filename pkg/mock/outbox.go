package mock

import (
	"context"
	"sort"
	"time"

	"TubeFuss.com/cmd/model"
)

func (s *Store) FetchDue(_ context.Context, limit int, staleBefore time.Time) ([]model.OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var due []model.OutboxEvent
	for _, ev := range s.outbox {
		if ev.Status == model.OutboxStatusPending ||
			(ev.Status == model.OutboxStatusDispatched && ev.UpdatedAt.Before(staleBefore)) {
			due = append(due, ev)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].CreatedAt.Before(due[j].CreatedAt) })
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *Store) MarkDispatched(_ context.Context, fetched *model.OutboxEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.outbox[fetched.ID]
	if !ok || ev.Status != fetched.Status || !ev.UpdatedAt.Equal(fetched.UpdatedAt) {
		return false, nil
	}
	ev.Status = model.OutboxStatusDispatched
	ev.UpdatedAt = s.tick()
	s.outbox[fetched.ID] = ev
	return true, nil
}

func (s *Store) MarkCompleted(_ context.Context, id string) error {
	return s.setOutbox(id, func(ev *model.OutboxEvent) {
		now := s.clock
		ev.Status, ev.ProcessedAt = model.OutboxStatusCompleted, &now
	})
}

func (s *Store) MarkRetry(_ context.Context, id, lastError string) (string, error) {
	var status string
	err := s.setOutbox(id, func(ev *model.OutboxEvent) {
		ev.RetryCount++
		ev.LastError = lastError
		ev.Status = model.OutboxStatusPending
		if ev.RetryCount >= ev.MaxRetries {
			ev.Status = model.OutboxStatusFailed
		}
		status = ev.Status
	})
	return status, err
}

func (s *Store) setOutbox(id string, apply func(ev *model.OutboxEvent)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.outbox[id]
	if !ok {
		return notFound("Outbox event")
	}
	apply(&ev)
	ev.UpdatedAt = s.tick()
	s.outbox[id] = ev
	return nil
}

// Outbox returns a snapshot of every outbox row, oldest first.
func (s *Store) Outbox() []model.OutboxEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.OutboxEvent, 0, len(s.outbox))
	for _, ev := range s.outbox {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
