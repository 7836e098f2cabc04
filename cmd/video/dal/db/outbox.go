package db

import (
	"context"
	"time"

	"TubeFuss.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type OutboxDao struct {
	db *gorm.DB
}

func NewOutboxDao(db *gorm.DB) *OutboxDao {
	return &OutboxDao{db: db}
}

// FetchDue returns pending events plus dispatched ones that were never
// acknowledged before staleBefore, oldest first.
func (d *OutboxDao) FetchDue(ctx context.Context, limit int, staleBefore time.Time) ([]model.OutboxEvent, error) {
	var events []model.OutboxEvent
	err := d.db.WithContext(ctx).
		Where("status = ? OR (status = ? AND updated_at < ?)", model.OutboxStatusPending, model.OutboxStatusDispatched, staleBefore).
		Order("created_at").
		Limit(limit).
		Find(&events).Error
	return events, errors.Wrapf(err, "fetch outbox events failed")
}

// MarkDispatched claims ev for this relay. The update only lands while the row
// still has the status and updated_at that were fetched, so of two relays
// reading the same row exactly one gets true.
func (d *OutboxDao) MarkDispatched(ctx context.Context, ev *model.OutboxEvent) (bool, error) {
	res := d.db.WithContext(ctx).Model(&model.OutboxEvent{}).
		Where("id = ? AND status = ? AND updated_at = ?", ev.ID, ev.Status, ev.UpdatedAt).
		Updates(map[string]interface{}{"status": model.OutboxStatusDispatched})
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "claim outbox event %s failed", ev.ID)
	}
	return res.RowsAffected > 0, nil
}

func (d *OutboxDao) MarkCompleted(ctx context.Context, id string) error {
	now := time.Now()
	return d.setStatus(ctx, id, model.OutboxStatusCompleted, &now)
}

// MarkRetry records a failed attempt. The event goes back to pending, or to
// failed once its retries are used up; the resulting status is returned.
func (d *OutboxDao) MarkRetry(ctx context.Context, id, lastError string) (string, error) {
	var status string
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event model.OutboxEvent
		if err := tx.Where("id = ?", id).First(&event).Error; err != nil {
			return err
		}
		event.RetryCount++
		status = model.OutboxStatusPending
		if event.RetryCount >= event.MaxRetries {
			status = model.OutboxStatusFailed
		}
		return tx.Model(&model.OutboxEvent{}).Where("id = ?", id).Updates(map[string]interface{}{
			"retry_count": event.RetryCount,
			"status":      status,
			"last_error":  lastError,
		}).Error
	})
	return status, errors.Wrapf(err, "mark outbox event %s for retry failed", id)
}

func (d *OutboxDao) setStatus(ctx context.Context, id, status string, processedAt *time.Time) error {
	fields := map[string]interface{}{"status": status}
	if processedAt != nil {
		fields["processed_at"] = processedAt
	}
	err := d.db.WithContext(ctx).Model(&model.OutboxEvent{}).Where("id = ?", id).Updates(fields).Error
	return errors.Wrapf(err, "set outbox event %s to %s failed", id, status)
}
