package database

import (
	"encoding/json"

	"TubeFuss.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// EnqueueMediaDelete writes one outbox row per media reference inside tx, so the
// remote cleanup commits or rolls back together with the row change.
func EnqueueMediaDelete(tx *gorm.DB, maxRetries int, refs ...model.MediaRef) error {
	events := make([]*model.OutboxEvent, 0, len(refs))
	for _, ref := range refs {
		if ref.PublicID == "" {
			continue
		}
		payload, err := json.Marshal(ref)
		if err != nil {
			return errors.Wrap(err, "marshal media ref failed")
		}
		events = append(events, &model.OutboxEvent{
			Kind:       model.OutboxKindMediaDelete,
			Payload:    string(payload),
			Status:     model.OutboxStatusPending,
			MaxRetries: maxRetries,
		})
	}
	if len(events) == 0 {
		return nil
	}
	return errors.Wrap(tx.Create(&events).Error, "enqueue media delete failed")
}
