package model

import "time"

const (
	OutboxKindMediaDelete = "media.delete"

	OutboxStatusPending    = "pending"
	OutboxStatusDispatched = "dispatched"
	OutboxStatusCompleted  = "completed"
	OutboxStatusFailed     = "failed"
)

// OutboxEvent records an intent that must survive a crash, written in the same
// transaction as the change that caused it.
type OutboxEvent struct {
	Base
	Kind        string     `gorm:"not null;size:50;index" json:"kind"`
	Payload     string     `gorm:"type:text" json:"payload"`
	Status      string     `gorm:"not null;size:20;default:'pending';index" json:"status"`
	RetryCount  int        `gorm:"default:0" json:"retryCount"`
	MaxRetries  int        `gorm:"default:5" json:"maxRetries"`
	LastError   string     `gorm:"type:text" json:"lastError"`
	ProcessedAt *time.Time `json:"processedAt"`
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}

// MediaRef identifies an object on the media host.
type MediaRef struct {
	PublicID     string `json:"publicId"`
	ResourceType string `json:"resourceType"`
}
