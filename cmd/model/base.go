package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the opaque identifier and timestamps shared by every table.
type Base struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// ValidID reports whether id is a well-formed identifier.
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// AllModels is the migration set.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&WatchHistory{},
		&Video{},
		&Comment{},
		&Tweet{},
		&Like{},
		&Playlist{},
		&PlaylistVideo{},
		&Subscription{},
		&OutboxEvent{},
	}
}
