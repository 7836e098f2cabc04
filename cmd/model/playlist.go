package model

import "time"

type Playlist struct {
	Base
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	OwnerID     string `gorm:"type:char(36);not null;index" json:"owner"`
}

func (Playlist) TableName() string {
	return "playlists"
}

type PlaylistVideo struct {
	PlaylistID string    `gorm:"primaryKey;type:char(36)" json:"playlist"`
	VideoID    string    `gorm:"primaryKey;type:char(36);index" json:"video"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
