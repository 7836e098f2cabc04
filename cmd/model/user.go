package model

import "time"

type User struct {
	Base
	Username     string `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Email        string `gorm:"size:128;not null;uniqueIndex" json:"email"`
	FullName     string `gorm:"size:128;not null;index" json:"fullName"`
	Password     string `gorm:"size:128;not null" json:"-"`
	Avatar       string `gorm:"size:512;not null" json:"avatar"`
	CoverImage   string `gorm:"size:512" json:"coverImage"`
	RefreshToken string `gorm:"size:512" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// WatchHistory is the ordered set of videos an account has opened.
type WatchHistory struct {
	UserID    string    `gorm:"primaryKey;type:char(36)" json:"-"`
	VideoID   string    `gorm:"primaryKey;type:char(36);index" json:"video"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
