package model

type Video struct {
	Base
	VideoFile   string  `gorm:"size:512;not null" json:"videoFile"`
	Thumbnail   string  `gorm:"size:512;not null" json:"thumbnail"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Duration    float64 `gorm:"not null;default:0" json:"duration"`
	Views       int64   `gorm:"not null;default:0" json:"views"`
	IsPublished bool    `gorm:"not null;default:false;index" json:"isPublished"`
	OwnerID     string  `gorm:"type:char(36);not null;index" json:"owner"`
}

func (Video) TableName() string {
	return "videos"
}
