package model

type Comment struct {
	Base
	Content string `gorm:"type:text;not null" json:"content"`
	VideoID string `gorm:"type:char(36);not null;index" json:"video"`
	OwnerID string `gorm:"type:char(36);not null;index" json:"owner"`
}

func (Comment) TableName() string {
	return "comments"
}

type Tweet struct {
	Base
	Content string `gorm:"type:text;not null" json:"content"`
	OwnerID string `gorm:"type:char(36);not null;index" json:"owner"`
}

func (Tweet) TableName() string {
	return "tweets"
}
