package model

// LikeTarget names the kind of document a like points at.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// Like exists while LikedBy likes the target; unliking deletes the row.
type Like struct {
	Base
	TargetType LikeTarget `gorm:"size:16;not null;uniqueIndex:idx_like_pair,priority:1" json:"targetType"`
	TargetID   string     `gorm:"type:char(36);not null;uniqueIndex:idx_like_pair,priority:2" json:"targetId"`
	LikedBy    string     `gorm:"type:char(36);not null;uniqueIndex:idx_like_pair,priority:3;index" json:"likedBy"`
}

func (Like) TableName() string {
	return "likes"
}
