package model

// Subscription exists while SubscriberID follows ChannelID.
type Subscription struct {
	Base
	SubscriberID string `gorm:"type:char(36);not null;uniqueIndex:idx_sub_pair,priority:1" json:"subscriber"`
	ChannelID    string `gorm:"type:char(36);not null;uniqueIndex:idx_sub_pair,priority:2;index" json:"channel"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
