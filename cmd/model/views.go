package model

import "time"

// The structs below are read models filled by composed queries; they are never migrated.

type OwnerSummary struct {
	ID       string `gorm:"column:id" json:"_id"`
	Username string `gorm:"column:username" json:"username"`
	FullName string `gorm:"column:full_name" json:"fullName"`
	Avatar   string `gorm:"column:avatar" json:"avatar"`
}

type OwnerDetail struct {
	ID               string `gorm:"column:id" json:"_id"`
	Username         string `gorm:"column:username" json:"username"`
	FullName         string `gorm:"column:full_name" json:"fullName"`
	Avatar           string `gorm:"column:avatar" json:"avatar"`
	SubscribersCount int64  `gorm:"column:subscribers_count" json:"subscribersCount"`
	IsSubscribed     bool   `gorm:"column:is_subscribed" json:"isSubscribed"`
}

type VideoCard struct {
	ID          string       `gorm:"column:id" json:"_id"`
	VideoFile   string       `gorm:"column:video_file" json:"videoFile"`
	Thumbnail   string       `gorm:"column:thumbnail" json:"thumbnail"`
	Title       string       `gorm:"column:title" json:"title"`
	Description string       `gorm:"column:description" json:"description"`
	Duration    float64      `gorm:"column:duration" json:"duration"`
	Views       int64        `gorm:"column:views" json:"views"`
	IsPublished bool         `gorm:"column:is_published" json:"isPublished"`
	CreatedAt   time.Time    `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"column:updated_at" json:"updatedAt"`
	Owner       OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}

type VideoView struct {
	ID          string      `gorm:"column:id" json:"_id"`
	VideoFile   string      `gorm:"column:video_file" json:"videoFile"`
	Thumbnail   string      `gorm:"column:thumbnail" json:"thumbnail"`
	Title       string      `gorm:"column:title" json:"title"`
	Description string      `gorm:"column:description" json:"description"`
	Duration    float64     `gorm:"column:duration" json:"duration"`
	Views       int64       `gorm:"column:views" json:"views"`
	IsPublished bool        `gorm:"column:is_published" json:"isPublished"`
	CreatedAt   time.Time   `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"column:updated_at" json:"updatedAt"`
	Owner       OwnerDetail `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount  int64       `gorm:"column:likes_count" json:"likesCount"`
	IsLiked     bool        `gorm:"column:is_liked" json:"isLiked"`
}

type LikedVideo struct {
	VideoCard
	LikedAt time.Time `gorm:"column:liked_at" json:"likedAt"`
}

type WatchedVideo struct {
	VideoCard
	WatchedAt time.Time `gorm:"column:watched_at" json:"watchedAt"`
}

type CommentView struct {
	ID         string       `gorm:"column:id" json:"_id"`
	Content    string       `gorm:"column:content" json:"content"`
	CreatedAt  time.Time    `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt  time.Time    `gorm:"column:updated_at" json:"updatedAt"`
	Owner      OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount int64        `gorm:"column:likes_count" json:"likesCount"`
	IsLiked    bool         `gorm:"column:is_liked" json:"isLiked"`
}

type TweetView struct {
	ID         string       `gorm:"column:id" json:"_id"`
	Content    string       `gorm:"column:content" json:"content"`
	CreatedAt  time.Time    `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt  time.Time    `gorm:"column:updated_at" json:"updatedAt"`
	Owner      OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount int64        `gorm:"column:likes_count" json:"likesCount"`
	IsLiked    bool         `gorm:"column:is_liked" json:"isLiked"`
}

type ChannelProfile struct {
	ID                        string    `gorm:"column:id" json:"_id"`
	Username                  string    `gorm:"column:username" json:"username"`
	FullName                  string    `gorm:"column:full_name" json:"fullName"`
	Email                     string    `gorm:"column:email" json:"email"`
	Avatar                    string    `gorm:"column:avatar" json:"avatar"`
	CoverImage                string    `gorm:"column:cover_image" json:"coverImage"`
	CreatedAt                 time.Time `gorm:"column:created_at" json:"createdAt"`
	SubscribersCount          int64     `gorm:"column:subscribers_count" json:"subscribersCount"`
	ChannelsSubscribedToCount int64     `gorm:"column:channels_subscribed_to_count" json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `gorm:"column:is_subscribed" json:"isSubscribed"`
}

type PlaylistSummary struct {
	ID          string    `gorm:"column:id" json:"_id"`
	Name        string    `gorm:"column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
	TotalVideos int64     `gorm:"column:total_videos" json:"totalVideos"`
	TotalViews  int64     `gorm:"column:total_views" json:"totalViews"`
}

type PlaylistDetail struct {
	PlaylistSummary
	Owner  OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	Videos []VideoCard  `gorm:"-" json:"videos"`
}

type LatestVideo struct {
	ID        string    `gorm:"column:id" json:"_id"`
	ChannelID string    `gorm:"column:owner_id" json:"-"`
	VideoFile string    `gorm:"column:video_file" json:"videoFile"`
	Thumbnail string    `gorm:"column:thumbnail" json:"thumbnail"`
	Title     string    `gorm:"column:title" json:"title"`
	Duration  float64   `gorm:"column:duration" json:"duration"`
	Views     int64     `gorm:"column:views" json:"views"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

type SubscribedChannel struct {
	Channel      OwnerSummary `gorm:"embedded;embeddedPrefix:channel_" json:"channel"`
	SubscribedAt time.Time    `gorm:"column:subscribed_at" json:"subscribedAt"`
	LatestVideo  *LatestVideo `gorm:"-" json:"latestVideo"`
}

type Subscriber struct {
	Subscriber       OwnerSummary `gorm:"embedded;embeddedPrefix:subscriber_" json:"subscriber"`
	SubscribersCount int64        `gorm:"column:subscribers_count" json:"subscribersCount"`
	SubscribedAt     time.Time    `gorm:"column:subscribed_at" json:"subscribedAt"`
}

type ChannelStats struct {
	TotalVideos      int64 `gorm:"column:total_videos" json:"totalVideos"`
	TotalViews       int64 `gorm:"column:total_views" json:"totalViews"`
	TotalSubscribers int64 `gorm:"column:total_subscribers" json:"totalSubscribers"`
	TotalLikes       int64 `gorm:"column:total_likes" json:"totalLikes"`
	TotalTweets      int64 `gorm:"column:total_tweets" json:"totalTweets"`
}

type ChannelVideo struct {
	ID            string    `gorm:"column:id" json:"_id"`
	Title         string    `gorm:"column:title" json:"title"`
	Description   string    `gorm:"column:description" json:"description"`
	Thumbnail     string    `gorm:"column:thumbnail" json:"thumbnail"`
	Duration      float64   `gorm:"column:duration" json:"duration"`
	Views         int64     `gorm:"column:views" json:"views"`
	IsPublished   bool      `gorm:"column:is_published" json:"isPublished"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	LikesCount    int64     `gorm:"column:likes_count" json:"likesCount"`
	CommentsCount int64     `gorm:"column:comments_count" json:"commentsCount"`
}
