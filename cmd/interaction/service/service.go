package service

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
)

type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	FindComment(ctx context.Context, id string) (*model.Comment, error)
	VideoComments(ctx context.Context, videoID, viewerID string, param database.PageParam) (*database.Page[model.CommentView], error)
	UpdateComment(ctx context.Context, id, content string) error
	DeleteComment(ctx context.Context, id string) error
}

type TweetStore interface {
	CreateTweet(ctx context.Context, tweet *model.Tweet) error
	FindTweet(ctx context.Context, id string) (*model.Tweet, error)
	UserTweets(ctx context.Context, ownerID, viewerID string, param database.PageParam) (*database.Page[model.TweetView], error)
	UpdateTweet(ctx context.Context, id, content string) error
	DeleteTweet(ctx context.Context, id string) error
}

type LikeStore interface {
	TargetVisible(ctx context.Context, target model.LikeTarget, id, viewerID string) (bool, error)
	ToggleLike(ctx context.Context, target model.LikeTarget, targetID, userID string) (bool, error)
	LikedVideos(ctx context.Context, userID string, param database.PageParam) (*database.Page[model.LikedVideo], error)
}

type VideoFinder interface {
	VisibleVideo(ctx context.Context, id, viewerID string) (*model.Video, error)
}

type UserLookup interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}
