package interaction

import (
	"TubeFuss.com/cmd/interaction/service"
)

type Handler struct {
	comments *service.CommentService
	tweets   *service.TweetService
	likes    *service.LikeService
	maxLimit int
}

func New(comments *service.CommentService, tweets *service.TweetService, likes *service.LikeService, maxLimit int) *Handler {
	return &Handler{comments: comments, tweets: tweets, likes: likes, maxLimit: maxLimit}
}

type ContentParam struct {
	Content string `json:"content" form:"content" vd:"len($)>0; msg:'Content is required'"`
}
