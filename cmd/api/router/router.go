package router

import (
	"TubeFuss.com/cmd/api/handlers/healthcheck"
	"TubeFuss.com/cmd/api/handlers/interaction"
	"TubeFuss.com/cmd/api/handlers/relation"
	"TubeFuss.com/cmd/api/handlers/user"
	"TubeFuss.com/cmd/api/handlers/video"
	"TubeFuss.com/cmd/api/router/authfunc"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything the routes dispatch to.
type Handlers struct {
	Authn       authfunc.Authenticator
	User        *user.Handler
	Video       *video.Handler
	Interaction *interaction.Handler
	Relation    *relation.Handler
	Health      *healthcheck.Handler
}

// Register 注册路由
func Register(r *server.Hertz, h *Handlers) {
	r.GET("/healthcheck", h.Health.Check)
	r.GET("/metrics", adaptor.HertzHandler(promhttp.Handler()))

	auth := authfunc.Auth(h.Authn)
	v1 := r.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("/register", h.User.Register)
	users.POST("/login", h.User.Login)
	users.POST("/refresh-token", h.User.RefreshToken)
	{
		secured := users.Group("", auth...)
		secured.POST("/logout", h.User.Logout)
		secured.GET("/current-user", h.User.CurrentUser)
		secured.POST("/change-password", h.User.ChangePassword)
		secured.PATCH("/update-account", h.User.UpdateAccount)
		secured.PATCH("/change-avatar", h.User.UpdateAvatar)
		secured.PATCH("/change-cover-image", h.User.UpdateCoverImage)
		secured.GET("/u/:username", h.User.ChannelProfile)
		secured.GET("/watch-history", h.User.WatchHistory)
	}

	videos := v1.Group("/videos", auth...)
	videos.GET("", h.Video.ListVideos)
	videos.POST("", h.Video.PublishVideo)
	videos.GET("/:videoId", h.Video.GetVideo)
	videos.PATCH("/:videoId", h.Video.UpdateVideo)
	videos.DELETE("/:videoId", h.Video.DeleteVideo)
	videos.PATCH("/toggle/publish/:videoId", h.Video.TogglePublish)

	comments := v1.Group("/comments", auth...)
	comments.GET("/:videoId", h.Interaction.VideoComments)
	comments.POST("/:videoId", h.Interaction.AddComment)
	comments.PATCH("/c/:commentId", h.Interaction.UpdateComment)
	comments.DELETE("/c/:commentId", h.Interaction.DeleteComment)

	likes := v1.Group("/likes", auth...)
	likes.POST("/toggle/v/:videoId", h.Interaction.ToggleVideoLike)
	likes.POST("/toggle/c/:commentId", h.Interaction.ToggleCommentLike)
	likes.POST("/toggle/t/:tweetId", h.Interaction.ToggleTweetLike)
	likes.GET("/videos", h.Interaction.LikedVideos)

	tweets := v1.Group("/tweets", auth...)
	tweets.POST("", h.Interaction.CreateTweet)
	tweets.GET("/user/:username", h.Interaction.UserTweets)
	tweets.PATCH("/:tweetId", h.Interaction.UpdateTweet)
	tweets.DELETE("/:tweetId", h.Interaction.DeleteTweet)

	subs := v1.Group("/subscriptions", auth...)
	subs.GET("", h.Relation.SubscribedChannels)
	subs.POST("/c/:username", h.Relation.ToggleSubscription)
	subs.GET("/u/:username/subscribers", h.Relation.Subscribers)

	playlists := v1.Group("/playlist", auth...)
	playlists.POST("", h.Video.CreatePlaylist)
	playlists.GET("/user/:username", h.Video.UserPlaylists)
	playlists.GET("/:playlistId", h.Video.GetPlaylist)
	playlists.PATCH("/:playlistId", h.Video.UpdatePlaylist)
	playlists.DELETE("/:playlistId", h.Video.DeletePlaylist)
	playlists.PATCH("/add/:videoId/:playlistId", h.Video.AddToPlaylist)
	playlists.PATCH("/remove/:videoId/:playlistId", h.Video.RemoveFromPlaylist)

	dashboard := v1.Group("/dashboard", auth...)
	dashboard.GET("/stats", h.Video.ChannelStats)
	dashboard.GET("/videos", h.Video.ChannelVideos)
}
