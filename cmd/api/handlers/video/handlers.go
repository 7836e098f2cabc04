package video

import (
	"TubeFuss.com/cmd/video/service"
)

type Handler struct {
	videos    *service.VideoService
	playlists *service.PlaylistService
	dashboard *service.DashboardService
	maxLimit  int
}

func New(videos *service.VideoService, playlists *service.PlaylistService, dashboard *service.DashboardService, maxLimit int) *Handler {
	return &Handler{videos: videos, playlists: playlists, dashboard: dashboard, maxLimit: maxLimit}
}

type VideoListParam struct {
	Query    string `query:"query"`
	SortBy   string `query:"sortBy"`
	SortType string `query:"sortType"`
	UserID   string `query:"userId"`
}

type VideoParam struct {
	Title       string `form:"title" json:"title" vd:"len($)>0; msg:'Title and description are required'"`
	Description string `form:"description" json:"description" vd:"len($)>0; msg:'Title and description are required'"`
}

type PlaylistParam struct {
	Name        string `form:"name" json:"name" vd:"len($)>0; msg:'Playlist name and description are required'"`
	Description string `form:"description" json:"description" vd:"len($)>0; msg:'Playlist name and description are required'"`
}
