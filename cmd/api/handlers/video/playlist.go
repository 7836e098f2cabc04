package video

import (
	"context"

	"TubeFuss.com/cmd/api/handlers/pack"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func (h *Handler) CreatePlaylist(ctx context.Context, c *app.RequestContext) {
	var req PlaylistParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.BindError(c, err)
		return
	}
	playlist, err := h.playlists.CreatePlaylist(ctx, pack.CurrentUser(c).ID, req.Name, req.Description)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusCreated, playlist, "Playlist created successfully")
}

func (h *Handler) UserPlaylists(ctx context.Context, c *app.RequestContext) {
	page, err := h.playlists.UserPlaylists(ctx, c.Param("username"), pack.PageParam(c, h.maxLimit))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, page, "Playlists fetched successfully")
}

func (h *Handler) GetPlaylist(ctx context.Context, c *app.RequestContext) {
	playlist, err := h.playlists.GetPlaylist(ctx, c.Param("playlistId"))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, playlist, "Playlist fetched successfully")
}

func (h *Handler) UpdatePlaylist(ctx context.Context, c *app.RequestContext) {
	var req PlaylistParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.BindError(c, err)
		return
	}
	playlist, err := h.playlists.UpdatePlaylist(ctx, c.Param("playlistId"), pack.CurrentUser(c).ID, req.Name, req.Description)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, playlist, "Playlist updated successfully")
}

func (h *Handler) DeletePlaylist(ctx context.Context, c *app.RequestContext) {
	if err := h.playlists.DeletePlaylist(ctx, c.Param("playlistId"), pack.CurrentUser(c).ID); err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, nil, "Playlist deleted successfully")
}

func (h *Handler) AddToPlaylist(ctx context.Context, c *app.RequestContext) {
	playlist, err := h.playlists.AddVideo(ctx, c.Param("playlistId"), c.Param("videoId"), pack.CurrentUser(c).ID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, playlist, "Video added to playlist")
}

func (h *Handler) RemoveFromPlaylist(ctx context.Context, c *app.RequestContext) {
	playlist, err := h.playlists.RemoveVideo(ctx, c.Param("playlistId"), c.Param("videoId"), pack.CurrentUser(c).ID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, playlist, "Video removed from playlist")
}
