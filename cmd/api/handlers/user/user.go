package user

import (
	"context"

	"TubeFuss.com/cmd/api/handlers/pack"
	"TubeFuss.com/cmd/model"
	"TubeFuss.com/cmd/user/service"
	"TubeFuss.com/pkg/jwt"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	users    *service.UserService
	tokens   *jwt.TokenManager
	cookies  pack.CookieConfig
	maxLimit int
}

func New(users *service.UserService, tokens *jwt.TokenManager, cookies pack.CookieConfig, maxLimit int) *Handler {
	return &Handler{users: users, tokens: tokens, cookies: cookies, maxLimit: maxLimit}
}

type RegisterParam struct {
	FullName string `form:"fullName" json:"fullName" vd:"len($)>0; msg:'All fields are required'"`
	Username string `form:"username" json:"username" vd:"len($)>0; msg:'All fields are required'"`
	Email    string `form:"email" json:"email" vd:"len($)>0; msg:'All fields are required'"`
	Password string `form:"password" json:"password" vd:"len($)>0; msg:'All fields are required'"`
}

type LoginParam struct {
	Username string `json:"username" form:"username" vd:"len($)>0 || len((Email)$)>0; msg:'Email or username is required'"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password" vd:"len($)>0; msg:'Password is required'"`
}

type RefreshParam struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

type ChangePasswordParam struct {
	OldPassword string `json:"oldPassword" form:"oldPassword" vd:"len($)>0; msg:'Old and new password are required'"`
	NewPassword string `json:"newPassword" form:"newPassword" vd:"len($)>0; msg:'Old and new password are required'"`
}

type UpdateAccountParam struct {
	FullName string `json:"fullName" form:"fullName" vd:"len($)>0; msg:'All fields are required'"`
	Email    string `json:"email" form:"email" vd:"len($)>0; msg:'All fields are required'"`
}

// Register 用户注册
func (h *Handler) Register(ctx context.Context, c *app.RequestContext) {
	var req RegisterParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.BindError(c, err)
		return
	}
	files, err := pack.StageFiles(c, "avatar", "coverImage")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	defer files.Cleanup()

	user, err := h.users.Register(ctx, &service.RegisterRequest{
		FullName:       req.FullName,
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		AvatarPath:     files["avatar"],
		CoverImagePath: files["coverImage"],
	})
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusCreated, user, "User registered successfully")
}

func (h *Handler) Login(ctx context.Context, c *app.RequestContext) {
	var req LoginParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.BindError(c, err)
		return
	}
	session, err := h.users.Login(ctx, &service.LoginRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		pack.SendError(c, err)
		return
	}
	h.cookies.SetSession(c, session.AccessToken, h.tokens.AccessTTL(), session.RefreshToken, h.tokens.RefreshTTL())
	pack.OK(c, session, "User logged in successfully")
}

// RefreshToken accepts the refresh token from the cookie or the body.
func (h *Handler) RefreshToken(ctx context.Context, c *app.RequestContext) {
	token := string(c.Cookie(pack.RefreshTokenCookie))
	if token == "" {
		var req RefreshParam
		if err := c.BindAndValidate(&req); err != nil {
			pack.BindError(c, err)
			return
		}
		token = req.RefreshToken
	}
	session, err := h.users.Refresh(ctx, token)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	h.cookies.SetSession(c, session.AccessToken, h.tokens.AccessTTL(), session.RefreshToken, h.tokens.RefreshTTL())
	pack.OK(c, session, "Access token refreshed")
}

func (h *Handler) Logout(ctx context.Context, c *app.RequestContext) {
	if err := h.users.Logout(ctx, pack.CurrentUser(c).ID); err != nil {
		pack.SendError(c, err)
		return
	}
	h.cookies.ClearSession(c)
	pack.OK(c, nil, "User logged out")
}

func (h *Handler) CurrentUser(ctx context.Context, c *app.RequestContext) {
	pack.OK(c, pack.CurrentUser(c), "Current user fetched successfully")
}

func (h *Handler) ChangePassword(ctx context.Context, c *app.RequestContext) {
	var req ChangePasswordParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.BindError(c, err)
		return
	}
	if err := h.users.ChangePassword(ctx, pack.CurrentUser(c).ID, req.OldPassword, req.NewPassword); err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, nil, "Password changed successfully")
}

func (h *Handler) UpdateAccount(ctx context.Context, c *app.RequestContext) {
	var req UpdateAccountParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.BindError(c, err)
		return
	}
	user, err := h.users.UpdateAccount(ctx, pack.CurrentUser(c).ID, req.FullName, req.Email)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, user, "Account details updated successfully")
}

func (h *Handler) UpdateAvatar(ctx context.Context, c *app.RequestContext) {
	h.replaceImage(ctx, c, "avatar", h.users.UpdateAvatar, "Avatar updated successfully")
}

func (h *Handler) UpdateCoverImage(ctx context.Context, c *app.RequestContext) {
	h.replaceImage(ctx, c, "coverImage", h.users.UpdateCoverImage, "Cover image updated successfully")
}

type replaceFunc = func(ctx context.Context, userID, localPath string) (*model.User, error)

func (h *Handler) replaceImage(ctx context.Context, c *app.RequestContext, field string, replace replaceFunc, message string) {
	files, err := pack.StageFiles(c, field)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	defer files.Cleanup()
	user, err := replace(ctx, pack.CurrentUser(c).ID, files[field])
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, user, message)
}

func (h *Handler) ChannelProfile(ctx context.Context, c *app.RequestContext) {
	profile, err := h.users.ChannelProfile(ctx, c.Param("username"), pack.CurrentUser(c).ID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, profile, "Channel fetched successfully")
}

func (h *Handler) WatchHistory(ctx context.Context, c *app.RequestContext) {
	page, err := h.users.WatchHistory(ctx, pack.CurrentUser(c).ID, pack.PageParam(c, h.maxLimit))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.OK(c, page, "Watch history fetched successfully")
}
