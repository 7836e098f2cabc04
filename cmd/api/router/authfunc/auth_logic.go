package authfunc

import (
	"context"

	"TubeFuss.com/cmd/api/handlers/pack"
	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

// Authenticator resolves an access token to its account.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
}

func Auth(authn Authenticator) []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		AccessTokenAuthFunc(authn),
	)
}

// AccessTokenAuthFunc reads the access token from the cookie or the bearer
// header and attaches the account; anything else is a 401.
func AccessTokenAuthFunc(authn Authenticator) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		token := pack.BearerToken(c, pack.AccessTokenCookie)
		if token == "" {
			pack.SendError(c, errno.AuthenticationErr)
			c.Abort()
			return
		}
		user, err := authn.Authenticate(ctx, token)
		if err != nil {
			pack.SendError(c, err)
			c.Abort()
			return
		}
		c.Set(pack.UserKey, user)
		c.Next(ctx)
	}
}
