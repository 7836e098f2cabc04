package pack

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"TubeFuss.com/pkg/database"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/google/uuid"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// PageParam reads page and limit from the query string.
func PageParam(c *app.RequestContext, maxLimit int) database.PageParam {
	return database.ParsePageParam(c.Query("page"), c.Query("limit"), maxLimit)
}

// StagedFiles maps multipart field names to local temp paths.
type StagedFiles map[string]string

// Cleanup removes whatever is still on disk; the media host removes files it uploaded.
func (f StagedFiles) Cleanup() {
	for _, p := range f {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			hlog.Warnf("remove staged file %s failed: %v", p, err)
		}
	}
}

// StageFiles saves the named multipart files to a temp dir. Absent fields are skipped.
func StageFiles(c *app.RequestContext, fields ...string) (StagedFiles, error) {
	staged := make(StagedFiles, len(fields))
	dir := filepath.Join(os.TempDir(), "tubefuss")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return staged, err
	}
	for _, field := range fields {
		fh, err := c.FormFile(field)
		if err != nil || fh == nil {
			continue
		}
		dst := filepath.Join(dir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
		if err = c.SaveUploadedFile(fh, dst); err != nil {
			staged.Cleanup()
			return nil, err
		}
		staged[field] = dst
	}
	return staged, nil
}

// CookieConfig controls the session cookies.
type CookieConfig struct {
	Secure bool
}

func (cc CookieConfig) SetSession(c *app.RequestContext, access string, accessTTL time.Duration, refresh string, refreshTTL time.Duration) {
	c.SetCookie(AccessTokenCookie, access, int(accessTTL.Seconds()), "/", "", protocol.CookieSameSiteLaxMode, cc.Secure, true)
	c.SetCookie(RefreshTokenCookie, refresh, int(refreshTTL.Seconds()), "/", "", protocol.CookieSameSiteLaxMode, cc.Secure, true)
}

func (cc CookieConfig) ClearSession(c *app.RequestContext) {
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", protocol.CookieSameSiteLaxMode, cc.Secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", protocol.CookieSameSiteLaxMode, cc.Secure, true)
}
