package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/users"
)

const (
	CtxUserID = "user_id"
	CtxUser   = "user"
)

// SetUser stores the authenticated caller on the Gin context.
func SetUser(c *gin.Context, u *users.User) {
	c.Set(CtxUserID, u.ID)
	c.Set(CtxUser, u)
}

// UserID returns the authenticated caller's identity, or "" when the request was not
// authenticated.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

// CurrentUser returns the authenticated caller set by the auth middleware.
func CurrentUser(c *gin.Context) (*users.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*users.User)
	return u, ok
}
