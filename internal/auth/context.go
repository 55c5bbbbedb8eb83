package auth

import "github.com/gin-gonic/gin"

const sessionKey = "session"

// SetSession stores the session on the request context.
func SetSession(c *gin.Context, s Session) {
	c.Set(sessionKey, s)
}

// GetSession returns the authenticated session, or a zero Session.
func GetSession(c *gin.Context) Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(Session); ok {
			return s
		}
	}
	return Session{}
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return GetSession(c).UserID
}
