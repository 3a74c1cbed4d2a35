package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookieName identifies the browsing session used for view
// deduplication. The cookie is opaque and carries no identity.
const SessionCookieName = "forum_session"

// Session ensures every request carries a stable browsing-session id,
// assigning a fresh one when the cookie is absent.
func Session(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookieName)
		if err != nil || sid == "" {
			sid = uuid.New().String()
			c.SetCookie(SessionCookieName, sid, maxAgeSeconds, "/", "", false, true)
		}
		c.Set("sessionID", sid)
		c.Next()
	}
}

// GetSessionID extracts the browsing-session id from context
func GetSessionID(c *gin.Context) string {
	sid, exists := c.Get("sessionID")
	if !exists {
		return ""
	}
	if str, ok := sid.(string); ok {
		return str
	}
	return ""
}
