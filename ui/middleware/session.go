package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionKey is the gin context key holding the visitor's session id
const SessionKey = "sessionID"

// Session assigns every visitor a UUID cookie. Unknown or malformed cookies
// are replaced.
func Session(cookieName string, maxAge time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id uuid.UUID
		if raw, err := c.Cookie(cookieName); err == nil {
			if parsed, err := uuid.Parse(raw); err == nil {
				id = parsed
			}
		}
		if id == uuid.Nil {
			id = uuid.New()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, id.String(), int(maxAge.Seconds()), "/", "", false, true)
		c.Set(SessionKey, id)
		c.Next()
	}
}

// SessionID returns the id set by Session, or uuid.Nil
func SessionID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(SessionKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
