package middleware

import (
	"time"

	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName 會話 Cookie 名稱
	SessionCookieName = "session_id"
	// SessionContextKey 存在 gin context 的鍵
	SessionContextKey = "session_id"
)

// Session 會話中間件。
// 只負責派發和回讀會話 ID；會話內容本身存在 Redis，
// 過期由 Redis 的 key TTL 決定，這裡的 Cookie MaxAge 只是對齊。
func Session(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookieName)
		if err != nil || sid == "" {
			sid = common.GenerateUUID()
			c.SetCookie(SessionCookieName, sid, int(ttl.Seconds()), "/", "", false, true)
		}

		c.Set(SessionContextKey, sid)
		c.Next()
	}
}

// SessionID 從 gin context 取出會話 ID
func SessionID(c *gin.Context) string {
	return c.GetString(SessionContextKey)
}
