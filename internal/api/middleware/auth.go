package middleware

import (
	"Pollhive/internal/pkg/redis"
	"Pollhive/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 校验会话并把 user_id 注入 Context。
// 会话标识优先取 X-Session-ID 头，其次取同名 Cookie。
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			sessionID, _ = c.Cookie("session_id")
		}
		if sessionID == "" {
			response.Fail(c, response.Unauthorized, "会话缺失")
			c.Abort()
			return
		}

		session, err := redis.GetSession(c.Request.Context(), sessionID)
		if err != nil {
			response.Fail(c, response.InternalServerError, "未知错误")
			c.Abort()
			return
		}
		if session == nil || session.UserID == "" {
			response.Fail(c, response.Unauthorized, "会话无效或已过期")
			c.Abort()
			return
		}

		c.Set("user_id", session.UserID)
		c.Next()
	}
}
