package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"Strategus/internal/shared/security"
	"Strategus/internal/shared/transport"
)

// PartyIDKey 是认证通过后写入 gin context 的键。
const PartyIDKey = "party_id"

// Auth 校验 Bearer Token 并把部队标识写入 gin context。
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		token = strings.TrimPrefix(token, "Bearer ")
		if token == "" {
			transport.SetErrorReason(c.Request.Context(), "missing token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": transport.Unauthorized,
				"msg":  "未登录",
			})
			return
		}

		_, claims, err := security.ParseToken(token)
		if err != nil {
			transport.SetErrorReason(c.Request.Context(), "invalid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": transport.Unauthorized,
				"msg":  "登录已失效",
			})
			return
		}

		c.Set(PartyIDKey, claims.PartyID)
		c.Next()
	}
}

// PartyID 读取认证中间件写入的部队标识。
func PartyID(c *gin.Context) (int, bool) {
	v, ok := c.Get(PartyIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
