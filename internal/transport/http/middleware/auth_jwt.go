package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-blog/internal/core/auth"
	resp "go-gin-blog/internal/transport/http/response"
)

// UserChecker reports whether a token's subject still exists.
type UserChecker interface {
	Known(ctx context.Context, uid string) (bool, error)
}

// AuthJWT 校验 Bearer token，写入 userId / role / email。
// requireRole 为空时只要求登录；users 为 nil 时不回查用户表。
func AuthJWT(j *auth.JWTer, requireRole string, users UserChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if users != nil {
			ok, err := users.Known(c.Request.Context(), claims.UID)
			if err != nil {
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeServerError, "auth check failed"))
				return
			}
			if !ok {
				c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "unknown user"))
				return
			}
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set("claims", claims)
		c.Set("userId", claims.UID)
		c.Set("role", claims.Role)
		c.Set("email", claims.Email)
		c.Next()
	}
}
