package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/vidsync/pkg/response"
)

// ContextUserKey 当前请求用户 ID 在 gin context 中的键
const ContextUserKey = "userID"

// RequireUser resolves the acting user for history and mutation routes.
// With a secret configured it verifies a Bearer HS256 token and takes the
// user id from the "sub" claim; with no secret (local/dev deployments) it
// trusts the X-User-ID header.
func RequireUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			uid := c.GetHeader("X-User-ID")
			if uid == "" {
				response.Unauthorized(c, "missing X-User-ID header")
				c.Abort()
				return
			}
			c.Set(ContextUserKey, uid)
			c.Next()
			return
		}

		raw := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if raw == "" || raw == c.GetHeader("Authorization") {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !tok.Valid {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		sub, err := tok.Claims.GetSubject()
		if err != nil || sub == "" {
			response.Unauthorized(c, "token has no subject")
			c.Abort()
			return
		}
		c.Set(ContextUserKey, sub)
		c.Next()
	}
}

// UserID returns the authenticated user id set by RequireUser.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserKey)
}
