package middleware

import (
	"strings"

	"cybersafe_backend/internal/config"
	"cybersafe_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminCookieName is the admin session token cookie.
const AdminCookieName = "cybersafe_admin"

// AdminAuth guards back-office routes. The token travels in an HttpOnly
// cookie; a Bearer header is accepted too for scripted access. Demo mode
// skips the check entirely and acts as a synthetic read-only "demo" admin;
// the services reject any write in that mode.
func AdminAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Admin.DemoMode {
			c.Set("admin", &util.AdminClaims{Username: "demo"})
			c.Next()
			return
		}

		tokenString, _ := c.Cookie(AdminCookieName)

		if tokenString == "" {
			if h := c.GetHeader("Authorization"); h != "" {
				tokenString = strings.TrimPrefix(h, "Bearer ")
			}
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseAdminJWT(tokenString, cfg.Admin.JWTSecret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("admin", claims)
		c.Next()
	}
}
