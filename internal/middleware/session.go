package middleware

import (
	"net/http"

	"cybersafe_backend/internal/repository"
	"cybersafe_backend/internal/util"
	"cybersafe_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionCookieName carries the anonymous learner id.
const SessionCookieName = "cybersafe_sid"

const sessionCookieMaxAge = 30 * 24 * 60 * 60

// LearnerSession assigns every visitor an anonymous session id and makes
// sure a matching row exists. Ids a client invents itself are accepted only
// when they parse as UUIDs; anything else is replaced.
func LearnerSession(sessionRepo *repository.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookieName)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookieName, sid, sessionCookieMaxAge, "/", "", false, true)
		}

		if err := sessionRepo.Ensure(sid); err != nil {
			logger.Log.Error("failed to ensure learner session", zap.Error(err))
			util.InternalServerError(c)
			c.Abort()
			return
		}

		c.Set("sessionID", sid)
		c.Next()
	}
}

// GetSessionID returns the learner session id set by LearnerSession.
func GetSessionID(c *gin.Context) string {
	v, _ := c.Get("sessionID")
	sid, _ := v.(string)
	return sid
}
