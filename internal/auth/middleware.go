package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	dom "megawarez/internal/domain"
	"megawarez/internal/dto"
)

const (
	contextKeySession = "session"
	headerAuth        = "Authorization"
)

// TokenFromRequest returns the raw Authorization header value.
func TokenFromRequest(c *gin.Context) string {
	return c.GetHeader(headerAuth)
}

// SessionFromContext returns the session set by RequireSession.
func SessionFromContext(c *gin.Context) (dom.Session, bool) {
	v, ok := c.Get(contextKeySession)
	if !ok {
		return dom.Session{}, false
	}
	sess, ok := v.(dom.Session)
	return sess, ok
}

// UserIDFromContext returns the current user ID set by RequireSession. 0 if not set.
func UserIDFromContext(c *gin.Context) int64 {
	sess, _ := SessionFromContext(c)
	return sess.UserID
}

// RequireSession rejects requests whose Authorization header does not name a
// live session and stores the session in the gin context otherwise.
func RequireSession(sessions *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := sessions.Lookup(c.Request.Context(), TokenFromRequest(c))
		if err != nil {
			if errors.Is(err, dom.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("authorization required"))
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail(err.Error()))
			return
		}
		c.Set(contextKeySession, sess)
		c.Next()
	}
}
