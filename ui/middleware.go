package ui

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillboard/internal/auth"
	"skillboard/internal/session"
)

const (
	sessionCookie = "skillboard_session"
	sessionKey    = "session"

	roleAdmin   = auth.RoleAdmin
	roleTeacher = auth.RoleTeacher
	roleStudent = auth.RoleStudent
)

// sessionMiddleware resolves the client's session from its cookie,
// creating a fresh logged-out session on first interaction.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *session.Session
		if id, err := c.Cookie(sessionCookie); err == nil {
			sess = s.sessions.Get(id)
		}
		if sess == nil {
			sess = s.sessions.Create()
			c.SetCookie(sessionCookie, sess.ID, 0, "/", "", false, true)
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// currentSession returns the request's session. The middleware always
// sets one.
func currentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}

// requireRole gates a route group on an authenticated session with the
// given role. Everyone else lands back on the login page.
func (s *Server) requireRole(role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		if sess == nil || !sess.Authenticated || sess.Role != role {
			log.Printf("[requireRole] denied %s for %s", c.Request.URL.Path, c.ClientIP())
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
