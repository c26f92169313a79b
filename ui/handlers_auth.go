package ui

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillboard/internal/auth"
)

// loginView is the login page view model.
type loginView struct {
	Error         string
	ShowHint      bool
	DatasetLoaded bool
}

func (s *Server) handleLoginPage(c *gin.Context) {
	sess := currentSession(c)
	if sess != nil && sess.Authenticated {
		c.Redirect(http.StatusFound, "/")
		return
	}
	s.renderTemplate(c, "login.html", loginView{DatasetLoaded: s.datasets.Loaded()})
}

// handleLogin validates credentials and transitions the session to a
// role view. Failures render one generic message; the password-scheme
// hint only shows when a dataset is loaded.
func (s *Server) handleLogin(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		s.renderTemplate(c, "login.html", loginView{
			Error:         "Please enter both email and password",
			DatasetLoaded: s.datasets.Loaded(),
		})
		return
	}

	result, ok := auth.Authenticate(email, password, s.datasets.Snapshot())
	if !ok {
		log.Printf("[handleLogin] failed login attempt")
		s.renderTemplate(c, "login.html", loginView{
			Error:         "Invalid credentials.",
			ShowHint:      s.datasets.Loaded(),
			DatasetLoaded: s.datasets.Loaded(),
		})
		return
	}

	sess := currentSession(c)
	s.sessions.Login(sess.ID, result)
	log.Printf("[handleLogin] %s logged in as %s", result.Email, result.Role)
	c.Redirect(http.StatusFound, "/")
}

// handleLogout clears the session; the dataset outlives any session.
func (s *Server) handleLogout(c *gin.Context) {
	sess := currentSession(c)
	if sess != nil {
		s.sessions.Logout(sess.ID)
	}
	c.Redirect(http.StatusFound, "/login")
}
