package ui

import (
	"bytes"
	"log"

	"github.com/gin-gonic/gin"
)

// renderTemplate executes a template into a buffer first so template
// errors surface as a 500 instead of a half-written page.
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("[renderTemplate] template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed"})
		return
	}

	// Keep any status a handler already set (e.g. a 404 error page);
	// gin defaults to 200 on first write otherwise.
	c.Header("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("[renderTemplate] error writing response: %v", err)
	}
}
