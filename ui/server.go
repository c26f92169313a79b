// Package ui is the presentation layer: a gin server rendering
// role-specific dashboards from metrics outputs. Handlers build plain
// view models; every number comes from domain/metrics.
package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skillboard/internal/config"
	"skillboard/internal/session"
	"skillboard/internal/store"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// Server represents the dashboard web server.
type Server struct {
	router    *gin.Engine
	templates *template.Template
	sessions  *session.Store
	datasets  *store.DatasetStore
	cfg       *config.Config
	server    *http.Server
}

// NewServer creates the web server with its dependencies wired.
func NewServer(cfg *config.Config, datasets *store.DatasetStore) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:   gin.Default(),
		sessions: session.NewStore(),
		datasets: datasets,
		cfg:      cfg,
	}

	// Handlers pre-format every number, so the templates stay plain.
	templates, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = templates

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err == nil {
		s.router.StaticFS("/static", http.FS(staticFS))
	} else {
		log.Printf("[setupRoutes] static assets unavailable: %v", err)
	}

	s.router.Use(s.sessionMiddleware())

	s.router.GET("/", s.handleRoot)
	s.router.GET("/login", s.handleLoginPage)
	s.router.POST("/login", s.handleLogin)
	s.router.POST("/logout", s.handleLogout)

	admin := s.router.Group("/admin", s.requireRole(roleAdmin))
	{
		admin.GET("", s.handleAdminDashboard)
		admin.POST("/upload", s.handleUpload)
		admin.GET("/export/processed.csv", s.handleProcessedExport)
	}

	teacher := s.router.Group("/teacher", s.requireRole(roleTeacher))
	{
		teacher.GET("", s.handleTeacherDashboard)
		teacher.GET("/export/full.csv", s.handleFullExport)
		teacher.GET("/export/summary.csv", s.handleSummaryExport)
		teacher.GET("/export/summary.xlsx", s.handleSummaryWorkbookExport)
	}

	student := s.router.Group("/student", s.requireRole(roleStudent))
	{
		student.GET("", s.handleStudentDashboard)
	}

	api := s.router.Group("/api")
	{
		api.GET("/teacher/charts", s.requireRole(roleTeacher), s.handleTeacherCharts)
		api.GET("/student/charts", s.requireRole(roleStudent), s.handleStudentCharts)
	}
}

// Run serves until the context is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    ":" + s.cfg.Server.Port,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Run] dashboard listening on http://localhost:%s", s.cfg.Server.Port)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("[Run] shutting down")
		return s.server.Shutdown(shutdownCtx)
	}
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// handleRoot dispatches by role: LoggedOut renders login, otherwise the
// session's role view.
func (s *Server) handleRoot(c *gin.Context) {
	sess := currentSession(c)
	if sess == nil || !sess.Authenticated {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	switch sess.Role {
	case roleAdmin:
		c.Redirect(http.StatusFound, "/admin")
	case roleTeacher:
		c.Redirect(http.StatusFound, "/teacher")
	case roleStudent:
		c.Redirect(http.StatusFound, "/student")
	default:
		c.Redirect(http.StatusFound, "/login")
	}
}
