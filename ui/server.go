package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"interviewprep/app"
	"interviewprep/internal/logging"
	"interviewprep/internal/speech"
	"interviewprep/ui/middleware"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// Options configures the web server
type Options struct {
	Service      *app.QuizService
	Catalog      *app.Catalog
	API          http.Handler // mounted under /api/v1 when set
	Speaker      speech.Speaker
	CookieName   string
	CookieMaxAge time.Duration
	GinMode      string
	Logger       *logging.Logger
}

// Server represents the web server for the quiz page
type Server struct {
	router    *gin.Engine
	service   *app.QuizService
	catalog   *app.Catalog
	speaker   speech.Speaker
	templates *template.Template
	logger    *logging.Logger
	http      *http.Server
}

// NewServer parses the templates and sets up routes
func NewServer(opts Options) (*Server, error) {
	if opts.Service == nil || opts.Catalog == nil {
		return nil, fmt.Errorf("ui server needs a quiz service and a catalog")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.CookieName == "" {
		opts.CookieName = "interviewprep_session"
	}
	if opts.CookieMaxAge <= 0 {
		opts.CookieMaxAge = 2 * time.Hour
	}
	if opts.GinMode != "" {
		gin.SetMode(opts.GinMode)
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.New(),
		service:   opts.Service,
		catalog:   opts.Catalog,
		speaker:   opts.Speaker,
		templates: templates,
		logger:    opts.Logger,
	}

	s.setupMiddleware(opts)
	s.setupRoutes(opts.API)
	return s, nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestLogger(s.logger))

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		s.logger.Error("[Static] error creating static filesystem: %v", err)
	} else {
		s.router.StaticFS("/static", http.FS(staticFS))
	}

	s.router.Use(middleware.Session(opts.CookieName, opts.CookieMaxAge))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes(api http.Handler) {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/progress", s.handleProgress)
	s.router.GET("/healthz", s.handleHealth)

	s.router.POST("/category", s.handleAction(app.ActionCategory))
	s.router.POST("/question", s.handleAction(app.ActionQuestion))
	s.router.POST("/previous", s.handleAction(app.ActionPrevious))
	s.router.POST("/answer", s.handleAction(app.ActionAnswer))
	s.router.POST("/submit", s.handleAction(app.ActionSubmit))
	s.router.POST("/reveal", s.handleAction(app.ActionReveal))

	if api != nil {
		s.router.Any("/api/v1/*path", gin.WrapH(http.StripPrefix("/api/v1", api)))
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting Interview Prep on http://%s", addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
