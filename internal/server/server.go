// Package server exposes the catalog converter over HTTP: a minimal
// upload page, a conversion endpoint that hands back a download link
// and an ephemeral JSON parse API.
package server

import (
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"catalog-csv/internal/catalog"
	"catalog-csv/internal/config"
	"catalog-csv/internal/fileutils"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Server wraps the echo instance and the shared processor.
type Server struct {
	Echo *echo.Echo

	cfg       *config.Config
	processor *catalog.Processor
	uploadDir string
}

// New builds the server: middleware, routes and the upload directory.
// When no upload directory is configured a temporary one is created.
func New(cfg *config.Config, processor *catalog.Processor) (*Server, error) {
	uploadDir := cfg.Web.UploadDir
	if uploadDir == "" {
		dir, err := os.MkdirTemp("", "catalog-uploads-")
		if err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
		uploadDir = dir
	} else if err := fileutils.EnsureDirectoryExists(uploadDir); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Web.MaxUploadMB)))

	s := &Server{
		Echo:      e,
		cfg:       cfg,
		processor: processor,
		uploadDir: uploadDir,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.Echo.GET("/", s.handleIndex)
	s.Echo.POST("/upload", s.handleUpload)
	s.Echo.GET("/download/:id/:filename", s.handleDownload)
	s.Echo.POST("/api/parse", s.handleParse)
}

// Start runs the server on the configured host and port. It blocks
// until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	log.WithField("addr", addr).Info("Starting catalog server")
	return s.Echo.Start(addr)
}
