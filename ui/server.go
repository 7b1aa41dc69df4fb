// Package ui exposes the analysis engine over HTTP: a gin JSON API for
// the analytics operations and a small chi router for health and version
// endpoints.
package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pitchlens/app"
	"pitchlens/domain/core"
	"pitchlens/internal"
	"pitchlens/internal/errors"
)

// Server represents the JSON API server.
type Server struct {
	router   *gin.Engine
	analysis *app.AnalysisService
	batch    *app.BatchService
	logger   *internal.Logger
}

// Config holds API server configuration.
type Config struct {
	Port    string
	GinMode string
}

// NewServer creates the API server around the application services.
func NewServer(config Config, analysis *app.AnalysisService, batch *app.BatchService) *Server {
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}

	s := &Server{
		router:   gin.New(),
		analysis: analysis,
		batch:    batch,
		logger:   internal.DefaultLogger,
	}
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestID())
	s.setupRoutes()
	return s
}

// Router exposes the underlying handler for serving and tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the server on the given address.
func (s *Server) Run(addr string) error {
	s.logger.Info("api server listening on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	meta := api.Group("/meta")
	meta.GET("/metrics", s.handleMetaMetrics)
	meta.GET("/seasons", s.handleMetaSeasons)
	meta.GET("/pitch-types", s.handleMetaPitchTypes)
	meta.GET("/columns", s.handleMetaColumns)

	pitcher := api.Group("/pitcher")
	pitcher.GET("/:pitcher/season/:season/dates", s.handleSeasonDates)
	pitcher.GET("/:pitcher/season/:season/pitch-types", s.handleSeasonPitchTypes)

	analysis := api.Group("/analysis")
	analysis.POST("/pitch-metrics", s.handlePitchMetrics)
	analysis.POST("/outcomes", s.handleOutcomes)
	analysis.POST("/signals", s.handleSignals)
	analysis.POST("/report", s.handleReport)

	regression := api.Group("/regression")
	regression.POST("/run", s.handleRegression)
	regression.POST("/batch", s.handleBatchRegression)
}

// requestID tags every request so log lines correlate across handlers.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// respondError maps domain errors onto HTTP statuses: missing data is 404,
// malformed analysis requests are 422, everything else is 500.
func (s *Server) respondError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")

	status := http.StatusInternalServerError
	switch {
	case core.IsDataNotFound(err):
		status = http.StatusNotFound
	case core.IsInvalidWindow(err), core.IsInsufficientData(err), core.IsSingularMatrix(err):
		status = http.StatusUnprocessableEntity
	default:
		switch errors.GetCode(err) {
		case errors.CodeInvalidInput:
			status = http.StatusBadRequest
		case errors.CodeNotFound:
			status = http.StatusNotFound
		case errors.CodeExternalService:
			status = http.StatusBadGateway
		}
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request %s failed: %v", requestID, err)
	} else {
		s.logger.Debug("request %s rejected: %v", requestID, err)
	}

	c.JSON(status, gin.H{
		"error":      err.Error(),
		"request_id": requestID,
	})
}
