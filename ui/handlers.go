package ui

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pitchlens/app"
	"pitchlens/domain/pitch"
	"pitchlens/domain/regression"
	"pitchlens/internal/errors"
)

type metricEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Unit  string `json:"unit"`
}

// handleMetaMetrics lists the pitch metrics and outcome stats the engine
// can aggregate, in catalog order.
func (s *Server) handleMetaMetrics(c *gin.Context) {
	metrics := make([]metricEntry, 0, len(pitch.AllMetrics()))
	for _, m := range pitch.AllMetrics() {
		info := pitch.MetricCatalog[m]
		metrics = append(metrics, metricEntry{Key: string(m), Label: info.Label, Unit: info.Unit})
	}

	outcomes := make([]metricEntry, 0, len(pitch.AllOutcomeStats()))
	for _, o := range pitch.AllOutcomeStats() {
		info := pitch.OutcomeCatalog[o]
		outcomes = append(outcomes, metricEntry{Key: string(o), Label: info.Label, Unit: info.Unit})
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics":  metrics,
		"outcomes": outcomes,
	})
}

func (s *Server) handleMetaSeasons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"seasons": pitch.AvailableSeasons})
}

func (s *Server) handleMetaPitchTypes(c *gin.Context) {
	types := make([]metricEntry, 0)
	for _, code := range pitch.PitchTypeCodes() {
		types = append(types, metricEntry{Key: code, Label: pitch.PitchTypeLabel(code)})
	}
	c.JSON(http.StatusOK, gin.H{"pitch_types": types})
}

// handleMetaColumns lists the feature columns available for a regression
// against one pitcher-season.
func (s *Server) handleMetaColumns(c *gin.Context) {
	pitcherID, season, ok := s.pitcherSeasonQuery(c)
	if !ok {
		return
	}

	columns, err := s.analysis.FeatureColumns(c.Request.Context(), pitcherID, season)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

// handleSeasonDates lists the pitcher's game dates so callers can discover
// valid target dates before asking for a comparison.
func (s *Server) handleSeasonDates(c *gin.Context) {
	pitcherID, season, ok := s.pitcherSeasonParams(c)
	if !ok {
		return
	}

	dates, err := s.analysis.GameDates(c.Request.Context(), pitcherID, season)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (s *Server) handleSeasonPitchTypes(c *gin.Context) {
	pitcherID, season, ok := s.pitcherSeasonParams(c)
	if !ok {
		return
	}

	codes, err := s.analysis.SeasonPitchTypes(c.Request.Context(), pitcherID, season)
	if err != nil {
		s.respondError(c, err)
		return
	}

	types := make([]metricEntry, 0, len(codes))
	for _, code := range codes {
		types = append(types, metricEntry{Key: code, Label: pitch.PitchTypeLabel(code)})
	}
	c.JSON(http.StatusOK, gin.H{"pitch_types": types})
}

func (s *Server) handlePitchMetrics(c *gin.Context) {
	var req app.PitchMetricsRequest
	if !s.bind(c, &req) {
		return
	}

	result, err := s.analysis.AnalyzePitchMetrics(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comparison": result.Comparison})
}

func (s *Server) handleOutcomes(c *gin.Context) {
	var req app.PitchMetricsRequest
	if !s.bind(c, &req) {
		return
	}

	result, err := s.analysis.AnalyzePitchMetrics(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcomes": result.Outcomes})
}

func (s *Server) handleSignals(c *gin.Context) {
	var req app.SignalsRequest
	if !s.bind(c, &req) {
		return
	}

	signals, err := s.analysis.DetectSignals(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, signals)
}

// handleReport renders the comparison as an HTML report.
func (s *Server) handleReport(c *gin.Context) {
	var req app.PitchMetricsRequest
	if !s.bind(c, &req) {
		return
	}

	result, err := s.analysis.AnalyzePitchMetrics(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	html := RenderReportHTML(ReportData{
		PitcherID:  req.PitcherID,
		TargetDate: req.TargetDate,
		Window:     req.Window,
		Comparison: result.Comparison,
		Outcomes:   result.Outcomes,
	})
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) handleRegression(c *gin.Context) {
	var req app.RegressionRequest
	if !s.bind(c, &req) {
		return
	}

	result, err := s.analysis.RunRegression(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type batchRequest struct {
	PitcherIDs []int                    `json:"pitcher_ids"`
	Season     int                      `json:"season"`
	Dependent  string                   `json:"y_col"`
	Features   []regression.FeatureSpec `json:"features"`
}

func (s *Server) handleBatchRegression(c *gin.Context) {
	var req batchRequest
	if !s.bind(c, &req) {
		return
	}
	if len(req.PitcherIDs) == 0 {
		s.respondError(c, errors.InvalidInput("pitcher_ids must not be empty"))
		return
	}

	result, err := s.batch.RunRegressions(c.Request.Context(), req.PitcherIDs, req.Season, req.Dependent, req.Features)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) bind(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "invalid request body: " + err.Error(),
			"request_id": c.GetString("request_id"),
		})
		return false
	}
	return true
}

func (s *Server) pitcherSeasonParams(c *gin.Context) (pitcherID, season int, ok bool) {
	var err error
	pitcherID, err = strconv.Atoi(c.Param("pitcher"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("pitcher must be an integer"))
		return 0, 0, false
	}
	season, err = strconv.Atoi(c.Param("season"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("season must be an integer"))
		return 0, 0, false
	}
	return pitcherID, season, true
}

func (s *Server) pitcherSeasonQuery(c *gin.Context) (pitcherID, season int, ok bool) {
	var err error
	pitcherID, err = strconv.Atoi(c.Query("pitcher_id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("pitcher_id must be an integer"))
		return 0, 0, false
	}
	season, err = strconv.Atoi(c.Query("season"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("season must be an integer"))
		return 0, 0, false
	}
	return pitcherID, season, true
}
