package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchlens/app"
	"pitchlens/domain/core"
	"pitchlens/domain/pitch"
	"pitchlens/internal/testkit"
)

type stubSource struct {
	seasons map[int][]pitch.PitchEvent
}

func (s *stubSource) FetchSeason(_ context.Context, pitcherID, _ int) ([]pitch.PitchEvent, error) {
	return s.seasons[pitcherID], nil
}

func testServer(t *testing.T) (*Server, core.GameDate) {
	t.Helper()

	events := testkit.GenerateSeason(testkit.DefaultSeasonConfig())
	last := events[0].GameDate
	for _, e := range events {
		if last.Before(e.GameDate) {
			last = e.GameDate
		}
	}

	analysis := app.NewAnalysisService(&stubSource{seasons: map[int][]pitch.PitchEvent{1: events}})
	batch := app.NewBatchService(analysis, 2)
	return NewServer(Config{GinMode: gin.TestMode}, analysis, batch), last
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	out := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func TestMetaMetrics(t *testing.T) {
	s, _ := testServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/meta/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "metrics")
	assert.Contains(t, body, "outcomes")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestMetaSeasons(t *testing.T) {
	s, _ := testServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/meta/seasons", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2024")
}

func TestMetaPitchTypes(t *testing.T) {
	s, _ := testServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/meta/pitch-types", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "4-Seam FB")
}

func TestMetaColumns(t *testing.T) {
	s, _ := testServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/meta/columns?pitcher_id=1&season=2024", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "velocity_FF")

	rec = doJSON(t, s, http.MethodGet, "/api/meta/columns?pitcher_id=abc&season=2024", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSeasonDatesEndpoint(t *testing.T) {
	s, last := testServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/pitcher/1/season/2024/dates", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Dates []core.GameDate `json:"dates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.Dates)
	assert.Equal(t, last, payload.Dates[len(payload.Dates)-1])
	for i := 1; i < len(payload.Dates); i++ {
		assert.True(t, payload.Dates[i-1].Before(payload.Dates[i]), "dates not ascending")
	}

	rec = doJSON(t, s, http.MethodGet, "/api/pitcher/99/season/2024/dates", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/pitcher/abc/season/2024/dates", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSeasonPitchTypesEndpoint(t *testing.T) {
	s, _ := testServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/pitcher/1/season/2024/pitch-types", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"FF"`)
	assert.Contains(t, rec.Body.String(), "Slider")
}

func TestPitchMetricsEndpoint(t *testing.T) {
	s, last := testServer(t)

	body := fmt.Sprintf(`{"pitcher_id":1,"season":2024,"target_date":%q,"window":{"kind":"rolling","n_days":30}}`, last)
	rec := doJSON(t, s, http.MethodPost, "/api/analysis/pitch-metrics", body)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Contains(t, decodeBody(t, rec), "comparison")
}

func TestPitchMetricsEndpoint_UnknownDate(t *testing.T) {
	s, _ := testServer(t)

	body := `{"pitcher_id":1,"season":2024,"target_date":"2024-12-25","window":{"kind":"rolling","n_days":30}}`
	rec := doJSON(t, s, http.MethodPost, "/api/analysis/pitch-metrics", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeBody(t, rec), "request_id")
}

func TestPitchMetricsEndpoint_InvalidWindow(t *testing.T) {
	s, last := testServer(t)

	body := fmt.Sprintf(`{"pitcher_id":1,"season":2024,"target_date":%q,"window":{"kind":"rolling","n_days":0}}`, last)
	rec := doJSON(t, s, http.MethodPost, "/api/analysis/pitch-metrics", body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPitchMetricsEndpoint_BadJSON(t *testing.T) {
	s, _ := testServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/analysis/pitch-metrics", `{"pitcher_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignalsEndpoint(t *testing.T) {
	s, last := testServer(t)

	body := fmt.Sprintf(`{"pitcher_id":1,"season":2024,"target_date":%q}`, last)
	rec := doJSON(t, s, http.MethodPost, "/api/analysis/signals", body)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Contains(t, decodeBody(t, rec), "arrows")

	body = fmt.Sprintf(`{"pitcher_id":1,"season":2024,"target_date":%q,"rolling_days":-5}`, last)
	rec = doJSON(t, s, http.MethodPost, "/api/analysis/signals", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReportEndpoint(t *testing.T) {
	s, last := testServer(t)

	body := fmt.Sprintf(`{"pitcher_id":1,"season":2024,"target_date":%q,"window":{"kind":"full_season","season":2024}}`, last)
	rec := doJSON(t, s, http.MethodPost, "/api/analysis/report", body)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<table>")
}

func TestRegressionEndpoint(t *testing.T) {
	s, _ := testServer(t)

	body := `{"pitcher_id":1,"season":2024,"y_col":"swstr_pct",` +
		`"features":[{"column":"velocity","kind":"rolling_mean","n":3}]}`
	rec := doJSON(t, s, http.MethodPost, "/api/regression/run", body)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	payload := decodeBody(t, rec)
	assert.Contains(t, payload, "model_summary")
	assert.Contains(t, payload, "coefficients")
	assert.Contains(t, payload, "diagnostics")
}

func TestRegressionEndpoint_MalformedFeatures(t *testing.T) {
	s, _ := testServer(t)

	for name, features := range map[string]string{
		"negative lag": `[{"column":"velocity","kind":"point_lag","n":-1}]`,
		"kind typo":    `[{"column":"velocity","kind":"rollng_mean","n":3}]`,
	} {
		body := `{"pitcher_id":1,"season":2024,"y_col":"swstr_pct","features":` + features + `}`
		rec := doJSON(t, s, http.MethodPost, "/api/regression/run", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "%s: body %s", name, rec.Body.String())
	}
}

func TestRegressionEndpoint_MissingSeason(t *testing.T) {
	s, _ := testServer(t)

	body := `{"pitcher_id":99,"season":2024,"y_col":"swstr_pct",` +
		`"features":[{"column":"velocity","kind":"point_lag","n":1}]}`
	rec := doJSON(t, s, http.MethodPost, "/api/regression/run", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBatchEndpoint(t *testing.T) {
	s, _ := testServer(t)

	body := `{"pitcher_ids":[1,99],"season":2024,"y_col":"swstr_pct",` +
		`"features":[{"column":"velocity","kind":"point_lag","n":1}]}`
	rec := doJSON(t, s, http.MethodPost, "/api/regression/batch", body)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	payload := decodeBody(t, rec)
	assert.Contains(t, payload, "batch_id")

	var items []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload["items"], &items))
	require.Len(t, items, 2)
}

func TestBatchEndpoint_EmptyList(t *testing.T) {
	s, _ := testServer(t)

	body := `{"pitcher_ids":[],"season":2024,"y_col":"swstr_pct","features":[]}`
	rec := doJSON(t, s, http.MethodPost, "/api/regression/batch", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
