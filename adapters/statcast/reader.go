package statcast

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"pitchlens/domain/core"
	"pitchlens/domain/pitch"
	"pitchlens/internal/errors"
)

// Reader fetches one pitcher-season of pitch events from the CSV endpoint.
type Reader struct {
	config     Config
	httpClient *http.Client
}

// NewReader creates a reader around the config.
func NewReader(config Config) *Reader {
	return &Reader{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// FetchSeason downloads and parses the pitch-level CSV for one pitcher-season.
func (r *Reader) FetchSeason(ctx context.Context, pitcherID, season int) ([]pitch.PitchEvent, error) {
	if !pitch.SeasonAvailable(season) {
		return nil, core.NewInvalidWindowError(fmt.Sprintf("season %d is not available", season))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.buildURL(pitcherID, season), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build statcast request")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, errors.ExternalServiceError("statcast", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.ExternalServiceError("statcast",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return ParseCSV(resp.Body)
}

func (r *Reader) buildURL(pitcherID, season int) string {
	q := url.Values{}
	q.Set("all", "true")
	q.Set("type", "details")
	q.Set("player_type", "pitcher")
	q.Set("pitchers_lookup[]", strconv.Itoa(pitcherID))
	q.Set("season", strconv.Itoa(season))
	q.Set("game_date_gt", fmt.Sprintf("%d-01-01", season))
	q.Set("game_date_lt", fmt.Sprintf("%d-12-31", season))
	return r.config.BaseURL + "?" + q.Encode()
}

// ParseCSV reads a pitch-level CSV stream into domain events. Columns are
// located by header name so upstream column reordering is harmless.
func ParseCSV(reader io.Reader) ([]pitch.PitchEvent, error) {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv header")
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}

	var events []pitch.PitchEvent
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read csv record")
		}

		cell := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		date, err := core.ParseGameDate(cell("game_date"))
		if err != nil {
			continue
		}

		events = append(events, pitch.PitchEvent{
			GameDate:    date,
			PitchType:   cell("pitch_type"),
			Velocity:    parseValue(cell("release_speed")),
			SpinRate:    parseValue(cell("release_spin_rate")),
			Extension:   parseValue(cell("release_extension")),
			BreakX:      inches(parseValue(cell("pfx_x"))),
			BreakZ:      inches(parseValue(cell("pfx_z"))),
			ReleaseX:    parseValue(cell("release_pos_x")),
			ReleaseZ:    parseValue(cell("release_pos_z")),
			Zone:        parseInt(cell("zone")),
			Balls:       parseInt(cell("balls")),
			Strikes:     parseInt(cell("strikes")),
			Description: cell("description"),
			Event:       cell("events"),
			BattedBall:  cell("bb_type"),
			LaunchSpeed: parseValue(cell("launch_speed")),
		})
	}
	return events, nil
}

// parseValue maps blank or unparseable cells to null.
func parseValue(s string) core.Value {
	if s == "" || s == "null" {
		return core.None()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return core.None()
	}
	return core.Some(f)
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// inches converts the feet-based movement columns to inches.
func inches(v core.Value) core.Value {
	f, ok := v.Float()
	if !ok {
		return core.None()
	}
	return core.Some(f * 12)
}
