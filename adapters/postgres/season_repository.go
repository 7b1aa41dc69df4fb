// Package postgres persists fetched seasons so analyses survive restarts
// and repeated runs skip the upstream fetch entirely.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"pitchlens/domain/pitch"
	"pitchlens/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS pitcher_seasons (
	pitcher_id INTEGER NOT NULL,
	season     INTEGER NOT NULL,
	events     JSONB   NOT NULL,
	fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (pitcher_id, season)
)`

// seasonRepository implements the SeasonStore interface
type seasonRepository struct {
	db *sqlx.DB
}

// NewSeasonRepository creates a season store backed by postgres.
func NewSeasonRepository(db *sqlx.DB) ports.SeasonStore {
	return &seasonRepository{db: db}
}

// Connect opens a postgres connection and ensures the schema exists.
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return db, nil
}

// SaveSeason upserts the full event list for one pitcher-season.
func (r *seasonRepository) SaveSeason(ctx context.Context, pitcherID, season int, events []pitch.PitchEvent) error {
	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	query := `INSERT INTO pitcher_seasons (pitcher_id, season, events, fetched_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (pitcher_id, season)
		DO UPDATE SET events = EXCLUDED.events, fetched_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, pitcherID, season, eventsJSON); err != nil {
		return fmt.Errorf("failed to save season: %w", err)
	}
	return nil
}

// LoadSeason returns the stored events for one pitcher-season; the bool
// reports whether a row existed.
func (r *seasonRepository) LoadSeason(ctx context.Context, pitcherID, season int) ([]pitch.PitchEvent, bool, error) {
	query := `SELECT events FROM pitcher_seasons WHERE pitcher_id = $1 AND season = $2`

	var eventsJSON []byte
	err := r.db.QueryRowContext(ctx, query, pitcherID, season).Scan(&eventsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load season: %w", err)
	}

	var events []pitch.PitchEvent
	if err := json.Unmarshal(eventsJSON, &events); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal events: %w", err)
	}
	return events, true, nil
}
