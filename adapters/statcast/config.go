// Package statcast fetches pitcher pitch-by-pitch CSV data over HTTP and
// maps it into domain events. Blank numeric cells become null values, never
// zeros.
package statcast

import "time"

// Config holds the upstream CSV endpoint settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig points at the public search CSV endpoint.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://baseballsavant.mlb.com/statcast_search/csv",
		Timeout: 30 * time.Second,
	}
}
