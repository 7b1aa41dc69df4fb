package app

import (
	"context"

	"pitchlens/domain/pitch"
	"pitchlens/ports"
)

// StoredSource reads seasons through a persistent store, falling back to
// the inner source on a miss and writing the fetch back. Store write
// failures do not fail the read.
type StoredSource struct {
	store  ports.SeasonStore
	source ports.SeasonSource
	onWarn func(format string, args ...interface{})
}

// NewStoredSource composes a store in front of a source. warn may be nil.
func NewStoredSource(store ports.SeasonStore, source ports.SeasonSource, warn func(format string, args ...interface{})) *StoredSource {
	if warn == nil {
		warn = func(string, ...interface{}) {}
	}
	return &StoredSource{store: store, source: source, onWarn: warn}
}

// FetchSeason implements ports.SeasonSource.
func (s *StoredSource) FetchSeason(ctx context.Context, pitcherID, season int) ([]pitch.PitchEvent, error) {
	events, found, err := s.store.LoadSeason(ctx, pitcherID, season)
	if err != nil {
		s.onWarn("season store read failed for %d/%d: %v", pitcherID, season, err)
	} else if found {
		return events, nil
	}

	events, err = s.source.FetchSeason(ctx, pitcherID, season)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveSeason(ctx, pitcherID, season, events); err != nil {
		s.onWarn("season store write failed for %d/%d: %v", pitcherID, season, err)
	}
	return events, nil
}
