// Package ports declares the interfaces between the analytics engine and
// its external collaborators. The engine never fetches, caches, or
// persists anything itself; callers hand in already-materialized events.
package ports

import (
	"context"

	"pitchlens/domain/pitch"
)

// SeasonSource supplies the ordered pitch events for one pitcher-season.
type SeasonSource interface {
	FetchSeason(ctx context.Context, pitcherID, season int) ([]pitch.PitchEvent, error)
}

// SeasonStore persists fetched seasons so repeated analyses skip the
// upstream fetch.
type SeasonStore interface {
	SaveSeason(ctx context.Context, pitcherID, season int, events []pitch.PitchEvent) error
	LoadSeason(ctx context.Context, pitcherID, season int) ([]pitch.PitchEvent, bool, error)
}

// ResultExporter writes an analysis result to an external representation
// (workbook, file, ...).
type ResultExporter interface {
	Export(path string) error
}
