// Package testkit generates deterministic synthetic seasons for tests and
// local development. Same seed, same season.
package testkit

import (
	"fmt"
	"math/rand"

	"pitchlens/domain/core"
	"pitchlens/domain/pitch"
)

// SeasonConfig shapes a generated season.
type SeasonConfig struct {
	Seed         int64
	Season       int
	Games        int
	PitchesPer   int
	PitchTypes   []string
	BaseVelocity map[string]float64
	StartMonth   int
	StartDay     int
	DaysBetween  int
}

// DefaultSeasonConfig is a two-pitch starter making 20 starts on regular rest.
func DefaultSeasonConfig() SeasonConfig {
	return SeasonConfig{
		Seed:       1,
		Season:     2024,
		Games:      20,
		PitchesPer: 80,
		PitchTypes: []string{"FF", "SL"},
		BaseVelocity: map[string]float64{
			"FF": 95.0,
			"SL": 86.0,
		},
		StartMonth:  4,
		StartDay:    1,
		DaysBetween: 5,
	}
}

var genDescriptions = []string{
	"called_strike", "ball", "foul", "swinging_strike", "hit_into_play",
}

var genEvents = []string{
	"", "", "", "field_out", "strikeout", "walk", "single", "grounded_into_double_play",
}

var genBattedBalls = []string{"ground_ball", "fly_ball", "line_drive", "popup"}

// GenerateSeason produces a full season of pitch events from the config.
func GenerateSeason(cfg SeasonConfig) []pitch.PitchEvent {
	rng := rand.New(rand.NewSource(cfg.Seed))
	var events []pitch.PitchEvent

	for g := 0; g < cfg.Games; g++ {
		date := gameDate(cfg, g)
		for p := 0; p < cfg.PitchesPer; p++ {
			pt := cfg.PitchTypes[rng.Intn(len(cfg.PitchTypes))]
			base := cfg.BaseVelocity[pt]
			if base == 0 {
				base = 90
			}

			desc := genDescriptions[rng.Intn(len(genDescriptions))]
			ev := pitch.PitchEvent{
				GameDate:    date,
				PitchType:   pt,
				Velocity:    core.Some(base + rng.NormFloat64()*1.2),
				SpinRate:    core.Some(2200 + rng.NormFloat64()*80),
				Extension:   core.Some(6.3 + rng.NormFloat64()*0.15),
				BreakX:      core.Some(rng.NormFloat64() * 4),
				BreakZ:      core.Some(12 + rng.NormFloat64()*3),
				ReleaseX:    core.Some(-1.8 + rng.NormFloat64()*0.1),
				ReleaseZ:    core.Some(5.9 + rng.NormFloat64()*0.1),
				Zone:        1 + rng.Intn(14),
				Balls:       rng.Intn(4),
				Strikes:     rng.Intn(3),
				Description: desc,
			}
			if desc == "hit_into_play" {
				ev.Event = genEvents[3+rng.Intn(len(genEvents)-3)]
				ev.BattedBall = genBattedBalls[rng.Intn(len(genBattedBalls))]
				ev.LaunchSpeed = core.Some(88 + rng.NormFloat64()*10)
			} else if rng.Float64() < 0.15 {
				switch desc {
				case "swinging_strike", "called_strike":
					ev.Event = "strikeout"
				case "ball":
					ev.Event = "walk"
				}
			}
			events = append(events, ev)
		}
	}
	return events
}

func gameDate(cfg SeasonConfig, game int) core.GameDate {
	day := cfg.StartDay + game*cfg.DaysBetween
	month := cfg.StartMonth
	for day > 28 {
		day -= 28
		month++
	}
	return core.GameDate(fmt.Sprintf("%04d-%02d-%02d", cfg.Season, month, day))
}
