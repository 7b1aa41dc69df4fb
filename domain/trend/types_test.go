package trend

import (
	"testing"

	"pitchlens/domain/core"
)

func TestNewRollingWindow(t *testing.T) {
	w, err := NewRollingWindow(30)
	if err != nil {
		t.Fatalf("valid window rejected: %v", err)
	}
	if w.Kind != WindowRolling || w.NDays != 30 {
		t.Errorf("unexpected window %+v", w)
	}

	for _, n := range []int{0, -7} {
		if _, err := NewRollingWindow(n); !core.IsInvalidWindow(err) {
			t.Errorf("NewRollingWindow(%d) error = %v, want invalid window", n, err)
		}
	}
}

func TestNewFullSeasonWindow(t *testing.T) {
	w, err := NewFullSeasonWindow(2023)
	if err != nil {
		t.Fatalf("valid season rejected: %v", err)
	}
	if w.Kind != WindowFullSeason || w.Season != 2023 {
		t.Errorf("unexpected window %+v", w)
	}

	for _, season := range []int{2019, 2030} {
		if _, err := NewFullSeasonWindow(season); !core.IsInvalidWindow(err) {
			t.Errorf("NewFullSeasonWindow(%d) error = %v, want invalid window", season, err)
		}
	}
}

func TestWindowValidate(t *testing.T) {
	cases := []struct {
		name   string
		window Window
		valid  bool
	}{
		{"rolling ok", Window{Kind: WindowRolling, NDays: 14}, true},
		{"rolling zero days", Window{Kind: WindowRolling}, false},
		{"full season ok", Window{Kind: WindowFullSeason, Season: 2024}, true},
		{"full season unavailable", Window{Kind: WindowFullSeason, Season: 1999}, false},
		{"unknown kind", Window{Kind: "weekly"}, false},
		{"zero value", Window{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.window.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tc.valid && !core.IsInvalidWindow(err) {
				t.Errorf("Validate() = %v, want invalid window", err)
			}
		})
	}
}
