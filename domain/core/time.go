package core

import (
	"fmt"
	"time"
)

// GameDate identifies one game day. Stored as an ISO yyyy-mm-dd string so
// map keys and JSON payloads stay stable and comparable.
type GameDate string

const gameDateLayout = "2006-01-02"

// NewGameDate truncates t to its calendar day.
func NewGameDate(t time.Time) GameDate {
	return GameDate(t.Format(gameDateLayout))
}

// ParseGameDate parses an ISO yyyy-mm-dd date.
func ParseGameDate(s string) (GameDate, error) {
	t, err := time.Parse(gameDateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid game date %q: %w", s, err)
	}
	return NewGameDate(t), nil
}

// Time returns the date at midnight UTC.
func (d GameDate) Time() time.Time {
	t, _ := time.Parse(gameDateLayout, string(d))
	return t
}

// Before reports whether d is strictly earlier than other.
func (d GameDate) Before(other GameDate) bool {
	return string(d) < string(other)
}

// AddDays returns the date shifted by n calendar days.
func (d GameDate) AddDays(n int) GameDate {
	return NewGameDate(d.Time().AddDate(0, 0, n))
}

// Season returns the calendar year of the date.
func (d GameDate) Season() int {
	return d.Time().Year()
}

func (d GameDate) String() string {
	return string(d)
}
