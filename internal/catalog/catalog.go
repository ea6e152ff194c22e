// internal/catalog/catalog.go
//
// Puzzle catalog for the daily word-chain game.
// Responsibilities:
//   - Type definitions: Tier, PuzzleSet, Catalog.
//   - Deterministic date → puzzle mapping (ResolveToday).
//   - Day-key helpers ("YYYY-MM-DD", UTC).
//
// Notes:
//   - The catalog is a fixed rotation: day N past the start date maps to
//     index N mod len(sets), wrapping cleanly in both directions.
//   - Day numbers count from 1 on the launch date and are NOT clamped for
//     earlier dates, so Day #0 and negative day numbers are reachable.
package catalog

import "time"

// Tier names, in display order.
const (
	TierEasy   = "easy"
	TierMedium = "medium"
	TierHard   = "hard"
)

// TierNames lists the three tiers in display order.
var TierNames = []string{TierEasy, TierMedium, TierHard}

// Tier is one difficulty level of a day's puzzle.
// The full chain is [Start, Answer..., End]; every adjacent pair forms a
// compound word. That property is an authoring-time guarantee, not
// something the server checks at runtime.
type Tier struct {
	Start  string   `json:"start"`
	End    string   `json:"end"`
	Answer []string `json:"answer"`
	Hint   string   `json:"hint"`
	Points int      `json:"points"`
}

// PuzzleSet is one calendar day's puzzles, one per tier.
type PuzzleSet struct {
	Easy   Tier `json:"easy"`
	Medium Tier `json:"medium"`
	Hard   Tier `json:"hard"`
}

// Tier returns the named tier and whether the name is valid.
func (p PuzzleSet) Tier(name string) (Tier, bool) {
	switch name {
	case TierEasy:
		return p.Easy, true
	case TierMedium:
		return p.Medium, true
	case TierHard:
		return p.Hard, true
	}
	return Tier{}, false
}

// Catalog is the fixed, ordered rotation of daily puzzle sets.
// Immutable after load; statically non-empty by construction.
type Catalog struct {
	Sets      []PuzzleSet
	StartDate time.Time // UTC midnight of the launch day
}

// ResolveToday maps a calendar date to the day's puzzle set and day number.
// Time of day is ignored (both dates are truncated to UTC midnight).
// dayNumber is 1 on the launch date; earlier dates yield dayNumber <= 0
// and still index the rotation via a true (non-negative) modulo.
func (c *Catalog) ResolveToday(today time.Time) (PuzzleSet, int) {
	offset := int(Midnight(today).Sub(Midnight(c.StartDate)) / (24 * time.Hour))
	n := len(c.Sets)
	idx := ((offset % n) + n) % n
	return c.Sets[idx], offset + 1
}

// Midnight truncates t to UTC midnight.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey returns YYYY-MM-DD in UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Yesterday returns the day key of the calendar day before t.
func Yesterday(t time.Time) string {
	return DayKey(Midnight(t).AddDate(0, 0, -1))
}
